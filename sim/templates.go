package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RecipeTemplate is one entry of the externally versioned recipe catalog.
type RecipeTemplate struct {
	Name           string           `yaml:"name"`
	Input          map[ItemType]int `yaml:"input"`
	Output         ItemType         `yaml:"output"`
	OutputQty      int              `yaml:"output_qty"`
	WorkdaysNeeded int              `yaml:"workdays_needed"`
}

// Recipe instantiates a fresh production recipe from the template.
// WorkdaysLeft starts at zero: ready for a new cycle.
func (t *RecipeTemplate) Recipe() ProductionRecipe {
	input := make(map[ItemType]int, len(t.Input))
	for k, v := range t.Input {
		input[k] = v
	}
	return ProductionRecipe{
		Name:           t.Name,
		Input:          input,
		Output:         t.Output,
		OutputQty:      t.OutputQty,
		WorkdaysNeeded: t.WorkdaysNeeded,
	}
}

// FirmTemplate seeds the starting firms of a run.
type FirmTemplate struct {
	Name    string `yaml:"name"`
	Money   Money  `yaml:"money"`
	Workers int    `yaml:"workers"`
	Recipe  string `yaml:"recipe"`
	Copies  int    `yaml:"copies"`
}

// Templates is the loaded catalog: recipes plus the starting firm roster.
type Templates struct {
	Recipes []RecipeTemplate `yaml:"recipes"`
	Firms   []FirmTemplate   `yaml:"firms"`
}

// RecipeByName looks a recipe template up by catalog name.
func (t *Templates) RecipeByName(name string) (*RecipeTemplate, bool) {
	for i := range t.Recipes {
		if t.Recipes[i].Name == name {
			return &t.Recipes[i], true
		}
	}
	return nil, false
}

// LoadTemplates reads the recipe catalog and firm roster from two YAML
// files and validates them. Validation errors fail the load; warnings are
// returned for the caller to log.
func LoadTemplates(recipesPath, firmsPath string) (*Templates, []string, error) {
	templates := &Templates{}
	if err := readYAML(recipesPath, templates); err != nil {
		return nil, nil, err
	}
	if err := readYAML(firmsPath, templates); err != nil {
		return nil, nil, err
	}
	errs, warnings := templates.Validate()
	if len(errs) > 0 {
		return nil, warnings, fmt.Errorf("invalid templates: %s", errs[0])
	}
	return templates, warnings, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Validate cross-checks the catalog. Errors make the catalog unusable;
// warnings flag setups that will run but probably not as intended.
func (t *Templates) Validate() (errs []string, warnings []string) {
	recipeWorkdays := make(map[string]int, len(t.Recipes))
	seen := make(map[string]bool, len(t.Recipes))
	for _, r := range t.Recipes {
		if seen[r.Name] {
			errs = append(errs, fmt.Sprintf("duplicate recipe %q", r.Name))
		}
		seen[r.Name] = true
		recipeWorkdays[r.Name] = r.WorkdaysNeeded
		if r.OutputQty <= 0 {
			errs = append(errs, fmt.Sprintf("recipe %q has non-positive output quantity", r.Name))
		}
		if r.WorkdaysNeeded <= 0 {
			errs = append(errs, fmt.Sprintf("recipe %q has non-positive workdays", r.Name))
		}
	}

	referenced := make(map[string]bool)
	for _, f := range t.Firms {
		workdays, ok := recipeWorkdays[f.Recipe]
		if !ok {
			errs = append(errs, fmt.Sprintf("firm %q references unknown recipe %q", f.Name, f.Recipe))
			continue
		}
		referenced[f.Recipe] = true
		if f.Workers < workdays {
			warnings = append(warnings, fmt.Sprintf(
				"firm %q has fewer workers (%d) than workdays needed (%d) for recipe %q",
				f.Name, f.Workers, workdays, f.Recipe))
		}
	}
	for _, r := range t.Recipes {
		if !referenced[r.Name] && len(t.Firms) > 0 {
			warnings = append(warnings, fmt.Sprintf("recipe %q is not used by any firm", r.Name))
		}
	}

	produced := make(map[ItemType]bool)
	for _, r := range t.Recipes {
		produced[r.Output] = true
	}
	for _, r := range t.Recipes {
		for input := range r.Input {
			if !produced[input] {
				warnings = append(warnings, fmt.Sprintf(
					"recipe %q needs %q which no recipe produces", r.Name, input))
			}
		}
	}
	return errs, warnings
}
