package sim

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFiles(t *testing.T, recipes, firms string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	rp := filepath.Join(dir, "recipes.yaml")
	fp := filepath.Join(dir, "firms.yaml")
	require.NoError(t, os.WriteFile(rp, []byte(recipes), 0o644))
	require.NoError(t, os.WriteFile(fp, []byte(firms), 0o644))
	return rp, fp
}

const validRecipes = `
recipes:
  - name: wood
    input: {}
    output: wood
    output_qty: 5
    workdays_needed: 1
  - name: boards
    input:
      wood: 1
    output: boards
    output_qty: 10
    workdays_needed: 1
`

func TestLoadTemplates_ValidCatalog(t *testing.T) {
	rp, fp := writeCatalogFiles(t, validRecipes, `
firms:
  - name: Hut
    money: 10000
    workers: 1
    recipe: wood
  - name: Board Maker
    money: 10000
    workers: 1
    recipe: boards
`)

	templates, warnings, err := LoadTemplates(rp, fp)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, templates.Recipes, 2)
	assert.Len(t, templates.Firms, 2)

	boards, ok := templates.RecipeByName("boards")
	require.True(t, ok)
	assert.Equal(t, ItemType("boards"), boards.Output)
	assert.Equal(t, 1, boards.Input["wood"])
}

func TestLoadTemplates_UnknownRecipeFails(t *testing.T) {
	rp, fp := writeCatalogFiles(t, validRecipes, `
firms:
  - name: Phantom
    recipe: nonexistent
`)

	_, _, err := LoadTemplates(rp, fp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestTemplates_Validate_Errors(t *testing.T) {
	templates := &Templates{
		Recipes: []RecipeTemplate{
			{Name: "wood", Output: "wood", OutputQty: 5, WorkdaysNeeded: 1},
			{Name: "wood", Output: "wood", OutputQty: 0, WorkdaysNeeded: 0},
		},
	}

	errs, _ := templates.Validate()

	joined := strings.Join(errs, "; ")
	assert.Contains(t, joined, "duplicate recipe")
	assert.Contains(t, joined, "non-positive output quantity")
	assert.Contains(t, joined, "non-positive workdays")
}

func TestTemplates_Validate_Warnings(t *testing.T) {
	// GIVEN a catalog with an unused recipe, an understaffed firm, and an
	// input nothing produces
	templates := &Templates{
		Recipes: []RecipeTemplate{
			{Name: "boards", Input: map[ItemType]int{"wood": 1}, Output: "boards", OutputQty: 10, WorkdaysNeeded: 3},
			{Name: "idle", Output: "idle", OutputQty: 1, WorkdaysNeeded: 1},
		},
		Firms: []FirmTemplate{
			{Name: "Board Maker", Workers: 1, Recipe: "boards"},
		},
	}

	errs, warnings := templates.Validate()

	assert.Empty(t, errs)
	joined := strings.Join(warnings, "; ")
	assert.Contains(t, joined, `recipe "idle" is not used`)
	assert.Contains(t, joined, "fewer workers (1) than workdays needed (3)")
	assert.Contains(t, joined, `needs "wood" which no recipe produces`)
}

func TestRecipeTemplate_Recipe_CopiesInputMap(t *testing.T) {
	// GIVEN one template instantiated twice
	tmpl := RecipeTemplate{
		Name: "boards", Input: map[ItemType]int{"wood": 1},
		Output: "boards", OutputQty: 10, WorkdaysNeeded: 1,
	}

	a := tmpl.Recipe()
	b := tmpl.Recipe()
	a.Input["wood"] = 99

	// THEN the instances do not share input state
	assert.Equal(t, 1, b.Input["wood"])
	assert.Equal(t, 1, tmpl.Input["wood"])
	assert.Equal(t, 0, a.WorkdaysLeft)
}
