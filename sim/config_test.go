package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams_AreValid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
}

func TestParams_Validate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero sample fraction", func(p *Params) { p.SampleFraction = 0 }},
		{"sample fraction above one", func(p *Params) { p.SampleFraction = 1.5 }},
		{"negative top fraction", func(p *Params) { p.TopFraction = -0.1 }},
		{"inverted price band", func(p *Params) { p.PriceLowerBound = 0.9 }},
		{"zero pricing window", func(p *Params) { p.PricingWindow = 0 }},
		{"zero dividend window", func(p *Params) { p.DividendWindow = 0 }},
		{"dividend fraction above one", func(p *Params) { p.DividendFraction = 1.1 }},
		{"zero permit interval", func(p *Params) { p.PermitInterval = 0 }},
		{"zero target cycles", func(p *Params) { p.TargetProductionCycles = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParams()
			c.mutate(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestLoadParams_OverlaysDefaults(t *testing.T) {
	// GIVEN a file naming only two tunables
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("firm_stake: 9000\nstaff_cooldown: 7\n"), 0o644))

	p, err := LoadParams(path)
	require.NoError(t, err)

	// THEN the named ones changed and the rest kept their defaults
	assert.Equal(t, Money(9000), p.FirmStake)
	assert.Equal(t, 7, p.StaffCooldown)
	assert.Equal(t, DefaultParams().SampleFraction, p.SampleFraction)
	assert.Equal(t, DefaultParams().DefaultSalary, p.DefaultSalary)
}

func TestLoadParams_Failures(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(":\tnot yaml"), 0o644))
	_, err = LoadParams(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("pricing_window: 0\n"), 0o644))
	_, err = LoadParams(invalid)
	assert.Error(t, err)
}
