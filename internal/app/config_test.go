package app

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaintypes "lcforge/internal/domain/types"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTemp(t, "campaign.yaml", `
store:
  path: results.db
campaign:
  signal_type: transit
  trials: 50
  tolerance: 0.1
  seed: 7
  workers: 4
  params:
    period: {uniform: {lb: 1, ub: 10}}
    rprs: {gaussian: {mean: 0.05, stddev: 0.01}}
    T0: 2.5
base:
  points: 500
  start: 0
  end: 25
  flux: 1
  flux_err: 0.001
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "results.db", cfg.Store.Path)

	ccfg := cfg.CampaignConfig()
	assert.Equal(t, domaintypes.SignalTransit, ccfg.SignalType)
	assert.Equal(t, 50, ccfg.Trials)
	assert.Equal(t, uint64(7), ccfg.Seed)

	src := rand.NewPCG(1, 2)
	require.True(t, ccfg.Params["T0"].Set())
	assert.Equal(t, 2.5, ccfg.Params["T0"].Resolve(src))

	period := ccfg.Params["period"].Resolve(src)
	assert.GreaterOrEqual(t, period, 1.0)
	assert.Less(t, period, 10.0)
	require.True(t, ccfg.Params["rprs"].Set())
}

func TestParamSpec_RejectsAmbiguousAndUnknown(t *testing.T) {
	for name, doc := range map[string]string{
		"both distributions": `
campaign:
  params:
    period: {uniform: {lb: 1, ub: 2}, gaussian: {mean: 1, stddev: 1}}
`,
		"unknown shape": `
campaign:
  params:
    period: {lognormal: {mu: 1}}
`,
	} {
		t.Run(name, func(t *testing.T) {
			path := writeTemp(t, "bad.yaml", doc)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestBaseLightCurve_SyntheticDefaults(t *testing.T) {
	cfg := &Config{}
	lc, err := cfg.BaseLightCurve()
	require.NoError(t, err)
	assert.Equal(t, 1000, lc.Len())
	assert.True(t, lc.Aligned())
	assert.Equal(t, 0.0, lc.Time[0])
	assert.Equal(t, 100.0, lc.Time[lc.Len()-1])
	for _, f := range lc.Flux {
		require.Equal(t, 1.0, f)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	lc := domaintypes.LightCurve{
		Time:    []float64{0, 0.5, 1},
		Flux:    []float64{1, 0.99, 1},
		FluxErr: []float64{0.001, 0.001, 0.001},
	}

	path := filepath.Join(t.TempDir(), "lc.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteCSV(f, lc))
	require.NoError(t, f.Close())

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, lc, got)
}

func TestReadCSV_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})
	t.Run("bad flux", func(t *testing.T) {
		path := writeTemp(t, "bad.csv", "time,flux\n1.0,oops\n")
		_, err := ReadCSV(path)
		assert.Error(t, err)
	})
	t.Run("header only", func(t *testing.T) {
		path := writeTemp(t, "empty.csv", "time,flux\n")
		_, err := ReadCSV(path)
		assert.Error(t, err)
	})
}
