package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lcforge/internal/campaign"
	"lcforge/internal/dist"
	domaintypes "lcforge/internal/domain/types"
)

// Config is the YAML configuration for a campaign invocation.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Campaign CampaignConfig `yaml:"campaign"`
	Base     BaseCurve      `yaml:"base"`
}

// StoreConfig locates the results database. An empty path disables
// persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// CampaignConfig mirrors campaign.Config in YAML form.
type CampaignConfig struct {
	SignalType string               `yaml:"signal_type"`
	Trials     int                  `yaml:"trials"`
	Tolerance  float64              `yaml:"tolerance"`
	Seed       uint64               `yaml:"seed"`
	Workers    int                  `yaml:"workers"`
	Source     string               `yaml:"source"`
	Bandpass   string               `yaml:"bandpass"`
	Params     map[string]ParamSpec `yaml:"params"`
}

// BaseCurve describes the shared base light curve: either a CSV file with
// time,flux,flux_err columns, or a synthetic constant-flux series.
type BaseCurve struct {
	CSV     string  `yaml:"csv"`
	Points  int     `yaml:"points"`
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	Flux    float64 `yaml:"flux"`
	FluxErr float64 `yaml:"flux_err"`
}

// ParamSpec is a YAML parameter value: a bare scalar, or a one-key mapping
// selecting a distribution, e.g. {uniform: {lb: 1, ub: 10}} or
// {gaussian: {mean: 0.5, stddev: 0.1}}.
type ParamSpec struct {
	Value dist.Value
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *ParamSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("parameter value: %w", err)
		}
		p.Value = dist.Literal(f)
		return nil
	}

	var raw struct {
		Uniform *struct {
			Lb float64 `yaml:"lb"`
			Ub float64 `yaml:"ub"`
		} `yaml:"uniform"`
		Gaussian *struct {
			Mean   float64 `yaml:"mean"`
			Stddev float64 `yaml:"stddev"`
		} `yaml:"gaussian"`
	}
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("parameter spec: %w", err)
	}
	switch {
	case raw.Uniform != nil && raw.Gaussian != nil:
		return fmt.Errorf("parameter spec names more than one distribution")
	case raw.Uniform != nil:
		p.Value = dist.Sampled(dist.Uniform{Lb: raw.Uniform.Lb, Ub: raw.Uniform.Ub})
	case raw.Gaussian != nil:
		p.Value = dist.Sampled(dist.Gaussian{Mean: raw.Gaussian.Mean, Stddev: raw.Gaussian.Stddev})
	default:
		return fmt.Errorf("parameter spec must be a scalar, uniform, or gaussian")
	}
	return nil
}

// LoadConfig reads and decodes the YAML config at path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// CampaignConfig converts the YAML form into the runner's configuration.
func (c *Config) CampaignConfig() campaign.Config {
	params := make(map[string]dist.Value, len(c.Campaign.Params))
	for name, spec := range c.Campaign.Params {
		params[name] = spec.Value
	}
	return campaign.Config{
		SignalType: domaintypes.SignalType(c.Campaign.SignalType),
		Trials:     c.Campaign.Trials,
		Tolerance:  c.Campaign.Tolerance,
		Seed:       c.Campaign.Seed,
		Workers:    c.Campaign.Workers,
		Source:     c.Campaign.Source,
		Bandpass:   c.Campaign.Bandpass,
		Params:     params,
	}
}

// BaseLightCurve materialises the configured base series. CSV input wins
// over the synthetic series when both are present.
func (c *Config) BaseLightCurve() (domaintypes.LightCurve, error) {
	if c.Base.CSV != "" {
		return ReadCSV(c.Base.CSV)
	}

	points := c.Base.Points
	if points <= 0 {
		points = 1000
	}
	end := c.Base.End
	if end <= c.Base.Start {
		end = c.Base.Start + 100
	}
	flux := c.Base.Flux
	if flux == 0 {
		flux = 1.0
	}

	lc := domaintypes.LightCurve{
		Time:    make([]float64, points),
		Flux:    make([]float64, points),
		FluxErr: make([]float64, points),
	}
	for i := 0; i < points; i++ {
		lc.Time[i] = c.Base.Start + (end-c.Base.Start)*float64(i)/float64(points-1)
		lc.Flux[i] = flux
		lc.FluxErr[i] = c.Base.FluxErr
	}
	return lc, nil
}
