package scorer

import (
	"fmt"
	"os"

	"fundscore/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config carries every weight and threshold the scorer uses. The
// defaults sum to exactly 100 (40 + 30 + 15 + 15), so the composite cap
// is structural rather than a clamp. All recalibration is "rerun
// scoring with a new Config" - never an in-place mutation of stored
// scores.
type Config struct {
	ReturnsMax      float64 `yaml:"returns_max"`
	RiskMax         float64 `yaml:"risk_max"`
	FundamentalsMax float64 `yaml:"fundamentals_max"`
	OtherMax        float64 `yaml:"other_max"`

	// PeriodWeights is the full-point allocation per return period.
	PeriodWeights map[domain.Period]float64 `yaml:"period_weights"`

	// ReturnBreakpoints maps absolute period return (percent) floors to
	// the fraction of the period weight awarded. Used only when no peer
	// return distribution is available. Ordered high to low.
	ReturnBreakpoints []ReturnBreakpoint `yaml:"return_breakpoints"`
}

type ReturnBreakpoint struct {
	MinReturn float64 `yaml:"min_return"`
	Fraction  float64 `yaml:"fraction"`
}

func DefaultConfig() Config {
	return Config{
		ReturnsMax:      40,
		RiskMax:         30,
		FundamentalsMax: 15,
		OtherMax:        15,
		PeriodWeights: map[domain.Period]float64{
			domain.Period3M:  4,
			domain.Period6M:  6,
			domain.Period1Y:  10,
			domain.Period3Y:  8,
			domain.Period5Y:  8,
			domain.PeriodYTD: 4,
		},
		ReturnBreakpoints: []ReturnBreakpoint{
			{MinReturn: 15, Fraction: 1.0},
			{MinReturn: 12, Fraction: 0.8},
			{MinReturn: 9, Fraction: 0.6},
			{MinReturn: 6, Fraction: 0.4},
			{MinReturn: 3, Fraction: 0.2},
			{MinReturn: 0, Fraction: 0.1},
		},
	}
}

// LoadConfig reads scoring weights from a YAML file, falling back to
// defaults for zero-valued caps so partial overrides are safe.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read scoring config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse scoring config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ReturnsMax <= 0 || c.RiskMax <= 0 || c.FundamentalsMax <= 0 || c.OtherMax <= 0 {
		return fmt.Errorf("scoring config caps must be positive")
	}
	sum := 0.0
	for _, w := range c.PeriodWeights {
		sum += w
	}
	if sum > c.ReturnsMax {
		return fmt.Errorf("period weights sum %.1f exceeds returns cap %.1f", sum, c.ReturnsMax)
	}
	return nil
}
