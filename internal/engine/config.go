package engine

import (
	"errors"
	"fmt"
	"os"

	"backsim/strategies"
	"backsim/types"

	"gopkg.in/yaml.v3"
)

const (
	PositionFixedShares  = "fixed_shares"
	PositionFixedCapital = "fixed_capital"

	CommissionFixed      = "fixed"
	CommissionPercentage = "percentage"
)

// Config is the on-disk configuration shape (YAML). Every section is
// validated before a run is constructed; no bar is processed with a bad
// config.
type Config struct {
	Data      DataConfig        `yaml:"data"`
	Strategy  strategies.Config `yaml:"strategy"`
	Order     OrderConfig       `yaml:"order"`
	Position  PositionConfig    `yaml:"position"`
	Cost      CostConfig        `yaml:"cost"`
	Reporting ReportingConfig   `yaml:"reporting"`
}

type DataConfig struct {
	CSVFile   string  `yaml:"csv_file"`
	Timeframe string  `yaml:"timeframe"`
	SpreadPct float64 `yaml:"spread_pct"`
}

type OrderConfig struct {
	SlippagePct     float64 `yaml:"slippage_pct"`
	PartialFillProb float64 `yaml:"partial_fill_prob"`
	Seed            int64   `yaml:"seed"`
}

type PositionConfig struct {
	Mode           string  `yaml:"mode"`
	FixedShares    int64   `yaml:"fixed_shares"`
	CapitalPct     float64 `yaml:"capital_pct"`
	InitialCapital float64 `yaml:"initial_capital"`
}

type CostConfig struct {
	CommissionType  string  `yaml:"commission_type"`
	CommissionFixed float64 `yaml:"commission_fixed"`
	CommissionPct   float64 `yaml:"commission_pct"`
}

type ReportingConfig struct {
	PrintTrades bool   `yaml:"print_trades"`
	ReportName  string `yaml:"report_name"`
	OutputDir   string `yaml:"output_dir"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Data.Timeframe == "" {
		c.Data.Timeframe = string(types.FifteenMinutes)
	}
	if c.Position.Mode == "" {
		c.Position.Mode = PositionFixedCapital
	}
	if c.Position.CapitalPct == 0 {
		c.Position.CapitalPct = 0.95
	}
	if c.Position.InitialCapital == 0 {
		c.Position.InitialCapital = 100000
	}
	if c.Cost.CommissionType == "" {
		c.Cost.CommissionType = CommissionPercentage
	}
}

func (c *Config) Validate() error {
	if _, ok := types.ConvertInterval[c.Data.Timeframe]; !ok {
		return fmt.Errorf("data: unsupported timeframe %q", c.Data.Timeframe)
	}
	if c.Data.SpreadPct < 0 {
		return errors.New("data: spread_pct must not be negative")
	}
	if err := c.Order.Validate(); err != nil {
		return err
	}
	if err := c.Position.Validate(); err != nil {
		return err
	}
	return c.Cost.Validate()
}

func (o OrderConfig) Validate() error {
	if o.SlippagePct < 0 {
		return errors.New("order: slippage_pct must not be negative")
	}
	if o.PartialFillProb < 0 || o.PartialFillProb > 1 {
		return errors.New("order: partial_fill_prob must be within [0, 1]")
	}
	return nil
}

func (p PositionConfig) Validate() error {
	switch p.Mode {
	case PositionFixedShares:
		if p.FixedShares <= 0 {
			return errors.New("position: fixed_shares must be positive")
		}
	case PositionFixedCapital:
		if p.CapitalPct <= 0 || p.CapitalPct > 1 {
			return errors.New("position: capital_pct must be within (0, 1]")
		}
	default:
		return fmt.Errorf("position: unknown sizing mode %q", p.Mode)
	}
	if p.InitialCapital <= 0 {
		return errors.New("position: initial_capital must be positive")
	}
	return nil
}

func (c CostConfig) Validate() error {
	switch c.CommissionType {
	case CommissionFixed:
		if c.CommissionFixed < 0 {
			return errors.New("cost: commission_fixed must not be negative")
		}
	case CommissionPercentage:
		if c.CommissionPct < 0 {
			return errors.New("cost: commission_pct must not be negative")
		}
	default:
		return fmt.Errorf("cost: unknown commission type %q", c.CommissionType)
	}
	return nil
}
