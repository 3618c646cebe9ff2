package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Keluni100/orderflow/market"
	"github.com/Keluni100/orderflow/sim"
)

// Config is the complete sandbox configuration.
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Strategy   StrategyConfig   `json:"strategy" yaml:"strategy"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	Balance  float64 `json:"balance" yaml:"balance"`
	Currency string  `json:"currency" yaml:"currency"`
	Leverage int     `json:"leverage" yaml:"leverage"`
}

// SimulationConfig controls series generation and playback.
type SimulationConfig struct {
	Instrument string `json:"instrument" yaml:"instrument"`
	Bars       int    `json:"bars" yaml:"bars"`
	StartIndex int    `json:"start_index" yaml:"start_index"`
	Seed       int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	SpeedMS    int    `json:"speed_ms" yaml:"speed_ms"`
}

// StrategyConfig is the descriptive strategy attached to each session.
type StrategyConfig struct {
	Name             string  `json:"name" yaml:"name"`
	Description      string  `json:"description,omitempty" yaml:"description,omitempty"`
	Trigger          string  `json:"trigger" yaml:"trigger"`
	Sensitivity      string  `json:"sensitivity" yaml:"sensitivity"`
	ZoneFilter       string  `json:"zone_filter" yaml:"zone_filter"`
	StopLogic        string  `json:"stop_logic" yaml:"stop_logic"`
	OrderType        string  `json:"order_type" yaml:"order_type"`
	LimitOffsetTicks float64 `json:"limit_offset_ticks,omitempty" yaml:"limit_offset_ticks,omitempty"`
	StopOffsetTicks  float64 `json:"stop_offset_ticks,omitempty" yaml:"stop_offset_ticks,omitempty"`
}

// StoreConfig selects the session store backend.
type StoreConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml) or JSON.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if _, err := market.Lookup(c.Simulation.Instrument); err != nil {
		return err
	}
	if c.Simulation.Bars < 2 {
		return fmt.Errorf("simulation.bars must be at least 2")
	}
	if c.Simulation.StartIndex < 0 || c.Simulation.StartIndex >= c.Simulation.Bars {
		return fmt.Errorf("simulation.start_index must be within the bar sequence")
	}
	if c.Simulation.SpeedMS <= 0 {
		return fmt.Errorf("simulation.speed_ms must be positive")
	}
	switch sim.OrderType(c.Strategy.OrderType) {
	case sim.Market, sim.Limit, sim.StopEntry:
	default:
		return fmt.Errorf("strategy.order_type must be market, limit or stop-loss")
	}
	if c.Store.Type != "sqlite" && c.Store.Type != "memory" {
		return fmt.Errorf("store.type must be 'sqlite' or 'memory'")
	}
	if c.Store.Type == "sqlite" && c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path required for sqlite store")
	}
	return nil
}

// Default returns a configuration with the simulator's stock settings.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Balance:  10000,
			Currency: "£",
			Leverage: 100,
		},
		Simulation: SimulationConfig{
			Instrument: "EURUSD",
			Bars:       500,
			StartIndex: 50,
			SpeedMS:    1000,
		},
		Strategy: StrategyConfig{
			Name:        "My Strategy",
			Trigger:     "diagonal-imbalance",
			Sensitivity: "300",
			ZoneFilter:  "poc",
			StopLogic:   "low-of-bar",
			OrderType:   "market",
		},
		Store: StoreConfig{
			Type:   "sqlite",
			DBPath: "./sessions.db",
		},
	}
}

// StrategySpec converts the config section to the engine's strategy type.
func (c *Config) StrategySpec() sim.Strategy {
	return sim.Strategy{
		Name:             c.Strategy.Name,
		Description:      c.Strategy.Description,
		Trigger:          c.Strategy.Trigger,
		Sensitivity:      c.Strategy.Sensitivity,
		ZoneFilter:       c.Strategy.ZoneFilter,
		StopLogic:        c.Strategy.StopLogic,
		OrderType:        sim.OrderType(c.Strategy.OrderType),
		LimitOffsetTicks: c.Strategy.LimitOffsetTicks,
		StopOffsetTicks:  c.Strategy.StopOffsetTicks,
	}
}

// AccountSpec converts the config section to the engine's account type.
func (c *Config) AccountSpec() sim.Account {
	return sim.Account{
		Balance:  c.Account.Balance,
		Currency: c.Account.Currency,
		Leverage: c.Account.Leverage,
	}
}
