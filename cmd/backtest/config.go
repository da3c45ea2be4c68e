package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"kairos/pkg/exchange"
	"kairos/pkg/middleware"
	"kairos/pkg/utility/fixed"
)

const (
	MonitorFlags = middleware.MonitorPositionsOpened | middleware.MonitorPositionsClosed | middleware.MonitorOrdersExecuted
)

// Config is the top-level configuration of a backtest run.
type Config struct {
	Data       DataConfig      `yaml:"data"`
	Symbols    []SymbolConfig  `yaml:"symbols"`
	Simulation SimulationCfg   `yaml:"simulation"`
	Strategy   StrategyConfig  `yaml:"strategy"`
	Journal    JournalConfig   `yaml:"journal"`
	Bootstrap  BootstrapConfig `yaml:"bootstrap"`
	Logging    LoggingConfig   `yaml:"logging"`
}

// DataConfig selects the bar source. Kind is either "duckdb" or
// "binary"; binary sources read one mmap file per symbol from Dir.
type DataConfig struct {
	Kind   string `yaml:"kind"`
	DuckDB string `yaml:"duckdb"`
	Dir    string `yaml:"dir"`
}

type SymbolConfig struct {
	Name     string  `yaml:"name"`
	Id       int64   `yaml:"id"`
	Class    string  `yaml:"class"`
	Digits   int     `yaml:"digits"`
	TickSize float64 `yaml:"tick_size"`
	LotSize  float64 `yaml:"lot_size"`
}

type SimulationCfg struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type StrategyConfig struct {
	Window      int     `yaml:"window"`
	TargetRatio float64 `yaml:"target_ratio"`
}

type JournalConfig struct {
	Path  string `yaml:"path"`
	RunId string `yaml:"run_id"`
}

type BootstrapConfig struct {
	Seed       int64 `yaml:"seed"`
	Iterations int   `yaml:"iterations"`
}

type LoggingConfig struct {
	Dev bool `yaml:"dev"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config %q: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config %q: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) SimulationRange() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, c.Simulation.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid simulation start: %w", err)
	}
	end, err := time.Parse(time.DateOnly, c.Simulation.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid simulation end: %w", err)
	}
	return start, end, nil
}

func (c *Config) SymbolInfos() []exchange.SymbolInfo {
	infos := make([]exchange.SymbolInfo, 0, len(c.Symbols))
	for _, symbol := range c.Symbols {
		infos = append(infos, exchange.SymbolInfo{
			SymbolName: symbol.Name,
			SymbolId:   symbol.Id,
			Class:      exchange.SymbolClass(symbol.Class),
			Digits:     symbol.Digits,
			TickSize:   fixed.FromFloat64(symbol.TickSize),
			LotSize:    fixed.FromFloat64(symbol.LotSize),
		})
	}
	return infos
}
