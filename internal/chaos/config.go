package chaos

import (
	"context"
	"encoding/json"
	"os"
)

// FaultKind is a category of simulated transient store failure.
type FaultKind string

const (
	FaultThrottling         FaultKind = "throttling"
	FaultTimeout            FaultKind = "timeout"
	FaultServiceUnavailable FaultKind = "service_unavailable"
)

type LatencyConfig struct {
	Enabled     bool    `json:"enabled"`
	Probability float64 `json:"probability"`
	MinMS       int     `json:"min_ms"`
	MaxMS       int     `json:"max_ms"`
}

type ExceptionConfig struct {
	Enabled     bool        `json:"enabled"`
	Probability float64     `json:"probability"`
	Types       []FaultKind `json:"types"`
}

// Config is the fault-injection configuration. It is re-fetched on every
// guard call so edits to the source take effect on the next store operation.
type Config struct {
	Enabled    bool            `json:"enabled"`
	Latency    LatencyConfig   `json:"latency"`
	Exceptions ExceptionConfig `json:"exceptions"`
}

// Disabled is the fail-open default used whenever the source is missing or
// malformed: chaos must never break a business operation by accident.
func Disabled() Config { return Config{} }

func validProbability(p float64) bool { return p >= 0 && p <= 1 }

// sanitize validates the decoded document. Invalid probabilities or latency
// bounds disable the config outright; unknown fault kinds are dropped and an
// empty set falls back to throttling.
func sanitize(cfg Config) Config {
	if !validProbability(cfg.Latency.Probability) || !validProbability(cfg.Exceptions.Probability) {
		return Disabled()
	}
	if cfg.Latency.MinMS < 0 || cfg.Latency.MinMS > cfg.Latency.MaxMS {
		return Disabled()
	}
	var kinds []FaultKind
	for _, k := range cfg.Exceptions.Types {
		switch k {
		case FaultThrottling, FaultTimeout, FaultServiceUnavailable:
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		kinds = []FaultKind{FaultThrottling}
	}
	cfg.Exceptions.Types = kinds
	return cfg
}

// ParseConfig decodes and validates a chaos config document. Malformed input
// yields the disabled config, never an error.
func ParseConfig(data []byte) Config {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Disabled()
	}
	return sanitize(cfg)
}

// Source supplies the live chaos configuration. Implementations are
// best-effort: an unreachable or malformed source reads as disabled.
type Source interface {
	Fetch(ctx context.Context) Config
}

// FileSource re-reads a JSON config file on every fetch, so the file can be
// edited while the service runs.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(context.Context) Config {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Disabled()
	}
	return ParseConfig(data)
}

// StaticSource returns a fixed config. Used in tests and as the default
// when no config path is set.
type StaticSource struct {
	Config Config
}

func (s StaticSource) Fetch(context.Context) Config { return s.Config }
