package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config is feathersh's optional startup file, loaded with --config. It is
// CLI-level configuration only: the engine itself (internal/core) takes no
// config of its own, per spec.md's "pure library" contract.
type config struct {
	// MaxDepth overrides the proc recursion limit enforced by the engine.
	// Zero means use the engine's own default.
	MaxDepth int `yaml:"max_depth"`

	// HostExec enables registration of the exec host command, which
	// touches the surrounding OS.
	// Disabled by default so an embedded feathersh can safely run
	// untrusted scripts.
	HostExec bool `yaml:"host_exec"`

	// Source lists scripts to evaluate, in order, before handing control
	// to the REPL or running the requested one-shot command.
	Source []string `yaml:"source"`
}

func loadConfig(path string) (*config, error) {
	if path == "" {
		return &config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
