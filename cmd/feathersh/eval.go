package main

import (
	"fmt"
	"os"

	"github.com/featherscript/feather"
	"github.com/hashicorp/go-hclog"
)

// newInterp builds an interpreter with cfg applied and its source scripts
// already run, shared by the eval and repl subcommands.
func newInterp(cfg *config, logger hclog.Logger) (*feather.Interp, error) {
	i := feather.New()
	if cfg.MaxDepth > 0 {
		i.SetMaxDepth(cfg.MaxDepth)
	}
	registerHostCommands(i, cfg, logger)

	for _, path := range cfg.Source {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading source script %s: %w", path, err)
		}
		if _, err := i.Eval(string(src)); err != nil {
			return nil, fmt.Errorf("sourcing %s: %w", path, err)
		}
	}
	return i, nil
}

// runEval evaluates script with a fresh interpreter and prints its result,
// the one-shot counterpart to runREPL.
func runEval(script string, cfg *config, logger hclog.Logger) error {
	i, err := newInterp(cfg, logger)
	if err != nil {
		return err
	}
	result, err := i.Eval(script)
	if err != nil {
		return err
	}
	if s := result.String(); s != "" {
		fmt.Println(s)
	}
	return nil
}
