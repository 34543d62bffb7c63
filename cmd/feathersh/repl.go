package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/featherscript/feather"
	"github.com/featherscript/feather/internal/replline"
)

var (
	errColor    = color.New(color.FgRed)
	contColor   = color.New(color.FgHiBlack)
	resultColor = color.New(color.FgGreen)
)

// runREPL drives an interactive read-eval-print loop, accumulating
// multi-line input until [feather.Interp.Parse] reports it complete,
// mirroring the teacher's runREPLWithEditor loop shape.
func runREPL(cfg *config, logger hclog.Logger) error {
	i, err := newInterp(cfg, logger)
	if err != nil {
		return err
	}

	editor := replline.New()
	var inputBuffer string

	fmt.Println("feathersh - Ctrl-D to exit")

	for {
		prompt := "% "
		if inputBuffer != "" {
			prompt = contColor.Sprint("> ")
		}

		line, err := editor.ReadLine(prompt)
		if err != nil {
			if err == io.EOF {
				if inputBuffer != "" {
					fmt.Println()
					fmt.Println("incomplete input, discarded")
				}
				return nil
			}
			if strings.Contains(err.Error(), "interrupted") {
				inputBuffer = ""
				continue
			}
			return err
		}

		if inputBuffer != "" {
			inputBuffer += "\n" + line
		} else {
			inputBuffer = line
		}

		pr := i.Parse(inputBuffer)
		if pr.Status == feather.ParseIncomplete {
			continue
		}
		if pr.Status == feather.ParseError {
			errColor.Fprintf(os.Stderr, "error: %s\n", pr.Message)
			inputBuffer = ""
			continue
		}

		result, err := i.Eval(inputBuffer)
		if err != nil {
			errColor.Fprintf(os.Stderr, "error: %s\n", err.Error())
		} else if s := result.String(); s != "" {
			resultColor.Println(s)
		}
		inputBuffer = ""
	}
}

// runPipedScript evaluates a script read from stdin when stdin is not a
// terminal, the non-interactive counterpart to runREPL.
func runPipedScript(cfg *config, logger hclog.Logger) error {
	i, err := newInterp(cfg, logger)
	if err != nil {
		return err
	}

	script, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return fmt.Errorf("reading script from stdin: %w", err)
	}

	result, err := i.Eval(string(script))
	if err != nil {
		errColor.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
	if s := result.String(); s != "" {
		fmt.Println(s)
	}
	return nil
}
