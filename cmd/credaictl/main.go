package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/gagankishoreint-glitch/credai/pkg/observability"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"

	debugFlagName  = "debug"
	formatFlagName = "format"
)

var (
	name    = "credaictl"
	version = "v0.0.1-default"
	commit  = ""
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

// newApp builds a fresh command tree. Flags keep parsed state, so every
// run gets its own.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: fmt.Sprintf("%s - (commit: %s)", version, commit),
		Usage:   "Score credit applications and manage credai credentials",
		Writer:  out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  debugFlagName,
				Usage: "Prints verbose logs (optional, default: false)",
			},
			&cli.StringFlag{
				Name:  formatFlagName,
				Usage: "Output format [json, yaml]",
				Value: formatJSON,
			},
		},
		Commands: []*cli.Command{
			newScoreCmd(),
			newBatchCmd(),
			newModelCmd(),
			newTokenCmd(),
			newDevCertsCmd(),
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if f := cmd.String(formatFlagName); f != formatJSON && f != formatYAML {
				return ctx, fmt.Errorf("unsupported format %q", f)
			}

			level := "warn"
			if cmd.Bool(debugFlagName) {
				level = "debug"
			}
			observability.InitLogger(observability.LogConfig{
				Level:   level,
				Format:  "text",
				Service: name,
				Output:  os.Stderr,
			})
			return ctx, nil
		},
	}
}

// printOutput writes v to the root command's writer in the selected format.
func printOutput(cmd *cli.Command, v any) error {
	out := cmd.Root().Writer
	if cmd.String(formatFlagName) == formatYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// readInput reads path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return b, nil
}
