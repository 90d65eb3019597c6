package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/gagankishoreint-glitch/credai/internal/application/dto"
	"github.com/gagankishoreint-glitch/credai/internal/application/usecase"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

const (
	fileFlagName    = "file"
	explainFlagName = "explain"
	workersFlagName = "workers"

	workersDefault = 8
)

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     fileFlagName,
		Aliases:  []string{"f"},
		Usage:    "Path to a JSON or YAML file, - for stdin",
		Required: true,
	}
}

func explainFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  explainFlagName,
		Usage: "Include features and per-feature contributions (optional, default: false)",
	}
}

func newScoreCmd() *cli.Command {
	return &cli.Command{
		Name:    "score",
		Aliases: []string{"s"},
		Usage:   "Assess one application",
		Flags:   []cli.Flag{fileFlag(), explainFlag()},
		Action:  cmdScore,
	}
}

func newBatchCmd() *cli.Command {
	return &cli.Command{
		Name:    "batch",
		Aliases: []string{"b"},
		Usage:   "Assess a list of applications",
		Flags: []cli.Flag{
			fileFlag(),
			explainFlag(),
			&cli.IntFlag{
				Name:  workersFlagName,
				Usage: "Concurrent assessments",
				Value: workersDefault,
			},
		},
		Action: cmdBatch,
	}
}

func newModelCmd() *cli.Command {
	return &cli.Command{
		Name:   "model",
		Usage:  "Print the scoring model and policy thresholds",
		Action: cmdModel,
	}
}

func cmdScore(_ context.Context, cmd *cli.Command) error {
	b, err := readInput(cmd.String(fileFlagName))
	if err != nil {
		return err
	}

	// YAML is a superset of JSON, so one decoder serves both.
	var raw valueobject.RawApplication
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parsing application: %w", err)
	}

	a := service.NewCreditEngine().Assess(raw)
	return printOutput(cmd, usecase.ToAssessmentResponse(a, cmd.Bool(explainFlagName)))
}

func cmdBatch(ctx context.Context, cmd *cli.Command) error {
	b, err := readInput(cmd.String(fileFlagName))
	if err != nil {
		return err
	}

	apps, err := parseBatch(b)
	if err != nil {
		return err
	}

	uc := usecase.NewScoreBatchUseCase(service.NewCreditEngine(), cmd.Int(workersFlagName), nil, slog.Default())
	resp, err := uc.Execute(ctx, dto.ScoreBatchRequest{
		Applications: apps,
		Explain:      cmd.Bool(explainFlagName),
	})
	if err != nil {
		return fmt.Errorf("scoring batch: %w", err)
	}
	return printOutput(cmd, resp)
}

// parseBatch accepts either a bare list of applications or a document with
// an "applications" list.
func parseBatch(b []byte) ([]valueobject.RawApplication, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parsing batch: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		var wrapped struct {
			Applications []valueobject.RawApplication `yaml:"applications"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("parsing batch: %w", err)
		}
		return wrapped.Applications, nil
	}

	var apps []valueobject.RawApplication
	if err := root.Decode(&apps); err != nil {
		return nil, fmt.Errorf("parsing batch: %w", err)
	}
	return apps, nil
}

func cmdModel(_ context.Context, cmd *cli.Command) error {
	info := usecase.NewDescribeModelUseCase(service.DefaultLogisticModel()).Execute()
	return printOutput(cmd, info)
}
