package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mdeloughry/portify/internal/formatter"
	"github.com/mdeloughry/portify/internal/shared"
)

// Import runs one input through the import pipeline and prints the result.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	input := cmd.StringArg("input")
	if path := cmd.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read track list: %w", err)
		}
		input = string(data)
	}

	if input == "" {
		return fmt.Errorf("%w: pass a URL, a text list, or --file", shared.ErrEmptyInput)
	}

	result, err := r.engine.Import(ctx, input)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	if err := r.writePlain("%s", formatter.RenderSummary(result)); err != nil {
		return err
	}

	if format := cmd.String("export"); format != "" {
		path, err := formatter.WriteExport(result, format, cmd.String("output"))
		if err != nil {
			return err
		}
		return r.writePlain("Exported to %s\n", path)
	}

	return nil
}

// Search runs a plain catalog search through the same dispatch chain.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireEngine(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: pass a search query", shared.ErrEmptyInput)
	}

	result, err := r.engine.Import(ctx, query)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", formatter.RenderSummary(result))
}
