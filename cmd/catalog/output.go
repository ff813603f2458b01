package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/debug"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/types"
	"github.com/Silvia-Panaite/Finalproject-Catalog/internal/ui"
)

const (
	formatTable    = "table"
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatMarkdown = "markdown"
)

// outputJSON writes v as pretty-printed JSON.
func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func outputYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func writeRecords(w io.Writer, format string, recs []types.Record) error {
	if recs == nil {
		recs = []types.Record{}
	}
	switch format {
	case formatJSON:
		return outputJSON(w, recs)
	case formatYAML:
		return outputYAML(w, recs)
	case formatMarkdown:
		_, err := fmt.Fprint(w, ui.RenderMarkdown(ui.RecordsMarkdown(recs)))
		return err
	case formatTable, "":
		if len(recs) == 0 {
			debug.PrintlnNormal(ui.RenderMuted("No subjects yet."))
			return nil
		}
		_, err := fmt.Fprintln(w, ui.RecordsTable(recs))
		return err
	default:
		return fmt.Errorf("%w: unknown format %q (want table, json, yaml or markdown)", types.ErrValidation, format)
	}
}

// printMessage prints a confirmation unless --quiet is set.
func printMessage(msg string) {
	debug.PrintNormal("%s %s\n", ui.RenderPass(ui.IconPass), msg)
}
