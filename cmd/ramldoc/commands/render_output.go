package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.yaml.in/yaml/v4"
)

// RenderSummaryTable renders rows under headers. Quiet mode drops the
// header line and separates cells with single tabs for piping.
func RenderSummaryTable(w io.Writer, headers []string, rows [][]string, quiet bool) {
	if len(rows) == 0 {
		return
	}
	if quiet {
		for _, row := range rows {
			Writef(w, "%s\n", strings.Join(row, "\t"))
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	Writef(tw, "%s\n", strings.Join(headers, "\t"))
	for _, row := range rows {
		Writef(tw, "%s\n", strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		Writef(Stderr, "write error: %v\n", err)
	}
}

// RenderSummaryStructured renders table data as a list of records keyed by
// the lower-cased headers.
func RenderSummaryStructured(w io.Writer, headers []string, rows [][]string, format string) error {
	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[strings.ToLower(h)] = row[i]
			} else {
				rec[strings.ToLower(h)] = ""
			}
		}
		records = append(records, rec)
	}
	return RenderDetail(w, records, format)
}

// RenderDetail renders a node as JSON, or as YAML for the yaml and text
// formats.
func RenderDetail(w io.Writer, node any, format string) error {
	var data []byte
	var err error
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(node, "", "  ")
	case FormatYAML, FormatText:
		data, err = yaml.Marshal(node)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(string(data), "\n")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
