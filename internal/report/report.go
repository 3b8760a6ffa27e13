package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Shreyas-077/Diligent-Assessment/internal/queries"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// PrintResult renders one query result as an aligned console table with a
// colored title and header line.
func PrintResult(w io.Writer, res *queries.Result) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "📊 %s\n", res.Title)
	fmt.Fprintln(w, strings.Repeat("-", 70))

	if len(res.Rows) == 0 {
		color.New(color.FgYellow).Fprintln(w, "(no rows)")
		fmt.Fprintln(w)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		fmt.Fprintln(tw, strings.Join(stringify(res, row), "\t"))
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// WriteCSV writes one query result as CSV with a header row.
func WriteCSV(w io.Writer, res *queries.Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(res.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range res.Rows {
		if err := writer.Write(stringify(res, row)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the results as indented JSON.
func WriteJSON(w io.Writer, results []*queries.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// WriteYAML writes the results as a YAML document.
func WriteYAML(w io.Writer, results []*queries.Result) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(results)
}

// Currency formats a monetary value for display.
func Currency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// TableRows returns the result rows as display strings in column order,
// shared between the console report and the dashboard tables.
func TableRows(res *queries.Result) [][]string {
	rows := make([][]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, stringify(res, row))
	}
	return rows
}

func stringify(res *queries.Result, row map[string]interface{}) []string {
	values := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		values[i] = formatCell(col, row[col])
	}
	return values
}

func formatCell(column string, val interface{}) string {
	if val == nil {
		return ""
	}
	if f, ok := val.(float64); ok {
		if strings.HasPrefix(column, "total_spent") || strings.HasPrefix(column, "total_revenue") {
			return Currency(f)
		}
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprintf("%v", val)
}
