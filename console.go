package timetree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// WriteReport writes r to w in the given format.
func WriteReport(w io.Writer, r Report, format string, color bool) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, r.String())
		return err

	case FormatJSON:
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(w, "%s\n", out)
		return err

	case FormatYAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return err
		}

		_, err = w.Write(out)
		return err

	case FormatTable:
		RenderTable(w, r, color)
		return nil
	}

	return errors.Errorf("unsupported report format %q", format)
}

// RenderTable prints one row per region with its seconds and its share of
// the parent and of the total time. Shares of the parent at or above 50% are
// highlighted when color is set.
func RenderTable(w io.Writer, r Report, color bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Region", "Seconds", "Of Parent", "Of Total"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	r.Walk(func(path []string, node, parent Report) {
		label := "(total)"
		if len(path) > 0 {
			label = strings.Repeat("  ", len(path)-1) + path[len(path)-1]
		}

		ofParent := fmt.Sprintf("%.1f%%", percent(node.Sum, parent.Sum))
		if color {
			ofParent = shareColors(percent(node.Sum, parent.Sum)).Sprint(ofParent)
		}

		t.AppendRow(table.Row{
			label,
			fmt.Sprintf("%.6f", node.Sum),
			ofParent,
			fmt.Sprintf("%.1f%%", percent(node.Sum, r.Sum)),
		})
	})

	t.AppendFooter(table.Row{"", "", "Regions", countRegions(r)})
	t.Render()
}

func shareColors(share float64) text.Colors {
	switch {
	case share >= 50:
		return text.Colors{text.FgHiRed}
	case share >= 20:
		return text.Colors{text.FgYellow}
	}

	return text.Colors{text.FgGreen}
}

// countRegions counts the regions of r, not counting the root.
func countRegions(r Report) int {
	n := 0
	r.Walk(func(path []string, node, parent Report) {
		if len(path) > 0 {
			n++
		}
	})
	return n
}
