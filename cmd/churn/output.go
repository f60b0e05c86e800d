package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aquilax/truncate"
	"github.com/dustin/go-humanize"
	"github.com/gertd/go-pluralize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

const maxPathWidth = 80

type outputFlags struct {
	Format string `short:"f" default:"table" enum:"table,yaml" help:"Output format (${enum})."`
	Limit  int    `short:"n" help:"Show only the top N files."`
}

type row struct {
	path   string
	sort   float64
	values []any
}

type report struct {
	title   string
	columns []string
	rows    []row
}

func (r *report) add(path string, sort float64, values ...any) {
	r.rows = append(r.rows, row{path: path, sort: sort, values: values})
}

// sorted returns the rows with the biggest values first.
func (r *report) sorted(limit int) []row {
	rows := append([]row{}, r.rows...)

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].sort != rows[j].sort {
			return rows[i].sort > rows[j].sort
		}
		return rows[i].path < rows[j].path
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	return rows
}

func (o *outputFlags) print(r *report) error {
	return o.write(os.Stdout, r)
}

func (o *outputFlags) write(out io.Writer, r *report) error {
	rows := r.sorted(o.Limit)

	switch o.Format {
	case "yaml":
		return writeYaml(out, r, rows)
	default:
		return writeTable(out, r, rows)
	}
}

func writeTable(out io.Writer, r *report, rows []row) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	header := table.Row{"File"}
	for _, c := range r.columns {
		header = append(header, c)
	}
	tbl.AppendHeader(header)

	var configs []table.ColumnConfig
	for i := range r.columns {
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	tbl.SetColumnConfigs(configs)

	for _, rw := range rows {
		line := table.Row{truncate.Truncate(rw.path, maxPathWidth, "...", truncate.PositionStart)}
		for _, v := range rw.values {
			line = append(line, formatValue(v))
		}
		tbl.AppendRow(line)
	}

	pc := pluralize.NewClient()
	tbl.AppendFooter(table.Row{pc.Pluralize("file", len(r.rows), true)})

	if r.title != "" {
		tbl.SetTitle(r.title)
	}

	tbl.Render()
	return nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case int:
		return humanize.Comma(int64(v))
	case float64:
		return humanize.FormatFloat("#,###.##", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func writeYaml(out io.Writer, r *report, rows []row) error {
	doc := yaml.Node{Kind: yaml.MappingNode}

	for _, rw := range rows {
		var value yaml.Node

		if len(r.columns) == 1 {
			err := value.Encode(rw.values[0])
			if err != nil {
				return err
			}
		} else {
			m := map[string]any{}
			for i, c := range r.columns {
				m[c] = rw.values[i]
			}

			err := value.Encode(m)
			if err != nil {
				return err
			}
		}

		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: rw.path}, &value)
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)

	err := encoder.Encode(&doc)
	if err != nil {
		return err
	}

	return encoder.Close()
}
