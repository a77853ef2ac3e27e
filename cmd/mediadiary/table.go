package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column. maxWidth 0 leaves the column unbounded.
type column struct {
	header   string
	align    text.Align
	maxWidth int
}

func leftColumn(header string) column { return column{header: header, align: text.AlignLeft} }

func numberColumn(header string) column { return column{header: header, align: text.AlignRight} }

func titleColumn(header string) column {
	return column{header: header, align: text.AlignLeft, maxWidth: 48}
}

// renderTable draws rows in the rounded style. Short rows are padded with
// blanks and a non-nil footer is rendered under a separator.
func renderTable(columns []column, rows [][]string, footer []string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(columns, func(i int) string { return columns[i].header }))
	for _, row := range rows {
		tw.AppendRow(toRow(columns, cellAt(row)))
	}
	if footer != nil {
		tw.AppendFooter(toRow(columns, cellAt(footer)))
		tw.Style().Format.Footer = text.FormatDefault
	}

	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		configs[i] = table.ColumnConfig{
			Number:           i + 1,
			Align:            c.align,
			AlignHeader:      text.AlignLeft,
			AlignFooter:      c.align,
			WidthMax:         c.maxWidth,
			WidthMaxEnforcer: text.WrapSoft,
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func toRow(columns []column, cell func(int) string) table.Row {
	row := make(table.Row, len(columns))
	for i := range columns {
		row[i] = cell(i)
	}
	return row
}

func cellAt(values []string) func(int) string {
	return func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
}
