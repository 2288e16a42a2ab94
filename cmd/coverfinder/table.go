package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"coverfinder/internal/coverart"
)

// renderResults lists catalog matches before storefront matches, numbered
// across both groups.
func renderResults(results coverart.Results) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Source", "Key", "Name", "Cover URL"})

	n := 0
	for _, group := range [][]coverart.CoverResult{results.Catalog, results.Storefront} {
		for _, result := range group {
			n++
			tw.AppendRow(table.Row{strconv.Itoa(n), string(result.Source), result.Key, result.Name, result.SaveURL})
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Name: "Cover URL", WidthMax: 96},
	})
	return tw.Render()
}
