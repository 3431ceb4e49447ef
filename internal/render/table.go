package render

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Data represents data formatted for table output.
type Data struct {
	Headers []string
	Rows    [][]string
}

// Table writes data as an aligned text table.
func Table(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	config.Header.Alignment = tw.CellAlignment{Global: tw.AlignLeft}
	config.Row.Alignment = tw.CellAlignment{Global: tw.AlignLeft}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}
