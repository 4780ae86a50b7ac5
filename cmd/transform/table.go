package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/campusreuse/restore/internal/pkg/csvformat"
)

func renderRecordsTable(records []csvformat.DonorRecord) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Row", "Name", "Email", "Housing", "Grad Year"})
	for _, rec := range records {
		tw.AppendRow(table.Row{rec.Row, rec.Name, rec.Email, rec.Housing, rec.GradYear})
	}
	return tw.Render()
}

func renderSummaryTable(ext csvformat.Extraction) string {
	invalid := ""
	for i, row := range ext.InvalidRows {
		if i > 0 {
			invalid += ", "
		}
		invalid += strconv.Itoa(row)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendRow(table.Row{"Detected format", string(ext.Format)})
	tw.AppendRow(table.Row{"Data rows", ext.DataRows})
	tw.AppendRow(table.Row{"Donor records", len(ext.Records)})
	tw.AppendRow(table.Row{"Duplicate emails collapsed", ext.Duplicates})
	tw.AppendRow(table.Row{"Invalid rows", invalid})
	return tw.Render()
}
