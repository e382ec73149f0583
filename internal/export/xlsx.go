package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/siddheshmm/leadgen-cli/internal/model"
)

// ExportXLSX writes ranked leads as an XLSX workbook with a single "Leads"
// sheet carrying the same columns as the CSV export.
func ExportXLSX(leads []model.RankedLead, outputPath string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range leadColumns {
		header.AddCell().Value = col
	}

	for _, l := range leads {
		row := sheet.AddRow()
		row.AddCell().SetInt(l.Rank)
		row.AddCell().SetInt(l.Score)
		for _, v := range buildLeadRow(l)[2:] {
			row.AddCell().Value = v
		}
	}

	return eris.Wrap(f.Save(outputPath), "export: save workbook")
}
