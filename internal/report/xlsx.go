package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sinclairtarget/git-contrib/internal/tally"
)

const SheetName = "Contributions"

// Built-in number format "0.00".
const twoDecimalsFmt = 2

func WriteXLSX(w io.Writer, r tally.Report, opts Opts) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error writing XLSX: %w", err)
		}
	}()

	f := excelize.NewFile()
	defer f.Close()

	err = f.SetSheetName(f.GetSheetName(0), SheetName)
	if err != nil {
		return err
	}

	header := Header(opts)
	err = f.SetSheetRow(SheetName, "A1", &header)
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}

	err = f.SetCellStyle(SheetName, "A1", lastCol+"1", bold)
	if err != nil {
		return err
	}

	avg, err := f.NewStyle(&excelize.Style{NumFmt: twoDecimalsFmt})
	if err != nil {
		return err
	}

	allRows := rows(r)
	for i, row := range allRows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := []any{
			row.Identity,
			row.Stats.Commits,
			row.Stats.Insertions,
			row.Stats.Deletions,
			row.Stats.AverageFilesChanged,
		}
		if opts.ShowCommitted {
			values = append(values, row.Committed)
		}

		err = f.SetSheetRow(SheetName, cell, &values)
		if err != nil {
			return err
		}
	}

	lastRow := len(allRows) + 1
	err = f.SetCellStyle(SheetName, "E2", fmt.Sprintf("E%d", lastRow), avg)
	if err != nil {
		return err
	}

	err = f.SetCellStyle(
		SheetName,
		fmt.Sprintf("A%d", lastRow),
		fmt.Sprintf("%s%d", lastCol, lastRow),
		bold,
	)
	if err != nil {
		return err
	}

	totalAvg, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: twoDecimalsFmt,
	})
	if err != nil {
		return err
	}

	totalAvgCell := fmt.Sprintf("E%d", lastRow)
	err = f.SetCellStyle(SheetName, totalAvgCell, totalAvgCell, totalAvg)
	if err != nil {
		return err
	}

	err = f.SetColWidth(SheetName, "A", "A", 32)
	if err != nil {
		return err
	}

	err = f.SetColWidth(SheetName, "B", lastCol, 14)
	if err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
