package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sinclairtarget/git-contrib/internal/tally"
)

func WriteCSV(w io.Writer, r tally.Report, opts Opts) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header(opts)); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, row := range rows(r) {
		if err := cw.Write(toRecord(row, opts)); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}

	return nil
}
