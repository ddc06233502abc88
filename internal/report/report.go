// Writes finished tallies out to files and to the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sinclairtarget/git-contrib/internal/format"
	"github.com/sinclairtarget/git-contrib/internal/tally"
)

const (
	ReportPrefix    = "contrib-report"
	DirectoryPrefix = "contrib-users"
)

const timestampLayout = "20060102-150405"

type Format int

const (
	CSV Format = iota
	XLSX
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case XLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// File extension, without the dot.
func (f Format) Ext() string {
	return f.String()
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return CSV, nil
	case "xlsx", "excel":
		return XLSX, nil
	default:
		return CSV, fmt.Errorf("unrecognized report format: \"%s\"", s)
	}
}

type Opts struct {
	ShowCommitted bool
}

// e.g. contrib-report-20240131-094500.csv
func Filename(prefix string, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format(timestampLayout), ext)
}

func Header(opts Opts) []string {
	header := []string{
		"Email",
		"Commits",
		"Insertions",
		"Deletions",
		"Average Files Changed",
	}

	if opts.ShowCommitted {
		header = append(header, "Committed Not Authored")
	}

	return header
}

// Every identity row in order, then the TOTAL row.
func rows(r tally.Report) []tally.Row {
	return append(r.Rows(), r.Total())
}

func toRecord(row tally.Row, opts Opts) []string {
	record := []string{
		row.Identity,
		strconv.Itoa(row.Stats.Commits),
		strconv.Itoa(row.Stats.Insertions),
		strconv.Itoa(row.Stats.Deletions),
		format.Float(row.Stats.AverageFilesChanged),
	}

	if opts.ShowCommitted {
		record = append(record, strconv.Itoa(row.Committed))
	}

	return record
}

// Writes the report into dir using a timestamped filename. Returns the path
// written.
func Save(
	dir string,
	f Format,
	r tally.Report,
	opts Opts,
	now time.Time,
) (_ string, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error writing report: %w", err)
		}
	}()

	var write func(io.Writer) error
	switch f {
	case CSV:
		write = func(w io.Writer) error { return WriteCSV(w, r, opts) }
	case XLSX:
		write = func(w io.Writer) error { return WriteXLSX(w, r, opts) }
	default:
		return "", fmt.Errorf("unrecognized report format: %d", f)
	}

	p, err := writeNewFile(dir, ReportPrefix, f.Ext(), now, write)
	if err != nil {
		return "", err
	}

	logger().Debug("wrote report", "path", p, "format", f.String())
	return p, nil
}
