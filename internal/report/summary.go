package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sinclairtarget/git-contrib/internal/format"
	"github.com/sinclairtarget/git-contrib/internal/pretty"
	"github.com/sinclairtarget/git-contrib/internal/tally"
)

const summaryWidth = 80

// Prints a boxed table of the report, one line per identity plus the total.
func WriteSummary(w io.Writer, r tally.Report, opts Opts) {
	var build strings.Builder
	for range summaryWidth - 2 {
		build.WriteRune('─')
	}
	rule := build.String()

	// Email column takes whatever the numeric columns leave over
	emailWidth := summaryWidth - 2 - (1 + 7) - (1 + 20) - (1 + 9)
	if opts.ShowCommitted {
		emailWidth -= 10
	}

	writeLine := func(email, commits, lines, avg, committed string) {
		fmt.Fprintf(
			w,
			"│%-*s %7s %20s %9s",
			emailWidth,
			format.Abbrev(email, emailWidth),
			commits,
			lines,
			avg,
		)
		if opts.ShowCommitted {
			fmt.Fprintf(w, " %9s", committed)
		}
		fmt.Fprintln(w, "│")
	}

	// -- Write header --
	fmt.Fprintf(w, "┌%s┐\n", rule)
	writeLine("Email", "Commits", "Lines (+/-)", "Avg Files", "Committed")
	fmt.Fprintf(w, "├%s┤\n", rule)

	// -- Write table rows --
	writeRow := func(row tally.Row, total bool) {
		// Pad before coloring so escape codes do not count toward width
		added := fmt.Sprintf("%9s", format.Number(row.Stats.Insertions))
		removed := fmt.Sprintf("%-8s", format.Number(row.Stats.Deletions))
		lines := fmt.Sprintf(
			"%s / %s",
			pretty.Paint(pretty.Green, added),
			pretty.Paint(pretty.Red, removed),
		)

		identity := fmt.Sprintf(
			"%-*s",
			emailWidth,
			format.Abbrev(row.Identity, emailWidth),
		)
		if total {
			identity = pretty.Paint(pretty.Bold, identity)
		} else if row.Stats.Commits == 0 {
			identity = pretty.Paint(pretty.Dim, identity)
		}

		fmt.Fprintf(
			w,
			"│%s %7s %s %9s",
			identity,
			format.Number(row.Stats.Commits),
			lines,
			format.Float(row.Stats.AverageFilesChanged),
		)
		if opts.ShowCommitted {
			fmt.Fprintf(w, " %9s", format.Number(row.Committed))
		}
		fmt.Fprintln(w, "│")
	}

	for _, row := range r.Rows() {
		writeRow(row, false)
	}

	fmt.Fprintf(w, "├%s┤\n", rule)
	writeRow(r.Total(), true)
	fmt.Fprintf(w, "└%s┘\n", rule)
}
