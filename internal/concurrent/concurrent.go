// Spreads the per-identity tally across CPUs.
package concurrent

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sinclairtarget/git-contrib/internal/git"
	"github.com/sinclairtarget/git-contrib/internal/tally"
)

// Identities below this count are tallied by a single worker.
const minPerWorker = 4

func getNWorkers(requested int, nIdentities int) int {
	if requested <= 0 {
		requested = runtime.GOMAXPROCS(0)
	}

	maxUseful := (nIdentities + minPerWorker - 1) / minPerWorker
	return max(1, min(requested, maxUseful))
}

// Splits items into n chunks of nearly equal size.
func chunk(items []string, n int) [][]string {
	chunks := make([][]string, 0, n)
	size := (len(items) + n - 1) / n
	for i := 0; i < len(items); i += size {
		chunks = append(chunks, items[i:min(i+size, len(items))])
	}

	return chunks
}

// Tallies every identity over the commits using up to nWorkers goroutines.
// Pass nWorkers <= 0 to use one worker per CPU.
//
// The result is the same as tally.TallyUsers(commits, identities).
func TallyUsers(
	ctx context.Context,
	commits []git.Commit,
	identities []string,
	nWorkers int,
) (_ tally.Report, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error running concurrent tally: %w", err)
		}
	}()

	start := time.Now()

	identities = slices.Compact(slices.Sorted(slices.Values(identities)))
	if len(identities) == 0 {
		return tally.NewReport(), nil
	}

	n := getNWorkers(nWorkers, len(identities))
	logger().Debug("decided to use n workers", "value", n)

	chunks := chunk(identities, n)
	partials := make([]tally.Report, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for i, identities := range chunks {
		g.Go(func() error {
			logger := logger().With("workerId", i)
			logger.Debug("worker started", "identities", len(identities))
			defer logger.Debug("worker exited")

			if err := ctx.Err(); err != nil {
				return err
			}

			partials[i] = tally.TallyUsers(commits, identities)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return tally.Report{}, err
	}

	report := tally.NewReport()
	for _, partial := range partials {
		report = report.Merge(partial)
	}

	elapsed := time.Now().Sub(start)
	logger().Debug(
		"concurrent tally finished",
		"workers",
		n,
		"duration_ms",
		elapsed.Milliseconds(),
	)

	return report, nil
}
