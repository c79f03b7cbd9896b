// package reconcile resolves extracted track references against a catalog.
//
// Fan-out is bounded and order preserving: result i always corresponds to
// reference i, whatever order the searches complete in. A failed or empty
// search marks its reference not found; it never aborts the batch.
package reconcile

import (
	"context"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mdeloughry/portify/internal/models"
	"github.com/mdeloughry/portify/internal/shared"
)

// DefaultConcurrency bounds simultaneous catalog searches.
const DefaultConcurrency = 10

// SearchFunc resolves one query to its best catalog match. A nil track with
// a nil error means the catalog had no results.
type SearchFunc func(ctx context.Context, query string) (*models.Track, error)

// Reconciler runs reference batches through a SearchFunc.
type Reconciler struct {
	concurrency int
	logger      *log.Logger
	similarity  *metrics.JaroWinkler
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithConcurrency overrides the search fan-out bound.
func WithConcurrency(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New creates a Reconciler.
func New(logger *log.Logger, opts ...Option) *Reconciler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	r := &Reconciler{
		concurrency: DefaultConcurrency,
		logger:      logger,
		similarity:  metrics.NewJaroWinkler(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Tracks resolves every reference through search, in parallel up to the
// configured bound. The top search hit is accepted as the match; the
// similarity score is informational and never rejects a hit. Results are
// index-aligned with refs and every reference ends up either found or
// not found.
func (r *Reconciler) Tracks(ctx context.Context, refs []models.TrackRef, search SearchFunc) []models.MatchResult {
	results := make([]models.MatchResult, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, ref := range refs {
		results[i] = models.MatchResult{Ref: ref, Status: models.StatusNotFound}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return nil
			}

			query := ref.Query()
			if strings.TrimSpace(query) == "" {
				return nil
			}

			track, err := search(ctx, query)
			if err != nil {
				r.logger.Debug("catalog search failed", "query", query, "err", err)
				return nil
			}
			if track == nil {
				return nil
			}

			results[i] = models.MatchResult{
				Ref:        ref,
				Track:      track,
				Status:     models.StatusFound,
				Confidence: r.Confidence(ref, track),
			}
			return nil
		})
	}

	g.Wait()

	return results
}

// Confidence scores how closely a catalog track matches the reference it
// was found for, in [0, 1].
func (r *Reconciler) Confidence(ref models.TrackRef, track *models.Track) float64 {
	want := strings.ToLower(strings.TrimSpace(ref.Query()))
	got := strings.ToLower(strings.TrimSpace(track.Title + " " + track.Artist))
	if want == "" || got == "" {
		return 0
	}

	return strutil.Similarity(want, got, r.similarity)
}
