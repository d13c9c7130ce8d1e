package ranking

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dharmasatrya/tripranker/internal/models"
)

// BaselineScore is the score every candidate starts from. Soft rules only
// ever add to it.
const BaselineScore = 50

// ConstraintEvaluator returns the hard-preference violations of one
// candidate in rule order. An empty result means the candidate is in
// preference.
type ConstraintEvaluator[C any] interface {
	Violations(c C) []string
}

// ScoringModel returns the soft-preference score of one candidate, starting
// at BaselineScore, and the positive match reasons in rule order.
type ScoringModel[C any] interface {
	Score(c C) (int, []string)
}

// Strategy is the per-domain capability set the generic ranker needs.
type Strategy[C any] interface {
	ConstraintEvaluator[C]
	ScoringModel[C]

	// Validate rejects candidates the rules cannot evaluate.
	Validate(c C) error
	// Price is the out-of-preference sort key.
	Price(c C) float64
	// ID names the candidate in errors.
	ID(c C) string
}

type Result[C any] struct {
	InPreference    []models.ScoredCandidate[C]
	OutOfPreference []models.ScoredCandidate[C]
}

type CandidateError struct {
	Index int
	ID    string
	Err   error
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("candidate %d (%s): %s", e.Index, e.ID, e.Err.Error())
}

func (e *CandidateError) Unwrap() error {
	return e.Err
}

type Options struct {
	// Workers bounds the number of candidates evaluated concurrently.
	// Zero or negative means GOMAXPROCS.
	Workers int
}

type Option func(*Options)

func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// Evaluate runs both evaluators against one candidate.
func Evaluate[C any](c C, strategy Strategy[C]) models.ScoredCandidate[C] {
	violations := strategy.Violations(c)
	score, reasons := strategy.Score(c)

	return models.ScoredCandidate[C]{
		Candidate:              c,
		Score:                  score,
		MatchReasons:           nonNil(reasons),
		OutOfPreference:        len(violations) > 0,
		OutOfPreferenceReasons: nonNil(violations),
	}
}

// Rank evaluates every candidate in parallel, splits them into the two
// buckets and orders each bucket: in-preference by score descending,
// out-of-preference by price ascending. Both orders are stable with respect
// to the input order. An invalid candidate fails the whole call; when
// several are invalid the lowest index is reported.
func Rank[C any](candidates []C, strategy Strategy[C], opts ...Option) (Result[C], error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}

	scored := make([]models.ScoredCandidate[C], len(candidates))
	errs := make([]error, len(candidates))

	var g errgroup.Group
	g.SetLimit(o.Workers)

	for i := range candidates {
		g.Go(func() error {
			c := candidates[i]
			if err := strategy.Validate(c); err != nil {
				errs[i] = &CandidateError{Index: i, ID: strategy.ID(c), Err: err}
				return nil
			}
			scored[i] = Evaluate(c, strategy)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return Result[C]{}, err
		}
	}

	result := Result[C]{
		InPreference:    make([]models.ScoredCandidate[C], 0, len(scored)),
		OutOfPreference: make([]models.ScoredCandidate[C], 0),
	}
	for _, sc := range scored {
		if sc.OutOfPreference {
			result.OutOfPreference = append(result.OutOfPreference, sc)
		} else {
			result.InPreference = append(result.InPreference, sc)
		}
	}

	sortInPreference(result.InPreference)
	sortOutOfPreference(result.OutOfPreference, strategy.Price)

	return result, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
