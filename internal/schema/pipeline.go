package schema

import "blogd/internal/models"

// Pipeline pairs the two stages every record passes through. Callers run
// Normalize and then Check themselves so a failure is always attributable to
// the rule table, never to sanitization.
type Pipeline[T any] struct {
	Normalize func(T) T
	Check     func(T) *ValidationErrors
}

var (
	Posts     = Pipeline[models.Post]{Normalize: NormalizePost, Check: CheckPost}
	Comments  = Pipeline[models.Comment]{Normalize: NormalizeComment, Check: CheckComment}
	Settings  = Pipeline[models.SiteSettings]{Normalize: NormalizeSettings, Check: CheckSettings}
	Analytics = Pipeline[models.Analytics]{Normalize: NormalizeAnalytics, Check: CheckAnalytics}
)

// CheckAll normalizes and checks every record, collecting issues under
// collection[i] paths. The normalized records are returned only when all pass.
func CheckAll[T any](p Pipeline[T], collection string, records []T) ([]T, *ValidationErrors) {
	out := make([]T, 0, len(records))
	errs := &ValidationErrors{}
	for i, rec := range records {
		n := p.Normalize(rec)
		errs.Merge(IndexPath(collection, i), p.Check(n))
		out = append(out, n)
	}
	if !errs.Empty() {
		return nil, errs
	}
	return out, nil
}
