package dataset

import (
	"fmt"
	"time"

	"shopmetrics/pkg/contracts/domain"
)

// WindowOptions selects a slice of the record set by purchase timestamp.
// When Year is set, year/month filtering takes precedence over Start/End;
// Month is ignored without Year. Start and End are both inclusive.
type WindowOptions struct {
	Start time.Time
	End   time.Time
	Year  int
	Month int
}

// IsZero reports whether no filtering is requested.
func (w WindowOptions) IsZero() bool {
	return w.Year == 0 && w.Start.IsZero() && w.End.IsZero()
}

// String renders the window for cache keys and log lines.
func (w WindowOptions) String() string {
	if w.Year != 0 {
		if w.Month != 0 {
			return fmt.Sprintf("%04d-%02d", w.Year, w.Month)
		}
		return fmt.Sprintf("%04d", w.Year)
	}
	if w.IsZero() {
		return "all"
	}
	return fmt.Sprintf("%s..%s",
		w.Start.Format("2006-01-02T15:04:05"),
		w.End.Format("2006-01-02T15:04:05"))
}

// FilterByWindow returns the records whose purchase timestamp falls inside
// the window. The input is never mutated; the result is a new slice.
// Records without a purchase timestamp are excluded by any active filter.
func FilterByWindow(records []domain.OrderRecord, opts WindowOptions) []domain.OrderRecord {
	if opts.IsZero() {
		out := make([]domain.OrderRecord, len(records))
		copy(out, records)
		return out
	}

	out := make([]domain.OrderRecord, 0, len(records))
	for _, r := range records {
		if !r.HasPurchaseTimestamp() {
			continue
		}
		if inWindow(&r, opts) {
			out = append(out, r)
		}
	}
	return out
}

func inWindow(r *domain.OrderRecord, opts WindowOptions) bool {
	if opts.Year != 0 {
		if r.OrderYear != opts.Year {
			return false
		}
		return opts.Month == 0 || r.OrderMonth == opts.Month
	}

	if !opts.Start.IsZero() && r.PurchaseTimestamp.Before(opts.Start) {
		return false
	}
	if !opts.End.IsZero() && r.PurchaseTimestamp.After(opts.End) {
		return false
	}
	return true
}
