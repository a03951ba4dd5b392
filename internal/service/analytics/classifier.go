package analytics

import (
	"time"

	"github.com/venuedesk/finance-backend-go/internal/domain/analytics"
	"github.com/venuedesk/finance-backend-go/internal/domain/refdata"
	"github.com/venuedesk/finance-backend-go/internal/domain/transaction"
	"github.com/venuedesk/finance-backend-go/internal/pkg/timebucket"
)

// window is the outcome of classifying a row against the current and
// previous date ranges.
type window int

const (
	windowNone window = iota
	windowCurrent
	windowPrevious
)

// classifier decides, per row, whether it belongs to the current
// window, the previous one, or neither, after applying company and
// operator filters, the extra-venue exclusion, and reference-data
// resolution. Rows it drops are dropped silently: range misses and
// unresolvable references are data conditions, not errors.
type classifier struct {
	curFrom, curTo   time.Time
	prevFrom, prevTo time.Time

	refs           *refdata.Set
	companyFilter  *string
	operatorFilter *string
	// extraCompanyID is the id of the venue excluded from all-company
	// totals; empty when the exclusion is off or no venue carries the
	// extra code.
	extraCompanyID string
}

func newClassifier(p analytics.Params, refs *refdata.Set, extraVenueCode string) *classifier {
	from, to := timebucket.NormalizeRange(p.From, p.To)
	prevFrom, prevTo := timebucket.PreviousPeriod(from, to)

	c := &classifier{
		curFrom:        from,
		curTo:          to,
		prevFrom:       prevFrom,
		prevTo:         prevTo,
		refs:           refs,
		companyFilter:  p.CompanyID,
		operatorFilter: p.OperatorID,
	}

	// The exclusion only applies when looking at all companies; an
	// explicit company filter always wins, so selecting the extra
	// venue directly still works.
	if p.CompanyID == nil && !p.IncludeExtraVenue {
		if extra, ok := refs.CompanyByCode(extraVenueCode); ok {
			c.extraCompanyID = extra.ID
		}
	}
	return c
}

func (c *classifier) classify(r transaction.Record) window {
	if _, ok := c.refs.CompanyByID(r.CompanyID); !ok {
		return windowNone
	}
	if r.OperatorID != nil {
		if _, ok := c.refs.OperatorByID(*r.OperatorID); !ok {
			return windowNone
		}
	}

	if c.extraCompanyID != "" && r.CompanyID == c.extraCompanyID {
		return windowNone
	}
	if c.companyFilter != nil && r.CompanyID != *c.companyFilter {
		return windowNone
	}
	if c.operatorFilter != nil && (r.OperatorID == nil || *r.OperatorID != *c.operatorFilter) {
		return windowNone
	}

	d := timebucket.DateOnly(r.Date)
	switch {
	case !d.Before(c.curFrom) && !d.After(c.curTo):
		return windowCurrent
	case !d.Before(c.prevFrom) && !d.After(c.prevTo):
		return windowPrevious
	}
	return windowNone
}
