// Package report derives tabular reports from contribution data. Reports
// are computed on demand from the live dataset; nothing here is cached or
// persisted, and every generator is a pure function over the data it is
// handed.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
)

// Type selects which report to generate.
type Type string

const (
	// TypeMemberStatement lists one member's contributions across the
	// selected period, month by month.
	TypeMemberStatement Type = "member-statement"
	// TypePeriodSummary lists every contribution in the selected period.
	TypePeriodSummary Type = "period-summary"
	// TypePaymentStatus lists who has and has not paid in the selected
	// period.
	TypePaymentStatus Type = "payment-status"
)

var (
	ErrUnknownType   = errors.New("unknown report type")
	ErrMemberMissing = errors.New("member statement requires a member")
	ErrNoData        = errors.New("no data matches the report filters")
)

// Request bounds a report. Year and Month are optional; empty means all
// years or all months. Member is required for the member statement and
// ignored otherwise.
type Request struct {
	Type   Type
	Year   string
	Month  string
	Member string
}

// Row is one line of a generated report.
type Row struct {
	Year   string
	Month  string
	Member string
	Amount int64
	Paid   bool
}

// Report is a generated report ready for display or export.
type Report struct {
	Type        Type
	Title       string
	GeneratedAt time.Time
	Rows        []Row
	TotalPaid   int64
	TotalUnpaid int64
}

// Total returns the combined paid and unpaid amount.
func (r *Report) Total() int64 {
	return r.TotalPaid + r.TotalUnpaid
}

// Generate runs the requested report over the dataset. Iteration is
// always years ascending, months in calendar order, so output is stable
// across runs.
func Generate(data core.ContributionsData, req Request) (*Report, error) {
	if req.Month != "" {
		if _, ok := core.MonthIndex(req.Month); !ok {
			return nil, fmt.Errorf("report month %q: %w", req.Month, core.ErrUnknownMonth)
		}
	}

	var (
		rep *Report
		err error
	)
	switch req.Type {
	case TypeMemberStatement:
		rep, err = memberStatement(data, req)
	case TypePeriodSummary:
		rep, err = periodSummary(data, req)
	case TypePaymentStatus:
		rep, err = paymentStatus(data, req)
	default:
		return nil, fmt.Errorf("report type %q: %w", req.Type, ErrUnknownType)
	}
	if err != nil {
		return nil, err
	}

	rep.Type = req.Type
	rep.GeneratedAt = time.Now().UTC()
	for _, row := range rep.Rows {
		if row.Paid {
			rep.TotalPaid += row.Amount
		} else {
			rep.TotalUnpaid += row.Amount
		}
	}
	return rep, nil
}

// walk visits every record in the filtered period in chronological order.
func walk(data core.ContributionsData, req Request, visit func(year, month string, rec *core.MonthRecord)) {
	for _, year := range data.Years() {
		if req.Year != "" && year != req.Year {
			continue
		}
		yd := data[year]
		for _, month := range core.Months {
			if req.Month != "" && month != req.Month {
				continue
			}
			rec := yd[month]
			if rec == nil || len(rec.Contributions) == 0 {
				continue
			}
			visit(year, month, rec)
		}
	}
}

func memberStatement(data core.ContributionsData, req Request) (*Report, error) {
	if req.Member == "" {
		return nil, ErrMemberMissing
	}
	rep := &Report{Title: fmt.Sprintf("Contribution Statement - %s", req.Member)}
	walk(data, req, func(year, month string, rec *core.MonthRecord) {
		for _, c := range rec.Contributions {
			if c.MemberName != req.Member {
				continue
			}
			rep.Rows = append(rep.Rows, Row{
				Year: year, Month: month,
				Member: c.MemberName, Amount: c.Amount, Paid: c.Paid,
			})
		}
	})
	if len(rep.Rows) == 0 {
		return nil, fmt.Errorf("member %q: %w", req.Member, ErrNoData)
	}
	return rep, nil
}

func periodSummary(data core.ContributionsData, req Request) (*Report, error) {
	rep := &Report{Title: periodTitle("Period Summary", req)}
	walk(data, req, func(year, month string, rec *core.MonthRecord) {
		for _, c := range rec.Contributions {
			rep.Rows = append(rep.Rows, Row{
				Year: year, Month: month,
				Member: c.MemberName, Amount: c.Amount, Paid: c.Paid,
			})
		}
	})
	if len(rep.Rows) == 0 {
		return nil, ErrNoData
	}
	return rep, nil
}

// paymentStatus orders unpaid entries first so outstanding obligations
// lead the report.
func paymentStatus(data core.ContributionsData, req Request) (*Report, error) {
	rep := &Report{Title: periodTitle("Payment Status", req)}
	var paid []Row
	walk(data, req, func(year, month string, rec *core.MonthRecord) {
		for _, c := range rec.Contributions {
			row := Row{
				Year: year, Month: month,
				Member: c.MemberName, Amount: c.Amount, Paid: c.Paid,
			}
			if c.Paid {
				paid = append(paid, row)
			} else {
				rep.Rows = append(rep.Rows, row)
			}
		}
	})
	rep.Rows = append(rep.Rows, paid...)
	if len(rep.Rows) == 0 {
		return nil, ErrNoData
	}
	return rep, nil
}

func periodTitle(base string, req Request) string {
	switch {
	case req.Year != "" && req.Month != "":
		return fmt.Sprintf("%s - %s %s", base, req.Month, req.Year)
	case req.Year != "":
		return fmt.Sprintf("%s - %s", base, req.Year)
	case req.Month != "":
		return fmt.Sprintf("%s - %s (all years)", base, req.Month)
	default:
		return fmt.Sprintf("%s - all periods", base)
	}
}
