package core

// MonthTotals is the paid/unpaid split for a single month.
type MonthTotals struct {
	Paid   int64
	Unpaid int64
}

// Total returns the combined paid and unpaid amount.
func (t MonthTotals) Total() int64 {
	return t.Paid + t.Unpaid
}

// MonthRow is one calendar month's line in the yearly view.
type MonthRow struct {
	Month  string
	Paid   int64
	Unpaid int64
	Total  int64
}

// YearTotals aggregates a full year in fixed calendar order. Rows always
// has 12 entries; absent months contribute zeros.
type YearTotals struct {
	Rows   []MonthRow
	Paid   int64
	Unpaid int64
	Grand  int64
}

// CalculateMonthTotals recomputes paid and unpaid sums for (year, month)
// from the contribution list. A missing year or month yields zero totals,
// not an error. The cached MonthRecord.Total is never consulted.
func CalculateMonthTotals(data ContributionsData, year, month string) MonthTotals {
	var t MonthTotals
	rec := data.MonthRecordAt(year, month)
	if rec == nil {
		return t
	}
	for _, c := range rec.Contributions {
		if c.Paid {
			t.Paid += c.Amount
		} else {
			t.Unpaid += c.Amount
		}
	}
	return t
}

// CalculateYearTotals sums paid/unpaid per calendar month and across the
// year. A sparse year still produces 12 rows.
func CalculateYearTotals(data ContributionsData, year string) YearTotals {
	totals := YearTotals{Rows: make([]MonthRow, 0, len(Months))}
	for _, month := range Months {
		mt := CalculateMonthTotals(data, year, month)
		totals.Rows = append(totals.Rows, MonthRow{
			Month:  month,
			Paid:   mt.Paid,
			Unpaid: mt.Unpaid,
			Total:  mt.Total(),
		})
		totals.Paid += mt.Paid
		totals.Unpaid += mt.Unpaid
	}
	totals.Grand = totals.Paid + totals.Unpaid
	return totals
}

// BudgetTotal sums every expense line across all budget categories.
func BudgetTotal(b BudgetData) int64 {
	var sum int64
	for _, lines := range b.Expenses {
		for _, e := range lines {
			sum += e.Amount
		}
	}
	return sum
}

// CampaignProgress returns collected/target as a percentage clamped to
// [0, 100]. A zero target reports 0.
func CampaignProgress(c *Campaign) int {
	if c == nil || c.Target <= 0 {
		return 0
	}
	pct := int(c.Collected * 100 / c.Target)
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
