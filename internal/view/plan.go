// Package view decides what the screen should show for a given application
// state. BuildPlan is a pure function from AppState to a RenderPlan; the
// plan records emptiness explicitly per view instead of inferring it from
// previously rendered output.
package view

import (
	"github.com/Musyoka2020-eng/Contriflow/internal/core"
)

// EmptyState says which empty variant a contribution-backed view shows.
//
// EmptyMain is the shared call-to-action shown when the whole dataset has
// no year keys. EmptyPeriod is the narrower prompt shown when data exists
// elsewhere but the selected year or month has none.
type EmptyState string

const (
	EmptyNone   EmptyState = ""
	EmptyMain   EmptyState = "main"
	EmptyPeriod EmptyState = "period"
)

type (
	// MonthlyPlan renders the selected month's contribution table.
	MonthlyPlan struct {
		Empty         EmptyState
		Year          string
		Month         string
		Contributions []core.Contribution
		Totals        core.MonthTotals
		// The clone affordance only appears when the month has data.
		ShowClone bool
	}

	// YearlyPlan renders the fixed 12-row month table for the selected
	// year plus a summary row.
	YearlyPlan struct {
		Empty  EmptyState
		Year   string
		Totals core.YearTotals
	}

	BlacklistPlan struct {
		Empty   bool
		Members []string
	}

	BudgetPlan struct {
		Empty bool
		// TotalIncome is the paid contribution total across the whole
		// dataset, fed into the budget view as available income.
		TotalIncome int64
		Expenses    map[string][]core.Expense
	}

	ReportsPlan struct {
		Empty   bool
		Filters ReportFilters
	}

	CampaignsPlan struct {
		Empty     bool
		Campaigns []*core.Campaign
	}

	// ReportFilters bounds the report widgets by the data actually
	// present. Refreshed on every display update, not only when the
	// reports tab is active, so switching to it is instantaneous.
	ReportFilters struct {
		Years   []string
		Months  []string
		Members []string
	}

	// Plan is the full render decision for one display update. Every
	// view's section is always populated; Active says which tab is in
	// the foreground.
	Plan struct {
		Active    core.View
		Monthly   MonthlyPlan
		Yearly    YearlyPlan
		Blacklist BlacklistPlan
		Budget    BudgetPlan
		Reports   ReportsPlan
		Campaigns CampaignsPlan
		// Settings always renders; it carries no data here.
	}
)

// BuildPlan computes the render decision for the current state. The
// three-tier presence check runs here: global (any year key at all),
// per-tab (a view's own data), and per-period (the selected year/month).
func BuildPlan(st *core.AppState) Plan {
	plan := Plan{Active: st.CurrentView}

	// Background refresh of report filter bounds, regardless of tab.
	plan.Reports.Filters = ReportFilters{
		Years:   st.Contributions.Years(),
		Months:  core.Months,
		Members: st.Contributions.MemberNames(),
	}

	hasYears := st.Contributions.HasAnyYears()

	plan.Monthly = buildMonthly(st, hasYears)
	plan.Yearly = buildYearly(st, hasYears)
	plan.Reports.Empty = !hasYears

	// Independent subsystems evaluate their own presence, unrelated to
	// contribution data.
	plan.Blacklist = BlacklistPlan{
		Empty:   len(st.Blacklist.BlacklistedMembers) == 0,
		Members: st.Blacklist.BlacklistedMembers,
	}
	plan.Budget = BudgetPlan{
		Empty:    !st.Budget.HasData(),
		Expenses: st.Budget.Expenses,
	}
	if hasYears {
		plan.Budget.TotalIncome = totalPaidIncome(st.Contributions)
	}
	campaigns := st.Campaigns.Ordered()
	plan.Campaigns = CampaignsPlan{
		Empty:     len(campaigns) == 0,
		Campaigns: campaigns,
	}

	return plan
}

func buildMonthly(st *core.AppState, hasYears bool) MonthlyPlan {
	p := MonthlyPlan{Year: st.CurrentYear, Month: st.CurrentMonth}
	if !hasYears {
		p.Empty = EmptyMain
		return p
	}
	rec := st.Contributions.MonthRecordAt(st.CurrentYear, st.CurrentMonth)
	if rec == nil || len(rec.Contributions) == 0 {
		p.Empty = EmptyPeriod
		return p
	}
	p.Contributions = rec.Contributions
	p.Totals = core.CalculateMonthTotals(st.Contributions, st.CurrentYear, st.CurrentMonth)
	p.ShowClone = true
	return p
}

func buildYearly(st *core.AppState, hasYears bool) YearlyPlan {
	p := YearlyPlan{Year: st.CurrentYear}
	if !hasYears {
		p.Empty = EmptyMain
		return p
	}
	yd, ok := st.Contributions[st.CurrentYear]
	if !ok {
		p.Empty = EmptyPeriod
		return p
	}
	hasContributions := false
	for _, month := range core.Months {
		if rec := yd[month]; rec != nil && len(rec.Contributions) > 0 {
			hasContributions = true
			break
		}
	}
	if !hasContributions {
		p.Empty = EmptyPeriod
		return p
	}
	p.Totals = core.CalculateYearTotals(st.Contributions, st.CurrentYear)
	return p
}

func totalPaidIncome(data core.ContributionsData) int64 {
	var sum int64
	for _, yd := range data {
		for _, rec := range yd {
			if rec == nil {
				continue
			}
			for _, c := range rec.Contributions {
				if c.Paid {
					sum += c.Amount
				}
			}
		}
	}
	return sum
}
