package core

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Months is the fixed calendar order used everywhere a year is iterated.
// Month records live in maps, so iteration must never rely on map order.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

const (
	ViewMonthly       View = "monthly"
	ViewYearly        View = "yearly"
	ViewBlacklist     View = "blacklist"
	ViewBudget        View = "budget"
	ViewReports       View = "reports"
	ViewSpecialGiving View = "special-giving"
	ViewSettings      View = "settings"
)

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

const (
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignClosed    CampaignStatus = "closed"
)

type (
	// View identifies one of the fixed UI tabs.
	View string

	// Role is the user's access level as reported by the role provider.
	Role string

	CampaignStatus string

	// Contribution is a single member's pledge for one month. Amounts are
	// whole currency units. Member names are not structurally unique per
	// month; carry-forward de-duplicates by member set instead.
	Contribution struct {
		MemberName string `json:"memberName"`
		Amount     int64  `json:"amount"`
		Paid       bool   `json:"paid"`
	}

	// MonthRecord holds the contributions of a single month. Total is an
	// advisory cache carried for the stored document; canonical totals are
	// always recomputed from the contribution list.
	MonthRecord struct {
		Contributions []Contribution `json:"contributions"`
		Total         int64          `json:"total"`
	}

	// YearData maps month name to its record.
	YearData map[string]*MonthRecord

	// ContributionsData maps year key ("2024") to that year's months.
	ContributionsData map[string]YearData

	// BlacklistData lists members excluded from carry-forward generation.
	// Kept as an ordered slice for display, treated as a set for lookups.
	BlacklistData struct {
		BlacklistedMembers []string `json:"blacklistedMembers"`
	}

	// Expense is a single budget line. Budget data is consumed by the
	// budget view, never produced by this service.
	Expense struct {
		Description string `json:"description"`
		Amount      int64  `json:"amount"`
	}

	BudgetData struct {
		Expenses map[string][]Expense `json:"expenses"`
	}

	Campaign struct {
		ID        string         `json:"id"`
		Name      string         `json:"name"`
		Target    int64          `json:"target"`
		Collected int64          `json:"collected"`
		Status    CampaignStatus `json:"status"`
	}

	CampaignsData map[string]*Campaign

	// AppState is the single mutable root for one organization session.
	// It is owned by the workflow controller and is never copied into
	// module-level state elsewhere.
	AppState struct {
		Contributions ContributionsData
		Blacklist     BlacklistData
		Budget        BudgetData
		Campaigns     CampaignsData

		CurrentYear  string
		CurrentMonth string
		CurrentView  View
	}
)

var (
	ErrEmptyMemberName = errors.New("empty member name")
	ErrInvalidAmount   = errors.New("amount must not be negative")
	ErrUnknownMonth    = errors.New("unknown month name")
	ErrInvalidYear     = errors.New("invalid year")
	ErrUnknownView     = errors.New("unknown view")
)

// KnownViews lists every tab the view selector can enter.
var KnownViews = []View{
	ViewMonthly, ViewYearly, ViewBlacklist, ViewBudget,
	ViewReports, ViewSpecialGiving, ViewSettings,
}

// Valid reports whether v is one of the known tab identifiers.
func (v View) Valid() bool {
	for _, k := range KnownViews {
		if v == k {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleViewer
}

// NewAppState returns a session state positioned at the given period with
// every collection initialized and the monthly view selected.
func NewAppState(year, month string) *AppState {
	return &AppState{
		Contributions: make(ContributionsData),
		Blacklist:     BlacklistData{},
		Budget:        BudgetData{Expenses: make(map[string][]Expense)},
		Campaigns:     make(CampaignsData),
		CurrentYear:   year,
		CurrentMonth:  month,
		CurrentView:   ViewMonthly,
	}
}

// NewMonthRecord returns an empty record with a non-nil contribution slice.
// Consumers assume Contributions is always array-typed.
func NewMonthRecord() *MonthRecord {
	return &MonthRecord{Contributions: []Contribution{}}
}

func (c Contribution) Validate() error {
	if strings.TrimSpace(c.MemberName) == "" {
		return ErrEmptyMemberName
	}
	if c.Amount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// HasMember reports whether the record already carries a contribution for
// the given member name.
func (m *MonthRecord) HasMember(name string) bool {
	if m == nil {
		return false
	}
	for _, c := range m.Contributions {
		if c.MemberName == name {
			return true
		}
	}
	return false
}

// MonthIndex returns the calendar position of a month name, 0-based.
func MonthIndex(month string) (int, bool) {
	for i, m := range Months {
		if m == month {
			return i, true
		}
	}
	return 0, false
}

// NextPeriod returns the chronologically following (month, year) pair with
// December wrapping into January of the next year.
func NextPeriod(month, year string) (string, string, error) {
	idx, ok := MonthIndex(month)
	if !ok {
		return "", "", ErrUnknownMonth
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", "", ErrInvalidYear
	}
	if idx == len(Months)-1 {
		return Months[0], strconv.Itoa(y + 1), nil
	}
	return Months[idx+1], year, nil
}

// HasAnyYears reports whether the dataset has at least one year key,
// regardless of whether any month under it has contributions. This is the
// global presence check the view selector branches on.
func (d ContributionsData) HasAnyYears() bool {
	return len(d) > 0
}

// HasAnyContributions reports whether any month anywhere carries at least
// one contribution.
func (d ContributionsData) HasAnyContributions() bool {
	for _, yd := range d {
		for _, rec := range yd {
			if rec != nil && len(rec.Contributions) > 0 {
				return true
			}
		}
	}
	return false
}

// MonthRecordAt returns the record for (year, month), or nil when either
// level is absent. Callers treat a nil record as an empty period.
func (d ContributionsData) MonthRecordAt(year, month string) *MonthRecord {
	yd, ok := d[year]
	if !ok {
		return nil
	}
	return yd[month]
}

// EnsureYear creates the year level if missing and returns it.
func (d ContributionsData) EnsureYear(year string) YearData {
	yd, ok := d[year]
	if !ok {
		yd = make(YearData)
		d[year] = yd
	}
	return yd
}

// Years returns the year keys in ascending order.
func (d ContributionsData) Years() []string {
	years := make([]string, 0, len(d))
	for y := range d {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// MemberNames returns the union of member names across all months, sorted.
// Used to populate the report member dropdown.
func (d ContributionsData) MemberNames() []string {
	seen := make(map[string]struct{})
	for _, yd := range d {
		for _, rec := range yd {
			if rec == nil {
				continue
			}
			for _, c := range rec.Contributions {
				seen[c.MemberName] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether name is blacklisted.
func (b BlacklistData) Contains(name string) bool {
	for _, m := range b.BlacklistedMembers {
		if m == name {
			return true
		}
	}
	return false
}

// Add appends name unless already present. Returns true when added.
func (b *BlacklistData) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || b.Contains(name) {
		return false
	}
	b.BlacklistedMembers = append(b.BlacklistedMembers, name)
	return true
}

// Remove deletes name, preserving display order. Returns true when removed.
func (b *BlacklistData) Remove(name string) bool {
	for i, m := range b.BlacklistedMembers {
		if m == name {
			b.BlacklistedMembers = append(b.BlacklistedMembers[:i], b.BlacklistedMembers[i+1:]...)
			return true
		}
	}
	return false
}

// HasData reports whether the budget carries any expense lines.
func (b BudgetData) HasData() bool {
	for _, lines := range b.Expenses {
		if len(lines) > 0 {
			return true
		}
	}
	return false
}

// Ordered returns campaigns sorted by ID for stable display.
func (c CampaignsData) Ordered() []*Campaign {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Campaign, 0, len(ids))
	for _, id := range ids {
		out = append(out, c[id])
	}
	return out
}
