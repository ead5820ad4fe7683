// Package workflow owns the mutable application state and runs every
// mutation as an explicit sequence: confirm where destructive, apply
// in memory, await persistence, then resynchronize the display. Local
// state is authoritative; a failed save keeps the mutation and surfaces
// a notice instead of rolling back.
package workflow

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
	"github.com/Musyoka2020-eng/Contriflow/internal/store"
	"github.com/Musyoka2020-eng/Contriflow/internal/view"
)

// Publisher fans a persisted version out to sync consumers. The AMQP
// client satisfies it; a nil publisher disables sync.
type Publisher interface {
	PublishStateSync(ctx context.Context, orgID string, version int64) error
}

// Options configures a Controller. Store and Selector are required;
// Year and Month default to the current wall-clock period.
type Options struct {
	Store     store.Store
	Publisher Publisher
	Selector  *view.Selector
	OrgID     string
	Logger    *log.Logger
	Year      string
	Month     string
}

// Controller serializes all access to the session state. Handlers call
// its methods from concurrent requests; every method takes the lock for
// its full mutate-persist-refresh sequence so displays never observe a
// half-applied workflow.
type Controller struct {
	mu sync.Mutex

	st       *core.AppState
	machine  *Machine
	pending  *pendingWorkflow
	promptID int64

	store     store.Store
	publisher Publisher
	selector  *view.Selector
	orgID     string
	version   int64
	// revision counts local mutations, including ones whose save failed.
	// Anything derived from state (cached exports) must key on it, not
	// just the persisted version, or a failed save would pin stale data.
	revision int64
	logger   *log.Logger
}

type pendingWorkflow struct {
	id      string
	kind    Kind
	year    string
	month   string
	replace bool
	// Clone workflows pin their source at stage time, so a period change
	// between prompt and confirmation cannot redirect what gets copied.
	srcYear  string
	srcMonth string
}

func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	year, month := opts.Year, opts.Month
	if year == "" || month == "" {
		now := time.Now()
		year = strconv.Itoa(now.Year())
		month = core.Months[int(now.Month())-1]
	}
	return &Controller{
		st:        core.NewAppState(year, month),
		machine:   NewMachine(),
		store:     opts.Store,
		publisher: opts.Publisher,
		selector:  opts.Selector,
		orgID:     opts.OrgID,
		logger:    logger.WithComponent(log.ComponentWorkflow),
	}
}

// Load pulls the organization document into memory and creates the
// current month when a previous month can seed it. A missing document is
// a fresh organization, not an error.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.store.Load(ctx, c.orgID)
	switch {
	case err == nil:
		c.st.Contributions = doc.Contributions
		c.st.Blacklist = doc.Blacklist
		c.st.Budget = doc.Budget
		c.st.Campaigns = doc.Campaigns
		c.version = doc.Version
	case err == store.ErrNotFound:
		c.logger.InfoContext(ctx, "No stored document, starting empty",
			log.FieldOrg, c.orgID)
	default:
		return fmt.Errorf("load organization %s: %w", c.orgID, err)
	}

	if c.autoCreateLocked(ctx) {
		if err := c.persistLocked(ctx); err != nil {
			c.logger.WarnContext(ctx, "Auto-created month not persisted",
				log.FieldOperation, log.OpAutoCreate,
				log.FieldError, err)
		}
	}
	return nil
}

// autoCreateLocked seeds the current month from the nearest earlier
// month with contributions. It never fabricates the first month: with
// zero year keys the dataset stays empty until an explicit workflow.
func (c *Controller) autoCreateLocked(ctx context.Context) bool {
	if !c.st.Contributions.HasAnyYears() {
		return false
	}
	if c.st.Contributions.MonthRecordAt(c.st.CurrentYear, c.st.CurrentMonth) != nil {
		return false
	}
	prev := core.FindPreviousMonthData(c.st.Contributions, c.st.CurrentYear, c.st.CurrentMonth)
	if prev == nil {
		return false
	}
	yd := c.st.Contributions.EnsureYear(c.st.CurrentYear)
	yd[c.st.CurrentMonth] = core.CreateMonthFromPrevious(prev, c.st.Blacklist)
	c.logger.InfoContext(ctx, "Current month auto-created",
		log.FieldOperation, log.OpAutoCreate,
		log.FieldYear, c.st.CurrentYear,
		log.FieldMonth, c.st.CurrentMonth)
	return true
}

// persistLocked writes the state as one document, records the new
// version, and publishes a sync notification. Publish failures are
// logged, not surfaced: the local save already succeeded.
func (c *Controller) persistLocked(ctx context.Context) error {
	c.revision++
	doc := &store.OrgDocument{
		Contributions: c.st.Contributions,
		Blacklist:     c.st.Blacklist,
		Budget:        c.st.Budget,
		Campaigns:     c.st.Campaigns,
		Version:       c.version,
	}
	version, err := c.store.Save(ctx, c.orgID, doc)
	if err != nil {
		return fmt.Errorf("save organization %s: %w", c.orgID, err)
	}
	c.version = version

	if c.publisher != nil {
		if err := c.publisher.PublishStateSync(ctx, c.orgID, version); err != nil {
			c.logger.WarnContext(ctx, "State sync publish failed",
				log.FieldOperation, log.OpSync,
				log.FieldVersion, version,
				log.FieldError, err)
		}
	}
	return nil
}

func (c *Controller) refreshLocked(ctx context.Context) (view.Plan, error) {
	return c.selector.UpdateDisplay(ctx, c.st)
}

// Plan recomputes and renders the display for the current state.
func (c *Controller) Plan(ctx context.Context) (view.Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

// SelectView switches the active tab and refreshes the display.
func (c *Controller) SelectView(ctx context.Context, v core.View) (view.Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selector.SelectView(ctx, c.st, v)
}

// ChangePeriod repositions the session on (year, month). The year level
// is materialized only when the dataset already has years; an empty
// dataset gains its first year exclusively through the create workflow.
func (c *Controller) ChangePeriod(ctx context.Context, year, month string) (view.Plan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := core.MonthIndex(month); !ok {
		return view.Plan{}, fmt.Errorf("change period: %w", core.ErrUnknownMonth)
	}
	if _, err := strconv.Atoi(year); err != nil {
		return view.Plan{}, fmt.Errorf("change period: %w", core.ErrInvalidYear)
	}
	c.st.CurrentYear = year
	c.st.CurrentMonth = month
	if c.st.Contributions.HasAnyYears() {
		c.st.Contributions.EnsureYear(year)
	}
	return c.refreshLocked(ctx)
}

// Version returns the last persisted document version.
func (c *Controller) Version() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Revision returns the local mutation counter. Unlike Version it also
// advances when a save fails, so it tracks what the user actually sees.
func (c *Controller) Revision() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision
}

// ReadState runs fn with the state under the controller's lock. Used by
// report generation, which needs a consistent snapshot but no mutation.
// fn must not retain references past its return.
func (c *Controller) ReadState(fn func(st *core.AppState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.st)
}

// currentRecordLocked returns the record for the selected period, or nil.
func (c *Controller) currentRecordLocked() *core.MonthRecord {
	return c.st.Contributions.MonthRecordAt(c.st.CurrentYear, c.st.CurrentMonth)
}

// commitLocked persists and refreshes after an in-memory mutation. On a
// save failure the mutation stays applied and the caller gets a warning
// notice alongside the refreshed plan.
func (c *Controller) commitLocked(ctx context.Context, op string, success *Notice) (view.Plan, *Notice, error) {
	if err := c.persistLocked(ctx); err != nil {
		c.logger.ErrorContext(ctx, "Save failed, keeping local change",
			log.FieldOperation, op,
			log.FieldError, err)
		plan, rerr := c.refreshLocked(ctx)
		return plan, warningNotice("Saved locally",
			"The change is applied but could not be stored. It will be retried with the next save."), rerr
	}
	plan, err := c.refreshLocked(ctx)
	return plan, success, err
}

// AddContribution appends a contribution to the selected month. The
// month must already exist; empty datasets are only seeded by the create
// workflow.
func (c *Controller) AddContribution(ctx context.Context, name string, amount int64, paid bool) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	contrib := core.Contribution{MemberName: name, Amount: amount, Paid: paid}
	if err := contrib.Validate(); err != nil {
		return view.Plan{}, nil, fmt.Errorf("add contribution: %w", err)
	}
	rec := c.currentRecordLocked()
	if rec == nil {
		return view.Plan{}, warningNotice("No Month Selected",
			"Create the month before recording contributions."), nil
	}
	rec.Contributions = append(rec.Contributions, contrib)
	rec.Total += contrib.Amount
	return c.commitLocked(ctx, "add_contribution",
		successNotice("Contribution Added", fmt.Sprintf("%s recorded for %s %s.", name, c.st.CurrentMonth, c.st.CurrentYear)))
}

// UpdateContribution replaces the entry at index in the selected month.
func (c *Controller) UpdateContribution(ctx context.Context, index int, name string, amount int64, paid bool) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	contrib := core.Contribution{MemberName: name, Amount: amount, Paid: paid}
	if err := contrib.Validate(); err != nil {
		return view.Plan{}, nil, fmt.Errorf("update contribution: %w", err)
	}
	rec := c.currentRecordLocked()
	if rec == nil || index < 0 || index >= len(rec.Contributions) {
		return view.Plan{}, nil, fmt.Errorf("update contribution: index %d out of range", index)
	}
	rec.Total += contrib.Amount - rec.Contributions[index].Amount
	rec.Contributions[index] = contrib
	return c.commitLocked(ctx, "update_contribution",
		successNotice("Contribution Updated", fmt.Sprintf("%s updated.", name)))
}

// RemoveContribution deletes the entry at index in the selected month.
func (c *Controller) RemoveContribution(ctx context.Context, index int) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := c.currentRecordLocked()
	if rec == nil || index < 0 || index >= len(rec.Contributions) {
		return view.Plan{}, nil, fmt.Errorf("remove contribution: index %d out of range", index)
	}
	removed := rec.Contributions[index]
	rec.Contributions = append(rec.Contributions[:index], rec.Contributions[index+1:]...)
	rec.Total -= removed.Amount
	return c.commitLocked(ctx, "remove_contribution",
		successNotice("Contribution Removed", fmt.Sprintf("%s removed.", removed.MemberName)))
}

// TogglePaid flips the paid flag of the entry at index.
func (c *Controller) TogglePaid(ctx context.Context, index int) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := c.currentRecordLocked()
	if rec == nil || index < 0 || index >= len(rec.Contributions) {
		return view.Plan{}, nil, fmt.Errorf("toggle paid: index %d out of range", index)
	}
	rec.Contributions[index].Paid = !rec.Contributions[index].Paid
	return c.commitLocked(ctx, "toggle_paid", nil)
}

// AddBlacklistMember excludes a member from carry-forward generation.
func (c *Controller) AddBlacklistMember(ctx context.Context, name string) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.st.Blacklist.Add(name) {
		return view.Plan{}, infoNotice("Already Listed",
			fmt.Sprintf("%s is already on the blacklist.", name)), nil
	}
	return c.commitLocked(ctx, "blacklist_add",
		successNotice("Member Blacklisted", fmt.Sprintf("%s will be skipped when new months are created.", name)))
}

// RemoveBlacklistMember restores a member to carry-forward eligibility.
func (c *Controller) RemoveBlacklistMember(ctx context.Context, name string) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.st.Blacklist.Remove(name) {
		return view.Plan{}, infoNotice("Not Listed",
			fmt.Sprintf("%s is not on the blacklist.", name)), nil
	}
	return c.commitLocked(ctx, "blacklist_remove",
		successNotice("Member Restored", fmt.Sprintf("%s will be carried forward again.", name)))
}

// UpsertCampaign creates or replaces a special giving campaign.
func (c *Controller) UpsertCampaign(ctx context.Context, campaign core.Campaign) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if campaign.ID == "" || campaign.Name == "" {
		return view.Plan{}, nil, fmt.Errorf("upsert campaign: id and name are required")
	}
	if campaign.Status == "" {
		campaign.Status = core.CampaignActive
	}
	stored := campaign
	c.st.Campaigns[campaign.ID] = &stored
	return c.commitLocked(ctx, "campaign_upsert",
		successNotice("Campaign Saved", fmt.Sprintf("%s saved.", campaign.Name)))
}

// DeleteCampaign removes a campaign entirely.
func (c *Controller) DeleteCampaign(ctx context.Context, id string) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	campaign, ok := c.st.Campaigns[id]
	if !ok {
		return view.Plan{}, nil, fmt.Errorf("delete campaign: unknown id %q", id)
	}
	delete(c.st.Campaigns, id)
	return c.commitLocked(ctx, "campaign_delete",
		successNotice("Campaign Deleted", fmt.Sprintf("%s deleted.", campaign.Name)))
}

// AddCampaignGift records a gift against a campaign, marking it
// completed once the target is reached.
func (c *Controller) AddCampaignGift(ctx context.Context, id string, amount int64) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount <= 0 {
		return view.Plan{}, nil, fmt.Errorf("add campaign gift: %w", core.ErrInvalidAmount)
	}
	campaign, ok := c.st.Campaigns[id]
	if !ok {
		return view.Plan{}, nil, fmt.Errorf("add campaign gift: unknown id %q", id)
	}
	if campaign.Status == core.CampaignClosed {
		return view.Plan{}, warningNotice("Campaign Closed",
			fmt.Sprintf("%s no longer accepts gifts.", campaign.Name)), nil
	}
	campaign.Collected += amount
	if campaign.Target > 0 && campaign.Collected >= campaign.Target && campaign.Status == core.CampaignActive {
		campaign.Status = core.CampaignCompleted
	}
	return c.commitLocked(ctx, "campaign_gift",
		successNotice("Gift Recorded", fmt.Sprintf("Gift added to %s.", campaign.Name)))
}
