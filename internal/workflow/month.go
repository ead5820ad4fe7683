package workflow

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
	"github.com/Musyoka2020-eng/Contriflow/internal/view"
)

// RequestCreateMonth validates the target period and stages the create
// workflow behind a confirmation. A month that already exists is an
// informative no-op: the prompt is never shown and nothing changes.
func (c *Controller) RequestCreateMonth(ctx context.Context, year, month string) (*Prompt, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := core.MonthIndex(month); !ok {
		return nil, nil, fmt.Errorf("create month: %w", core.ErrUnknownMonth)
	}
	if _, err := strconv.Atoi(year); err != nil {
		return nil, nil, fmt.Errorf("create month: %w", core.ErrInvalidYear)
	}
	if c.st.Contributions.MonthRecordAt(year, month) != nil {
		return nil, infoNotice("Month Already Exists",
			fmt.Sprintf("%s %s already has a record. Use it from the period selector.", month, year)), nil
	}
	if !c.machine.Idle() {
		return nil, warningNotice("Action Pending",
			"Another action is awaiting confirmation."), nil
	}

	prompt := c.stageLocked(KindCreateMonth, year, month, false)
	prompt.Title = "Create New Month?"
	prompt.Message = fmt.Sprintf("Create %s %s? Members from the most recent month carry forward as unpaid.", month, year)
	return prompt, nil, nil
}

// RequestCloneMonth stages cloning the selected month into the next
// period. An empty or missing source month is rejected with a warning;
// an existing target turns the prompt into a replace decision.
func (c *Controller) RequestCloneMonth(ctx context.Context) (*Prompt, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	src := c.currentRecordLocked()
	if src == nil || len(src.Contributions) == 0 {
		return nil, warningNotice("Nothing to Clone",
			fmt.Sprintf("%s %s has no contributions to carry into the next month.", c.st.CurrentMonth, c.st.CurrentYear)), nil
	}
	nextMonth, nextYear, err := core.NextPeriod(c.st.CurrentMonth, c.st.CurrentYear)
	if err != nil {
		return nil, nil, fmt.Errorf("clone month: %w", err)
	}
	if !c.machine.Idle() {
		return nil, warningNotice("Action Pending",
			"Another action is awaiting confirmation."), nil
	}

	replace := c.st.Contributions.MonthRecordAt(nextYear, nextMonth) != nil
	prompt := c.stageLocked(KindCloneMonth, nextYear, nextMonth, replace)
	c.pending.srcYear = c.st.CurrentYear
	c.pending.srcMonth = c.st.CurrentMonth
	if replace {
		prompt.Title = "Replace Existing Month?"
		prompt.Message = fmt.Sprintf("%s %s already exists. Replace it with a copy of %s %s? All its contributions will be overwritten.",
			nextMonth, nextYear, c.st.CurrentMonth, c.st.CurrentYear)
	} else {
		prompt.Title = "Clone Month?"
		prompt.Message = fmt.Sprintf("Copy %s %s into %s %s? Every entry carries over marked unpaid.",
			c.st.CurrentMonth, c.st.CurrentYear, nextMonth, nextYear)
	}
	return prompt, nil, nil
}

func (c *Controller) stageLocked(kind Kind, year, month string, replace bool) *Prompt {
	c.machine.Reset()
	// Transition from a clean idle is always legal here.
	_ = c.machine.Transition(PhaseAwaitingConfirmation)
	c.promptID++
	c.pending = &pendingWorkflow{
		id:      fmt.Sprintf("%s-%d", kind, c.promptID),
		kind:    kind,
		year:    year,
		month:   month,
		replace: replace,
	}
	return &Prompt{
		ID:      c.pending.id,
		Kind:    kind,
		Replace: replace,
	}
}

// Confirm resolves the pending workflow. Declining aborts with no state
// change. Accepting applies the mutation, awaits the save, then
// resynchronizes the display; a failed save keeps the mutation and
// reports it through the notice.
func (c *Controller) Confirm(ctx context.Context, promptID string, accepted bool) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil || c.pending.id != promptID {
		return view.Plan{}, nil, fmt.Errorf("confirm: no pending workflow %q", promptID)
	}
	pending := c.pending
	c.pending = nil

	if !accepted {
		if err := c.machine.Transition(PhaseIdle); err != nil {
			return view.Plan{}, nil, err
		}
		plan, err := c.refreshLocked(ctx)
		return plan, infoNotice("Cancelled", "No changes were made."), err
	}

	var cloneSrc *core.MonthRecord
	if pending.kind == KindCloneMonth {
		cloneSrc = c.st.Contributions.MonthRecordAt(pending.srcYear, pending.srcMonth)
		if cloneSrc == nil || len(cloneSrc.Contributions) == 0 {
			// The source emptied out after the prompt was shown.
			if err := c.machine.Transition(PhaseIdle); err != nil {
				return view.Plan{}, nil, err
			}
			plan, err := c.refreshLocked(ctx)
			return plan, warningNotice("Nothing to Clone",
				fmt.Sprintf("%s %s no longer has contributions to carry forward.", pending.srcMonth, pending.srcYear)), err
		}
	}

	if err := c.machine.Transition(PhaseMutating); err != nil {
		return view.Plan{}, nil, err
	}

	var success *Notice
	switch pending.kind {
	case KindCreateMonth:
		prev := core.FindPreviousMonthData(c.st.Contributions, pending.year, pending.month)
		yd := c.st.Contributions.EnsureYear(pending.year)
		yd[pending.month] = core.CreateMonthFromPrevious(prev, c.st.Blacklist)
		c.logger.InfoContext(ctx, "Month created",
			log.FieldOperation, log.OpCreateMonth,
			log.FieldYear, pending.year,
			log.FieldMonth, pending.month,
			"carried_members", len(yd[pending.month].Contributions))
		success = successNotice("Month Created",
			fmt.Sprintf("%s %s is ready.", pending.month, pending.year))
	case KindCloneMonth:
		yd := c.st.Contributions.EnsureYear(pending.year)
		yd[pending.month] = core.CloneMonth(cloneSrc)
		c.logger.InfoContext(ctx, "Month cloned",
			log.FieldOperation, log.OpCloneMonth,
			log.FieldYear, pending.year,
			log.FieldMonth, pending.month,
			"replaced", pending.replace)
		success = successNotice("Month Cloned",
			fmt.Sprintf("%s %s now mirrors the previous month, marked unpaid.", pending.month, pending.year))
	default:
		return view.Plan{}, nil, fmt.Errorf("confirm: unknown workflow kind %q", pending.kind)
	}

	// Both workflows land the user on the new month.
	c.st.CurrentYear = pending.year
	c.st.CurrentMonth = pending.month
	c.st.CurrentView = core.ViewMonthly

	if err := c.machine.Transition(PhasePersisting); err != nil {
		return view.Plan{}, nil, err
	}
	if err := c.persistLocked(ctx); err != nil {
		_ = c.machine.Transition(PhaseFailed)
		c.logger.ErrorContext(ctx, "Workflow save failed, keeping local change",
			log.FieldWorkflow, string(pending.kind),
			log.FieldPhase, string(PhaseFailed),
			log.FieldError, err)
		plan, rerr := c.refreshLocked(ctx)
		return plan, warningNotice("Saved Locally",
			"The month was created but could not be stored. It will be retried with the next save."), rerr
	}

	if err := c.machine.Transition(PhaseSyncing); err != nil {
		return view.Plan{}, nil, err
	}
	plan, err := c.refreshLocked(ctx)
	if err != nil {
		_ = c.machine.Transition(PhaseFailed)
		return plan, success, err
	}
	if terr := c.machine.Transition(PhaseIdle); terr != nil {
		return plan, success, terr
	}
	return plan, success, nil
}

// MergeNewMembers adds members from the most recent earlier month into
// the selected month, skipping blacklisted members and anyone already
// present. Used when new members joined after the month was created.
func (c *Controller) MergeNewMembers(ctx context.Context) (view.Plan, *Notice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.currentRecordLocked()
	if target == nil {
		return view.Plan{}, warningNotice("No Month Selected",
			"Create the month before merging members into it."), nil
	}
	prev := core.FindPreviousMonthData(c.st.Contributions, c.st.CurrentYear, c.st.CurrentMonth)
	if prev == nil {
		return view.Plan{}, infoNotice("No Earlier Month",
			"There is no earlier month to pull members from."), nil
	}
	added := core.AddNewMembersToExistingMonth(target, prev, c.st.Blacklist)
	if added == 0 {
		return view.Plan{}, infoNotice("Up to Date",
			"Every eligible member is already in this month."), nil
	}
	c.logger.InfoContext(ctx, "New members merged",
		log.FieldYear, c.st.CurrentYear,
		log.FieldMonth, c.st.CurrentMonth,
		"added", added)
	return c.commitLocked(ctx, "merge_members",
		successNotice("Members Added", fmt.Sprintf("%d member(s) added as unpaid.", added)))
}

// Phase exposes the workflow machine's phase for handlers and tests.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Phase()
}
