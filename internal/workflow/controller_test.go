package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/Musyoka2020-eng/Contriflow/internal/access"
	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	"github.com/Musyoka2020-eng/Contriflow/internal/store"
	"github.com/Musyoka2020-eng/Contriflow/internal/view"
)

type failingStore struct {
	failSave bool
}

func (s *failingStore) Load(ctx context.Context, orgID string) (*store.OrgDocument, error) {
	return nil, store.ErrNotFound
}

func (s *failingStore) Save(ctx context.Context, orgID string, doc *store.OrgDocument) (int64, error) {
	if s.failSave {
		return 0, errors.New("backend unavailable")
	}
	return doc.Version + 1, nil
}

func (s *failingStore) Close() error { return nil }

type recordingPublisher struct {
	versions []int64
}

func (p *recordingPublisher) PublishStateSync(ctx context.Context, orgID string, version int64) error {
	p.versions = append(p.versions, version)
	return nil
}

func newTestController(t *testing.T, s store.Store) *Controller {
	t.Helper()
	if s == nil {
		s = store.NewMemoryStore(t.TempDir())
	}
	sel := view.NewSelector(nil, access.StaticProvider{UserRole: core.RoleAdmin}, nil)
	return NewController(Options{
		Store:    s,
		Selector: sel,
		OrgID:    "test-org",
		Year:     "2024",
		Month:    "March",
	})
}

// confirmCreate drives the create workflow to completion for test setup.
func confirmCreate(t *testing.T, c *Controller, year, month string) {
	t.Helper()
	ctx := context.Background()
	prompt, notice, err := c.RequestCreateMonth(ctx, year, month)
	if err != nil {
		t.Fatalf("request create %s %s: %v", month, year, err)
	}
	if prompt == nil {
		t.Fatalf("request create %s %s: no prompt, notice %+v", month, year, notice)
	}
	if _, _, err := c.Confirm(ctx, prompt.ID, true); err != nil {
		t.Fatalf("confirm create %s %s: %v", month, year, err)
	}
}

func TestCreateMonthWorkflow(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)
	if err := c.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	prompt, notice, err := c.RequestCreateMonth(ctx, "2024", "March")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if notice != nil {
		t.Fatalf("unexpected notice: %+v", notice)
	}
	if prompt.Kind != KindCreateMonth || prompt.Replace {
		t.Fatalf("prompt = %+v", prompt)
	}
	if got := c.Phase(); got != PhaseAwaitingConfirmation {
		t.Fatalf("phase = %s, want %s", got, PhaseAwaitingConfirmation)
	}

	plan, notice, err := c.Confirm(ctx, prompt.ID, true)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if notice == nil || notice.Level != NoticeSuccess {
		t.Fatalf("notice = %+v, want success", notice)
	}
	if plan.Active != core.ViewMonthly {
		t.Fatalf("active view = %s, want monthly", plan.Active)
	}
	if plan.Monthly.Empty != view.EmptyNone {
		t.Fatalf("monthly empty = %s, want none", plan.Monthly.Empty)
	}
	if got := c.Phase(); got != PhaseIdle {
		t.Fatalf("phase after confirm = %s, want idle", got)
	}
	if c.Version() != 1 {
		t.Fatalf("version = %d, want 1", c.Version())
	}
}

func TestCreateMonthDeclined(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)

	prompt, _, err := c.RequestCreateMonth(ctx, "2024", "March")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	_, notice, err := c.Confirm(ctx, prompt.ID, false)
	if err != nil {
		t.Fatalf("confirm decline: %v", err)
	}
	if notice == nil || notice.Level != NoticeInfo {
		t.Fatalf("notice = %+v, want info", notice)
	}
	var hasYears bool
	c.ReadState(func(st *core.AppState) { hasYears = st.Contributions.HasAnyYears() })
	if hasYears {
		t.Fatal("declined workflow must not create anything")
	}
	if c.Version() != 0 {
		t.Fatalf("version = %d, want 0", c.Version())
	}
}

func TestCreateMonthAlreadyExists(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)
	confirmCreate(t, c, "2024", "March")

	prompt, notice, err := c.RequestCreateMonth(ctx, "2024", "March")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if prompt != nil {
		t.Fatal("existing month must not prompt")
	}
	if notice == nil || notice.Level != NoticeInfo {
		t.Fatalf("notice = %+v, want info", notice)
	}
}

func TestCreateMonthCarriesForward(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)
	confirmCreate(t, c, "2024", "March")
	if _, _, err := c.AddContribution(ctx, "Alice", 100, true); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := c.AddContribution(ctx, "Bob", 50, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := c.AddBlacklistMember(ctx, "Bob"); err != nil {
		t.Fatalf("blacklist: %v", err)
	}

	confirmCreate(t, c, "2024", "April")

	c.ReadState(func(st *core.AppState) {
		rec := st.Contributions.MonthRecordAt("2024", "April")
		if rec == nil {
			t.Fatal("April not created")
		}
		if len(rec.Contributions) != 1 {
			t.Fatalf("carried %d members, want 1", len(rec.Contributions))
		}
		got := rec.Contributions[0]
		if got.MemberName != "Alice" || got.Paid {
			t.Fatalf("carried entry = %+v, want Alice unpaid", got)
		}
		if st.CurrentMonth != "April" || st.CurrentYear != "2024" {
			t.Fatalf("current period = %s %s, want April 2024", st.CurrentMonth, st.CurrentYear)
		}
	})
}

func TestCloneMonthWorkflow(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)

	t.Run("empty source rejected", func(t *testing.T) {
		prompt, notice, err := c.RequestCloneMonth(ctx)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if prompt != nil {
			t.Fatal("empty month must not prompt")
		}
		if notice == nil || notice.Level != NoticeWarning {
			t.Fatalf("notice = %+v, want warning", notice)
		}
	})

	confirmCreate(t, c, "2024", "March")
	if _, _, err := c.AddContribution(ctx, "Alice", 100, true); err != nil {
		t.Fatalf("add: %v", err)
	}

	t.Run("clone into next month", func(t *testing.T) {
		prompt, _, err := c.RequestCloneMonth(ctx)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if prompt == nil || prompt.Replace {
			t.Fatalf("prompt = %+v, want plain clone", prompt)
		}
		if _, _, err := c.Confirm(ctx, prompt.ID, true); err != nil {
			t.Fatalf("confirm: %v", err)
		}
		c.ReadState(func(st *core.AppState) {
			rec := st.Contributions.MonthRecordAt("2024", "April")
			if rec == nil || len(rec.Contributions) != 1 {
				t.Fatalf("April record = %+v", rec)
			}
			if rec.Contributions[0].Paid {
				t.Fatal("cloned entry must be unpaid")
			}
			if st.CurrentMonth != "April" {
				t.Fatalf("current month = %s, want April", st.CurrentMonth)
			}
		})
	})

	t.Run("existing target becomes replace", func(t *testing.T) {
		if _, err := c.ChangePeriod(ctx, "2024", "March"); err != nil {
			t.Fatalf("change period: %v", err)
		}
		prompt, _, err := c.RequestCloneMonth(ctx)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if prompt == nil || !prompt.Replace {
			t.Fatalf("prompt = %+v, want replace", prompt)
		}
		if _, _, err := c.Confirm(ctx, prompt.ID, false); err != nil {
			t.Fatalf("decline: %v", err)
		}
	})
}

func TestCloneDecemberWrapsYear(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)
	if _, err := c.ChangePeriod(ctx, "2024", "December"); err != nil {
		t.Fatalf("change period: %v", err)
	}
	confirmCreate(t, c, "2024", "December")
	if _, _, err := c.AddContribution(ctx, "Alice", 100, false); err != nil {
		t.Fatalf("add: %v", err)
	}

	prompt, _, err := c.RequestCloneMonth(ctx)
	if err != nil || prompt == nil {
		t.Fatalf("request: prompt=%v err=%v", prompt, err)
	}
	if _, _, err := c.Confirm(ctx, prompt.ID, true); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	c.ReadState(func(st *core.AppState) {
		if st.Contributions.MonthRecordAt("2025", "January") == nil {
			t.Fatal("December must clone into January of the next year")
		}
		if st.CurrentYear != "2025" || st.CurrentMonth != "January" {
			t.Fatalf("current period = %s %s, want January 2025", st.CurrentMonth, st.CurrentYear)
		}
	})
}

func TestClonePinsSourceMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("period change before confirm", func(t *testing.T) {
		c := newTestController(t, nil)
		confirmCreate(t, c, "2024", "March")
		if _, _, err := c.AddContribution(ctx, "Alice", 100, true); err != nil {
			t.Fatalf("add: %v", err)
		}

		prompt, _, err := c.RequestCloneMonth(ctx)
		if err != nil || prompt == nil {
			t.Fatalf("request: prompt=%v err=%v", prompt, err)
		}
		// Navigating away must not redirect what the clone copies.
		if _, err := c.ChangePeriod(ctx, "2024", "September"); err != nil {
			t.Fatalf("change period: %v", err)
		}
		if _, _, err := c.Confirm(ctx, prompt.ID, true); err != nil {
			t.Fatalf("confirm: %v", err)
		}
		c.ReadState(func(st *core.AppState) {
			rec := st.Contributions.MonthRecordAt("2024", "April")
			if rec == nil || len(rec.Contributions) != 1 || rec.Contributions[0].MemberName != "Alice" {
				t.Fatalf("April record = %+v, want Alice carried from March", rec)
			}
			if st.CurrentYear != "2024" || st.CurrentMonth != "April" {
				t.Fatalf("current period = %s %s, want April 2024", st.CurrentMonth, st.CurrentYear)
			}
		})
	})

	t.Run("source emptied before confirm", func(t *testing.T) {
		c := newTestController(t, nil)
		confirmCreate(t, c, "2024", "March")
		if _, _, err := c.AddContribution(ctx, "Alice", 100, true); err != nil {
			t.Fatalf("add: %v", err)
		}

		prompt, _, err := c.RequestCloneMonth(ctx)
		if err != nil || prompt == nil {
			t.Fatalf("request: prompt=%v err=%v", prompt, err)
		}
		if _, _, err := c.RemoveContribution(ctx, 0); err != nil {
			t.Fatalf("remove: %v", err)
		}
		_, notice, err := c.Confirm(ctx, prompt.ID, true)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if notice == nil || notice.Level != NoticeWarning {
			t.Fatalf("notice = %+v, want warning", notice)
		}
		if got := c.Phase(); got != PhaseIdle {
			t.Fatalf("phase = %s, want %s", got, PhaseIdle)
		}
		c.ReadState(func(st *core.AppState) {
			if st.Contributions.MonthRecordAt("2024", "April") != nil {
				t.Fatal("aborted clone must not create the target month")
			}
		})
	})
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{failSave: true}
	c := newTestController(t, fs)

	prompt, _, err := c.RequestCreateMonth(ctx, "2024", "March")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	_, notice, err := c.Confirm(ctx, prompt.ID, true)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if notice == nil || notice.Level != NoticeWarning {
		t.Fatalf("notice = %+v, want warning", notice)
	}
	if got := c.Phase(); got != PhaseFailed {
		t.Fatalf("phase = %s, want failed", got)
	}
	c.ReadState(func(st *core.AppState) {
		if st.Contributions.MonthRecordAt("2024", "March") == nil {
			t.Fatal("failed save must keep the local mutation")
		}
	})

	// A later mutation retries the save and clears the failure.
	fs.failSave = false
	_, notice, err = c.AddContribution(ctx, "Alice", 100, false)
	if err != nil {
		t.Fatalf("add after recovery: %v", err)
	}
	if notice == nil || notice.Level != NoticeSuccess {
		t.Fatalf("notice = %+v, want success", notice)
	}
}

func TestRevisionAdvancesOnFailedSave(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{}
	c := newTestController(t, fs)
	confirmCreate(t, c, "2024", "March")

	fs.failSave = true
	before := c.Revision()
	if _, _, err := c.AddContribution(ctx, "Alice", 100, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	// The version cannot move without a successful save, but the local
	// state did move, and revision must record that.
	if got := c.Version(); got != 1 {
		t.Fatalf("version = %d, want 1", got)
	}
	if got := c.Revision(); got <= before {
		t.Fatalf("revision = %d, want > %d", got, before)
	}
}

func TestOnlyOnePendingWorkflow(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)

	prompt, _, err := c.RequestCreateMonth(ctx, "2024", "March")
	if err != nil || prompt == nil {
		t.Fatalf("first request: prompt=%v err=%v", prompt, err)
	}
	second, notice, err := c.RequestCreateMonth(ctx, "2024", "April")
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if second != nil {
		t.Fatal("second workflow must not stage while one is pending")
	}
	if notice == nil || notice.Level != NoticeWarning {
		t.Fatalf("notice = %+v, want warning", notice)
	}
	if _, _, err := c.Confirm(ctx, "bogus-id", true); err == nil {
		t.Fatal("confirm with wrong prompt id must fail")
	}
	if _, _, err := c.Confirm(ctx, prompt.ID, true); err != nil {
		t.Fatalf("confirm real prompt: %v", err)
	}
}

func TestPublisherReceivesVersions(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	sel := view.NewSelector(nil, access.StaticProvider{UserRole: core.RoleAdmin}, nil)
	c := NewController(Options{
		Store:     store.NewMemoryStore(t.TempDir()),
		Publisher: pub,
		Selector:  sel,
		OrgID:     "test-org",
		Year:      "2024",
		Month:     "March",
	})

	confirmCreate(t, c, "2024", "March")
	if _, _, err := c.AddContribution(ctx, "Alice", 100, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(pub.versions) != 2 {
		t.Fatalf("published %d versions, want 2", len(pub.versions))
	}
	if pub.versions[0] != 1 || pub.versions[1] != 2 {
		t.Fatalf("versions = %v, want [1 2]", pub.versions)
	}
}

func TestAutoCreateCurrentMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("no years means no-op", func(t *testing.T) {
		c := newTestController(t, nil)
		if err := c.Load(ctx); err != nil {
			t.Fatalf("load: %v", err)
		}
		c.ReadState(func(st *core.AppState) {
			if st.Contributions.HasAnyYears() {
				t.Fatal("empty dataset must stay empty on load")
			}
		})
	})

	t.Run("seeds from previous month", func(t *testing.T) {
		dir := t.TempDir()
		seed := store.NewMemoryStore(dir)
		doc := store.DefaultDocument()
		yd := doc.Contributions.EnsureYear("2024")
		yd["February"] = &core.MonthRecord{
			Contributions: []core.Contribution{{MemberName: "Alice", Amount: 100, Paid: true}},
			Total:         100,
		}
		if _, err := seed.Save(ctx, "test-org", doc); err != nil {
			t.Fatalf("seed: %v", err)
		}

		c := newTestController(t, store.NewMemoryStore(dir))
		if err := c.Load(ctx); err != nil {
			t.Fatalf("load: %v", err)
		}
		c.ReadState(func(st *core.AppState) {
			rec := st.Contributions.MonthRecordAt("2024", "March")
			if rec == nil {
				t.Fatal("current month should be auto-created from February")
			}
			if len(rec.Contributions) != 1 || rec.Contributions[0].Paid {
				t.Fatalf("auto-created record = %+v", rec)
			}
		})
		if c.Version() != 2 {
			t.Fatalf("version = %d, want 2 (seed + auto-create save)", c.Version())
		}
	})

	t.Run("existing current month untouched", func(t *testing.T) {
		dir := t.TempDir()
		seed := store.NewMemoryStore(dir)
		doc := store.DefaultDocument()
		yd := doc.Contributions.EnsureYear("2024")
		yd["March"] = &core.MonthRecord{
			Contributions: []core.Contribution{{MemberName: "Alice", Amount: 100, Paid: true}},
			Total:         100,
		}
		if _, err := seed.Save(ctx, "test-org", doc); err != nil {
			t.Fatalf("seed: %v", err)
		}

		c := newTestController(t, store.NewMemoryStore(dir))
		if err := c.Load(ctx); err != nil {
			t.Fatalf("load: %v", err)
		}
		c.ReadState(func(st *core.AppState) {
			rec := st.Contributions.MonthRecordAt("2024", "March")
			if rec == nil || !rec.Contributions[0].Paid {
				t.Fatal("existing month must not be regenerated")
			}
		})
		if c.Version() != 1 {
			t.Fatalf("version = %d, want 1 (no extra save)", c.Version())
		}
	})
}

func TestMergeNewMembers(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)
	confirmCreate(t, c, "2024", "March")
	if _, _, err := c.AddContribution(ctx, "Alice", 100, true); err != nil {
		t.Fatalf("add: %v", err)
	}

	confirmCreate(t, c, "2024", "April")

	// New member joins in March after April was created.
	if _, err := c.ChangePeriod(ctx, "2024", "March"); err != nil {
		t.Fatalf("change period: %v", err)
	}
	if _, _, err := c.AddContribution(ctx, "Carol", 75, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.ChangePeriod(ctx, "2024", "April"); err != nil {
		t.Fatalf("change period: %v", err)
	}

	_, notice, err := c.MergeNewMembers(ctx)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if notice == nil || notice.Level != NoticeSuccess {
		t.Fatalf("notice = %+v, want success", notice)
	}
	c.ReadState(func(st *core.AppState) {
		rec := st.Contributions.MonthRecordAt("2024", "April")
		if !rec.HasMember("Carol") {
			t.Fatal("Carol should be merged into April")
		}
	})

	// Second merge finds nothing new.
	_, notice, err = c.MergeNewMembers(ctx)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if notice == nil || notice.Level != NoticeInfo {
		t.Fatalf("notice = %+v, want info", notice)
	}
}

func TestContributionMutations(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)
	confirmCreate(t, c, "2024", "March")

	if _, _, err := c.AddContribution(ctx, "", 100, false); err == nil {
		t.Fatal("empty member name must be rejected")
	}
	if _, _, err := c.AddContribution(ctx, "Alice", -1, false); err == nil {
		t.Fatal("negative amount must be rejected")
	}

	if _, _, err := c.AddContribution(ctx, "Alice", 100, false); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := c.TogglePaid(ctx, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	c.ReadState(func(st *core.AppState) {
		if !st.Contributions.MonthRecordAt("2024", "March").Contributions[0].Paid {
			t.Fatal("toggle should mark paid")
		}
	})

	if _, _, err := c.UpdateContribution(ctx, 0, "Alice", 150, true); err != nil {
		t.Fatalf("update: %v", err)
	}
	c.ReadState(func(st *core.AppState) {
		rec := st.Contributions.MonthRecordAt("2024", "March")
		if rec.Contributions[0].Amount != 150 || rec.Total != 150 {
			t.Fatalf("after update amount=%d total=%d, want 150/150", rec.Contributions[0].Amount, rec.Total)
		}
	})

	if _, _, err := c.RemoveContribution(ctx, 5); err == nil {
		t.Fatal("out of range index must be rejected")
	}
	if _, _, err := c.RemoveContribution(ctx, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	c.ReadState(func(st *core.AppState) {
		rec := st.Contributions.MonthRecordAt("2024", "March")
		if len(rec.Contributions) != 0 || rec.Total != 0 {
			t.Fatalf("after remove len=%d total=%d, want 0/0", len(rec.Contributions), rec.Total)
		}
	})
}

func TestAddContributionWithoutMonth(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)

	_, notice, err := c.AddContribution(ctx, "Alice", 100, false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if notice == nil || notice.Level != NoticeWarning {
		t.Fatalf("notice = %+v, want warning", notice)
	}
	c.ReadState(func(st *core.AppState) {
		if st.Contributions.HasAnyYears() {
			t.Fatal("add without a month must not create one")
		}
	})
}

func TestCampaignLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)

	if _, _, err := c.UpsertCampaign(ctx, core.Campaign{Name: "Roof"}); err == nil {
		t.Fatal("campaign without id must be rejected")
	}
	if _, _, err := c.UpsertCampaign(ctx, core.Campaign{ID: "roof", Name: "Roof Fund", Target: 1000}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, _, err := c.AddCampaignGift(ctx, "roof", 600); err != nil {
		t.Fatalf("gift: %v", err)
	}
	if _, _, err := c.AddCampaignGift(ctx, "roof", 500); err != nil {
		t.Fatalf("gift: %v", err)
	}
	c.ReadState(func(st *core.AppState) {
		camp := st.Campaigns["roof"]
		if camp.Collected != 1100 {
			t.Fatalf("collected = %d, want 1100", camp.Collected)
		}
		if camp.Status != core.CampaignCompleted {
			t.Fatalf("status = %s, want completed", camp.Status)
		}
	})

	if _, _, err := c.AddCampaignGift(ctx, "roof", 0); err == nil {
		t.Fatal("zero gift must be rejected")
	}
	if _, _, err := c.DeleteCampaign(ctx, "missing"); err == nil {
		t.Fatal("deleting unknown campaign must fail")
	}
	if _, _, err := c.DeleteCampaign(ctx, "roof"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestChangePeriodValidation(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, nil)

	if _, err := c.ChangePeriod(ctx, "2024", "Smarch"); !errors.Is(err, core.ErrUnknownMonth) {
		t.Fatalf("err = %v, want ErrUnknownMonth", err)
	}
	if _, err := c.ChangePeriod(ctx, "twenty24", "March"); !errors.Is(err, core.ErrInvalidYear) {
		t.Fatalf("err = %v, want ErrInvalidYear", err)
	}

	// On an empty dataset the cursor moves but no year key appears.
	if _, err := c.ChangePeriod(ctx, "2025", "January"); err != nil {
		t.Fatalf("change period: %v", err)
	}
	c.ReadState(func(st *core.AppState) {
		if st.Contributions.HasAnyYears() {
			t.Fatal("period change must not create a year on an empty dataset")
		}
		if st.CurrentYear != "2025" || st.CurrentMonth != "January" {
			t.Fatalf("period = %s %s", st.CurrentMonth, st.CurrentYear)
		}
	})
}
