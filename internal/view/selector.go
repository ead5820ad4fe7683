package view

import (
	"context"
	"fmt"

	"github.com/Musyoka2020-eng/Contriflow/internal/access"
	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
)

// Renderer turns a plan into markup fragments. Templating is an external
// collaborator; implementations are treated as opaque.
type Renderer interface {
	Render(ctx context.Context, plan Plan, aff access.Affordances) error
}

// Selector is the view state machine. Transitions happen only through
// explicit tab selection; on entry to any state UpdateDisplay recomputes
// the full plan and reapplies the access policy.
type Selector struct {
	renderer Renderer
	roles    access.Provider
	logger   *log.Logger
}

func NewSelector(renderer Renderer, roles access.Provider, logger *log.Logger) *Selector {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Selector{
		renderer: renderer,
		roles:    roles,
		logger:   logger.WithComponent(log.ComponentView),
	}
}

// SelectView transitions to the named tab and refreshes the display.
// Unknown tab names are rejected before any state change.
func (s *Selector) SelectView(ctx context.Context, st *core.AppState, v core.View) (Plan, error) {
	if !v.Valid() {
		return Plan{}, fmt.Errorf("select view %q: %w", v, core.ErrUnknownView)
	}
	aff := access.For(s.roles.Role(ctx))
	if !aff.AllowsView(v) {
		return Plan{}, fmt.Errorf("select view %q: not permitted for role", v)
	}
	st.CurrentView = v
	return s.UpdateDisplay(ctx, st)
}

// UpdateDisplay builds the plan for the current state, renders it, and
// reapplies role restrictions. It runs the same sequence regardless of
// which tab is active.
func (s *Selector) UpdateDisplay(ctx context.Context, st *core.AppState) (Plan, error) {
	plan := BuildPlan(st)
	aff := access.For(s.roles.Role(ctx))

	if s.renderer != nil {
		if err := s.renderer.Render(ctx, plan, aff); err != nil {
			s.logger.ErrorContext(ctx, "Render failed",
				log.FieldView, string(plan.Active),
				log.FieldError, err)
			return plan, fmt.Errorf("render view %s: %w", plan.Active, err)
		}
	}

	s.logger.DebugContext(ctx, "Display updated",
		log.FieldView, string(plan.Active),
		"has_years", !plan.Reports.Empty)
	return plan, nil
}
