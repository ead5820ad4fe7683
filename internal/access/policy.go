// Package access maps user roles to the UI affordances they may see and
// use. The mapping is pure and idempotent: it is recomputed and reapplied
// after every render, since rendering can replace the underlying elements.
package access

import (
	"context"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
)

// Provider reports the role of the current user. Authentication itself is
// an external collaborator; this is the narrow interface consumed here.
type Provider interface {
	Role(ctx context.Context) core.Role
}

// StaticProvider always returns the same role. Used in tests and as the
// single-user default.
type StaticProvider struct {
	UserRole core.Role
}

func (p StaticProvider) Role(ctx context.Context) core.Role {
	return p.UserRole
}

// Affordances is the set of UI capabilities visible for a role.
type Affordances struct {
	// EditContributions covers the add/edit/remove contribution forms,
	// the create-month button and the whole contribution action area.
	EditContributions bool
	// RowActions covers per-row buttons wherever rendered: toggle
	// payment, remove, edit, unblacklist.
	RowActions bool
	// ManageBlacklist covers the add-to-blacklist input and per-row
	// blacklist buttons.
	ManageBlacklist bool
	// BudgetTab controls whether the budget tab exists at all.
	BudgetTab bool
}

// For computes the affordances of a role. Unknown roles degrade to viewer.
func For(role core.Role) Affordances {
	switch role {
	case core.RoleAdmin:
		return Affordances{
			EditContributions: true,
			RowActions:        true,
			ManageBlacklist:   true,
			BudgetTab:         true,
		}
	case core.RoleEditor:
		return Affordances{
			EditContributions: true,
			RowActions:        true,
		}
	default:
		return Affordances{}
	}
}

// AllowsView reports whether the role may open the given tab. Only the
// budget tab is restricted; everything else is visible to all roles.
func (a Affordances) AllowsView(v core.View) bool {
	if v == core.ViewBudget {
		return a.BudgetTab
	}
	return true
}
