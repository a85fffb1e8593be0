// Package policy evaluates tenant access decisions. Every handler funnels its
// authorization question through Evaluate so the role rules live in one place.
package policy

import (
	"github.com/google/uuid"

	"github.com/jonathan/careers-builder/internal/db"
)

// Caller identifies an authenticated collaborator, resolved from the session.
type Caller struct {
	UserID      uuid.UUID
	Email       string
	Name        string
	CompanySlug string
	Role        string
}

// Action is an operation a caller wants to perform against a company.
type Action string

// Actions gated by the policy. Public page reads are not listed: visibility
// of a published page is decided by the publish engine, not by membership.
const (
	ActionEditDraft   Action = "edit_draft"   // read/write draft bundle, preview, bulk import
	ActionViewTeam    Action = "view_team"    // roster for mention autocomplete
	ActionComment     Action = "comment"      // read/append section threads
	ActionManageUsers Action = "manage_users" // membership management, admin surface
)

// Decision is the outcome of a policy evaluation.
type Decision int

// Possible decisions. DenyUnauthenticated maps to 401, DenyForbidden to 403.
const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Evaluate decides whether caller may perform action against the company
// identified by slug. A nil caller is an anonymous request.
func Evaluate(caller *Caller, companySlug string, action Action) Decision {
	if caller == nil {
		return DenyUnauthenticated
	}
	if caller.CompanySlug != companySlug {
		// Wrong tenant: deny without detail, existence is not leaked.
		return DenyForbidden
	}

	switch action {
	case ActionEditDraft, ActionViewTeam, ActionComment:
		return Allow
	case ActionManageUsers:
		if caller.Role == db.RoleAdmin {
			return Allow
		}
		return DenyForbidden
	default:
		return DenyForbidden
	}
}
