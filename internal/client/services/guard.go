package services

import "github.com/dmitrijs2005/lawlink/internal/client/models"

// Decision is the outcome of a role check.
type Decision int

const (
	// DecisionPending means session restore is still in flight; callers
	// should show a loading state rather than redirect.
	DecisionPending Decision = iota
	// DecisionAllow permits rendering the protected view.
	DecisionAllow
	// DecisionRedirect sends the user to the unauthenticated entry point.
	DecisionRedirect
)

// roleAliases maps external role identifiers the backend issues onto the
// internal enumeration. Future aliases are a data change, not a code change.
var roleAliases = map[models.Role]models.Role{
	models.RoleUser: models.RoleClient,
}

// CanonicalRole resolves aliases to the internal role enumeration.
func CanonicalRole(r models.Role) models.Role {
	if canonical, ok := roleAliases[r]; ok {
		return canonical
	}
	return r
}

// Guard is a capability check over the session manager. It carries no state
// of its own.
type Guard struct {
	sessions *SessionManager
}

func NewGuard(sessions *SessionManager) *Guard {
	return &Guard{sessions: sessions}
}

// Check decides whether a view restricted to the required role may render.
// An empty required role admits any authenticated session.
func (g *Guard) Check(required models.Role) Decision {
	if !g.sessions.Restored() {
		return DecisionPending
	}
	s := g.sessions.Current()
	if s == nil {
		return DecisionRedirect
	}
	if required == "" {
		return DecisionAllow
	}
	if CanonicalRole(s.Identity.Role) == CanonicalRole(required) {
		return DecisionAllow
	}
	return DecisionRedirect
}
