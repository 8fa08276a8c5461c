package service

import "github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"

// Caller identifies the requester for access-rule evaluation. A zero ID
// means the caller is an unauthenticated guest.
type Caller struct {
	ID   string
	Role string
}

// Authenticated reports whether the caller presented a valid token.
func (c Caller) Authenticated() bool {
	return c.ID != ""
}

// IsAdmin reports whether the caller carries the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// The access rules below are the stateless authorization layer. They are
// evaluated per operation against the target entity's ownership and
// visibility attributes; a failed rule is rendered as 403, distinct from
// 401 (unauthenticated) and 404 (absent).

// CanListPfleger: only admins may list accounts.
func CanListPfleger(c Caller) bool {
	return c.IsAdmin()
}

// CanWritePfleger: only admins may create or update accounts.
func CanWritePfleger(c Caller) bool {
	return c.IsAdmin()
}

// CanDeletePfleger: only admins, and never their own account.
func CanDeletePfleger(c Caller, targetID string) bool {
	return c.IsAdmin() && targetID != c.ID
}

// CanReadProtokoll: public Protokolle are readable by anyone, private ones
// only by their owner.
func CanReadProtokoll(c Caller, p *ProtokollResource) bool {
	return p.Public || (c.Authenticated() && p.Ersteller == c.ID)
}

// CanModifyProtokoll: update and delete are owner-only.
func CanModifyProtokoll(c Caller, p *ProtokollResource) bool {
	return c.Authenticated() && p.Ersteller == c.ID
}

// CanReadEintrag: readable when the parent Protokoll is public, or the
// caller owns the parent, or the caller created the Eintrag.
func CanReadEintrag(c Caller, p *ProtokollResource, e *EintragResource) bool {
	if p.Public {
		return true
	}
	if !c.Authenticated() {
		return false
	}
	return p.Ersteller == c.ID || e.Ersteller == c.ID
}

// CanCreateEintrag: anyone may add to a public Protokoll, otherwise only
// its owner.
func CanCreateEintrag(c Caller, p *ProtokollResource) bool {
	if !c.Authenticated() {
		return false
	}
	return p.Public || p.Ersteller == c.ID
}

// CanModifyEintrag: update and delete are restricted to the parent owner
// and the Eintrag's own creator.
func CanModifyEintrag(c Caller, p *ProtokollResource, e *EintragResource) bool {
	if !c.Authenticated() {
		return false
	}
	return p.Ersteller == c.ID || e.Ersteller == c.ID
}
