package domain

// Actor is the identity a request acts as. The zero value is anonymous.
type Actor struct {
	ID            string
	Username      string
	Role          string
	Authenticated bool
}

// Action is what the actor wants to do with a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ResourceKind identifies the class of resource being acted on.
type ResourceKind string

const (
	KindCatalog ResourceKind = "catalog" // categories, genres, titles
	KindReview  ResourceKind = "review"
	KindComment ResourceKind = "comment"
	KindAccount ResourceKind = "account" // user records, admin surface
	KindProfile ResourceKind = "profile" // a user's own record via /users/me
)

// Resource is the target of an authorization decision. OwnerID is the user id
// of the author (reviews, comments) or the record holder (profiles); it is
// empty for ownerless resources such as the catalog.
type Resource struct {
	Kind    ResourceKind
	OwnerID string
}

// Authorize decides whether actor may perform action on res. It is total:
// every combination, including the anonymous actor, yields a decision.
// Existence of the resource is the caller's problem and must be resolved
// before this check so that a missing resource surfaces as not-found rather
// than forbidden.
func Authorize(actor Actor, action Action, res Resource) bool {
	switch res.Kind {
	case KindCatalog:
		// Anyone may browse the catalog; only admins change it.
		if action == ActionRead {
			return true
		}
		return actor.Authenticated && actor.Role == RoleAdmin

	case KindReview, KindComment:
		switch action {
		case ActionRead:
			return true
		case ActionCreate:
			return actor.Authenticated
		case ActionUpdate, ActionDelete:
			if !actor.Authenticated {
				return false
			}
			if actor.ID == res.OwnerID {
				return true
			}
			return actor.Role == RoleModerator || actor.Role == RoleAdmin
		}
		return false

	case KindAccount:
		// The whole admin surface, including role mutation.
		return actor.Authenticated && actor.Role == RoleAdmin

	case KindProfile:
		return actor.Authenticated && actor.ID == res.OwnerID
	}
	return false
}
