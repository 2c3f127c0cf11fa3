package domain

import "testing"

func TestAuthorize_Anonymous(t *testing.T) {
	anon := Actor{}

	if !Authorize(anon, ActionRead, Resource{Kind: KindCatalog}) {
		t.Fatalf("anonymous read of catalog must be allowed")
	}
	if !Authorize(anon, ActionRead, Resource{Kind: KindReview, OwnerID: "u1"}) {
		t.Fatalf("anonymous read of review must be allowed")
	}
	if Authorize(anon, ActionCreate, Resource{Kind: KindReview}) {
		t.Fatalf("anonymous create review must be denied")
	}
	if Authorize(anon, ActionCreate, Resource{Kind: KindCatalog}) {
		t.Fatalf("anonymous catalog write must be denied")
	}
	if Authorize(anon, ActionRead, Resource{Kind: KindAccount}) {
		t.Fatalf("anonymous account access must be denied")
	}
}

func TestAuthorize_OwnershipAndModeration(t *testing.T) {
	author := Actor{ID: "u1", Role: RoleUser, Authenticated: true}
	other := Actor{ID: "u2", Role: RoleUser, Authenticated: true}
	mod := Actor{ID: "u3", Role: RoleModerator, Authenticated: true}
	admin := Actor{ID: "u4", Role: RoleAdmin, Authenticated: true}
	review := Resource{Kind: KindReview, OwnerID: "u1"}

	if !Authorize(author, ActionUpdate, review) {
		t.Fatalf("author must be able to update own review")
	}
	if Authorize(other, ActionDelete, review) {
		t.Fatalf("plain user must not delete someone else's review")
	}
	if !Authorize(mod, ActionDelete, review) {
		t.Fatalf("moderator must be able to delete any review")
	}
	if !Authorize(admin, ActionDelete, review) {
		t.Fatalf("admin must be able to delete any review")
	}
	if !Authorize(other, ActionCreate, Resource{Kind: KindComment}) {
		t.Fatalf("authenticated user must be able to comment")
	}
}

func TestAuthorize_AdminSurface(t *testing.T) {
	admin := Actor{ID: "a", Role: RoleAdmin, Authenticated: true}
	mod := Actor{ID: "m", Role: RoleModerator, Authenticated: true}

	if !Authorize(admin, ActionUpdate, Resource{Kind: KindAccount, OwnerID: "someone"}) {
		t.Fatalf("admin must be able to mutate user records")
	}
	if Authorize(mod, ActionUpdate, Resource{Kind: KindAccount, OwnerID: "someone"}) {
		t.Fatalf("moderator must not reach the admin surface")
	}
	if !Authorize(admin, ActionCreate, Resource{Kind: KindCatalog}) {
		t.Fatalf("admin must be able to write the catalog")
	}
	if Authorize(mod, ActionCreate, Resource{Kind: KindCatalog}) {
		t.Fatalf("moderator must not write the catalog")
	}
}

func TestAuthorize_Profile(t *testing.T) {
	user := Actor{ID: "u1", Role: RoleUser, Authenticated: true}

	if !Authorize(user, ActionUpdate, Resource{Kind: KindProfile, OwnerID: "u1"}) {
		t.Fatalf("user must be able to update own profile")
	}
	if Authorize(user, ActionUpdate, Resource{Kind: KindProfile, OwnerID: "u2"}) {
		t.Fatalf("user must not update another user's profile")
	}
	if Authorize(Actor{}, ActionRead, Resource{Kind: KindProfile, OwnerID: ""}) {
		t.Fatalf("anonymous actor must never match an empty owner id")
	}
}
