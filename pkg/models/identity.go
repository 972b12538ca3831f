package models

// Identity is the unit of progress tracking: either a registered user or the
// shared anonymous reader. Components below the identity resolver never
// distinguish further than this, and queries go through UserID so the
// null-handling lives in exactly one place.
type Identity struct {
	userID *string
}

// UserIdentity returns the identity of a registered user.
func UserIdentity(id string) Identity {
	return Identity{userID: &id}
}

// AnonymousIdentity returns the shared anonymous identity. All readers
// without an account share a single progress trail.
func AnonymousIdentity() Identity {
	return Identity{}
}

func (i Identity) IsAnonymous() bool {
	return i.userID == nil
}

// UserID returns the user id or nil for the anonymous identity. The result
// maps directly onto the nullable user_id column.
func (i Identity) UserID() *string {
	if i.userID == nil {
		return nil
	}
	id := *i.userID
	return &id
}

func (i Identity) String() string {
	if i.userID == nil {
		return "anonymous"
	}
	return *i.userID
}
