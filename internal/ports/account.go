package ports

import "context"

// AccountPort defines the interface for updating account profiles.
type AccountPort interface {
	// UpdateProfile updates account profile fields for the given user.
	// username/displayName are applied as provided; an error means the
	// profile was left untouched.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
