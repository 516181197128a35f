package domain

import "time"

// DeletedUserName is the sentinel display name assigned on soft delete. A
// record carrying it is terminal: it can no longer be read as an active user,
// updated, or soft-deleted again. Real display names never equal the sentinel.
const DeletedUserName = "(deleted)"

// User is the directory's aggregate root. Email is unique while present and
// cleared on soft delete, which frees it for reuse. The admin flag is set only
// by out-of-band provisioning, never through the update path.
type User struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name,omitempty"`
	Email          string      `json:"email,omitempty"`
	Admin          bool        `json:"is_admin"`
	EmailConfirmed bool        `json:"email_confirmed"`
	Credential     *Credential `json:"credentials,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Credential holds the salted one-way password hash owned by exactly one
// user. Created together with the user, destroyed on soft or hard delete.
type Credential struct {
	Hash      string    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SoftDeleted reports whether the record has been soft-deleted. The sentinel
// name is the marker; there is no transition back to active.
func (u *User) SoftDeleted() bool {
	return u.Name == DeletedUserName
}

// Actor returns the ephemeral identity used for policy decisions.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Admin: u.Admin}
}
