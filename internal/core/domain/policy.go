package domain

// Actor is the authenticated identity performing an operation. It is derived
// from a verified token or a fetched user and is never persisted.
type Actor struct {
	ID    int64
	Admin bool
}

// CanView reports whether the actor may read the target record: admins may
// read anyone, everyone else only themselves.
func (a Actor) CanView(targetID int64) bool {
	return a.Admin || a.ID == targetID
}

// CanModify uses the same rule as CanView; there is no separate write tier.
func (a Actor) CanModify(targetID int64) bool {
	return a.CanView(targetID)
}

// CanSoftDelete uses the same rule as CanModify.
func (a Actor) CanSoftDelete(targetID int64) bool {
	return a.CanModify(targetID)
}

// CanHardDelete is admin-only. Non-admins may never hard-delete, including
// their own record.
func (a Actor) CanHardDelete(int64) bool {
	return a.Admin
}

// CanListAll reports whether listing may span the whole directory. When it
// is false the listing silently narrows to the actor's own record instead of
// being rejected.
func (a Actor) CanListAll() bool {
	return a.Admin
}
