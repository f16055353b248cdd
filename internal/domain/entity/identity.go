package entity

// Identity is the authenticated caller, resolved from a verified token and
// passed explicitly into every owner-scoped operation.
type Identity struct {
	UserID string
}
