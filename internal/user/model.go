package user

// User is an account created at registration. Accounts are never mutated or
// deleted once created.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"password"` // stored verbatim, never returned in responses
}
