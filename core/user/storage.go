package user

// SessionStorage keeps the logged-in session on the local device.
// A missing value is not an error: Token returns "" and User returns nil.
type SessionStorage interface {
	Token() (string, error)
	User() (*User, error)
	// Save stores both the token and the user.
	Save(sess Session) error
	// SetUser replaces the stored user, keeping the token.
	SetUser(usr User) error
	// Clear removes both the token and the user.
	Clear() error
	Close() error
}
