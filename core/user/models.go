package user

import (
	"strings"

	"github.com/trezcool/estudos/core"
)

// User is the logged-in account as the backend exposes it. The password is write-only and never kept.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// Initial returns the uppercased first letter of the user's name, used as avatar.
func (u User) Initial() string {
	name := []rune(core.CleanString(u.Name))
	if len(name) == 0 {
		return "?"
	}
	return strings.ToUpper(string(name[0]))
}

// Session is returned by a successful login and persisted locally.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

func (s Session) IsZero() bool { return s.Token == "" && s.User.ID == 0 }

// Credentials contains what is needed to log in.
type Credentials struct {
	Email    string `json:"email" validate:"required,emailfmt"`
	Password string `json:"senha" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return core.ValidateStruct(c)
}

// Registration contains information needed to create a new account.
type Registration struct {
	Name            string `json:"nome" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,emailfmt"`
	Password        string `json:"senha" validate:"required,min=6"`
	PasswordConfirm string `json:"confirmacao" validate:"required,eqfield=Password"`
}

func (r *Registration) Validate() error {
	r.Name = core.CleanString(r.Name)
	r.Email = core.CleanString(r.Email, true /* lower */)
	return core.ValidateStruct(r)
}

// Profile defines what information may be provided to modify the logged-in User.
type Profile struct {
	Name  string `json:"nome" validate:"required,notblank"`
	Email string `json:"email" validate:"required,emailfmt"`
}

func (p *Profile) Validate() error {
	p.Name = core.CleanString(p.Name)
	p.Email = core.CleanString(p.Email)
	return core.ValidateStruct(p)
}
