package apisvc

import (
	"context"
	"net/http"

	"github.com/trezcool/estudos/core/user"
)

// UsersAPI talks to /users. It never touches the session storage: callers decide what to persist.
type UsersAPI struct {
	c *Client
}

type registerRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

func (a *UsersAPI) Login(ctx context.Context, creds user.Credentials) (user.Session, error) {
	var sess user.Session
	if err := creds.Validate(); err != nil {
		return sess, err
	}
	err := a.c.do(ctx, http.MethodPost, "/users/login", creds, &sess)
	return sess, err
}

func (a *UsersAPI) Register(ctx context.Context, reg user.Registration) (user.User, error) {
	var usr user.User
	if err := reg.Validate(); err != nil {
		return usr, err
	}
	body := registerRequest{Name: reg.Name, Email: reg.Email, Password: reg.Password}
	err := a.c.do(ctx, http.MethodPost, "/users", body, &usr)
	return usr, err
}

func (a *UsersAPI) UpdateProfile(ctx context.Context, id int, prof user.Profile) (user.User, error) {
	var usr user.User
	if err := prof.Validate(); err != nil {
		return usr, err
	}
	err := a.c.do(ctx, http.MethodPatch, idPath("/users", id), prof, &usr)
	return usr, err
}
