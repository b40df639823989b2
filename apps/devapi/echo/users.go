package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/estudos/apps/devapi/store"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/user"
)

type userApi struct {
	auth *authenticator
	db   *devstore.DB
}

func registerUserAPI(e *echo.Echo, jwt echo.MiddlewareFunc, auth *authenticator, db *devstore.DB) {
	api := userApi{auth: auth, db: db}

	ug := e.Group("/users")

	// un-authed endpoints
	ug.POST("", api.register)
	ug.POST("/login", api.login)

	// authed endpoints
	ug.PATCH("/:id", api.update, jwt)
}

type (
	RegisterRequest struct {
		Name     string `json:"nome" validate:"required,notblank"`
		Email    string `json:"email" validate:"required,emailfmt"`
		Password string `json:"senha" validate:"required,min=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"senha" validate:"required"`
	}

	LoginResponse struct {
		User  user.User `json:"user"`
		Token string    `json:"token"`
	}
)

func (rr *RegisterRequest) Validate() error {
	rr.Name = core.CleanString(rr.Name)
	rr.Email = core.CleanString(rr.Email, true /* lower */)
	return core.ValidateStruct(rr)
}

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.ValidateStruct(lr)
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data RegisterRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegisterRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.db.Users.Create(data.Name, data.Email, data.Password)
	if err != nil {
		return storeError(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.db.Users.Authenticate(data.Email, data.Password)
	if err != nil {
		return storeError(err, "authenticating")
	}
	token, err := api.auth.generateToken(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{User: usr, Token: token})
}

// update edits the authenticated user's own profile; other users are not found.
func (api *userApi) update(ctx echo.Context) error {
	ctxUsrID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id != ctxUsrID {
		return errHttpNotFound
	}

	var data user.Profile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Profile")
	}
	if err = data.Validate(); err != nil {
		return err
	}
	data.Email = core.CleanString(data.Email, true /* lower */)

	usr, err := api.db.Users.UpdateProfile(id, data.Name, data.Email)
	if err != nil {
		return storeError(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}
