package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/estudos/apps/devapi/store"
	"github.com/trezcool/estudos/core"
)

var errSubjectNotFound = core.NewValidationError(
	errors.New("disciplina não encontrada"),
	core.FieldError{Field: "discId", Error: "disciplina não encontrada"},
)

// resourceAPI serves the CRUD endpoints of one collection.
// Rows are decoded onto the payload of their current values, so PATCH bodies may be partial.
type resourceAPI[T any, P any] struct {
	name  string
	table *devstore.Table[T]
	// mine lists the rows owned by a user.
	mine func(userID int) []T
	// owns reports whether a user may read or modify a row.
	owns func(userID int, row T) bool
	// bySubject lists the rows of a subject.
	bySubject func(subjectID int) []T
	// payloadOf returns the request payload matching the current values of a row.
	payloadOf func(row T) P
	// apply validates the payload and writes it onto the row.
	apply func(userID int, p *P, row *T) error
}

func (api *resourceAPI[T, P]) register(e *echo.Echo, jwt echo.MiddlewareFunc, base, bySubjectPath string) {
	g := e.Group(base, jwt)
	g.GET("/user/:userId", api.listMine)
	if bySubjectPath != "" {
		g.GET(bySubjectPath+"/:discId", api.listBySubject)
	}
	g.POST("", api.create)
	g.GET("/:id", api.retrieve)
	g.PATCH("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func paramID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// object returns the row identified by the `id` path param, if the authenticated user may access it.
func (api *resourceAPI[T, P]) object(ctx echo.Context) (int, T, error) {
	var row T
	userID, err := getContextUserID(ctx)
	if err != nil {
		return 0, row, err
	}
	id, err := paramID(ctx, "id")
	if err != nil {
		return 0, row, err
	}
	row, err = api.table.Get(id)
	if err != nil {
		return 0, row, storeError(err, "getting "+api.name)
	}
	if !api.owns(userID, row) {
		return 0, row, errHttpNotFound
	}
	return userID, row, nil
}

// Handlers

func (api *resourceAPI[T, P]) listMine(ctx echo.Context) error {
	ctxUsrID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	userID, err := paramID(ctx, "userId")
	if err != nil {
		return err
	}
	if userID != ctxUsrID {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, api.mine(userID))
}

func (api *resourceAPI[T, P]) listBySubject(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}
	subjectID, err := paramID(ctx, "discId")
	if err != nil {
		return err
	}
	rows := make([]T, 0)
	for _, row := range api.bySubject(subjectID) {
		if api.owns(userID, row) {
			rows = append(rows, row)
		}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *resourceAPI[T, P]) retrieve(ctx echo.Context) error {
	_, row, err := api.object(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, row)
}

func (api *resourceAPI[T, P]) create(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var row T
	data := api.payloadOf(row)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrapf(err, "binding %s", api.name)
	}
	if err = api.apply(userID, &data, &row); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.table.Insert(row))
}

func (api *resourceAPI[T, P]) update(ctx echo.Context) error {
	userID, row, err := api.object(ctx)
	if err != nil {
		return err
	}

	data := api.payloadOf(row)
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrapf(err, "binding %s", api.name)
	}
	id, _ := paramID(ctx, "id")
	row, err = api.table.Update(id, func(r *T) error { return api.apply(userID, &data, r) })
	if err != nil {
		return storeError(err, "updating "+api.name)
	}
	return ctx.JSON(http.StatusOK, row)
}

func (api *resourceAPI[T, P]) destroy(ctx echo.Context) error {
	if _, _, err := api.object(ctx); err != nil {
		return err
	}
	id, _ := paramID(ctx, "id")
	if err := api.table.Delete(id); err != nil {
		return storeError(err, "deleting "+api.name)
	}
	return ctx.NoContent(http.StatusNoContent)
}
