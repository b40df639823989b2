package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/estudos/apps/devapi/store"
	"github.com/trezcool/estudos/core"
)

// Error codes sent along with error responses.
const (
	CodeEmailTaken         = "email_taken"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidInput       = "invalid_input"
	CodeNotFound           = "not_found"
	CodeUnauthorized       = "unauthorized"
)

var (
	errUnauthorized         = newAPIError(http.StatusUnauthorized, CodeUnauthorized, "user not authenticated")
	errHttpNotFound         = newAPIError(http.StatusNotFound, CodeNotFound, "not found")
	errAuthenticationFailed = newAPIError(http.StatusBadRequest, CodeInvalidCredentials, "invalid email or password")
	errEmailTaken           = newAPIError(http.StatusConflict, CodeEmailTaken, "email already in use")
)

// apiError is an error response with a machine-readable code.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newAPIError(status int, code, msg string) *apiError {
	return &apiError{Status: status, Code: code, Message: msg}
}

func (e *apiError) Error() string { return e.Message }

type errorBody struct {
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// storeError converts store errors into their HTTP counterparts.
func storeError(err error, msg string) error {
	switch errors.Cause(err) {
	case devstore.ErrNotFound:
		return errHttpNotFound
	case devstore.ErrEmailExists:
		return errEmailTaken
	case devstore.ErrInvalidCredentials:
		return errAuthenticationFailed
	}
	return errors.Wrap(err, msg)
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var body errorBody

		switch origErr := errors.Cause(err).(type) {
		case *apiError:
			code = origErr.Status
			body = errorBody{Code: origErr.Code, Message: origErr.Message}
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				body = errorBody{Code: CodeUnauthorized, Message: "missing or malformed jwt"}
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			body.Message = http.StatusText(code)
			if msg, ok := origErr.Message.(string); ok {
				body.Message = msg
			}
			if code == http.StatusUnauthorized {
				body.Code = CodeUnauthorized
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			vErr := errors.Cause(core.TranslateErrors(origErr)).(*core.ValidationError)
			body = errorBody{Code: CodeInvalidInput, Message: vErr.Error(), Fields: vErr.FieldMap()}
		case *core.ValidationError:
			code = http.StatusBadRequest
			body = errorBody{Code: CodeInvalidInput, Message: origErr.Error()}
			if len(origErr.Fields) > 0 {
				body.Fields = origErr.FieldMap()
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			body.Message = http.StatusText(http.StatusInternalServerError)

			if id, cErr := getContextUserID(ctx); cErr == nil {
				logger.Error(body.Message, errors.Wrap(err, body.Message), map[string]interface{}{"userId": id})
			} else {
				logger.Error(body.Message, errors.Wrap(err, body.Message))
			}
		}

		if ctx.Echo().Debug && code >= http.StatusInternalServerError {
			body.Message = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
