package apisvc

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
	"github.com/trezcool/estudos/core/user"
)

const requestIDHeader = "X-Request-ID"

type (
	Options struct {
		BaseURL string
		Timeout time.Duration // zero means no timeout
		Storage user.SessionStorage
		Logger  core.Logger
		// OnUnauthorized is called after the stored session was cleared because of a 401 response.
		OnUnauthorized func()
		// Transport overrides the HTTP transport (tests).
		Transport http.RoundTripper
	}

	// Client calls the REST backend: one method per backend operation, a single attempt per call.
	Client struct {
		http           *resty.Client
		storage        user.SessionStorage
		logger         core.Logger
		onUnauthorized func()

		Users     *UsersAPI
		Subjects  *SubjectsAPI
		Reminders *RemindersAPI
		Contacts  *ContactsAPI
		Materials *MaterialsAPI
	}
)

func NewClient(opts Options) *Client {
	c := &Client{
		http:           resty.New(),
		storage:        opts.Storage,
		logger:         opts.Logger,
		onUnauthorized: opts.OnUnauthorized,
	}

	c.http.SetBaseURL(opts.BaseURL)
	c.http.SetHeader("Content-Type", "application/json")
	c.http.SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		c.http.SetTimeout(opts.Timeout)
	}
	if opts.Transport != nil {
		c.http.SetTransport(opts.Transport)
	}
	c.http.OnBeforeRequest(c.authenticate)
	c.http.OnAfterResponse(c.checkUnauthorized)

	c.Users = &UsersAPI{c: c}
	c.Subjects = &SubjectsAPI{res: resource[subject.Subject]{c: c, base: "/disciplinas"}}
	c.Reminders = &RemindersAPI{res: resource[reminder.Reminder]{c: c, base: "/lembretes"}}
	c.Contacts = &ContactsAPI{res: resource[contact.Contact]{c: c, base: "/contatos"}}
	c.Materials = &MaterialsAPI{res: resource[material.Material]{c: c, base: "/materiais"}}
	return c
}

// OnUnauthorized replaces the callback run after a 401 response.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// authenticate attaches the stored bearer token, if any, and a request id.
func (c *Client) authenticate(_ *resty.Client, req *resty.Request) error {
	req.SetHeader(requestIDHeader, uuid.New().String())

	token, err := c.storage.Token()
	if err != nil {
		return errors.Wrap(err, "reading stored token")
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	return nil
}

// checkUnauthorized clears the stored session on any 401 response and hands over to the login flow.
func (c *Client) checkUnauthorized(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}
	if err := c.storage.Clear(); err != nil {
		c.logger.Error("clearing session after 401", errors.WithStack(err))
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return nil
}

// currentUserID returns the ID of the stored user, failing fast with core.ErrNoSession.
func (c *Client) currentUserID() (int, error) {
	usr, err := c.storage.User()
	if err != nil {
		return 0, errors.Wrap(err, "reading stored user")
	}
	if usr == nil {
		return 0, core.ErrNoSession
	}
	return usr.ID, nil
}

// do sends a single request. `result` receives the decoded body of a successful response.
// Error bodies are decoded here rather than by resty so that malformed ones still surface as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil && (resp == nil || resp.RawResponse == nil) {
		if isContextErr(err) {
			return errors.Wrapf(err, "%s %s", method, path)
		}
		c.logger.Warn("api request failed", map[string]interface{}{"method": method, "path": path, "error": err.Error()})
		return &NetworkError{Err: err}
	}
	if resp.IsError() {
		apiErr := &Error{Status: resp.StatusCode()}
		_ = json.Unmarshal(resp.Body(), apiErr)
		c.logger.Debug("api error response", map[string]interface{}{
			"method":    method,
			"path":      path,
			"status":    apiErr.Status,
			"requestId": resp.Request.Header.Get(requestIDHeader),
		})
		return apiErr
	}
	if err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}

func idPath(base string, id int) string {
	return base + "/" + strconv.Itoa(id)
}
