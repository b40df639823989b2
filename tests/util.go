package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	echoapi "github.com/trezcool/estudos/apps/devapi/echo"
	"github.com/trezcool/estudos/apps/devapi/store"
	"github.com/trezcool/estudos/core/subject"
	"github.com/trezcool/estudos/core/user"
	apisvc "github.com/trezcool/estudos/services/api"
	logsvc "github.com/trezcool/estudos/services/logger"
)

const secretKey = "test-secret-key"

// DevAPI is a development API server listening on a local test address.
type DevAPI struct {
	*httptest.Server
	App *echoapi.Server
	DB  *devstore.DB
}

// StartDevAPI starts an empty development API; it is closed when the test ends.
func StartDevAPI(t *testing.T) *DevAPI {
	t.Helper()

	db := devstore.Open()
	db.Users.Cost = bcrypt.MinCost
	app := echoapi.NewServer(echoapi.Options{
		DisableReqLogs:     true,
		SecretKey:          secretKey,
		JWTExpirationDelta: time.Hour,
		Logger:             logsvc.NewNopLogger(),
		DB:                 db,
	})
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)
	return &DevAPI{Server: srv, App: app, DB: db}
}

func (api *DevAPI) CreateUser(t *testing.T, name, email, pwd string) user.User {
	t.Helper()
	usr, err := api.DB.Users.Create(name, email, pwd)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// Session returns a logged-in session of `usr`.
func (api *DevAPI) Session(t *testing.T, usr user.User) user.Session {
	t.Helper()
	token, err := api.App.IssueToken(usr)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	return user.Session{User: usr, Token: token}
}

func (api *DevAPI) CreateSubject(t *testing.T, userID int, name, semester string) subject.Subject {
	t.Helper()
	return api.DB.Subjects.Insert(subject.Subject{
		Name:      name,
		Room:      "101",
		Professor: "Prof. " + name,
		Schedule:  "Seg 08-10",
		Semester:  semester,
		UserID:    userID,
	})
}

// NewClient returns an API client of `baseURL` backed by `storage`.
func NewClient(baseURL string, storage user.SessionStorage, onUnauthorized ...func()) *apisvc.Client {
	opts := apisvc.Options{
		BaseURL: baseURL,
		Storage: storage,
		Logger:  logsvc.NewNopLogger(),
	}
	if len(onUnauthorized) > 0 {
		opts.OnUnauthorized = onUnauthorized[0]
	}
	return apisvc.NewClient(opts)
}
