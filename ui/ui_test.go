package ui

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core/subject"
	"github.com/trezcool/estudos/core/user"
	logsvc "github.com/trezcool/estudos/services/logger"
	notifysvc "github.com/trezcool/estudos/services/notify"
	"github.com/trezcool/estudos/storage/inmem"
	"github.com/trezcool/estudos/tests"
)

type fixture struct {
	api     *testutil.DevAPI
	storage user.SessionStorage
	store   *cache.Store
	shell   *Shell
	toasts  *notifysvc.Recorder

	mu     sync.Mutex
	routes []Route
}

// setup starts a dev API and a shell with no session.
func setup(t *testing.T) *fixture {
	f := &fixture{
		api:     testutil.StartDevAPI(t),
		storage: inmem.NewSessionStorage(),
		toasts:  notifysvc.NewRecorder(),
	}
	client := testutil.NewClient(f.api.URL, f.storage)
	f.store = cache.NewStore(client, logsvc.NewNopLogger())
	f.shell = NewShell(ShellOptions{
		Client:   client,
		Storage:  f.storage,
		Store:    f.store,
		Notifier: f.toasts,
		Logger:   logsvc.NewNopLogger(),
		Navigate: f.navigate,
	})
	return f
}

// loginAs creates a user on the dev API and stores its session.
func (f *fixture) loginAs(t *testing.T, name, email string) user.User {
	usr := f.api.CreateUser(t, name, email, "123456")
	require.NoError(t, f.storage.Save(f.api.Session(t, usr)))
	return usr
}

func (f *fixture) navigate(r Route) {
	f.mu.Lock()
	f.routes = append(f.routes, r)
	f.mu.Unlock()
}

// lastRoute returns the last route navigated to, "" when none.
func (f *fixture) lastRoute() Route {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.routes) == 0 {
		return ""
	}
	return f.routes[len(f.routes)-1]
}

func (f *fixture) subject(t *testing.T, userID int, name, semester string) subject.Subject {
	return f.api.CreateSubject(t, userID, name, semester)
}

func (f *fixture) refresh(t *testing.T) {
	require.NoError(t, f.store.RefreshAll(context.Background()))
}
