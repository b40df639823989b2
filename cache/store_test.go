package cache_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
	logsvc "github.com/trezcool/estudos/services/logger"
	"github.com/trezcool/estudos/storage/inmem"
	"github.com/trezcool/estudos/tests"
)

func TestStore_RefreshAll(t *testing.T) {
	api := testutil.StartDevAPI(t)
	usr := api.CreateUser(t, "Ana", "ana@test.com", "123456")
	redes := api.CreateSubject(t, usr.ID, "Redes", "2024.2")
	api.DB.Reminders.Insert(reminder.Reminder{Title: "Prova", SubjectID: redes.ID, UserID: usr.ID})
	api.DB.Materials.Insert(material.Material{Name: "Slides", SubjectID: redes.ID})

	client := testutil.NewClient(api.URL, inmem.NewSessionStorage(api.Session(t, usr)))
	store := cache.NewStore(client, logsvc.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, store.RefreshAll(ctx, cache.Subjects, cache.Reminders))
	assert.True(t, store.Subjects.Loaded())
	assert.True(t, store.Reminders.Loaded())
	assert.False(t, store.Materials.Loaded(), "only the requested collections are fetched")
	assert.Len(t, store.Subjects.Items(), 1)
	assert.Len(t, store.Reminders.Items(), 1)

	require.NoError(t, store.RefreshAll(ctx))
	assert.True(t, store.Contacts.Loaded())
	assert.Len(t, store.Materials.Items(), 1)
	assert.Empty(t, store.Contacts.Items())

	store.Reset()
	assert.False(t, store.Subjects.Loaded())
}

func TestStore_RefreshAll_failure(t *testing.T) {
	api := testutil.StartDevAPI(t)
	client := testutil.NewClient(api.URL, inmem.NewSessionStorage())
	store := cache.NewStore(client, logsvc.NewNopLogger())

	err := store.RefreshAll(context.Background())
	assert.True(t, errors.Is(err, core.ErrNoSession), "got %v", err)
}

func TestStore_Subscribe(t *testing.T) {
	api := testutil.StartDevAPI(t)
	usr := api.CreateUser(t, "Ana", "ana@test.com", "123456")
	redes := api.CreateSubject(t, usr.ID, "Redes", "2024.2")
	client := testutil.NewClient(api.URL, inmem.NewSessionStorage(api.Session(t, usr)))
	store := cache.NewStore(client, logsvc.NewNopLogger())
	ctx := context.Background()

	var events []cache.Event
	unsubscribe := store.Subscribe(func(evt cache.Event) { events = append(events, evt) })

	m, err := store.Materials.Create(ctx, material.Form{Name: "Slides", SubjectID: redes.ID})
	require.NoError(t, err)
	require.NoError(t, store.Subjects.Delete(ctx, redes.ID))

	require.Len(t, events, 2)
	assert.Equal(t, cache.Materials, events[0].Resource)
	assert.Equal(t, cache.Created, events[0].Action)
	assert.Equal(t, m.ID, events[0].ID)
	assert.Equal(t, cache.Subjects, events[1].Resource)
	assert.Equal(t, cache.Deleted, events[1].Action)

	unsubscribe()
	_, err = store.Subjects.Create(ctx, testSubjectForm())
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func testSubjectForm() subject.Form {
	return subject.Form{Name: "Física", Professor: "Dr. Y", Room: "202", Schedule: "Qua 08-10", Semester: "2024.2"}
}
