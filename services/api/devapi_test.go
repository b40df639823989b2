package apisvc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/subject"
	"github.com/trezcool/estudos/core/user"
	apisvc "github.com/trezcool/estudos/services/api"
	"github.com/trezcool/estudos/storage/inmem"
	"github.com/trezcool/estudos/tests"
)

func TestUsersAPI(t *testing.T) {
	api := testutil.StartDevAPI(t)
	client := testutil.NewClient(api.URL, inmem.NewSessionStorage())
	ctx := context.Background()

	usr, err := client.Users.Register(ctx, user.Registration{
		Name:            "Ana",
		Email:           "Ana@Test.com",
		Password:        "123456",
		PasswordConfirm: "123456",
	})
	require.NoError(t, err)
	assert.NotZero(t, usr.ID)
	assert.Equal(t, "ana@test.com", usr.Email)

	_, err = client.Users.Register(ctx, user.Registration{
		Name:            "Other Ana",
		Email:           "ana@test.com",
		Password:        "abcdef",
		PasswordConfirm: "abcdef",
	})
	var apiErr *apisvc.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "email_taken", apiErr.Code)

	_, err = client.Users.Login(ctx, user.Credentials{Email: "ana@test.com", Password: "wrong"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	sess, err := client.Users.Login(ctx, user.Credentials{Email: "ANA@test.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, usr, sess.User)
	assert.NotEmpty(t, sess.Token)

	// profile updates require the bearer token
	_, err = client.Users.UpdateProfile(ctx, usr.ID, user.Profile{Name: "Ana Maria", Email: "ana@test.com"})
	assert.True(t, apisvc.IsUnauthorized(err))

	storage := inmem.NewSessionStorage(sess)
	authed := testutil.NewClient(api.URL, storage)
	updated, err := authed.Users.UpdateProfile(ctx, usr.ID, user.Profile{Name: "Ana Maria", Email: "ana@test.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)

	other := api.CreateUser(t, "Bia", "bia@test.com", "123456")
	_, err = authed.Users.UpdateProfile(ctx, usr.ID, user.Profile{Name: "Ana", Email: other.Email})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "email_taken", apiErr.Code)

	_, err = authed.Users.UpdateProfile(ctx, other.ID, user.Profile{Name: "Hacked", Email: "h@test.com"})
	assert.True(t, apisvc.IsNotFound(err))
}

func TestSubjectsAPI_crud(t *testing.T) {
	api := testutil.StartDevAPI(t)
	usr := api.CreateUser(t, "Ana", "ana@test.com", "123456")
	client := testutil.NewClient(api.URL, inmem.NewSessionStorage(api.Session(t, usr)))
	ctx := context.Background()

	form := subject.Form{Name: "Redes", Professor: "Dr. X", Room: "101", Schedule: "Ter 10-12", Semester: "2024.2"}
	created, err := client.Subjects.Create(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, created.UserID)

	got, err := client.Subjects.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	form.Grade = 8.5
	form.Absences = 2
	updated, err := client.Subjects.Update(ctx, created.ID, form)
	require.NoError(t, err)
	assert.Equal(t, 8.5, updated.Grade)
	assert.Equal(t, 2, updated.Absences)

	mine, err := client.Subjects.Mine(ctx)
	require.NoError(t, err)
	assert.Equal(t, []subject.Subject{updated}, mine)

	require.NoError(t, client.Subjects.Delete(ctx, created.ID))
	_, err = client.Subjects.Get(ctx, created.ID)
	assert.True(t, apisvc.IsNotFound(err))

	mine, err = client.Subjects.Mine(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestRemindersAPI_roundTrip(t *testing.T) {
	api := testutil.StartDevAPI(t)
	usr := api.CreateUser(t, "Ana", "ana@test.com", "123456")
	for _, name := range []string{"Cálculo", "Física", "Redes"} {
		api.CreateSubject(t, usr.ID, name, "2024.1")
	}
	client := testutil.NewClient(api.URL, inmem.NewSessionStorage(api.Session(t, usr)))
	ctx := context.Background()

	_, err := client.Reminders.Create(ctx, validReminderForm())
	require.NoError(t, err)

	reminders, err := client.Reminders.BySubject(ctx, 3)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Prova", reminders[0].Title)
	assert.Equal(t, 3, reminders[0].SubjectID)
	assert.Equal(t, usr.ID, reminders[0].UserID)

	mine, err := client.Reminders.Mine(ctx)
	require.NoError(t, err)
	assert.Equal(t, reminders, mine)

	// unknown subject
	form := validReminderForm()
	form.SubjectID = 42
	_, err = client.Reminders.Create(ctx, form)
	assert.Equal(t, http.StatusBadRequest, apisvc.StatusOf(err))
}

func TestContactsAndMaterialsAPI(t *testing.T) {
	api := testutil.StartDevAPI(t)
	usr := api.CreateUser(t, "Ana", "ana@test.com", "123456")
	subj := api.CreateSubject(t, usr.ID, "Redes", "2024.2")
	client := testutil.NewClient(api.URL, inmem.NewSessionStorage(api.Session(t, usr)))
	ctx := context.Background()

	c, err := client.Contacts.Create(ctx, contact.Form{Name: "Dr. X", Email: "x@uni.br", Phone: "1234", SubjectID: subj.ID})
	require.NoError(t, err)
	c, err = client.Contacts.Update(ctx, c.ID, contact.Form{Name: "Dr. X", Email: "x@uni.br", Phone: "5678", SubjectID: subj.ID})
	require.NoError(t, err)
	assert.Equal(t, "5678", c.Phone)

	contacts, err := client.Contacts.BySubject(ctx, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{c}, contacts)

	m, err := client.Materials.Create(ctx, material.Form{
		Name:      "Slides",
		Links:     " https://uni.br/a \n\n http://uni.br/b ",
		SubjectID: subj.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://uni.br/a", "http://uni.br/b"}, m.LinkList())

	materials, err := client.Materials.Mine(ctx)
	require.NoError(t, err)
	assert.Equal(t, []material.Material{m}, materials)

	require.NoError(t, client.Materials.Delete(ctx, m.ID))
	materials, err = client.Materials.BySubject(ctx, subj.ID)
	require.NoError(t, err)
	assert.Empty(t, materials)

	// someone else's data is not found
	intruder := api.CreateUser(t, "Bia", "bia@test.com", "123456")
	other := testutil.NewClient(api.URL, inmem.NewSessionStorage(api.Session(t, intruder)))
	assert.True(t, apisvc.IsNotFound(other.Contacts.Delete(ctx, c.ID)))
	contacts, err = other.Contacts.Mine(ctx)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
