package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/user"
	notifysvc "github.com/trezcool/estudos/services/notify"
)

func TestLoginForm(t *testing.T) {
	f := setup(t)
	ana := f.api.CreateUser(t, "Ana", "ana@test.com", "123456")
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		form := f.shell.LoginForm()
		form.Credentials = user.Credentials{Email: "ana@test.com", Password: "nope"}
		_, err := form.Submit(ctx)
		require.Error(t, err)

		assert.Equal(t, []notifysvc.Toast{{Title: "Erro no login", Desc: msgInvalidCredentials}}, f.toasts.Toasts())
		token, _ := f.storage.Token()
		assert.Empty(t, token)
		assert.Equal(t, Route(""), f.lastRoute())
	})

	t.Run("invalid email", func(t *testing.T) {
		f.toasts.Reset()
		form := f.shell.LoginForm()
		form.Credentials = user.Credentials{Email: "ana", Password: "123456"}
		_, err := form.Submit(ctx)
		assert.True(t, core.IsValidationError(err))
		assert.Len(t, f.toasts.Errors(), 1)
	})

	t.Run("valid", func(t *testing.T) {
		f.toasts.Reset()
		form := f.shell.LoginForm()
		form.Credentials = user.Credentials{Email: " ANA@test.com ", Password: "123456"}
		sess, err := form.Submit(ctx)
		require.NoError(t, err)
		assert.Equal(t, ana, sess.User)

		token, _ := f.storage.Token()
		assert.Equal(t, sess.Token, token)
		stored, _ := f.storage.User()
		require.NotNil(t, stored)
		assert.Equal(t, ana, *stored)

		assert.Equal(t, RouteDashboard, f.lastRoute())
		assert.Equal(t, []notifysvc.Toast{{Success: true, Title: "Login realizado com sucesso!", Desc: "Bem-vindo, Ana!"}}, f.toasts.Toasts())
	})
}

func TestRegisterForm(t *testing.T) {
	f := setup(t)
	f.api.CreateUser(t, "Bia", "bia@test.com", "123456")
	ctx := context.Background()

	tests := []struct {
		name     string
		reg      user.Registration
		wantDesc string
	}{
		{
			name:     "passwords differ",
			reg:      user.Registration{Name: "Ana", Email: "ana@test.com", Password: "123456", PasswordConfirm: "654321"},
			wantDesc: msgPasswordMismatch,
		},
		{
			name:     "password too short",
			reg:      user.Registration{Name: "Ana", Email: "ana@test.com", Password: "12345", PasswordConfirm: "12345"},
			wantDesc: msgPasswordTooShort,
		},
		{
			name:     "email taken",
			reg:      user.Registration{Name: "Ana", Email: "BIA@test.com", Password: "123456", PasswordConfirm: "123456"},
			wantDesc: msgEmailTaken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.toasts.Reset()
			form := f.shell.RegisterForm()
			form.Registration = tt.reg
			_, err := form.Submit(ctx)
			require.Error(t, err)
			assert.Equal(t, []notifysvc.Toast{{Title: "Erro ao criar conta", Desc: tt.wantDesc}}, f.toasts.Toasts())
		})
	}
	assert.Equal(t, 1, f.api.DB.Users.Len(), "invalid registrations create nobody")

	f.toasts.Reset()
	form := f.shell.RegisterForm()
	form.Registration = user.Registration{Name: "Ana", Email: "ana@test.com", Password: "123456", PasswordConfirm: "123456"}
	usr, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", usr.Name)
	assert.Equal(t, RouteLogin, f.lastRoute())
	assert.Equal(t, "Bem-vindo, Ana! Agora faça login.", f.toasts.Toasts()[0].Desc)

	stored, _ := f.storage.User()
	assert.Nil(t, stored, "registering does not log in")
}

func TestProfileForm(t *testing.T) {
	f := setup(t)
	_, err := f.shell.ProfileForm()
	assert.Equal(t, core.ErrNoSession, err)
	assert.Equal(t, RouteLogin, f.lastRoute())

	ana := f.loginAs(t, "Ana", "ana@test.com")
	f.api.CreateUser(t, "Bia", "bia@test.com", "123456")
	ctx := context.Background()

	tests := []struct {
		name     string
		profile  user.Profile
		wantDesc string
	}{
		{name: "blank name", profile: user.Profile{Name: " ", Email: "ana@test.com"}, wantDesc: msgProfileRequired},
		{name: "bad email", profile: user.Profile{Name: "Ana", Email: "ana@"}, wantDesc: msgInvalidEmail},
		{name: "email taken", profile: user.Profile{Name: "Ana", Email: "bia@test.com"}, wantDesc: msgEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.toasts.Reset()
			form, err := f.shell.ProfileForm()
			require.NoError(t, err)
			form.Profile = tt.profile
			_, err = form.Submit(ctx)
			require.Error(t, err)
			assert.Equal(t, []notifysvc.Toast{{Title: "Erro ao atualizar perfil", Desc: tt.wantDesc}}, f.toasts.Toasts())

			stored, _ := f.storage.User()
			assert.Equal(t, ana, *stored)
		})
	}

	form, err := f.shell.ProfileForm()
	require.NoError(t, err)
	assert.Equal(t, user.Profile{Name: "Ana", Email: "ana@test.com"}, form.Profile)
	form.Profile.Name = "Ana Maria"
	updated, err := form.Submit(ctx)
	require.NoError(t, err)

	stored, _ := f.storage.User()
	assert.Equal(t, updated, *stored)
	assert.Equal(t, "Ana Maria", stored.Name)
	token, _ := f.storage.Token()
	assert.NotEmpty(t, token, "the token is kept")
}

func TestShell_RequireUser(t *testing.T) {
	f := setup(t)
	_, err := f.shell.RequireUser()
	assert.Equal(t, core.ErrNoSession, err)
	assert.Equal(t, RouteLogin, f.lastRoute())

	ana := f.loginAs(t, "Ana", "ana@test.com")
	usr, err := f.shell.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, ana, usr)
}

func TestShell_Logout(t *testing.T) {
	f := setup(t)
	ana := f.loginAs(t, "Ana", "ana@test.com")
	f.subject(t, ana.ID, "Redes", "2024.2")
	f.refresh(t)
	require.Len(t, f.store.Subjects.Items(), 1)

	require.NoError(t, f.shell.Logout())
	token, _ := f.storage.Token()
	stored, _ := f.storage.User()
	assert.Empty(t, token)
	assert.Nil(t, stored)
	assert.Empty(t, f.store.Subjects.Items())
	assert.Equal(t, RouteLogin, f.lastRoute())
}

func TestShell_unauthorizedEndsOnLogin(t *testing.T) {
	f := setup(t)
	ana := f.api.CreateUser(t, "Ana", "ana@test.com", "123456")
	require.NoError(t, f.storage.Save(user.Session{User: ana, Token: "expired"}))

	list := NewSubjectList(f.store, f.toasts)
	defer list.Close()
	require.Error(t, list.Load(context.Background()))

	token, _ := f.storage.Token()
	stored, _ := f.storage.User()
	assert.Empty(t, token)
	assert.Nil(t, stored)
	assert.Equal(t, RouteLogin, f.lastRoute())
}
