package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/user"
	apisvc "github.com/trezcool/estudos/services/api"
	logsvc "github.com/trezcool/estudos/services/logger"
	notifysvc "github.com/trezcool/estudos/services/notify"
	"github.com/trezcool/estudos/storage/inmem"
	"github.com/trezcool/estudos/tests"
	"github.com/trezcool/estudos/ui"
)

type cliFixture struct {
	cli     *commandLine
	api     *testutil.DevAPI
	storage user.SessionStorage
	out     *bytes.Buffer
}

func setup(t *testing.T) *cliFixture {
	api := testutil.StartDevAPI(t)
	storage := inmem.NewSessionStorage()
	out := new(bytes.Buffer)

	client := testutil.NewClient(api.URL, storage)
	shell := ui.NewShell(ui.ShellOptions{
		Client:   client,
		Storage:  storage,
		Store:    cache.NewStore(client, logsvc.NewNopLogger()),
		Notifier: notifysvc.NewConsoleNotifier(out),
		Logger:   logsvc.NewNopLogger(),
	})
	return &cliFixture{
		cli:     &commandLine{shell: shell, out: out},
		api:     api,
		storage: storage,
		out:     out,
	}
}

func (f *cliFixture) loginAs(t *testing.T, name, email string) user.User {
	usr := f.api.CreateUser(t, name, email, "123456")
	require.NoError(t, f.storage.Save(f.api.Session(t, usr)))
	return usr
}

type cliTest struct {
	name        string
	args        []string // without program name
	wantErr     error
	wantErrStr  string
	wantInvalid bool // local form validation fails
	extra       interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.True(t, errors.Is(err, tt.wantErr), "cli.run() error = %v, wantErr %v", err, tt.wantErr)
	case tt.wantInvalid:
		assert.True(t, core.IsValidationError(err), "cli.run() error = %v, want a validation error", err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
}

func mockPasswords(pwds ...string) {
	readPasswordFunc = func(fd int) ([]byte, error) {
		if len(pwds) == 0 {
			return nil, nil
		}
		pwd := pwds[0]
		pwds = pwds[1:]
		return []byte(pwd), nil
	}
}

func Test_commandLine_run(t *testing.T) {
	f := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "subjects without session", args: []string{"subjects", "list"}, wantErr: core.ErrNoSession},
		{name: "dashboard without session", args: []string{"dashboard"}, wantErr: core.ErrNoSession},
		{name: "profile without session", args: []string{"profile"}, wantErr: core.ErrNoSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, f.cli.run(append([]string{"estudos"}, tt.args...)))
		})
	}
}

func Test_commandLine_login(t *testing.T) {
	f := setup(t)
	usr := f.api.CreateUser(t, "Ana", "ana@test.com", "123456")

	type extra struct {
		pwd        string
		wantStatus int
	}
	tests := []cliTest{
		{name: "no args", args: []string{"login"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"login", "-email", usr.Email}, wantErr: errHelp},
		{name: "wrong password", args: []string{"login", "-email", usr.Email}, extra: extra{pwd: "lol", wantStatus: http.StatusBadRequest}},
		{name: "login", args: []string{"login", "-email", usr.Email}, extra: extra{pwd: "123456"}},
	}
	for _, tt := range tests {
		args := append([]string{"estudos"}, tt.args...)

		if extra, ok := tt.extra.(extra); ok {
			mockPasswords(extra.pwd)
		} else {
			mockPasswords()
		}

		t.Run(tt.name, func(t *testing.T) {
			err := f.cli.run(args)
			if extra, ok := tt.extra.(extra); ok && extra.wantStatus != 0 {
				var apiErr *apisvc.Error
				require.True(t, errors.As(err, &apiErr), "cli.run() error = %v, want an API error", err)
				assert.Equal(t, extra.wantStatus, apiErr.Status)
				assert.Contains(t, f.out.String(), "E-mail ou senha incorretos")
				return
			}
			tt.check(t, err)
			if err == nil {
				stored, err := f.storage.User()
				require.NoError(t, err)
				require.NotNil(t, stored)
				assert.Equal(t, usr.ID, stored.ID)
				assert.Contains(t, f.out.String(), "Bem-vindo, Ana!")
			}
		})
	}
}

func Test_commandLine_register(t *testing.T) {
	f := setup(t)

	tests := []struct {
		cliTest
		pwds      []string
		wantUsers int
	}{
		{cliTest: cliTest{name: "no args", args: []string{"register"}, wantErr: errHelp}},
		{cliTest: cliTest{name: "no email", args: []string{"register", "-nome", "Ana"}, wantErr: errHelp}},
		{
			cliTest: cliTest{name: "passwords differ", args: []string{"register", "-nome", "Ana", "-email", "ana@test.com"}, wantInvalid: true},
			pwds:    []string{"123456", "654321"},
		},
		{
			cliTest:   cliTest{name: "register", args: []string{"register", "-nome", "Ana", "-email", "ana@test.com"}},
			pwds:      []string{"123456", "123456"},
			wantUsers: 1,
		},
	}
	for _, tt := range tests {
		args := append([]string{"estudos"}, tt.args...)
		mockPasswords(tt.pwds...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, f.cli.run(args))
			assert.Equal(t, tt.wantUsers, f.api.DB.Users.Len())
		})
	}

	// registration does not log in
	usr, err := f.storage.User()
	require.NoError(t, err)
	assert.Nil(t, usr)
}

func Test_commandLine_profile(t *testing.T) {
	f := setup(t)
	f.loginAs(t, "Ana", "ana@test.com")

	require.NoError(t, f.cli.run([]string{"estudos", "profile"}))
	assert.Contains(t, f.out.String(), "[A] Ana <ana@test.com>")

	f.out.Reset()
	require.NoError(t, f.cli.run([]string{"estudos", "profile", "-nome", "Beatriz"}))
	assert.Contains(t, f.out.String(), "[B] Beatriz <ana@test.com>")

	stored, err := f.storage.User()
	require.NoError(t, err)
	assert.Equal(t, "Beatriz", stored.Name)
}

func Test_commandLine_subjects(t *testing.T) {
	f := setup(t)
	usr := f.loginAs(t, "Ana", "ana@test.com")
	other := f.api.CreateUser(t, "Bia", "bia@test.com", "123456")
	foreign := f.api.CreateSubject(t, other.ID, "Química", "2024.2")

	add := []string{
		"subjects", "add",
		"-nome", "Cálculo I", "-sala", "B12", "-professor", "Dr. Silva",
		"-horario", "Ter 10-12", "-semestre", "2024.2", "-notas", "7.5",
	}
	tests := []cliTest{
		{name: "no subcommand", args: []string{"subjects"}, wantErr: errHelp},
		{name: "add: missing fields", args: []string{"subjects", "add", "-nome", "Física"}, wantInvalid: true},
		{name: "add", args: add},
		{name: "edit: no ID", args: []string{"subjects", "edit", "-notas", "9"}, wantErr: errHelp},
		{name: "edit: bad ID", args: []string{"subjects", "edit", "abc"}, wantErrStr: `ID inválido: "abc"`},
		{name: "edit: other user's subject", args: []string{"subjects", "edit", "1", "-notas", "9"}, wantErrStr: "item 1 não encontrado"},
		{name: "edit", args: []string{"subjects", "edit", "2", "-notas", "9", "-faltas", "3"}},
		{name: "edit: grade out of range", args: []string{"subjects", "edit", "2", "-notas", "11"}, wantInvalid: true},
		{name: "list", args: []string{"subjects", "list", "-q", "silva"}},
		{name: "show", args: []string{"subjects", "show", "2"}},
	}
	require.Equal(t, 1, foreign.ID)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, f.cli.run(append([]string{"estudos"}, tt.args...)))
		})
	}

	s, err := f.api.DB.Subjects.Get(2)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, s.UserID)
	assert.Equal(t, "Cálculo I", s.Name)
	assert.Equal(t, "B12", s.Room)
	assert.Equal(t, 9.0, s.Grade)
	assert.Equal(t, 3, s.Absences)
	assert.Contains(t, f.out.String(), "1 de 1 disciplinas")

	untouched, err := f.api.DB.Subjects.Get(foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, foreign, untouched)

	require.NoError(t, f.cli.run([]string{"estudos", "subjects", "rm", "2"}))
	_, err = f.api.DB.Subjects.Get(2)
	assert.Error(t, err)
	assert.Contains(t, f.out.String(), "Disciplina excluída")
}

func Test_commandLine_reminders(t *testing.T) {
	f := setup(t)
	usr := f.loginAs(t, "Ana", "ana@test.com")
	f.api.CreateSubject(t, usr.ID, "Cálculo I", "2024.2")
	physics := f.api.CreateSubject(t, usr.ID, "Física Experimental", "2024.2")

	tests := []cliTest{
		{name: "no subcommand", args: []string{"reminders"}, wantErr: errHelp},
		{name: "add: unknown subject", args: []string{"reminders", "add", "-titulo", "Prova", "-disciplina", "zzz", "-data", "2030-05-10"}, wantErr: ui.ErrSubjectNotFound},
		{name: "add: no subject", args: []string{"reminders", "add", "-titulo", "Prova", "-data", "2030-05-10"}, wantInvalid: true},
		{name: "add: subject by name", args: []string{"reminders", "add", "-titulo", "Prova", "-disciplina", "física", "-data", "2030-05-10", "-hora", "10:00"}},
		{name: "edit keeps subject", args: []string{"reminders", "edit", "1", "-titulo", "Prova final"}},
		{name: "list by subject", args: []string{"reminders", "list", "-disciplina", "Física Experimental"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, f.cli.run(append([]string{"estudos"}, tt.args...)))
		})
	}

	r, err := f.api.DB.Reminders.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Prova final", r.Title)
	assert.Equal(t, physics.ID, r.SubjectID)
	assert.Equal(t, "2030-05-10 10:00", formatTime(r.StartsAt))
	assert.Contains(t, f.out.String(), "1 de 1 lembretes")

	require.NoError(t, f.cli.run([]string{"estudos", "reminders", "rm", "1"}))
	assert.Equal(t, 0, f.api.DB.Reminders.Len())
}

func Test_commandLine_remindersEditMovesEnd(t *testing.T) {
	f := setup(t)
	usr := f.loginAs(t, "Ana", "ana@test.com")
	f.api.CreateSubject(t, usr.ID, "Cálculo I", "2024.2")

	require.NoError(t, f.cli.run([]string{
		"estudos", "reminders", "add", "-titulo", "Prova", "-disciplina", "1",
		"-data", "2030-05-10", "-hora", "10:00", "-data-fim", "2030-05-10", "-hora-fim", "12:00",
	}))

	tests := []struct {
		cliTest
		wantStart, wantEnd string
	}{
		{
			cliTest:   cliTest{name: "later date", args: []string{"reminders", "edit", "1", "-data", "2030-06-01"}},
			wantStart: "2030-06-01 10:00", wantEnd: "2030-06-01 12:00",
		},
		{
			cliTest:   cliTest{name: "later time", args: []string{"reminders", "edit", "1", "-hora", "23:00"}},
			wantStart: "2030-06-01 23:00", wantEnd: "2030-06-02 01:00",
		},
		{
			cliTest:   cliTest{name: "explicit end date", args: []string{"reminders", "edit", "1", "-data", "2030-07-01", "-data-fim", "2030-07-03"}},
			wantStart: "2030-07-01 23:00", wantEnd: "2030-07-03 01:00",
		},
		{
			cliTest:   cliTest{name: "end before start", args: []string{"reminders", "edit", "1", "-data-fim", "2030-01-01"}, wantInvalid: true},
			wantStart: "2030-07-01 23:00", wantEnd: "2030-07-03 01:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, f.cli.run(append([]string{"estudos"}, tt.args...)))
			r, err := f.api.DB.Reminders.Get(1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, formatTime(r.StartsAt))
			assert.Equal(t, tt.wantEnd, formatTime(r.EndsAt))
		})
	}
}

func Test_commandLine_contactsAndMaterials(t *testing.T) {
	f := setup(t)
	usr := f.loginAs(t, "Ana", "ana@test.com")
	calc := f.api.CreateSubject(t, usr.ID, "Cálculo I", "2024.2")

	tests := []cliTest{
		{name: "contact: bad email", args: []string{"contacts", "add", "-nome", "Prof. Silva", "-email", "silva", "-disciplina", "cálculo"}, wantInvalid: true},
		{name: "contact", args: []string{"contacts", "add", "-nome", "Prof. Silva", "-email", "silva@uni.br", "-disciplina", "cálculo"}},
		{name: "contacts list", args: []string{"contacts", "list"}},
		{name: "material: bad link", args: []string{"materials", "add", "-nome", "Apostila", "-links", "ftp://x", "-disciplina", "1"}, wantInvalid: true},
		{name: "material", args: []string{"materials", "add", "-nome", "Apostila", "-links", "https://a.com, https://b.com", "-disciplina", "1"}},
		{name: "materials list", args: []string{"materials", "list", "-q", "apostila"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, f.cli.run(append([]string{"estudos"}, tt.args...)))
		})
	}

	c, err := f.api.DB.Contacts.Get(1)
	require.NoError(t, err)
	assert.Equal(t, calc.ID, c.SubjectID)

	m, err := f.api.DB.Materials.Get(1)
	require.NoError(t, err)
	assert.Equal(t, calc.ID, m.SubjectID)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, m.LinkList())

	out := f.out.String()
	assert.Contains(t, out, "Cálculo I")
	assert.Contains(t, out, "silva@uni.br")
}
