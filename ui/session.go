package ui

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/user"
	apisvc "github.com/trezcool/estudos/services/api"
)

type Route string

const (
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
)

const (
	msgPasswordMismatch = "As senhas não coincidem"
	msgPasswordTooShort = "A senha deve ter pelo menos 6 caracteres"
	msgProfileRequired  = "Nome e email são obrigatórios."
	msgInvalidEmail     = "Por favor, insira um e-mail válido."

	minPasswordLength = 6
)

type ShellOptions struct {
	Client   *apisvc.Client
	Storage  user.SessionStorage
	Store    *cache.Store
	Notifier core.Notifier
	Logger   core.Logger
	Navigate func(Route) // optional
}

// Shell owns the session of the device: it gates the pages that need a user and
// sends the user back to login when the session is gone.
type Shell struct {
	client   *apisvc.Client
	storage  user.SessionStorage
	store    *cache.Store
	notifier core.Notifier
	logger   core.Logger
	navigate func(Route)
}

func NewShell(opts ShellOptions) *Shell {
	sh := &Shell{
		client:   opts.Client,
		storage:  opts.Storage,
		store:    opts.Store,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		navigate: opts.Navigate,
	}
	if sh.navigate == nil {
		sh.navigate = func(Route) {}
	}
	// the client has already cleared the stored session
	sh.client.OnUnauthorized(func() {
		sh.store.Reset()
		sh.navigate(RouteLogin)
	})
	return sh
}

func (sh *Shell) Store() *cache.Store     { return sh.store }
func (sh *Shell) Notifier() core.Notifier { return sh.notifier }
func (sh *Shell) Client() *apisvc.Client  { return sh.client }
func (sh *Shell) Navigate(route Route)    { sh.navigate(route) }

// RequireUser returns the stored user. Without one it redirects to login and fails with core.ErrNoSession.
func (sh *Shell) RequireUser() (user.User, error) {
	usr, err := sh.storage.User()
	if err != nil {
		return user.User{}, errors.Wrap(err, "reading stored user")
	}
	if usr == nil {
		sh.navigate(RouteLogin)
		return user.User{}, core.ErrNoSession
	}
	return *usr, nil
}

// Logout forgets the token, the user and every cached item, then redirects to login.
func (sh *Shell) Logout() error {
	err := sh.storage.Clear()
	sh.store.Reset()
	sh.navigate(RouteLogin)
	return errors.Wrap(err, "clearing session")
}

// LoginForm logs a user in and keeps the session on the device.
type LoginForm struct {
	Credentials user.Credentials
	shell       *Shell
}

func (sh *Shell) LoginForm() *LoginForm { return &LoginForm{shell: sh} }

func (f *LoginForm) Submit(ctx context.Context) (user.Session, error) {
	sh := f.shell
	sess, err := sh.client.Users.Login(ctx, f.Credentials)
	if err == nil {
		err = errors.Wrap(sh.storage.Save(sess), "saving session")
	}
	if err != nil {
		sh.logger.Info("login failed", err)
		sh.notifier.Error("Erro no login", describeLogin(err))
		return user.Session{}, err
	}

	sh.store.Reset()
	sh.notifier.Success("Login realizado com sucesso!", "Bem-vindo, "+sess.User.Name+"!")
	sh.navigate(RouteDashboard)
	return sess, nil
}

// RegisterForm creates an account. The new user still has to log in.
type RegisterForm struct {
	Registration user.Registration
	shell        *Shell
}

func (sh *Shell) RegisterForm() *RegisterForm { return &RegisterForm{shell: sh} }

func (f *RegisterForm) Submit(ctx context.Context) (user.User, error) {
	sh := f.shell
	reg := &f.Registration
	if reg.Password != reg.PasswordConfirm {
		return user.User{}, f.invalid("confirmacao", msgPasswordMismatch)
	}
	if len([]rune(reg.Password)) < minPasswordLength {
		return user.User{}, f.invalid("senha", msgPasswordTooShort)
	}

	usr, err := sh.client.Users.Register(ctx, *reg)
	if err != nil {
		sh.notifier.Error("Erro ao criar conta", Describe(err))
		return user.User{}, err
	}
	sh.notifier.Success("Conta criada com sucesso!", "Bem-vindo, "+usr.Name+"! Agora faça login.")
	sh.navigate(RouteLogin)
	return usr, nil
}

func (f *RegisterForm) invalid(field, msg string) error {
	err := core.NewValidationError(errors.New(msg), core.FieldError{Field: field, Error: msg})
	f.shell.notifier.Error("Erro ao criar conta", msg)
	return err
}

// ProfileForm edits the logged-in user and rewrites the stored copy on success.
type ProfileForm struct {
	Profile user.Profile
	userID  int
	shell   *Shell
}

// ProfileForm starts from the stored user. It fails like RequireUser.
func (sh *Shell) ProfileForm() (*ProfileForm, error) {
	usr, err := sh.RequireUser()
	if err != nil {
		return nil, err
	}
	return &ProfileForm{
		Profile: user.Profile{Name: usr.Name, Email: usr.Email},
		userID:  usr.ID,
		shell:   sh,
	}, nil
}

func (f *ProfileForm) Submit(ctx context.Context) (user.User, error) {
	sh := f.shell
	prof := &f.Profile
	prof.Name, prof.Email = core.CleanString(prof.Name), core.CleanString(prof.Email)
	if prof.Name == "" || prof.Email == "" {
		return user.User{}, f.invalid(msgProfileRequired)
	}
	if !core.IsEmail(prof.Email) {
		return user.User{}, f.invalid(msgInvalidEmail)
	}

	usr, err := sh.client.Users.UpdateProfile(ctx, f.userID, *prof)
	if err == nil {
		err = errors.Wrap(sh.storage.SetUser(usr), "saving user")
	}
	if err != nil {
		sh.notifier.Error("Erro ao atualizar perfil", Describe(err))
		return user.User{}, err
	}
	sh.notifier.Success("Perfil atualizado!", "Suas informações foram atualizadas com sucesso.")
	return usr, nil
}

func (f *ProfileForm) invalid(msg string) error {
	f.shell.notifier.Error("Erro ao atualizar perfil", msg)
	return core.NewValidationError(errors.New(msg))
}
