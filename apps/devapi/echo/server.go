package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/estudos/apps/devapi/store"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/user"
)

type (
	Options struct {
		Address            string
		Debug              bool
		DisableReqLogs     bool
		SecretKey          string
		JWTExpirationDelta time.Duration
		Logger             core.Logger
		DB                 *devstore.DB
	}

	Server struct {
		opts     Options
		app      *echo.Echo
		auth     *authenticator
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(opts Options) *Server {
	s := &Server{
		opts:     opts,
		app:      echo.New(),
		auth:     newAuthenticator(opts.SecretKey, opts.JWTExpirationDelta),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.RequestID()) // echoes the client's X-Request-ID

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	jwt := middleware.JWTWithConfig(s.auth.config)
	registerUserAPI(s.app, jwt, s.auth, s.opts.DB)
	registerSubjectAPI(s.app, jwt, s.opts.DB)
	registerReminderAPI(s.app, jwt, s.opts.DB)
	registerContactAPI(s.app, jwt, s.opts.DB)
	registerMaterialAPI(s.app, jwt, s.opts.DB)
}

// Start listens on the configured address and reports a failure on Errors().
// It also relays SIGINT/SIGTERM to ShutdownSignal().
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

// IssueToken returns a bearer token for `usr`, as the login endpoint would.
func (s *Server) IssueToken(usr user.User) (string, error) {
	return s.auth.generateToken(usr)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Estudos dev API")
}
