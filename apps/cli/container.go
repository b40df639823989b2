package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/user"
	apisvc "github.com/trezcool/estudos/services/api"
	logsvc "github.com/trezcool/estudos/services/logger"
	notifysvc "github.com/trezcool/estudos/services/notify"
	"github.com/trezcool/estudos/storage/boltdb"
	"github.com/trezcool/estudos/ui"
)

// newLogger writes to a log file of the data dir so that logs do not mix with the command output.
func newLogger(conf *core.Config) (core.Logger, error) {
	if err := os.MkdirAll(conf.DataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	logFile, err := os.OpenFile(filepath.Join(conf.DataDir, "estudos.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "opening log file")
	}
	stdLogger := log.New(logFile, "CLI : ", log.LstdFlags|log.Lmicroseconds)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger, nil
}

func newSessionStorage(conf *core.Config) (user.SessionStorage, error) {
	return boltdb.Open(conf.SessionDBPath())
}

func newNotifier() core.Notifier {
	return notifysvc.NewConsoleNotifier(os.Stdout)
}

func newAPIClient(conf *core.Config, storage user.SessionStorage, logger core.Logger) *apisvc.Client {
	return apisvc.NewClient(apisvc.Options{
		BaseURL: conf.APIURL,
		Timeout: conf.APITimeout,
		Storage: storage,
		Logger:  logger,
	})
}

func newShell(client *apisvc.Client, storage user.SessionStorage, store *cache.Store, notifier core.Notifier, logger core.Logger) *ui.Shell {
	return ui.NewShell(ui.ShellOptions{
		Client:   client,
		Storage:  storage,
		Store:    store,
		Notifier: notifier,
		Logger:   logger,
	})
}

// newContainer returns the dependency injection dig.Container of the CLI.
func newContainer() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newSessionStorage))
	must(c.Provide(newNotifier))
	must(c.Provide(newAPIClient))
	must(c.Provide(cache.NewStore))
	must(c.Provide(newShell))
	must(c.Provide(newCommandLine))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
