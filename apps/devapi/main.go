package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/trezcool/estudos/apps/devapi/echo"
	"github.com/trezcool/estudos/apps/devapi/store"
	"github.com/trezcool/estudos/core"
	logsvc "github.com/trezcool/estudos/services/logger"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	stdLogger := log.New(os.Stdout, "DEVAPI : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	db := devstore.Open()
	if opts.enabled {
		usr, err := seed(db, opts)
		if err != nil {
			logger.Fatal(fmt.Sprintf("seeding: %v", err), err)
		}
		logger.Info(fmt.Sprintf("demo account %q created", usr.Email))
	}

	server := echoapi.NewServer(echoapi.Options{
		Address:            conf.DevAPI.Addr,
		Debug:              conf.Debug,
		SecretKey:          conf.DevAPI.SecretKey,
		JWTExpirationDelta: conf.DevAPI.JWTExpirationDelta,
		Logger:             logger,
		DB:                 db,
	})

	// =========================================================================
	// Start API Service

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.DevAPI.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
