// Command estudos is the terminal client of the Estudos API.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/user"
)

func main() {
	c := newContainer()

	err := c.Invoke(func(cli *commandLine, storage user.SessionStorage, logger core.Logger) error {
		defer func() {
			if err := storage.Close(); err != nil {
				logger.Error("closing session storage", err)
			}
		}()
		return cli.run(os.Args)
	})
	if err != nil {
		if !errors.Is(err, errHelp) {
			_, _ = fmt.Fprintf(os.Stderr, "\nerro: %s\n", err)
		}
		os.Exit(1)
	}
}
