package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/estudos/apps/devapi/store"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/subject"
	"github.com/trezcool/estudos/core/user"
)

var readPasswordFunc = term.ReadPassword // mockable

type seedOptions struct {
	enabled bool
	name    string
	email   string
	pwd     string
}

func parseFlags(args []string) (seedOptions, error) {
	var opts seedOptions
	fs := flag.NewFlagSet("estudos-devapi", flag.ContinueOnError)
	fs.BoolVar(&opts.enabled, "seed", false, "Creates a demo account with sample subjects.")
	fs.StringVar(&opts.name, "nome", "Demo", "Name of the demo account.")
	fs.StringVar(&opts.email, "email", "demo@estudos.dev", "E-mail of the demo account.")
	fs.StringVar(&opts.pwd, "senha", "", "Password of the demo account. Prompted when empty.")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.enabled && opts.pwd == "" {
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return opts, errors.Wrap(err, "reading password")
		}
		opts.pwd = string(pwd)
	}
	return opts, nil
}

// seed creates the demo account of `opts` and two subjects it owns.
func seed(db *devstore.DB, opts seedOptions) (user.User, error) {
	email := core.CleanString(opts.email)
	if !core.IsEmail(email) {
		return user.User{}, errors.Errorf("invalid e-mail: %q", opts.email)
	}
	if len(opts.pwd) < 6 {
		return user.User{}, errors.New("password must have at least 6 characters")
	}
	usr, err := db.Users.Create(core.CleanString(opts.name), email, opts.pwd)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating demo account")
	}

	for _, s := range []subject.Subject{
		{Name: "Cálculo I", Room: "B12", Professor: "Dr. Silva", Schedule: "Ter 10-12", Semester: "2024.2"},
		{Name: "Algoritmos", Room: "Lab 3", Professor: "Dra. Costa", Schedule: "Qui 14-16", Semester: "2024.2"},
	} {
		s.UserID = usr.ID
		db.Subjects.Insert(s)
	}
	return usr, nil
}
