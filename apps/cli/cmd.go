package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core/subject"
	"github.com/trezcool/estudos/ui"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	shell *ui.Shell
	out   io.Writer
}

func newCommandLine(shell *ui.Shell) *commandLine {
	return &commandLine{shell: shell, out: os.Stdout}
}

func (cli *commandLine) printUsage() {
	cli.println("Uso:")
	cli.println("  login -email EMAIL                       - entra (a senha é pedida em seguida)")
	cli.println("  register -nome NOME -email EMAIL         - cria uma conta")
	cli.println("  logout                                   - sai")
	cli.println("  profile [-nome NOME] [-email EMAIL]      - mostra ou altera o perfil")
	cli.println("  dashboard                                - próximos lembretes e disciplinas")
	cli.println("  subjects  list|show ID|add|edit ID|rm ID - disciplinas")
	cli.println("  reminders list|add|edit ID|rm ID         - lembretes")
	cli.println("  contacts  list|add|edit ID|rm ID         - contatos")
	cli.println("  materials list|show ID|add|edit ID|rm ID - materiais")
}

func (cli *commandLine) println(a ...interface{}) {
	_, _ = fmt.Fprintln(cli.out, a...)
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, a...)
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()
	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "register":
		return cli.register(ctx, args[2:])
	case "logout":
		return cli.shell.Logout()
	case "profile":
		return cli.profile(ctx, args[2:])
	case "dashboard":
		return cli.dashboard(ctx)
	case "subjects":
		return cli.subjects(ctx, args[2:])
	case "reminders":
		return cli.reminders(ctx, args[2:])
	case "contacts":
		return cli.contacts(ctx, args[2:])
	case "materials":
		return cli.materials(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses `args`, turning -h into errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) readPassword(prompt string) (string, error) {
	cli.printf("%s: ", prompt)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	cli.println()
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

// subcommand splits `args` into the subcommand and its arguments.
func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

// itemID reads the item ID leading `args`.
func itemID(fs *flag.FlagSet, args []string) (int, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		fs.Usage()
		return 0, nil, errHelp
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, nil, errors.Errorf("ID inválido: %q", args[0])
	}
	return id, args[1:], nil
}

// findByID returns the item with `id` of a loaded collection.
func findByID[T any](items []T, id int, idOf func(T) int) (T, error) {
	for _, it := range items {
		if idOf(it) == id {
			return it, nil
		}
	}
	var zero T
	return zero, errors.Errorf("item %d não encontrado", id)
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// subjectFlag is a -disciplina value: a subject ID or (part of) its name.
type subjectFlag struct {
	query string
}

func (f *subjectFlag) String() string     { return f.query }
func (f *subjectFlag) Set(s string) error { f.query = s; return nil }

// resolve returns the ID of the subject, 0 when the flag is unset.
func (f *subjectFlag) resolve(ctx context.Context, store *cache.Store) (int, error) {
	if f.query == "" {
		return 0, nil
	}
	if !store.Subjects.Loaded() {
		if err := store.Subjects.Refresh(ctx); err != nil {
			return 0, err
		}
	}
	s, err := ui.ResolveSubject(store.Subjects.Items(), f.query)
	if err != nil {
		return 0, errors.Wrapf(err, "%q", f.query)
	}
	return s.ID, nil
}

func subjectName(subjects []subject.Subject, id int) string {
	if name, ok := subject.Names(subjects)[id]; ok {
		return name
	}
	return ui.NoSubject
}
