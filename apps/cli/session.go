package main

import (
	"context"
	"strconv"

	"github.com/trezcool/estudos/core/subject"
	"github.com/trezcool/estudos/core/user"
)

func (cli *commandLine) login(ctx context.Context, args []string) error {
	fs := cli.flagSet("login")
	email := fs.String("email", "", "O e-mail da conta. A senha é pedida em seguida.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword("Senha")
	if err != nil {
		return err
	}
	if pwd == "" {
		fs.Usage()
		return errHelp
	}

	form := cli.shell.LoginForm()
	form.Credentials = user.Credentials{Email: *email, Password: pwd}
	_, err = form.Submit(ctx)
	return err
}

func (cli *commandLine) register(ctx context.Context, args []string) error {
	fs := cli.flagSet("register")
	name := fs.String("nome", "", "Seu nome.")
	email := fs.String("email", "", "Seu e-mail. A senha é pedida em seguida.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *name == "" || *email == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword("Senha")
	if err != nil {
		return err
	}
	confirm, err := cli.readPassword("Confirme a senha")
	if err != nil {
		return err
	}

	form := cli.shell.RegisterForm()
	form.Registration = user.Registration{Name: *name, Email: *email, Password: pwd, PasswordConfirm: confirm}
	_, err = form.Submit(ctx)
	return err
}

// profile shows the logged-in user, or updates it when a flag is given.
func (cli *commandLine) profile(ctx context.Context, args []string) error {
	form, err := cli.shell.ProfileForm()
	if err != nil {
		return err
	}
	fs := cli.flagSet("profile")
	fs.StringVar(&form.Profile.Name, "nome", form.Profile.Name, "Novo nome.")
	fs.StringVar(&form.Profile.Email, "email", form.Profile.Email, "Novo e-mail.")
	if err := parse(fs, args); err != nil {
		return err
	}

	if fs.NFlag() > 0 {
		if _, err := form.Submit(ctx); err != nil {
			return err
		}
	}
	usr, err := cli.shell.RequireUser()
	if err != nil {
		return err
	}
	cli.printf("[%s] %s <%s>\n", usr.Initial(), usr.Name, usr.Email)
	return nil
}

func (cli *commandLine) dashboard(ctx context.Context) error {
	usr, err := cli.shell.RequireUser()
	if err != nil {
		return err
	}
	d := cli.shell.Dashboard()
	if err := d.Load(ctx); err != nil {
		return err
	}

	cli.printf("Olá, %s!\n\n", usr.Name)

	cli.println("Próximos lembretes")
	upcoming := d.UpcomingReminders()
	if len(upcoming) == 0 {
		cli.println("Nenhum lembrete próximo")
	} else {
		tw := cli.table("ID", "LEMBRETE", "DISCIPLINA", "DATA", "FALTAM")
		for _, r := range upcoming {
			row(tw, r.ID, r.Title, r.SubjectName, formatTime(r.StartsAt), daysLabel(r.Days, r.Urgency))
		}
		_ = tw.Flush()
	}

	cli.println()
	cli.println("Disciplinas")
	cards := d.SubjectCards()
	if len(cards) == 0 {
		cli.println("Nenhuma disciplina encontrada")
		return nil
	}
	tw := cli.table("ID", "DISCIPLINA", "PROFESSOR", "HORÁRIO", "NOTA", "FALTAS")
	for _, c := range cards {
		row(tw, c.ID, c.Name, c.Professor, c.Schedule,
			standingLabel(strconv.FormatFloat(c.Grade, 'f', 1, 64), c.GradeStanding),
			standingLabel(strconv.Itoa(c.Absences), c.AbsenceStanding),
		)
	}
	return tw.Flush()
}

func standingLabel(value string, st subject.Standing) string {
	switch st {
	case subject.StandingWarning:
		return value + " !"
	case subject.StandingCritical:
		return value + " !!"
	}
	return value
}
