package main

import (
	"context"
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
	"github.com/trezcool/estudos/ui"
)

// formFlags binds the flags of a form. The returned hook runs after parsing.
type formFlags[F any] func(fs *flag.FlagSet, form *F) (after func(ctx context.Context) error)

// save runs `add` (edit false) or `edit ID` (edit true) for one collection.
func save[T any, F any](
	ctx context.Context,
	fs *flag.FlagSet,
	args []string,
	edit bool,
	coll *cache.Collection[T, F],
	idOf func(T) int,
	newForm func(existing *T) *ui.FormView[T, F],
	bind formFlags[F],
) (T, error) {
	var (
		zero     T
		existing *T
	)
	if edit {
		id, rest, err := itemID(fs, args)
		if err != nil {
			return zero, err
		}
		if err = coll.Refresh(ctx); err != nil {
			return zero, err
		}
		it, err := findByID(coll.Items(), id, idOf)
		if err != nil {
			return zero, err
		}
		existing, args = &it, rest
	}

	form := newForm(existing)
	after := bind(fs, &form.Form)
	if err := parse(fs, args); err != nil {
		return zero, err
	}
	if after != nil {
		if err := after(ctx); err != nil {
			return zero, err
		}
	}
	return form.Submit(ctx)
}

// remove runs `rm ID`.
func remove(fs *flag.FlagSet, args []string, del func(id int) error) error {
	id, _, err := itemID(fs, args)
	if err != nil {
		return err
	}
	return del(id)
}

func (cli *commandLine) resourceUsage(name, usage string) error {
	cli.printf("Uso: %s %s\n", name, usage)
	return errHelp
}

// Subjects

func subjectID(s subject.Subject) int { return s.ID }

func bindSubject(fs *flag.FlagSet, f *subject.Form) func(context.Context) error {
	fs.StringVar(&f.Name, "nome", f.Name, "Nome da disciplina.")
	fs.StringVar(&f.Room, "sala", f.Room, "Sala.")
	fs.StringVar(&f.Professor, "professor", f.Professor, "Professor.")
	fs.StringVar(&f.Schedule, "horario", f.Schedule, "Horário, ex. \"Ter 10-12\".")
	fs.StringVar(&f.Semester, "semestre", f.Semester, "Semestre, ex. 2024.2.")
	fs.StringVar(&f.Assessments, "avaliacoes", f.Assessments, "Avaliações, ex. \"P1: 8.5, P2: 7.0\".")
	fs.IntVar(&f.Absences, "faltas", f.Absences, "Número de faltas.")
	fs.Float64Var(&f.Grade, "notas", f.Grade, "Nota (0 a 10).")
	return nil
}

func (cli *commandLine) subjects(ctx context.Context, args []string) error {
	if _, err := cli.shell.RequireUser(); err != nil {
		return err
	}
	store, notifier := cli.shell.Store(), cli.shell.Notifier()
	newForm := func(s *subject.Subject) *ui.SubjectForm { return ui.NewSubjectForm(store, notifier, s) }

	sub, args := subcommand(args)
	fs := cli.flagSet("subjects " + sub)
	switch sub {
	case "list":
		search := fs.String("q", "", "Busca por nome ou professor.")
		semester := fs.String("semestre", "", "Filtra por semestre.")
		if err := parse(fs, args); err != nil {
			return err
		}
		list := ui.NewSubjectList(store, notifier)
		defer list.Close()
		if err := list.Load(ctx); err != nil {
			return err
		}
		list.SetSearch(*search)
		list.SetCategory(*semester)
		cli.printSubjects(list)
		return nil
	case "show":
		id, _, err := itemID(fs, args)
		if err != nil {
			return err
		}
		details, err := cli.shell.Dashboard().SubjectDetails(ctx, id)
		if err != nil {
			return err
		}
		cli.printSubjectDetails(details)
		return nil
	case "add", "edit":
		s, err := save(ctx, fs, args, sub == "edit", store.Subjects, subjectID, newForm, bindSubject)
		if err != nil {
			return err
		}
		cli.printf("Disciplina %d: %s\n", s.ID, s.Name)
		return nil
	case "rm":
		list := ui.NewSubjectList(store, notifier)
		defer list.Close()
		return remove(fs, args, func(id int) error { return list.Delete(ctx, id) })
	default:
		return cli.resourceUsage("subjects", "list [-q TEXTO] [-semestre SEMESTRE] | show ID | add -nome ... | edit ID [-notas N ...] | rm ID")
	}
}

func (cli *commandLine) printSubjects(list *ui.SubjectList) {
	visible, total := list.Counts()
	if visible == 0 {
		cli.println("Nenhuma disciplina encontrada")
	} else {
		tw := cli.table("ID", "DISCIPLINA", "PROFESSOR", "SALA", "HORÁRIO", "SEMESTRE", "NOTA", "FALTAS")
		for _, s := range list.Visible() {
			row(tw, s.ID, s.Name, s.Professor, s.Room, s.Schedule, s.Semester, s.Grade, s.Absences)
		}
		_ = tw.Flush()
	}
	cli.printf("%d de %d disciplinas\n", visible, total)
}

func (cli *commandLine) printSubjectDetails(d ui.SubjectDetails) {
	s := d.Subject
	cli.printf("%s (%s)\n", s.Name, s.Semester)
	cli.printf("Professor: %s | Sala: %s | Horário: %s\n", s.Professor, s.Room, s.Schedule)
	cli.printf("Nota: %.1f | Faltas: %d\n", s.Grade, s.Absences)
	if s.Assessments != "" {
		cli.printf("Avaliações: %s\n", s.Assessments)
	}

	cli.printf("\nLembretes (%d)\n", len(d.Reminders))
	for _, r := range d.Reminders {
		cli.printf("  %s  %s\n", formatTime(r.StartsAt), r.Title)
	}
	cli.printf("\nContatos (%d)\n", len(d.Contacts))
	for _, c := range d.Contacts {
		cli.printf("  %s <%s> %s\n", c.Name, c.Email, c.Phone)
	}
	cli.printf("\nMateriais (%d)\n", len(d.Materials))
	for _, m := range d.Materials {
		cli.printf("  %s (%d links)\n", m.Name, len(m.LinkList()))
	}
}

// Reminders

func reminderID(r reminder.Reminder) int { return r.ID }

func bindReminder(store *cache.Store) formFlags[reminder.Form] {
	return func(fs *flag.FlagSet, f *reminder.Form) func(context.Context) error {
		var subj subjectFlag
		fs.StringVar(&f.Title, "titulo", f.Title, "Título.")
		fs.StringVar(&f.Description, "descricao", f.Description, "Descrição.")
		fs.Var(&subj, "disciplina", "ID ou nome da disciplina.")
		fs.StringVar(&f.StartDate, "data", f.StartDate, "Data de início (AAAA-MM-DD).")
		fs.StringVar(&f.StartTime, "hora", f.StartTime, "Hora de início (HH:MM).")
		fs.StringVar(&f.EndDate, "data-fim", f.EndDate, "Data de fim (AAAA-MM-DD); padrão: a data de início.")
		fs.StringVar(&f.EndTime, "hora-fim", f.EndTime, "Hora de fim (HH:MM).")
		start, end := f.StartDate+" "+f.StartTime, f.EndDate+" "+f.EndTime
		return func(ctx context.Context) error {
			set := setFlags(fs)
			if (set["data"] || set["hora"]) && !set["data-fim"] && !set["hora-fim"] {
				shiftEnd(f, start, end)
			}
			id, err := subj.resolve(ctx, store)
			if id != 0 {
				f.SubjectID = id
			}
			return err
		}
	}
}

// shiftEnd moves the end of `f` so that it keeps its distance to the start, which moved from `start`.
// Unparsable dates are left for validation.
func shiftEnd(f *reminder.Form, start, end string) {
	layout := reminder.DateLayout + " " + reminder.TimeLayout
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	oldStart, err := time.ParseInLocation(layout, start, loc)
	if err != nil {
		return
	}
	oldEnd, err := time.ParseInLocation(layout, end, loc)
	if err != nil {
		return
	}
	newStart, err := time.ParseInLocation(layout, f.StartDate+" "+f.StartTime, loc)
	if err != nil {
		return
	}
	newEnd := newStart.Add(oldEnd.Sub(oldStart))
	f.EndDate, f.EndTime = newEnd.Format(reminder.DateLayout), newEnd.Format(reminder.TimeLayout)
}

func (cli *commandLine) reminders(ctx context.Context, args []string) error {
	if _, err := cli.shell.RequireUser(); err != nil {
		return err
	}
	store, notifier := cli.shell.Store(), cli.shell.Notifier()
	newForm := func(r *reminder.Reminder) *ui.ReminderForm { return ui.NewReminderForm(store, notifier, r) }

	sub, args := subcommand(args)
	fs := cli.flagSet("reminders " + sub)
	switch sub {
	case "list":
		var subj subjectFlag
		search := fs.String("q", "", "Busca por título ou descrição.")
		fs.Var(&subj, "disciplina", "ID ou nome da disciplina.")
		if err := parse(fs, args); err != nil {
			return err
		}
		list := ui.NewReminderList(store, notifier)
		defer list.Close()
		if err := list.Load(ctx); err != nil {
			return err
		}
		if err := applyFilters(ctx, store, list.ListView, *search, &subj); err != nil {
			return err
		}
		cli.printReminders(list, store.Subjects.Items())
		return nil
	case "add", "edit":
		r, err := save(ctx, fs, args, sub == "edit", store.Reminders, reminderID, newForm, bindReminder(store))
		if err != nil {
			return err
		}
		cli.printf("Lembrete %d: %s (%s)\n", r.ID, r.Title, formatTime(r.StartsAt))
		return nil
	case "rm":
		list := ui.NewReminderList(store, notifier)
		defer list.Close()
		return remove(fs, args, func(id int) error { return list.Delete(ctx, id) })
	default:
		return cli.resourceUsage("reminders", "list [-q TEXTO] [-disciplina ID|NOME] | add -titulo ... -disciplina ... -data ... | edit ID [...] | rm ID")
	}
}

func (cli *commandLine) printReminders(list *ui.ReminderList, subjects []subject.Subject) {
	visible, total := list.Counts()
	if total == 0 {
		cli.println("Nenhum lembrete cadastrado.")
		return
	}
	tw := cli.table("ID", "LEMBRETE", "DISCIPLINA", "INÍCIO", "FIM")
	for _, r := range list.Visible() {
		row(tw, r.ID, r.Title, subjectName(subjects, r.SubjectID), formatTime(r.StartsAt), formatTime(r.EndsAt))
	}
	_ = tw.Flush()
	cli.printf("%d de %d lembretes\n", visible, total)
}

// applyFilters sets the search term and the subject filter of a list view.
func applyFilters[T any](ctx context.Context, store *cache.Store, list *ui.ListView[T], search string, subj *subjectFlag) error {
	list.SetSearch(search)
	id, err := subj.resolve(ctx, store)
	if err != nil {
		return err
	}
	if id != 0 {
		list.SetCategory(strconv.Itoa(id))
	}
	return nil
}

// Contacts

func contactID(c contact.Contact) int { return c.ID }

func bindContact(store *cache.Store) formFlags[contact.Form] {
	return func(fs *flag.FlagSet, f *contact.Form) func(context.Context) error {
		var subj subjectFlag
		fs.StringVar(&f.Name, "nome", f.Name, "Nome.")
		fs.StringVar(&f.Email, "email", f.Email, "E-mail.")
		fs.StringVar(&f.Phone, "telefone", f.Phone, "Telefone.")
		fs.Var(&subj, "disciplina", "ID ou nome da disciplina.")
		return func(ctx context.Context) error {
			id, err := subj.resolve(ctx, store)
			if id != 0 {
				f.SubjectID = id
			}
			return err
		}
	}
}

func (cli *commandLine) contacts(ctx context.Context, args []string) error {
	if _, err := cli.shell.RequireUser(); err != nil {
		return err
	}
	store, notifier := cli.shell.Store(), cli.shell.Notifier()
	newForm := func(c *contact.Contact) *ui.ContactForm { return ui.NewContactForm(store, notifier, c) }

	sub, args := subcommand(args)
	fs := cli.flagSet("contacts " + sub)
	switch sub {
	case "list":
		var subj subjectFlag
		search := fs.String("q", "", "Busca por nome, e-mail, telefone ou disciplina.")
		fs.Var(&subj, "disciplina", "ID ou nome da disciplina.")
		if err := parse(fs, args); err != nil {
			return err
		}
		list := ui.NewContactList(store, notifier)
		defer list.Close()
		if err := list.Load(ctx); err != nil {
			return err
		}
		if err := applyFilters(ctx, store, list.ListView, *search, &subj); err != nil {
			return err
		}
		groups := list.Groups()
		if len(groups) == 0 {
			cli.println("Nenhum contato encontrado.")
			return nil
		}
		for _, g := range groups {
			cli.printf("%s\n", g.Subject)
			tw := cli.table("  ID", "NOME", "E-MAIL", "TELEFONE")
			for _, c := range g.Items {
				row(tw, "  "+strconv.Itoa(c.ID), c.Name, c.Email, c.Phone)
			}
			_ = tw.Flush()
		}
		return nil
	case "add", "edit":
		c, err := save(ctx, fs, args, sub == "edit", store.Contacts, contactID, newForm, bindContact(store))
		if err != nil {
			return err
		}
		cli.printf("Contato %d: %s <%s>\n", c.ID, c.Name, c.Email)
		return nil
	case "rm":
		list := ui.NewContactList(store, notifier)
		defer list.Close()
		return remove(fs, args, func(id int) error { return list.Delete(ctx, id) })
	default:
		return cli.resourceUsage("contacts", "list [-q TEXTO] [-disciplina ID|NOME] | add -nome ... -email ... -disciplina ... | edit ID [...] | rm ID")
	}
}

// Materials

func materialID(m material.Material) int { return m.ID }

// splitLinks accepts links separated by commas, spaces or newlines.
func splitLinks(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	}), "\n")
}

func bindMaterial(store *cache.Store) formFlags[material.Form] {
	return func(fs *flag.FlagSet, f *material.Form) func(context.Context) error {
		var subj subjectFlag
		links := strings.Join(core.SplitLines(f.Links), ",")
		fs.StringVar(&f.Name, "nome", f.Name, "Nome.")
		fs.StringVar(&f.Summary, "resumos", f.Summary, "Resumo.")
		fs.StringVar(&links, "links", links, "Links http(s), separados por vírgula.")
		fs.Var(&subj, "disciplina", "ID ou nome da disciplina.")
		return func(ctx context.Context) error {
			f.Links = splitLinks(links)
			id, err := subj.resolve(ctx, store)
			if id != 0 {
				f.SubjectID = id
			}
			return err
		}
	}
}

func (cli *commandLine) materials(ctx context.Context, args []string) error {
	if _, err := cli.shell.RequireUser(); err != nil {
		return err
	}
	store, notifier := cli.shell.Store(), cli.shell.Notifier()
	newForm := func(m *material.Material) *ui.MaterialForm { return ui.NewMaterialForm(store, notifier, m) }

	sub, args := subcommand(args)
	fs := cli.flagSet("materials " + sub)
	switch sub {
	case "list":
		var subj subjectFlag
		search := fs.String("q", "", "Busca por nome, resumo, links ou disciplina.")
		fs.Var(&subj, "disciplina", "ID ou nome da disciplina.")
		if err := parse(fs, args); err != nil {
			return err
		}
		list := ui.NewMaterialList(store, notifier)
		defer list.Close()
		if err := list.Load(ctx); err != nil {
			return err
		}
		if err := applyFilters(ctx, store, list.ListView, *search, &subj); err != nil {
			return err
		}
		groups := list.Groups()
		if len(groups) == 0 {
			cli.println("Nenhum material encontrado.")
			return nil
		}
		for _, g := range groups {
			cli.printf("%s\n", g.Subject)
			tw := cli.table("  ID", "NOME", "LINKS")
			for _, m := range g.Items {
				row(tw, "  "+strconv.Itoa(m.ID), m.Name, len(m.LinkList()))
			}
			_ = tw.Flush()
		}
		return nil
	case "show":
		id, _, err := itemID(fs, args)
		if err != nil {
			return err
		}
		if err = store.RefreshAll(ctx, cache.Materials, cache.Subjects); err != nil {
			return err
		}
		m, err := findByID(store.Materials.Items(), id, materialID)
		if err != nil {
			return err
		}
		cli.printf("%s (%s)\n", m.Name, subjectName(store.Subjects.Items(), m.SubjectID))
		if m.Summary != "" {
			cli.printf("\n%s\n", m.Summary)
		}
		for _, link := range m.LinkList() {
			cli.printf("  - %s\n", link)
		}
		return nil
	case "add", "edit":
		m, err := save(ctx, fs, args, sub == "edit", store.Materials, materialID, newForm, bindMaterial(store))
		if err != nil {
			return err
		}
		cli.printf("Material %d: %s\n", m.ID, m.Name)
		return nil
	case "rm":
		list := ui.NewMaterialList(store, notifier)
		defer list.Close()
		return remove(fs, args, func(id int) error { return list.Delete(ctx, id) })
	default:
		return cli.resourceUsage("materials", "list [-q TEXTO] [-disciplina ID|NOME] | show ID | add -nome ... -links ... -disciplina ... | edit ID [...] | rm ID")
	}
}
