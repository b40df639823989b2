package ui

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
)

// UpcomingReminder is a reminder of the dashboard with its countdown.
type UpcomingReminder struct {
	reminder.Reminder
	SubjectName string
	Days        int
	Urgency     reminder.Urgency
}

// SubjectCard is a subject of the dashboard grid.
type SubjectCard struct {
	subject.Subject
	GradeStanding   subject.Standing
	AbsenceStanding subject.Standing
}

// SubjectDetails is one subject with everything attached to it.
type SubjectDetails struct {
	Subject   subject.Subject
	Reminders []reminder.Reminder
	Contacts  []contact.Contact
	Materials []material.Material
}

type Dashboard struct {
	shell *Shell
	now   func() time.Time
}

func (sh *Shell) Dashboard() *Dashboard {
	return &Dashboard{shell: sh, now: time.Now}
}

// Load fetches every collection of the logged-in user.
func (d *Dashboard) Load(ctx context.Context) error {
	if _, err := d.shell.RequireUser(); err != nil {
		return err
	}
	if err := d.shell.store.RefreshAll(ctx); err != nil {
		d.shell.notifier.Error("Erro", "Não foi possível carregar os dados")
		return err
	}
	return nil
}

// UpcomingReminders returns the next reminders, starting today, earliest first.
func (d *Dashboard) UpcomingReminders() []UpcomingReminder {
	now := d.now()
	names := subject.Names(d.shell.store.Subjects.Items())
	upcoming := reminder.Upcoming(d.shell.store.Reminders.Items(), now, reminder.UpcomingLimit)

	res := make([]UpcomingReminder, 0, len(upcoming))
	for _, r := range upcoming {
		days := reminder.DaysUntil(now, r.StartsAt)
		res = append(res, UpcomingReminder{
			Reminder:    r,
			SubjectName: names[r.SubjectID],
			Days:        days,
			Urgency:     reminder.UrgencyOf(days),
		})
	}
	return res
}

func (d *Dashboard) SubjectCards() []SubjectCard {
	subjects := d.shell.store.Subjects.Items()
	cards := make([]SubjectCard, 0, len(subjects))
	for _, s := range subjects {
		cards = append(cards, SubjectCard{
			Subject:         s,
			GradeStanding:   subject.GradeStanding(s.Grade),
			AbsenceStanding: subject.AbsenceStanding(s.Absences),
		})
	}
	return cards
}

// SubjectDetails fetches a subject and its reminders, contacts and materials in parallel.
func (d *Dashboard) SubjectDetails(ctx context.Context, id int) (SubjectDetails, error) {
	api := d.shell.client
	var details SubjectDetails

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		details.Subject, err = api.Subjects.Get(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		details.Reminders, err = api.Reminders.BySubject(gctx, id)
		if err == nil {
			reminder.SortByStart(details.Reminders)
		}
		return err
	})
	g.Go(func() (err error) {
		details.Contacts, err = api.Contacts.BySubject(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		details.Materials, err = api.Materials.BySubject(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		d.shell.notifier.Error("Erro", Describe(err))
		return SubjectDetails{}, err
	}
	return details, nil
}

// Quick actions create items straight from the dashboard.

func (d *Dashboard) QuickSubject() *SubjectForm {
	v := NewSubjectForm(d.shell.store, d.shell.notifier, nil)
	v.msgs = quickMessages("Disciplina criada com sucesso", "Não foi possível criar a disciplina")
	return v
}

func (d *Dashboard) QuickReminder() *ReminderForm {
	v := NewReminderForm(d.shell.store, d.shell.notifier, nil)
	v.msgs = quickMessages("Lembrete criado com sucesso", "Não foi possível criar o lembrete")
	return v
}

func (d *Dashboard) QuickContact() *ContactForm {
	v := NewContactForm(d.shell.store, d.shell.notifier, nil)
	v.msgs = quickMessages("Contato criado com sucesso", "Não foi possível criar o contato")
	return v
}

func (d *Dashboard) QuickMaterial() *MaterialForm {
	v := NewMaterialForm(d.shell.store, d.shell.notifier, nil)
	v.msgs = quickMessages("Material criado com sucesso", "Não foi possível criar o material")
	return v
}

func quickMessages(created, failed string) formMessages {
	return formMessages{
		createdTitle: "Sucesso",
		createdDesc:  created,
		errTitle:     "Erro",
		errDesc:      failed,
	}
}
