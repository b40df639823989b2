package ui

import (
	"context"
	"strconv"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
)

// subjectKey is the category key of a subject ID.
func subjectKey(id int) string { return strconv.Itoa(id) }

func refresher(store *cache.Store, resources ...cache.Resource) func(ctx context.Context) error {
	return func(ctx context.Context) error { return store.RefreshAll(ctx, resources...) }
}

// SubjectList filters subjects by name or professor, and by semester.
type SubjectList struct {
	*ListView[subject.Subject]
}

func NewSubjectList(store *cache.Store, notifier core.Notifier) *SubjectList {
	v := &ListView[subject.Subject]{
		src:      store.Subjects,
		refresh:  store.Subjects.Refresh,
		notifier: notifier,
		msgs: listMessages{
			loadErrTitle:   "Erro ao carregar disciplinas",
			loadErrDesc:    "Não foi possível carregar suas disciplinas.",
			deletedTitle:   "Disciplina excluída",
			deletedDesc:    "A disciplina foi removida com sucesso.",
			deleteErrTitle: "Erro ao excluir disciplina",
			deleteErrDesc:  "Não foi possível excluir a disciplina.",
		},
		match: func(s subject.Subject, term, _ string) bool { return subject.MatchSearch(s, term) },
		inCat: subject.MatchSemester,
	}
	return &SubjectList{v.mount()}
}

// Semesters returns the choices of the semester filter.
func (l *SubjectList) Semesters() []string {
	return subject.Semesters(l.Items())
}

// ReminderList shows reminders earliest first, filtered by title or description, and by subject.
type ReminderList struct {
	*ListView[reminder.Reminder]
}

func NewReminderList(store *cache.Store, notifier core.Notifier) *ReminderList {
	v := &ListView[reminder.Reminder]{
		src:      store.Reminders,
		refresh:  refresher(store, cache.Reminders, cache.Subjects),
		subjects: store.Subjects.Items,
		notifier: notifier,
		msgs: listMessages{
			loadErrTitle:   "Erro",
			loadErrDesc:    "Não foi possível carregar os dados",
			deletedTitle:   "Sucesso",
			deletedDesc:    "Lembrete excluído com sucesso",
			deleteErrTitle: "Erro",
			deleteErrDesc:  "Não foi possível excluir o lembrete",
		},
		subjectOf: func(r reminder.Reminder) int { return r.SubjectID },
		match:     func(r reminder.Reminder, term, _ string) bool { return reminder.MatchSearch(r, term) },
		inCat:     func(r reminder.Reminder, key string) bool { return subjectKey(r.SubjectID) == key },
		sort:      reminder.SortByStart,
	}
	return &ReminderList{v.mount()}
}

// ContactList filters contacts by name, email, phone or subject name, and by subject.
type ContactList struct {
	*ListView[contact.Contact]
}

func NewContactList(store *cache.Store, notifier core.Notifier) *ContactList {
	v := &ListView[contact.Contact]{
		src:      store.Contacts,
		refresh:  refresher(store, cache.Contacts, cache.Subjects),
		subjects: store.Subjects.Items,
		notifier: notifier,
		msgs: listMessages{
			loadErrTitle:   "Erro",
			loadErrDesc:    "Não foi possível carregar os dados",
			deletedTitle:   "Sucesso",
			deletedDesc:    "Contato excluído com sucesso",
			deleteErrTitle: "Erro",
			deleteErrDesc:  "Não foi possível excluir o contato",
		},
		subjectOf: func(c contact.Contact) int { return c.SubjectID },
		match:     contact.MatchSearch,
		inCat:     func(c contact.Contact, key string) bool { return subjectKey(c.SubjectID) == key },
	}
	return &ContactList{v.mount()}
}

// MaterialList filters materials by name, summary, links or subject name, and by subject.
type MaterialList struct {
	*ListView[material.Material]
}

func NewMaterialList(store *cache.Store, notifier core.Notifier) *MaterialList {
	v := &ListView[material.Material]{
		src:      store.Materials,
		refresh:  refresher(store, cache.Materials, cache.Subjects),
		subjects: store.Subjects.Items,
		notifier: notifier,
		msgs: listMessages{
			loadErrTitle:   "Erro",
			loadErrDesc:    "Não foi possível carregar os dados",
			deletedTitle:   "Sucesso",
			deletedDesc:    "Material excluído com sucesso",
			deleteErrTitle: "Erro",
			deleteErrDesc:  "Não foi possível excluir o material",
		},
		subjectOf: func(m material.Material) int { return m.SubjectID },
		match:     material.MatchSearch,
		inCat:     func(m material.Material, key string) bool { return subjectKey(m.SubjectID) == key },
	}
	return &MaterialList{v.mount()}
}
