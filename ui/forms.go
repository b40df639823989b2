package ui

import (
	"context"

	"github.com/trezcool/estudos/cache"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
)

// writer is what a form view needs from a cache collection.
type writer[T any, F any] interface {
	Create(ctx context.Context, form F) (T, error)
	Update(ctx context.Context, id int, form F) (T, error)
}

type formMessages struct {
	createdTitle, createdDesc string
	updatedTitle, updatedDesc string
	errTitle, errDesc         string // errDesc "" shows Describe(err)
}

// FormView edits one item. With an ID it updates that item, otherwise it creates a new one.
// Form holds the values as typed; they are never rolled back after a failure.
type FormView[T any, F any] struct {
	Form      F
	OnSuccess func(saved T)

	id       int
	dst      writer[T, F]
	validate func(*F) error
	notifier core.Notifier
	msgs     formMessages
}

// Editing reports whether the form updates an existing item.
func (v *FormView[T, F]) Editing() bool { return v.id != 0 }

// Submit validates the form and saves it through the cache.
func (v *FormView[T, F]) Submit(ctx context.Context) (T, error) {
	var zero T
	if err := v.validate(&v.Form); err != nil {
		v.notifier.Error(v.msgs.errTitle, Describe(err))
		return zero, err
	}

	var (
		saved T
		err   error
	)
	if v.Editing() {
		saved, err = v.dst.Update(ctx, v.id, v.Form)
	} else {
		saved, err = v.dst.Create(ctx, v.Form)
	}
	if err != nil {
		desc := v.msgs.errDesc
		if desc == "" || core.IsValidationError(err) {
			desc = Describe(err)
		}
		v.notifier.Error(v.msgs.errTitle, desc)
		return zero, err
	}

	if v.Editing() {
		v.notifier.Success(v.msgs.updatedTitle, v.msgs.updatedDesc)
	} else {
		v.notifier.Success(v.msgs.createdTitle, v.msgs.createdDesc)
	}
	if v.OnSuccess != nil {
		v.OnSuccess(saved)
	}
	return saved, nil
}

type (
	SubjectForm  = FormView[subject.Subject, subject.Form]
	ReminderForm = FormView[reminder.Reminder, reminder.Form]
	ContactForm  = FormView[contact.Contact, contact.Form]
	MaterialForm = FormView[material.Material, material.Form]
)

var (
	subjectMessages = formMessages{
		createdTitle: "Disciplina criada!",
		createdDesc:  "A disciplina foi adicionada com sucesso.",
		updatedTitle: "Disciplina atualizada!",
		updatedDesc:  "As alterações foram salvas com sucesso.",
		errTitle:     "Erro ao salvar disciplina",
	}
	reminderMessages = formMessages{
		createdTitle: "Sucesso",
		createdDesc:  "Lembrete criado com sucesso",
		updatedTitle: "Sucesso",
		updatedDesc:  "Lembrete atualizado com sucesso",
		errTitle:     "Erro",
	}
	contactMessages = formMessages{
		createdTitle: "Sucesso",
		createdDesc:  "Contato criado com sucesso",
		updatedTitle: "Sucesso",
		updatedDesc:  "Contato atualizado com sucesso",
		errTitle:     "Erro",
	}
	materialMessages = formMessages{
		createdTitle: "Sucesso",
		createdDesc:  "Material criado com sucesso",
		updatedTitle: "Sucesso",
		updatedDesc:  "Material atualizado com sucesso",
		errTitle:     "Erro",
	}
)

// NewSubjectForm edits `existing`, or creates a new subject when it is nil.
// The subject is saved for the logged-in user.
func NewSubjectForm(store *cache.Store, notifier core.Notifier, existing *subject.Subject) *SubjectForm {
	v := &SubjectForm{
		dst:      store.Subjects,
		validate: (*subject.Form).Validate,
		notifier: notifier,
		msgs:     subjectMessages,
	}
	if existing != nil {
		v.id, v.Form = existing.ID, subject.FormFrom(*existing)
	}
	return v
}

// NewReminderForm edits `existing`, or creates a new reminder when it is nil.
func NewReminderForm(store *cache.Store, notifier core.Notifier, existing *reminder.Reminder) *ReminderForm {
	v := &ReminderForm{
		dst:      store.Reminders,
		validate: (*reminder.Form).Validate,
		notifier: notifier,
		msgs:     reminderMessages,
	}
	if existing != nil {
		v.id, v.Form = existing.ID, reminder.FormFrom(*existing)
	}
	return v
}

func NewContactForm(store *cache.Store, notifier core.Notifier, existing *contact.Contact) *ContactForm {
	v := &ContactForm{
		dst:      store.Contacts,
		validate: (*contact.Form).Validate,
		notifier: notifier,
		msgs:     contactMessages,
	}
	if existing != nil {
		v.id, v.Form = existing.ID, contact.FormFrom(*existing)
	}
	return v
}

func NewMaterialForm(store *cache.Store, notifier core.Notifier, existing *material.Material) *MaterialForm {
	v := &MaterialForm{
		dst:      store.Materials,
		validate: (*material.Form).Validate,
		notifier: notifier,
		msgs:     materialMessages,
	}
	if existing != nil {
		v.id, v.Form = existing.ID, material.FormFrom(*existing)
	}
	return v
}
