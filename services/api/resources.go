package apisvc

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
)

// resource implements the REST operations shared by every collection of the backend.
type resource[T any] struct {
	c    *Client
	base string
}

func (r resource[T]) list(ctx context.Context, path string) ([]T, error) {
	items := make([]T, 0)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// mine lists the items owned by the stored user, without touching the network when there is none.
func (r resource[T]) mine(ctx context.Context) ([]T, error) {
	userID, err := r.c.currentUserID()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, r.base+"/user/"+strconv.Itoa(userID))
}

func (r resource[T]) get(ctx context.Context, id int) (T, error) {
	var item T
	err := r.c.do(ctx, http.MethodGet, idPath(r.base, id), nil, &item)
	return item, err
}

func (r resource[T]) create(ctx context.Context, body interface{}) (T, error) {
	var item T
	err := r.c.do(ctx, http.MethodPost, r.base, body, &item)
	return item, err
}

func (r resource[T]) update(ctx context.Context, id int, body interface{}) (T, error) {
	var item T
	err := r.c.do(ctx, http.MethodPatch, idPath(r.base, id), body, &item)
	return item, err
}

func (r resource[T]) delete(ctx context.Context, id int) error {
	return r.c.do(ctx, http.MethodDelete, idPath(r.base, id), nil, nil)
}

// SubjectsAPI talks to /disciplinas.
type SubjectsAPI struct {
	res resource[subject.Subject]
}

func (a *SubjectsAPI) Mine(ctx context.Context) ([]subject.Subject, error) {
	return a.res.mine(ctx)
}

func (a *SubjectsAPI) Get(ctx context.Context, id int) (subject.Subject, error) {
	return a.res.get(ctx, id)
}

// Create sends the form along with the ID of the stored user.
func (a *SubjectsAPI) Create(ctx context.Context, form subject.Form) (subject.Subject, error) {
	payload, err := a.payload(form)
	if err != nil {
		return subject.Subject{}, err
	}
	return a.res.create(ctx, payload)
}

func (a *SubjectsAPI) Update(ctx context.Context, id int, form subject.Form) (subject.Subject, error) {
	payload, err := a.payload(form)
	if err != nil {
		return subject.Subject{}, err
	}
	return a.res.update(ctx, id, payload)
}

func (a *SubjectsAPI) Delete(ctx context.Context, id int) error {
	return a.res.delete(ctx, id)
}

func (a *SubjectsAPI) payload(form subject.Form) (subject.Payload, error) {
	if err := form.Validate(); err != nil {
		return subject.Payload{}, err
	}
	userID, err := a.res.c.currentUserID()
	if err != nil {
		return subject.Payload{}, err
	}
	return form.Payload(userID), nil
}

// RemindersAPI talks to /lembretes.
type RemindersAPI struct {
	res resource[reminder.Reminder]
}

func (a *RemindersAPI) Mine(ctx context.Context) ([]reminder.Reminder, error) {
	return a.res.mine(ctx)
}

func (a *RemindersAPI) BySubject(ctx context.Context, subjectID int) ([]reminder.Reminder, error) {
	return a.res.list(ctx, "/lembretes/lembretes/"+strconv.Itoa(subjectID))
}

func (a *RemindersAPI) Create(ctx context.Context, form reminder.Form) (reminder.Reminder, error) {
	payload, err := a.payload(form)
	if err != nil {
		return reminder.Reminder{}, err
	}
	return a.res.create(ctx, payload)
}

func (a *RemindersAPI) Update(ctx context.Context, id int, form reminder.Form) (reminder.Reminder, error) {
	payload, err := a.payload(form)
	if err != nil {
		return reminder.Reminder{}, err
	}
	return a.res.update(ctx, id, payload)
}

func (a *RemindersAPI) Delete(ctx context.Context, id int) error {
	return a.res.delete(ctx, id)
}

func (a *RemindersAPI) payload(form reminder.Form) (reminder.Payload, error) {
	if err := form.Validate(); err != nil {
		return reminder.Payload{}, err
	}
	userID, err := a.res.c.currentUserID()
	if err != nil {
		return reminder.Payload{}, err
	}
	return form.Payload(userID)
}

// ContactsAPI talks to /contatos.
type ContactsAPI struct {
	res resource[contact.Contact]
}

func (a *ContactsAPI) Mine(ctx context.Context) ([]contact.Contact, error) {
	return a.res.mine(ctx)
}

func (a *ContactsAPI) BySubject(ctx context.Context, subjectID int) ([]contact.Contact, error) {
	return a.res.list(ctx, "/contatos/disciplina/"+strconv.Itoa(subjectID))
}

func (a *ContactsAPI) Create(ctx context.Context, form contact.Form) (contact.Contact, error) {
	payload, err := a.payload(form)
	if err != nil {
		return contact.Contact{}, err
	}
	return a.res.create(ctx, payload)
}

func (a *ContactsAPI) Update(ctx context.Context, id int, form contact.Form) (contact.Contact, error) {
	payload, err := a.payload(form)
	if err != nil {
		return contact.Contact{}, err
	}
	return a.res.update(ctx, id, payload)
}

func (a *ContactsAPI) Delete(ctx context.Context, id int) error {
	return a.res.delete(ctx, id)
}

// payload attaches the stored user ID when there is one; contacts do not require it.
func (a *ContactsAPI) payload(form contact.Form) (contact.Payload, error) {
	if err := form.Validate(); err != nil {
		return contact.Payload{}, err
	}
	userID, err := a.res.c.currentUserID()
	if err != nil && !errors.Is(err, core.ErrNoSession) {
		return contact.Payload{}, err
	}
	return form.Payload(userID), nil
}

// MaterialsAPI talks to /materiais.
type MaterialsAPI struct {
	res resource[material.Material]
}

func (a *MaterialsAPI) Mine(ctx context.Context) ([]material.Material, error) {
	return a.res.mine(ctx)
}

func (a *MaterialsAPI) BySubject(ctx context.Context, subjectID int) ([]material.Material, error) {
	return a.res.list(ctx, "/materiais/materiais/"+strconv.Itoa(subjectID))
}

func (a *MaterialsAPI) Create(ctx context.Context, form material.Form) (material.Material, error) {
	if err := form.Validate(); err != nil {
		return material.Material{}, err
	}
	return a.res.create(ctx, form)
}

func (a *MaterialsAPI) Update(ctx context.Context, id int, form material.Form) (material.Material, error) {
	if err := form.Validate(); err != nil {
		return material.Material{}, err
	}
	return a.res.update(ctx, id, form)
}

func (a *MaterialsAPI) Delete(ctx context.Context, id int) error {
	return a.res.delete(ctx, id)
}
