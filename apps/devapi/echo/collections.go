package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/estudos/apps/devapi/store"
	"github.com/trezcool/estudos/core"
	"github.com/trezcool/estudos/core/contact"
	"github.com/trezcool/estudos/core/material"
	"github.com/trezcool/estudos/core/reminder"
	"github.com/trezcool/estudos/core/subject"
)

func registerSubjectAPI(e *echo.Echo, jwt echo.MiddlewareFunc, db *devstore.DB) {
	api := &resourceAPI[subject.Subject, subject.Payload]{
		name:  "subject",
		table: db.Subjects,
		mine:  db.SubjectsOf,
		owns:  func(userID int, s subject.Subject) bool { return s.UserID == userID },
		payloadOf: func(s subject.Subject) subject.Payload {
			return subject.FormFrom(s).Payload(s.UserID)
		},
		apply: func(userID int, p *subject.Payload, s *subject.Subject) error {
			if err := p.Form.Validate(); err != nil {
				return err
			}
			*s = subject.Subject{
				ID:          s.ID,
				Name:        p.Name,
				Room:        p.Room,
				Professor:   p.Professor,
				Schedule:    p.Schedule,
				Semester:    p.Semester,
				Assessments: p.Assessments,
				Absences:    p.Absences,
				Grade:       p.Grade,
				UserID:      userID,
			}
			return nil
		},
	}
	api.register(e, jwt, "/disciplinas", "")
}

const reminderTitleRequired = "este campo é obrigatório"

func registerReminderAPI(e *echo.Echo, jwt echo.MiddlewareFunc, db *devstore.DB) {
	api := &resourceAPI[reminder.Reminder, reminder.Payload]{
		name:  "reminder",
		table: db.Reminders,
		mine:  db.RemindersOf,
		owns: func(userID int, r reminder.Reminder) bool {
			return r.UserID == userID || db.OwnsSubject(userID, r.SubjectID)
		},
		bySubject: func(subjectID int) []reminder.Reminder {
			return db.Reminders.Filter(func(r reminder.Reminder) bool { return r.SubjectID == subjectID })
		},
		payloadOf: func(r reminder.Reminder) reminder.Payload {
			return reminder.Payload{
				Title:       r.Title,
				Description: r.Description,
				StartsAt:    r.StartsAt,
				EndsAt:      r.EndsAt,
				SubjectID:   r.SubjectID,
				UserID:      r.UserID,
			}
		},
		apply: func(userID int, p *reminder.Payload, r *reminder.Reminder) error {
			if err := validateReminder(p); err != nil {
				return err
			}
			if !db.OwnsSubject(userID, p.SubjectID) {
				return errSubjectNotFound
			}
			*r = reminder.Reminder{
				ID:          r.ID,
				Title:       p.Title,
				Description: p.Description,
				StartsAt:    p.StartsAt,
				EndsAt:      p.EndsAt,
				SubjectID:   p.SubjectID,
				UserID:      userID,
			}
			return nil
		},
	}
	api.register(e, jwt, "/lembretes", "/lembretes")
}

func validateReminder(p *reminder.Payload) error {
	var flds []core.FieldError
	p.Title = core.CleanString(p.Title)
	if p.Title == "" {
		flds = append(flds, core.FieldError{Field: "nome", Error: reminderTitleRequired})
	}
	if p.StartsAt.IsZero() {
		flds = append(flds, core.FieldError{Field: "data_inicio", Error: reminderTitleRequired})
	} else if p.EndsAt.IsZero() {
		p.EndsAt = p.StartsAt
	} else if p.EndsAt.Before(p.StartsAt) {
		flds = append(flds, core.FieldError{Field: "data_fim", Error: "a data final não pode ser anterior à data inicial"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(errors.New("dados inválidos"), flds...)
	}
	return nil
}

func registerContactAPI(e *echo.Echo, jwt echo.MiddlewareFunc, db *devstore.DB) {
	api := &resourceAPI[contact.Contact, contact.Payload]{
		name:  "contact",
		table: db.Contacts,
		mine:  db.ContactsOf,
		owns: func(userID int, c contact.Contact) bool {
			return c.UserID == userID || db.OwnsSubject(userID, c.SubjectID)
		},
		bySubject: func(subjectID int) []contact.Contact {
			return db.Contacts.Filter(func(c contact.Contact) bool { return c.SubjectID == subjectID })
		},
		payloadOf: func(c contact.Contact) contact.Payload {
			return contact.FormFrom(c).Payload(c.UserID)
		},
		apply: func(userID int, p *contact.Payload, c *contact.Contact) error {
			if err := p.Form.Validate(); err != nil {
				return err
			}
			if !db.OwnsSubject(userID, p.SubjectID) {
				return errSubjectNotFound
			}
			*c = contact.Contact{
				ID:        c.ID,
				Name:      p.Name,
				Email:     p.Email,
				Phone:     p.Phone,
				SubjectID: p.SubjectID,
				UserID:    userID,
			}
			return nil
		},
	}
	api.register(e, jwt, "/contatos", "/disciplina")
}

func registerMaterialAPI(e *echo.Echo, jwt echo.MiddlewareFunc, db *devstore.DB) {
	api := &resourceAPI[material.Material, material.Form]{
		name:  "material",
		table: db.Materials,
		mine:  db.MaterialsOf,
		owns: func(userID int, m material.Material) bool {
			return db.OwnsSubject(userID, m.SubjectID)
		},
		bySubject: func(subjectID int) []material.Material {
			return db.Materials.Filter(func(m material.Material) bool { return m.SubjectID == subjectID })
		},
		payloadOf: material.FormFrom,
		apply: func(userID int, f *material.Form, m *material.Material) error {
			if err := f.Validate(); err != nil {
				return err
			}
			if !db.OwnsSubject(userID, f.SubjectID) {
				return errSubjectNotFound
			}
			*m = material.Material{
				ID:        m.ID,
				Name:      f.Name,
				Summary:   f.Summary,
				Links:     f.Links,
				SubjectID: f.SubjectID,
			}
			return nil
		},
	}
	api.register(e, jwt, "/materiais", "/materiais")
}
