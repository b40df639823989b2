package subject

import (
	"github.com/trezcool/estudos/core"
)

type Subject struct {
	ID          int     `json:"id"`
	Name        string  `json:"nome"`
	Room        string  `json:"sala"`
	Professor   string  `json:"professor"`
	Schedule    string  `json:"horario"`
	Semester    string  `json:"semestre"`
	Assessments string  `json:"avaliacoes"` // free text, eg. "P1: 8.5, P2: 7.0"
	Absences    int     `json:"faltas"`
	Grade       float64 `json:"notas"`
	UserID      int     `json:"userId"`
}

// Form contains the information that may be provided to create or modify a Subject.
type Form struct {
	Name        string  `json:"nome" validate:"required,notblank"`
	Room        string  `json:"sala" validate:"required,notblank"`
	Professor   string  `json:"professor" validate:"required,notblank"`
	Schedule    string  `json:"horario" validate:"required,notblank"`
	Semester    string  `json:"semestre" validate:"required,notblank"`
	Assessments string  `json:"avaliacoes"`
	Absences    int     `json:"faltas" validate:"gte=0"`
	Grade       float64 `json:"notas" validate:"gte=0,lte=10"`
}

// FormFrom initializes a Form from an existing Subject (edit mode).
func FormFrom(s Subject) Form {
	return Form{
		Name:        s.Name,
		Room:        s.Room,
		Professor:   s.Professor,
		Schedule:    s.Schedule,
		Semester:    s.Semester,
		Assessments: s.Assessments,
		Absences:    s.Absences,
		Grade:       s.Grade,
	}
}

func (f *Form) Validate() error {
	f.Name = core.CleanString(f.Name)
	f.Room = core.CleanString(f.Room)
	f.Professor = core.CleanString(f.Professor)
	f.Schedule = core.CleanString(f.Schedule)
	f.Semester = core.CleanString(f.Semester)
	f.Assessments = core.CleanString(f.Assessments)
	return core.ValidateStruct(f)
}

// Payload is the request body sent to the backend on create and update.
type Payload struct {
	Form
	UserID int `json:"userId"`
}

func (f Form) Payload(userID int) Payload {
	return Payload{Form: f, UserID: userID}
}
