package reminder

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/estudos/core"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	defaultTime        = "00:00"
	endBeforeStartText = "a data final não pode ser anterior à data inicial"
)

type Reminder struct {
	ID          int       `json:"id"`
	Title       string    `json:"nome"`
	Description string    `json:"descricao"`
	StartsAt    time.Time `json:"data_inicio"`
	EndsAt      time.Time `json:"data_fim"`
	SubjectID   int       `json:"discId"`
	UserID      int       `json:"userId"`
}

// Form contains the information that may be provided to create or modify a Reminder.
// Dates and times are kept as typed: YYYY-MM-DD and HH:MM.
type Form struct {
	Title       string `json:"titulo" validate:"required,notblank"`
	Description string `json:"descricao"`
	SubjectID   int    `json:"discId" validate:"disciplina"`
	StartDate   string `json:"data_inicio" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"hora_inicio" validate:"omitempty,datetime=15:04"`
	EndDate     string `json:"data_fim" validate:"omitempty,datetime=2006-01-02"`
	EndTime     string `json:"hora_fim" validate:"omitempty,datetime=15:04"`

	// Location the typed dates are expressed in; defaults to time.Local.
	Location *time.Location `json:"-"`
}

// FormFrom initializes a Form from an existing Reminder (edit mode).
func FormFrom(r Reminder) Form {
	start, end := r.StartsAt.Local(), r.EndsAt.Local()
	f := Form{
		Title:       r.Title,
		Description: r.Description,
		SubjectID:   r.SubjectID,
		StartDate:   start.Format(DateLayout),
		StartTime:   start.Format(TimeLayout),
	}
	if !r.EndsAt.IsZero() {
		f.EndDate = end.Format(DateLayout)
		f.EndTime = end.Format(TimeLayout)
	}
	return f
}

func (f *Form) location() *time.Location {
	if f.Location != nil {
		return f.Location
	}
	return time.Local
}

// Validate cleans the form, fills in the defaults and checks it.
// A missing start time is midnight; a missing end is the start.
func (f *Form) Validate() error {
	f.Title = core.CleanString(f.Title)
	f.Description = core.CleanString(f.Description)
	f.StartDate = core.CleanString(f.StartDate)
	f.StartTime = core.CleanString(f.StartTime)
	f.EndDate = core.CleanString(f.EndDate)
	f.EndTime = core.CleanString(f.EndTime)
	if f.StartTime == "" {
		f.StartTime = defaultTime
	}
	if f.EndDate == "" {
		f.EndDate = f.StartDate
	}
	if f.EndTime == "" {
		f.EndTime = f.StartTime
	}

	if err := core.ValidateStruct(f); err != nil {
		return err
	}

	start, end, err := f.times()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return core.NewValidationError(errors.New(endBeforeStartText), core.FieldError{Field: "data_fim", Error: endBeforeStartText})
	}
	return nil
}

func (f *Form) times() (start, end time.Time, err error) {
	loc := f.location()
	start, err = time.ParseInLocation(DateLayout+" "+TimeLayout, f.StartDate+" "+f.StartTime, loc)
	if err != nil {
		return start, end, errors.Wrap(err, "parsing start")
	}
	end, err = time.ParseInLocation(DateLayout+" "+TimeLayout, f.EndDate+" "+f.EndTime, loc)
	if err != nil {
		return start, end, errors.Wrap(err, "parsing end")
	}
	return start, end, nil
}

// Payload is the request body sent to the backend on create and update.
type Payload struct {
	Title       string    `json:"nome"`
	Description string    `json:"descricao"`
	StartsAt    time.Time `json:"data_inicio"`
	EndsAt      time.Time `json:"data_fim"`
	SubjectID   int       `json:"discId"`
	UserID      int       `json:"userId"`
}

// Payload must be called on a validated Form.
func (f Form) Payload(userID int) (Payload, error) {
	start, end, err := f.times()
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		Title:       f.Title,
		Description: f.Description,
		StartsAt:    start,
		EndsAt:      end,
		SubjectID:   f.SubjectID,
		UserID:      userID,
	}, nil
}
