package contact

import (
	"github.com/trezcool/estudos/core"
)

// Contact is an instructor or monitor of a subject.
type Contact struct {
	ID        int    `json:"id"`
	Name      string `json:"nome"`
	Email     string `json:"email"`
	Phone     string `json:"telefone"`
	SubjectID int    `json:"discId"`
	UserID    int    `json:"userId,omitempty"`
}

// Form contains the information that may be provided to create or modify a Contact.
type Form struct {
	Name      string `json:"nome" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,emailfmt"`
	Phone     string `json:"telefone"`
	SubjectID int    `json:"discId" validate:"disciplina"`
}

func FormFrom(c Contact) Form {
	return Form{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		SubjectID: c.SubjectID,
	}
}

func (f *Form) Validate() error {
	f.Name = core.CleanString(f.Name)
	f.Email = core.CleanString(f.Email, true /* lower */)
	f.Phone = core.CleanString(f.Phone)
	return core.ValidateStruct(f)
}

// Payload is the request body sent to the backend on create and update.
type Payload struct {
	Form
	UserID int `json:"userId,omitempty"`
}

func (f Form) Payload(userID int) Payload {
	return Payload{Form: f, UserID: userID}
}

// QueryFilter applies AND on its fields; zero values match everything.
// Search does a case-insensitive match on one of Contact.Name, Contact.Email, Contact.Phone
// or the name of the contact's subject.
type QueryFilter struct {
	Search    string
	SubjectID int
}

func (qf QueryFilter) Match(c Contact, subjectName string) bool {
	return MatchSearch(c, qf.Search, subjectName) && MatchSubject(c, qf.SubjectID)
}

func MatchSearch(c Contact, term, subjectName string) bool {
	return core.AnyContainsFold(term, c.Name, c.Email, c.Phone, subjectName)
}

func MatchSubject(c Contact, subjectID int) bool {
	return subjectID == 0 || c.SubjectID == subjectID
}
