package material

import (
	"strings"

	"github.com/trezcool/estudos/core"
)

// Material is a study resource: notes plus a list of links.
type Material struct {
	ID        int    `json:"id"`
	Name      string `json:"nome"`
	Summary   string `json:"resumos"`
	Links     string `json:"links"` // newline-delimited URLs
	SubjectID int    `json:"discId"`
}

// LinkList returns the non-blank lines of Links.
func (m Material) LinkList() []string {
	return core.SplitLines(m.Links)
}

// Form contains the information that may be provided to create or modify a Material.
type Form struct {
	Name      string `json:"nome" validate:"required,notblank"`
	Summary   string `json:"resumos"`
	Links     string `json:"links" validate:"httplinks"`
	SubjectID int    `json:"discId" validate:"disciplina"`
}

func FormFrom(m Material) Form {
	return Form{
		Name:      m.Name,
		Summary:   m.Summary,
		Links:     m.Links,
		SubjectID: m.SubjectID,
	}
}

// Validate cleans the form and checks it. Links are normalized to one URL per line.
func (f *Form) Validate() error {
	f.Name = core.CleanString(f.Name)
	f.Summary = core.CleanString(f.Summary)
	f.Links = strings.Join(core.SplitLines(f.Links), "\n")
	return core.ValidateStruct(f)
}

// QueryFilter applies AND on its fields; zero values match everything.
// Search does a case-insensitive match on one of Material.Name, Material.Summary, Material.Links
// or the name of the material's subject.
type QueryFilter struct {
	Search    string
	SubjectID int
}

func (qf QueryFilter) Match(m Material, subjectName string) bool {
	return MatchSearch(m, qf.Search, subjectName) && MatchSubject(m, qf.SubjectID)
}

func MatchSearch(m Material, term, subjectName string) bool {
	return core.AnyContainsFold(term, m.Name, m.Summary, m.Links, subjectName)
}

func MatchSubject(m Material, subjectID int) bool {
	return subjectID == 0 || m.SubjectID == subjectID
}
