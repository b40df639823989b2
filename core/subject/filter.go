package subject

import (
	"sort"

	"github.com/trezcool/estudos/core"
)

// Standing classifies a grade or an absence count for display.
type Standing string

const (
	StandingGood     Standing = "good"
	StandingWarning  Standing = "warning"
	StandingCritical Standing = "critical"
)

// QueryFilter applies AND on its fields; zero values match everything.
// Search does a case-insensitive match on one of Subject.Name or Subject.Professor.
type QueryFilter struct {
	Search   string
	Semester string
}

func (qf QueryFilter) Match(s Subject) bool {
	return MatchSearch(s, qf.Search) && MatchSemester(s, qf.Semester)
}

func MatchSearch(s Subject, term string) bool {
	return core.AnyContainsFold(term, s.Name, s.Professor)
}

func MatchSemester(s Subject, semester string) bool {
	return semester == "" || s.Semester == semester
}

func Filter(subjects []Subject, qf QueryFilter) []Subject {
	res := make([]Subject, 0, len(subjects))
	for _, s := range subjects {
		if qf.Match(s) {
			res = append(res, s)
		}
	}
	return res
}

// Semesters returns the sorted distinct non-empty semesters of `subjects`.
func Semesters(subjects []Subject) []string {
	seen := make(map[string]struct{}, len(subjects))
	sems := make([]string, 0)
	for _, s := range subjects {
		if s.Semester == "" {
			continue
		}
		if _, ok := seen[s.Semester]; !ok {
			seen[s.Semester] = struct{}{}
			sems = append(sems, s.Semester)
		}
	}
	sort.Strings(sems)
	return sems
}

// Names maps subject IDs to names.
func Names(subjects []Subject) map[int]string {
	names := make(map[int]string, len(subjects))
	for _, s := range subjects {
		names[s.ID] = s.Name
	}
	return names
}

func GradeStanding(grade float64) Standing {
	switch {
	case grade >= 8:
		return StandingGood
	case grade >= 7:
		return StandingWarning
	default:
		return StandingCritical
	}
}

func AbsenceStanding(absences int) Standing {
	switch {
	case absences == 0:
		return StandingGood
	case absences <= 2:
		return StandingWarning
	default:
		return StandingCritical
	}
}
