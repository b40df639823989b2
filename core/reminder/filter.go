package reminder

import (
	"math"
	"sort"
	"time"

	"github.com/trezcool/estudos/core"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "high"   // today or tomorrow
	UrgencyMedium Urgency = "medium" // within 3 days
	UrgencyLow    Urgency = "low"

	// UpcomingLimit is how many reminders the dashboard shows.
	UpcomingLimit = 5
)

// QueryFilter applies AND on its fields; zero values match everything.
// Search does a case-insensitive match on one of Reminder.Title or Reminder.Description.
type QueryFilter struct {
	Search    string
	SubjectID int
}

func (qf QueryFilter) Match(r Reminder) bool {
	return MatchSearch(r, qf.Search) && MatchSubject(r, qf.SubjectID)
}

func MatchSearch(r Reminder, term string) bool {
	return core.AnyContainsFold(term, r.Title, r.Description)
}

func MatchSubject(r Reminder, subjectID int) bool {
	return subjectID == 0 || r.SubjectID == subjectID
}

func Filter(reminders []Reminder, qf QueryFilter) []Reminder {
	res := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		if qf.Match(r) {
			res = append(res, r)
		}
	}
	return res
}

// SortByStart sorts `reminders` in place, earliest first.
func SortByStart(reminders []Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool { return reminders[i].StartsAt.Before(reminders[j].StartsAt) })
}

// DaysUntil returns the number of days from `now` to `t`, rounded up.
func DaysUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

func UrgencyOf(days int) Urgency {
	switch {
	case days <= 1:
		return UrgencyHigh
	case days <= 3:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// Upcoming returns at most `limit` reminders that have not started before today, earliest first.
func Upcoming(reminders []Reminder, now time.Time, limit int) []Reminder {
	res := make([]Reminder, 0, len(reminders))
	for _, r := range reminders {
		if DaysUntil(now, r.StartsAt) >= 0 {
			res = append(res, r)
		}
	}
	SortByStart(res)
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res
}
