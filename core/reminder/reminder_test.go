package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/estudos/core"
)

func TestForm_Validate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name       string
		form       Form
		wantFields []string
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name:       "empty",
			form:       Form{},
			wantFields: []string{"data_inicio", "discId", "titulo"},
		},
		{
			name:       "bad date and time",
			form:       Form{Title: "Prova", SubjectID: 3, StartDate: "01/05/2024", StartTime: "25:00"},
			wantFields: []string{"data_inicio", "hora_inicio"},
		},
		{
			name:       "end before start",
			form:       Form{Title: "Prova", SubjectID: 3, StartDate: "2024-05-02", EndDate: "2024-05-01"},
			wantFields: []string{"data_fim"},
		},
		{
			name:      "date only",
			form:      Form{Title: "Prova", SubjectID: 3, StartDate: "2024-05-01"},
			wantStart: time.Date(2024, 5, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2024, 5, 1, 0, 0, 0, 0, loc),
		},
		{
			name:      "full",
			form:      Form{Title: "Entrega TCC", SubjectID: 3, StartDate: "2024-05-01", StartTime: "08:30", EndDate: "2024-05-03", EndTime: "18:00"},
			wantStart: time.Date(2024, 5, 1, 8, 30, 0, 0, loc),
			wantEnd:   time.Date(2024, 5, 3, 18, 0, 0, 0, loc),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.form
			f.Location = loc
			err := f.Validate()
			if tt.wantFields != nil {
				require.Error(t, err)
				vErr, ok := err.(*core.ValidationError)
				require.True(t, ok, "want *ValidationError, got %T", err)
				for _, fld := range tt.wantFields {
					assert.True(t, vErr.HasField(fld), "missing field error %q in %v", fld, vErr.Fields)
				}
				return
			}
			require.NoError(t, err)

			p, err := f.Payload(7)
			require.NoError(t, err)
			assert.Equal(t, f.Title, p.Title)
			assert.Equal(t, 3, p.SubjectID)
			assert.Equal(t, 7, p.UserID)
			assert.True(t, tt.wantStart.Equal(p.StartsAt), "start = %v; want %v", p.StartsAt, tt.wantStart)
			assert.True(t, tt.wantEnd.Equal(p.EndsAt), "end = %v; want %v", p.EndsAt, tt.wantEnd)
		})
	}
}

func TestFormFrom(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local)
	f := FormFrom(Reminder{Title: "Prova", SubjectID: 3, StartsAt: start, EndsAt: start.Add(2 * time.Hour)})
	assert.Equal(t, "2024-05-01", f.StartDate)
	assert.Equal(t, "08:30", f.StartTime)
	assert.Equal(t, "2024-05-01", f.EndDate)
	assert.Equal(t, "10:30", f.EndTime)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want int
		urg  Urgency
	}{
		{name: "earlier today", t: now.Add(-2 * time.Hour), want: 0, urg: UrgencyHigh},
		{name: "later today", t: now.Add(2 * time.Hour), want: 1, urg: UrgencyHigh},
		{name: "in 2 days", t: now.Add(48 * time.Hour), want: 2, urg: UrgencyMedium},
		{name: "in 3 days and a bit", t: now.Add(72*time.Hour + time.Minute), want: 4, urg: UrgencyLow},
		{name: "yesterday", t: now.Add(-36 * time.Hour), want: -1, urg: UrgencyHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysUntil(now, tt.t)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.urg, UrgencyOf(got))
		})
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	reminders := []Reminder{
		{ID: 1, StartsAt: now.Add(5 * day)},
		{ID: 2, StartsAt: now.Add(-2 * day)},
		{ID: 3, StartsAt: now.Add(time.Hour)},
		{ID: 4, StartsAt: now.Add(3 * day)},
		{ID: 5, StartsAt: now.Add(9 * day)},
		{ID: 6, StartsAt: now.Add(7 * day)},
		{ID: 7, StartsAt: now.Add(2 * day)},
	}

	got := Upcoming(reminders, now, UpcomingLimit)
	gotIDs := make([]int, 0, len(got))
	for _, r := range got {
		gotIDs = append(gotIDs, r.ID)
	}
	assert.Equal(t, []int{3, 7, 4, 1, 6}, gotIDs)
	assert.Len(t, reminders, 7, "input must not be truncated")
}

func TestFilter(t *testing.T) {
	reminders := []Reminder{
		{ID: 1, Title: "Prova P1", SubjectID: 1},
		{ID: 2, Title: "Trabalho", Description: "entregar a prova corrigida", SubjectID: 2},
		{ID: 3, Title: "Seminário", SubjectID: 1},
	}
	assert.Len(t, Filter(reminders, QueryFilter{Search: "PROVA"}), 2)
	assert.Len(t, Filter(reminders, QueryFilter{SubjectID: 1}), 2)
	got := Filter(reminders, QueryFilter{Search: "prova", SubjectID: 1})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}
