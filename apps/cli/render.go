package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/trezcool/estudos/core/reminder"
)

func (cli *commandLine) table(header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...interface{}) {
	cells := make([]string, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, fmt.Sprint(c))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func formatTime(t time.Time) string {
	return t.Local().Format(reminder.DateLayout + " " + reminder.TimeLayout)
}

func daysLabel(days int, urgency reminder.Urgency) string {
	var label string
	switch days {
	case 0:
		label = "hoje"
	case 1:
		label = "amanhã"
	default:
		label = fmt.Sprintf("%d dias", days)
	}
	if urgency == reminder.UrgencyHigh {
		label += " !"
	}
	return label
}
