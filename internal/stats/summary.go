package stats

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// summaryWidth is the column width of every summary line.
const summaryWidth = 30

// summaryRows lists the counters shown at the end of a run, in order.
var summaryRows = []struct {
	kind  Kind
	label string
}{
	{Score, "Score"},
	{ShotsFired, "Shots fired"},
	{EnemiesDestroyed, "UFO's destroyed"},
	{BonusesDestroyed, "Bonus ships destroyed"},
	{ShieldsDestroyed, "Shields destroyed"},
	{ShotsHit, "Invader shots hit"},
	{Level, "Level"},
}

// Summary returns the end-of-run report, one padded line per counter plus
// the total play time as of now.
func (l *Ledger) Summary(now time.Time) []string {
	p := message.NewPrinter(language.English)
	lines := make([]string, 0, len(summaryRows)+1)
	for _, row := range summaryRows {
		lines = append(lines, padMiddle(row.label, p.Sprintf("%d", l.counters[row.kind])))
	}
	played := l.PlayTime(now).Seconds()
	lines = append(lines, padMiddle("Time played", p.Sprintf("%.2f", played)))
	return lines
}

// FormatNumber renders n with thousands separators.
func FormatNumber(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// padMiddle left-aligns label and right-aligns value within summaryWidth.
func padMiddle(label, value string) string {
	gap := summaryWidth - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}
