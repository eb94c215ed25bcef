// Package format turns timestamps, percentages and amounts into display strings.
// The label tables are exact: clients match on these literal strings.
package format

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is used wherever an absolute date is shown
const DateLayout = "Jan 02, 2006"

const (
	NoDueDate   = "No due date"
	DueToday    = "Due today"
	DueTomorrow = "Due tomorrow"
	JustNow     = "Just now"
)

var printer = message.NewPrinter(language.English)

// AbsoluteDate formats t as e.g. "Mar 07, 2026"
func AbsoluteDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DueDateLabel describes an end date relative to now's calendar date.
// A zero or pre-epoch end date means no due date.
func DueDateLabel(end time.Time, now time.Time) string {
	if end.IsZero() || end.UnixMilli() <= 0 {
		return NoDueDate
	}

	days := CalendarDaysBetween(now, end)
	switch {
	case days < 0:
		return "Overdue by " + plural(-days, "day")
	case days == 0:
		return DueToday
	case days == 1:
		return DueTomorrow
	case days <= 30:
		return fmt.Sprintf("Due in %d days", days)
	default:
		return "Due " + AbsoluteDate(end.In(now.Location()))
	}
}

// RelativeTimeLabel describes how long ago t was, e.g. "5 minutes ago".
// Anything a week or older is shown as an absolute date. A zero t renders as "".
func RelativeTimeLabel(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return JustNow
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour") + " ago"
	case diff < 7*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day") + " ago"
	default:
		return AbsoluteDate(t.In(now.Location()))
	}
}

// CalendarDaysBetween counts whole calendar days from from's date to to's date,
// both taken in from's location. Negative when to is on an earlier date.
func CalendarDaysBetween(from, to time.Time) int {
	to = to.In(from.Location())
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// Currency formats an amount as "$1,234.50"
func Currency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole, cents, _ := strings.Cut(amount.StringFixed(2), ".")
	return sign + "$" + groupThousands(whole) + "." + cents
}

// groupThousands inserts separators into a string of digits.
func groupThousands(digits string) string {
	n, ok := new(big.Int).SetString(digits, 10)
	if ok && n.IsInt64() {
		return printer.Sprintf("%d", n.Int64())
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Percent formats a whole percentage as "45%"
func Percent(pct int) string {
	return fmt.Sprintf("%d%%", pct)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
