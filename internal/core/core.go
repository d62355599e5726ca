package core

import "time"

// Comment is the atomic record of the corpus: one reader comment attached to
// exactly one news item. Date is nil when the source had no parseable fecha;
// nil dates are excluded from temporal aggregates but still count toward
// comment totals.
type Comment struct {
	NewsTitle string     `json:"news_title"` // Title of the parent news item
	Category  string     `json:"category"`   // News category (compared case-insensitively)
	Date      *time.Time `json:"date"`       // Comment date, nil when missing/unparseable
	Content   string     `json:"content"`    // Comment text, "" when absent in source
	Author    string     `json:"author"`     // Comment author, "Anónimo" when absent
}

// ContentLength returns the comment length in runes, not bytes, so accented
// Spanish text is measured the way the dashboards report it.
func (c Comment) ContentLength() int {
	return len([]rune(c.Content))
}

// HasDate reports whether the comment carries a usable date.
func (c Comment) HasDate() bool {
	return c.Date != nil
}

// Day returns the comment's calendar date with the time of day discarded.
// Only meaningful when HasDate is true.
func (c Comment) Day() time.Time {
	if c.Date == nil {
		return time.Time{}
	}
	return TruncateDay(*c.Date)
}

// DateRange is an inclusive [From, To] day interval used by the filter surface.
// A nil bound leaves that side open.
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// Contains reports whether a day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	if r.From != nil && day.Before(TruncateDay(*r.From)) {
		return false
	}
	if r.To != nil && day.After(TruncateDay(*r.To)) {
		return false
	}
	return true
}

// TruncateDay drops the time-of-day component, keeping the calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
