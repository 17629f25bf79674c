package domain

import (
	"sort"
	"time"
)

const hourLayout = "03:04 PM"

var dayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var hourChoices, hourMinutes = buildHourChoices()

// buildHourChoices returns the half-hour labels of a day ("12:00 AM" to "11:30 PM")
// and a label -> minute-of-day index.
func buildHourChoices() ([]string, map[string]int) {
	labels := make([]string, 0, 48)
	idx := make(map[string]int, 48)
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for m := 0; m < 24*60; m += 30 {
		l := base.Add(time.Duration(m) * time.Minute).Format(hourLayout)
		labels = append(labels, l)
		idx[l] = m
	}
	return labels, idx
}

// HourChoices lists every allowed from/to label.
func HourChoices() []string {
	out := make([]string, len(hourChoices))
	copy(out, hourChoices)
	return out
}

// HourMinute returns the minute of day for a label from HourChoices.
func HourMinute(label string) (int, bool) {
	m, ok := hourMinutes[label]
	return m, ok
}

// ClosingMinute is HourMinute for a to_hour label: "12:00 AM" closes at the end of
// the day (minute 1440), not at its start.
func ClosingMinute(label string) (int, bool) {
	m, ok := hourMinutes[label]
	if ok && m == 0 {
		return 24 * 60, true
	}
	return m, ok
}

// ISOWeekday maps time.Weekday onto 1 (Monday) .. 7 (Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

type OpeningHour struct {
	ID       int64  `db:"id" json:"id"`
	VendorID int64  `db:"vendor_id" json:"vendor_id"`
	Day      int    `db:"day" json:"day"`
	FromHour string `db:"from_hour" json:"from_hour"`
	ToHour   string `db:"to_hour" json:"to_hour"`
	IsClosed bool   `db:"is_closed" json:"is_closed"`
}

func (h OpeningHour) DayName() string {
	if h.Day < 1 || h.Day > 7 {
		return ""
	}
	return dayNames[h.Day]
}

// OpenAt reports whether minute-of-day m falls inside the slot.
func (h OpeningHour) OpenAt(m int) bool {
	if h.IsClosed {
		return false
	}
	from, ok1 := HourMinute(h.FromHour)
	to, ok2 := ClosingMinute(h.ToHour)
	if !ok1 || !ok2 {
		return false
	}
	return from <= m && m < to
}

// SortHours orders slots by day, then by from-time as minute of day. Closed slots
// without a from-time sort first within their day.
func SortHours(hs []OpeningHour) {
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Day != hs[j].Day {
			return hs[i].Day < hs[j].Day
		}
		mi, _ := HourMinute(hs[i].FromHour)
		mj, _ := HourMinute(hs[j].FromHour)
		return mi < mj
	})
}

// IsOpen reports whether any of today's slots covers now.
func IsOpen(today []OpeningHour, now time.Time) bool {
	m := now.Hour()*60 + now.Minute()
	for _, h := range today {
		if h.Day == ISOWeekday(now) && h.OpenAt(m) {
			return true
		}
	}
	return false
}
