package derive

import (
	"strings"
	"time"

	"saraban/internal/model"
)

// mainRoomToken distinguishes the large meeting room by substring match on
// the room field; every other room name is treated as the second room.
// Presentation rule only (color-coding), not a data invariant.
const mainRoomToken = "conference"

// Day is one calendar cell with the bookings falling on it.
type Day struct {
	Day      int            `json:"day"`
	Bookings []model.Record `json:"bookings"`
}

// Calendar is the month grid derived from the meeting booking list.
// Leading is the weekday offset of day 1 (0 = Sunday), i.e. the number of
// blank cells before day 1 in a Sunday-first 7-column grid.
type Calendar struct {
	Year    int   `json:"year"`
	Month   int   `json:"month"`
	Leading int   `json:"leading"`
	Days    []Day `json:"days"`
}

// MonthCalendar places bookings on the (year, month) grid. A booking lands
// on a day when its bookingDate matches that day's year, month, and day
// components; full-timestamp equality is not required. Bookings with
// unparseable or missing dates are never placed.
func MonthCalendar(records []model.Record, year int, month time.Month) Calendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cal := Calendar{
		Year:    year,
		Month:   int(month),
		Leading: int(first.Weekday()),
		Days:    make([]Day, daysInMonth),
	}
	for i := range cal.Days {
		cal.Days[i].Day = i + 1
	}

	for _, r := range records {
		t, ok := parseDate(r.Attributes.Str(model.KeyBookingDate))
		if !ok {
			continue
		}
		if t.Year() != year || t.Month() != month {
			continue
		}
		d := t.Day() - 1
		cal.Days[d].Bookings = append(cal.Days[d].Bookings, r)
	}
	return cal
}

// MainRoom reports whether the booking is for the main room, by substring
// match on the room name. Used for color-coding which bookings are
// candidates for a same-room conflict.
func MainRoom(r model.Record) bool {
	room := strings.ToLower(r.Attributes.Str(model.KeyRoom))
	return strings.Contains(room, mainRoomToken)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
