// ABOUTME: Natural-language date and time detection for reminder suggestions
// ABOUTME: Understands relative durations, day words, weekdays, numeric dates and clock times in English
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Func is the signature consumers depend on, so Parse can be swapped out.
type Func func(text string, ref time.Time, strict bool) (time.Time, bool)

const defaultHour = 9

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var (
	reDuration = regexp.MustCompile(`\bin\s+(\d+|an?|one|half an?)\s*(minutes?|mins?|hours?|hrs?|days?|weeks?)\b`)
	reISODate  = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	reUSDate   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2}|\d{4}))?\b`)
	reDayAfter = regexp.MustCompile(`\bday after tomorrow\b`)
	reTomorrow = regexp.MustCompile(`\b(tomorrow|tmrw|tmr)\b`)
	reToday    = regexp.MustCompile(`\btoday\b`)
	reTonight  = regexp.MustCompile(`\btonight\b`)
	reWeekday  = regexp.MustCompile(`\b(?:next\s+|this\s+|on\s+)?(sunday|monday|tuesday|wednesday|thursday|friday|saturday|sun|mon|tues|tue|wed|thurs|thur|thu|fri|sat)\b`)
	reNextWeek = regexp.MustCompile(`\bnext week\b`)
	reMeridiem = regexp.MustCompile(`\b(\d{1,2})(?::([0-5]\d))?\s*(am|pm|a\.m\.|p\.m\.)`)
	reClock24  = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	reAtHour   = regexp.MustCompile(`\bat\s+(\d{1,2})\b`)
	reNoon     = regexp.MustCompile(`\bnoon\b`)
	rePartDay  = regexp.MustCompile(`\b(morning|afternoon|evening)\b`)
)

// Parse finds the first date or time mentioned in text, relative to ref, in
// ref's location. A date without a clock time is placed at 09:00. A clock
// time without a date is today, or tomorrow if that time has passed.
//
// In strict mode a weekday name or "next week" only counts when a clock time
// is also present, and parts of the day ("morning") are ignored.
func Parse(text string, ref time.Time, strict bool) (time.Time, bool) {
	lower := strings.ToLower(text)
	loc := ref.Location()

	if m := reDuration.FindStringSubmatch(lower); m != nil {
		if d, days, ok := duration(m[1], m[2]); ok {
			if days == 0 {
				return ref.Add(d).Truncate(time.Minute), true
			}
			// "in 3 days" keeps scanning for a clock time.
			return withClock(lower, ref.AddDate(0, 0, days), ref, strict, true, false)
		}
	}

	date, found, weak := findDate(lower, ref)
	if !found {
		return withClock(lower, ref, ref, strict, false, false)
	}
	t, ok := withClock(lower, date, ref, strict, true, reTonight.MatchString(lower))
	if !ok {
		return time.Time{}, false
	}
	if weak && strict && !hasClock(lower) {
		return time.Time{}, false
	}
	return t.In(loc), true
}

func duration(amount, unit string) (time.Duration, int, bool) {
	var n float64
	switch amount {
	case "a", "an", "one":
		n = 1
	case "half a", "half an":
		n = 0.5
	default:
		v, err := strconv.Atoi(amount)
		if err != nil {
			return 0, 0, false
		}
		n = float64(v)
	}
	switch {
	case strings.HasPrefix(unit, "min"):
		return time.Duration(n * float64(time.Minute)), 0, true
	case strings.HasPrefix(unit, "h"):
		return time.Duration(n * float64(time.Hour)), 0, true
	case strings.HasPrefix(unit, "day"):
		return 0, int(n), n >= 1
	case strings.HasPrefix(unit, "week"):
		return 0, int(n * 7), n >= 1
	}
	return 0, 0, false
}

// findDate returns the calendar day mentioned in text. weak is set for
// matches that strict mode does not accept on their own.
func findDate(lower string, ref time.Time) (date time.Time, found, weak bool) {
	loc := ref.Location()
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)

	if m := reISODate.FindStringSubmatch(lower); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if validDay(y, mo, d) {
			return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc), true, false
		}
	}

	if m := reUSDate.FindStringSubmatch(lower); m != nil {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		y := ref.Year()
		explicitYear := m[3] != ""
		if explicitYear {
			y, _ = strconv.Atoi(m[3])
			if len(m[3]) == 2 {
				y += 2000
			}
		}
		if validDay(y, mo, d) {
			t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, loc)
			if !explicitYear && t.Before(today) {
				t = t.AddDate(1, 0, 0)
			}
			return t, true, false
		}
	}

	switch {
	case reDayAfter.MatchString(lower):
		return today.AddDate(0, 0, 2), true, false
	case reTomorrow.MatchString(lower):
		return today.AddDate(0, 0, 1), true, false
	case reToday.MatchString(lower), reTonight.MatchString(lower):
		return today, true, false
	}

	if m := reWeekday.FindStringSubmatch(lower); m != nil {
		wd := weekdays[m[1]]
		ahead := (int(wd) - int(ref.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return today.AddDate(0, 0, ahead), true, true
	}

	if reNextWeek.MatchString(lower) {
		return today.AddDate(0, 0, 7), true, true
	}
	return time.Time{}, false, false
}

func validDay(y, mo, d int) bool {
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	return t.Day() == d
}

func hasClock(lower string) bool {
	_, _, ok := clock(lower, true, false)
	return ok
}

// clock extracts an hour and minute from text.
func clock(lower string, strict, evening bool) (hour, minute int, ok bool) {
	if m := reMeridiem.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h >= 1 && h <= 12 {
			mins, _ := strconv.Atoi(m[2])
			pm := strings.HasPrefix(m[3], "p")
			if h == 12 {
				h = 0
			}
			if pm {
				h += 12
			}
			return h, mins, true
		}
	}
	if m := reClock24.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return h, mins, true
	}
	if m := reAtHour.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h >= 0 && h <= 23 {
			if h >= 1 && h <= 7 || (evening && h < 12) {
				h += 12
			}
			return h, 0, true
		}
	}
	if reNoon.MatchString(lower) {
		return 12, 0, true
	}
	if !strict {
		if m := rePartDay.FindStringSubmatch(lower); m != nil {
			switch m[1] {
			case "morning":
				return 9, 0, true
			case "afternoon":
				return 14, 0, true
			case "evening":
				return 18, 0, true
			}
		}
	}
	return 0, 0, false
}

// withClock places day at the clock time found in text. When no date was
// given, a time already past today rolls over to tomorrow. dated reports
// whether day came from an explicit date; without one and without a clock
// time there is nothing to return.
func withClock(lower string, day, ref time.Time, strict, dated, evening bool) (time.Time, bool) {
	loc := ref.Location()
	h, m, ok := clock(lower, strict, evening)
	if !ok {
		if !dated {
			return time.Time{}, false
		}
		h, m = defaultHour, 0
		if evening {
			h = 20
		}
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc)
	if !dated && !t.After(ref) {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}
