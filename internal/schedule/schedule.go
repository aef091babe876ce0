// Package schedule holds the weekly class timetable and the list of
// date-specific events shown on the public schedule section.  Both are
// stored as JSON content items (section "schedule", keys "classes" and
// "events"); this package reconciles whatever was persisted against the
// fixed Monday..Sunday order.
package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Content coordinates of the two schedule items.
const (
	Section    = "schedule"
	ClassesKey = "classes"
	EventsKey  = "events"
)

// CanonicalDays is the display order of the week.
var CanonicalDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Class is one recurring entry in a day bucket.  Spots and Price are
// optional; the admin form sends "" for an empty field.
type Class struct {
	Time       string   `json:"time"`
	Name       string   `json:"name"`
	Instructor string   `json:"instructor,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Spots      *int     `json:"spots,omitempty"`
	Price      *float64 `json:"price,omitempty"`
}

// Day is a single weekday bucket.
type Day struct {
	Day     string  `json:"day"`
	Classes []Class `json:"classes"`
}

// Weekly is the persisted shape of the "classes" item.
type Weekly struct {
	Days []Day `json:"days"`
}

// Event is a one-off class or workshop on a specific date.
type Event struct {
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Name       string   `json:"name"`
	Instructor string   `json:"instructor,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Spots      *int     `json:"spots,omitempty"`
	Price      *float64 `json:"price,omitempty"`
}

// Default returns an empty week in canonical order.
func Default() Weekly {
	days := make([]Day, 0, len(CanonicalDays))
	for _, d := range CanonicalDays {
		days = append(days, Day{Day: d, Classes: []Class{}})
	}
	return Weekly{Days: days}
}

// Merge returns exactly one bucket per canonical day, in canonical order.
// A persisted bucket replaces the empty default for its day; unknown day
// keys are dropped and a repeated key keeps its last occurrence.
func Merge(persisted []Day) Weekly {
	byDay := make(map[string]Day, len(persisted))
	for _, d := range persisted {
		byDay[d.Day] = d
	}
	out := Default()
	for i, def := range out.Days {
		d, ok := byDay[def.Day]
		if !ok {
			continue
		}
		if d.Classes == nil {
			d.Classes = []Class{}
		}
		out.Days[i] = d
	}
	return out
}

// DecodeClasses parses the "classes" item and merges it.  Missing or
// malformed JSON yields the default week.
func DecodeClasses(raw json.RawMessage) Weekly {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Default()
	}
	var w Weekly
	if err := json.Unmarshal(raw, &w); err != nil {
		return Default()
	}
	return Merge(w.Days)
}

// DecodeEvents parses the "events" item.  Anything that is not a JSON
// array of events yields an empty list.
func DecodeEvents(raw json.RawMessage) []Event {
	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil || events == nil {
		return []Event{}
	}
	return events
}

// SortEvents orders events chronologically by date, then time.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
}

// Upcoming returns the events dated on or after the day of now, sorted.
// Events without a parseable date are skipped.
func Upcoming(events []Event, now time.Time) []Event {
	today := now.Format(dateLayout)
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if _, err := time.Parse(dateLayout, ev.Date); err != nil {
			continue
		}
		if ev.Date >= today {
			out = append(out, ev)
		}
	}
	SortEvents(out)
	return out
}

const dateLayout = "2006-01-02"

// Validate checks a week and event list before they are saved.
func Validate(w Weekly, events []Event) error {
	seen := make(map[string]bool, len(w.Days))
	for _, d := range w.Days {
		if !isCanonical(d.Day) {
			return fmt.Errorf("unknown day %q", d.Day)
		}
		if seen[d.Day] {
			return fmt.Errorf("duplicate day %q", d.Day)
		}
		seen[d.Day] = true
		for _, c := range d.Classes {
			if strings.TrimSpace(c.Name) == "" {
				return fmt.Errorf("%s: class name is required", d.Day)
			}
		}
	}
	for i, ev := range events {
		if _, err := time.Parse(dateLayout, ev.Date); err != nil {
			return fmt.Errorf("event %d: date must be YYYY-MM-DD", i+1)
		}
		if strings.TrimSpace(ev.Name) == "" {
			return fmt.Errorf("event %d: name is required", i+1)
		}
	}
	return nil
}

func isCanonical(day string) bool {
	for _, d := range CanonicalDays {
		if d == day {
			return true
		}
	}
	return false
}
