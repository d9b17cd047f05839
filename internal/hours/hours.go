// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package hours evaluates a venue's stored working-hours schedule into a
// tri-state open status. Schedules arrive as loosely-typed JSON maps keyed
// by weekday name, so the evaluator is deliberately forgiving about shape
// and degrades to "closed" rather than erroring on malformed entries.
package hours

import (
	"strings"
	"time"
)

// Status is the computed open state of a venue.
type Status string

const (
	// Open means the current time falls inside today's stated range.
	Open Status = "open"

	// Closed means the venue is closed now, either explicitly or because
	// today's entry is missing or unparseable.
	Closed Status = "closed"

	// Unknown means no determination can be made: the venue has not opted
	// into status display, or carries no usable schedule at all.
	Unknown Status = "unknown"
)

// DefaultTimezone is the reference timezone for all schedule evaluation.
// Venue hours are local wall-clock times in the city the guide covers,
// never the API caller's timezone.
const DefaultTimezone = "Europe/Skopje"

// closedMarkers are schedule values meaning "closed all day", in either
// content language.
var closedMarkers = map[string]struct{}{
	"closed":    {},
	"затворено": {},
}

// weekdayNames maps time.Weekday to the accepted schedule keys for that
// day: the full lowercase English name and its three-letter abbreviation.
var weekdayNames = map[time.Weekday][]string{
	time.Monday:    {"monday", "mon"},
	time.Tuesday:   {"tuesday", "tue"},
	time.Wednesday: {"wednesday", "wed"},
	time.Thursday:  {"thursday", "thu"},
	time.Friday:    {"friday", "fri"},
	time.Saturday:  {"saturday", "sat"},
	time.Sunday:    {"sunday", "sun"},
}

// Evaluator computes open status in a fixed reference timezone.
type Evaluator struct {
	loc *time.Location
}

// NewEvaluator loads the named timezone. An empty name selects the default.
func NewEvaluator(timezone string) (*Evaluator, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Evaluator{loc: loc}, nil
}

// Evaluate returns the open status of a schedule at the current time.
// optedIn is the venue's show_open_status flag; venues that have not opted
// in always report Unknown regardless of schedule contents.
func (e *Evaluator) Evaluate(schedule map[string]any, optedIn bool) Status {
	return e.EvaluateAt(schedule, optedIn, time.Now())
}

// EvaluateAt is Evaluate against an explicit instant, converted into the
// evaluator's reference timezone before the weekday and time are read.
func (e *Evaluator) EvaluateAt(schedule map[string]any, optedIn bool, now time.Time) Status {
	if !optedIn {
		return Unknown
	}
	if len(schedule) == 0 {
		return Unknown
	}

	// Some records nest the day map under a working_hours key. Only the
	// outer value decides "no usable schedule"; an empty inner map means
	// the venue stated hours and listed none, so the day lookup below
	// reports closed.
	if inner, ok := schedule["working_hours"].(map[string]any); ok {
		schedule = inner
	}

	local := now.In(e.loc)
	raw, ok := lookupDay(schedule, local.Weekday())
	if !ok {
		return Closed
	}

	value, ok := raw.(string)
	if !ok {
		return Closed
	}
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return Closed
	}
	if _, closed := closedMarkers[value]; closed {
		return Closed
	}

	open, close, ok := parseRange(value)
	if !ok {
		return Closed
	}

	minute := local.Hour()*60 + local.Minute()
	if close < open {
		// Range crosses midnight, e.g. 18:00-02:00.
		if minute >= open || minute < close {
			return Open
		}
		return Closed
	}
	if minute >= open && minute < close {
		return Open
	}
	return Closed
}

// lookupDay finds the schedule entry for a weekday, accepting full and
// abbreviated lowercase day names.
func lookupDay(schedule map[string]any, day time.Weekday) (any, bool) {
	for _, key := range weekdayNames[day] {
		if v, ok := schedule[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// parseRange parses "HH:MM-HH:MM" into minutes since midnight. Whitespace
// around the separator and the times is tolerated.
func parseRange(s string) (open, close int, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	open, ok = parseClock(strings.TrimSpace(parts[0]))
	if !ok {
		return 0, 0, false
	}
	close, ok = parseClock(strings.TrimSpace(parts[1]))
	if !ok {
		return 0, 0, false
	}
	return open, close, true
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
