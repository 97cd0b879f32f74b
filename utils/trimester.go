package utils

import (
	"errors"
	"time"
)

const gestationWeeks = 40

// TrimesterFromDueDate derives the current trimester from an expected due
// date, assuming a 40-week term.
func TrimesterFromDueDate(dueDate, now time.Time) (int, error) {
	if dueDate.IsZero() {
		return 0, errors.New("due date is required")
	}

	weeksLeft := dueDate.Sub(now).Hours() / (24 * 7)
	// Sanity checks to avoid garbage input
	if weeksLeft > gestationWeeks+2 {
		return 0, errors.New("due date too far in the future")
	}
	if weeksLeft < -2 {
		return 0, errors.New("due date is in the past")
	}

	weeksPregnant := gestationWeeks - weeksLeft
	switch {
	case weeksPregnant <= 13:
		return 1, nil
	case weeksPregnant <= 27:
		return 2, nil
	default:
		return 3, nil
	}
}

// ValidTrimester reports whether t is one of the three trimesters.
func ValidTrimester(t int) bool {
	return t >= 1 && t <= 3
}
