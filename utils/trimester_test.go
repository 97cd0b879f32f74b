package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrimesterFromDueDate(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		weeksLeft int
		want      int
	}{
		{"just pregnant", 38, 1},
		{"end of first trimester", 28, 1},
		{"mid second trimester", 20, 2},
		{"early third trimester", 10, 3},
		{"due next week", 1, 3},
		{"slightly overdue", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dueDate := now.AddDate(0, 0, tt.weeksLeft*7)
			got, err := TrimesterFromDueDate(dueDate, now)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimesterFromDueDateErrors(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	_, err := TrimesterFromDueDate(time.Time{}, now)
	assert.Error(t, err)

	_, err = TrimesterFromDueDate(now.AddDate(1, 0, 0), now)
	assert.Error(t, err, "a due date a year out is not a valid pregnancy")

	_, err = TrimesterFromDueDate(now.AddDate(0, -2, 0), now)
	assert.Error(t, err, "a due date two months past should be rejected")
}

func TestValidTrimester(t *testing.T) {
	assert.False(t, ValidTrimester(0))
	assert.True(t, ValidTrimester(1))
	assert.True(t, ValidTrimester(2))
	assert.True(t, ValidTrimester(3))
	assert.False(t, ValidTrimester(4))
}
