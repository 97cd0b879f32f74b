package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoodName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Spinach (Palak)", "spinach"},
		{"Dates (Khajoor)", "dates"},
		{"  Moong   Dal ", "moong dal"},
		{"Idli", "idli"},
		{"Curd/Dahi", "curd dahi"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeFoodName(tt.in), "input %q", tt.in)
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("grilled chicken curry", "chicken", "fish"))
	assert.False(t, ContainsAny("palak paneer", "chicken", "fish"))
	assert.False(t, ContainsAny("anything"))
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "winter"},
		{time.March, "summer"},
		{time.June, "summer"},
		{time.July, "monsoon"},
		{time.September, "monsoon"},
		{time.October, "winter"},
		{time.December, "winter"},
	}
	for _, tt := range tests {
		at := time.Date(2026, tt.month, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, CurrentSeason(at), "month %s", tt.month)
	}
}
