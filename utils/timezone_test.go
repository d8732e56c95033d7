package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUTCOffset(t *testing.T) {
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		offset   int
		expected string
	}{
		{"UTC", 0, "UTC+0"},
		{"Ekaterinburg", 5 * 3600, "UTC+5"},
		{"Kolkata", 5*3600 + 30*60, "UTC+5:30"},
		{"Kathmandu", 5*3600 + 45*60, "UTC+5:45"},
		{"St Johns", -(3*3600 + 30*60), "UTC-3:30"},
		{"Honolulu", -10 * 3600, "UTC-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := time.FixedZone(tt.name, tt.offset)
			assert.Equal(t, tt.expected, FormatUTCOffset(base.In(loc)))
		})
	}
}

func TestAvailableTimezonesAreWellFormed(t *testing.T) {
	zones := GetAvailableTimezones()
	require.NotEmpty(t, zones)

	seen := make(map[string]bool)
	for _, tz := range zones {
		assert.NotEmpty(t, tz.ID)
		assert.NotEmpty(t, tz.Name)
		assert.Len(t, tz.CountryCode, 2, tz.Name)
		assert.False(t, seen[tz.Name], "duplicate city %s", tz.Name)
		seen[tz.Name] = true
		for _, alias := range tz.Aliases {
			assert.Equal(t, strings.ToLower(alias), alias, "aliases are stored lowercase")
		}
	}
}

func TestGetAvailableTimezonesReturnsCopy(t *testing.T) {
	zones := GetAvailableTimezones()
	zones[0].ID = "Mars/Olympus_Mons"
	assert.NotEqual(t, "Mars/Olympus_Mons", GetAvailableTimezones()[0].ID)
}

func TestTimezoneInfoNames(t *testing.T) {
	tz := TimezoneInfo{ID: "Asia/Yekaterinburg", Name: "Ekaterinburg", NativeName: "Екатеринбург", Aliases: []string{"ekb"}}
	assert.Equal(t, []string{"Ekaterinburg", "Екатеринбург", "ekb", "Asia/Yekaterinburg"}, tz.Names())
}
