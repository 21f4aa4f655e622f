package utils_test

import (
	"testing"
	"time"

	"github.com/temirov/ftree/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0b"},
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "last byte count", bytes: 1023, expected: "1023b"},
		{name: "one kilobyte", bytes: 1024, expected: "1kb"},
		{name: "just over one kilobyte", bytes: 1025, expected: "1kb"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5kb"},
		{name: "rounds up to whole units", bytes: 10239, expected: "10kb"},
		{name: "just under one megabyte", bytes: 1024*1024 - 1, expected: "1024kb"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10mb"},
		{name: "largest unit", bytes: 1 << 62, expected: "4096pb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	location := time.Now().Location()
	testCases := []struct {
		name     string
		value    time.Time
		expected string
	}{
		{
			name:     "zero time",
			value:    time.Time{},
			expected: "",
		},
		{
			name:     "local timestamp",
			value:    time.Date(2024, time.January, 2, 15, 4, 0, 0, location),
			expected: "2024-01-02 15:04",
		},
		{
			name:     "seconds are truncated",
			value:    time.Date(2024, time.December, 31, 23, 59, 59, 999, location),
			expected: "2024-12-31 23:59",
		},
		{
			name:     "other zones render in local time",
			value:    time.Date(2024, time.July, 1, 12, 30, 0, 0, time.FixedZone("east", 5*60*60)).In(location),
			expected: time.Date(2024, time.July, 1, 7, 30, 0, 0, time.UTC).In(location).Format("2006-01-02 15:04"),
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatTimestamp(testCase.value)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}
