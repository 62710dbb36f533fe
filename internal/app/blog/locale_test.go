package blog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatterFor(t *testing.T) {
	day := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "3/5/2024"},
		{header: "en-US,en;q=0.9", want: "3/5/2024"},
		{header: "en-GB", want: "05/03/2024"},
		{header: "ta-IN,ta;q=0.9,en;q=0.5", want: "5/3/2024"},
		{header: "de-DE", want: "5.3.2024"},
		{header: "fr", want: "05/03/2024"},
		{header: "ja", want: "2024/3/5"},
		{header: "not a header;;;", want: "3/5/2024"},
	}

	for _, tc := range tests {
		got := FormatterFor(tc.header).Format(day)
		assert.Equal(t, tc.want, got, "Accept-Language %q", tc.header)
	}
}

func TestZeroFormatterUsesDefault(t *testing.T) {
	day := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "12/25/2024", DateFormatter{}.Format(day))
}
