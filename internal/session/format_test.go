package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.0000"},
		{3661.1234, "01:01:01.1234"},
		{59.99999, "00:01:00.0000"},
		{3599.99996, "01:00:00.0000"},
		{85, "00:01:25.0000"},
		{360000.5, "100:00:00.5000"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(tc.seconds))
		})
	}
}

func TestFormatDurationPanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { FormatDuration(-1) })
}
