package session

import (
	"fmt"
	"math"
)

// fractionDigits is the number of fractional-second digits emitted by
// FormatDuration.
const fractionDigits = 4

// FormatDuration renders a seconds count as HH:MM:SS.ffff. Hours grow
// past two digits when needed. Durations produced by a Tracker are
// never negative; a negative or non-finite argument is a caller bug
// and panics.
func FormatDuration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		panic(fmt.Sprintf("session: FormatDuration(%v): value must be a non-negative finite number", seconds))
	}
	// Round once at fixed precision so the fraction cannot carry back
	// into the whole seconds after splitting.
	scale := math.Pow10(fractionDigits)
	scaled := int64(math.Round(seconds * scale))
	whole := scaled / int64(scale)
	frac := scaled % int64(scale)
	hrs := whole / 3600
	mins := whole % 3600 / 60
	secs := whole % 60
	return fmt.Sprintf("%02d:%02d:%02d.%0*d", hrs, mins, secs, fractionDigits, frac)
}
