// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"fmt"
	"time"
)

// DefaultEpochYear is the year whose January is month index 1.
const DefaultEpochYear = 2025

// MonthIndex returns the month index of t relative to epochYear.
// Dates before the epoch produce indices below 1.
func MonthIndex(t time.Time, epochYear int) int {
	return (t.Year()-epochYear)*12 + int(t.Month())
}

// MonthStart returns the first day of the given month index in UTC.
func MonthStart(month, epochYear int) time.Time {
	// floor division keeps indices <= 0 on the right year
	offset := month - 1
	years := offset / 12
	if offset < 0 && offset%12 != 0 {
		years--
	}
	m := offset - years*12
	return time.Date(epochYear+years, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
}

// MonthLabel renders a month index as "January 2025".
func MonthLabel(month, epochYear int) string {
	t := MonthStart(month, epochYear)
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}

// ValidateMonth rejects month indices below 1.
func ValidateMonth(month int) error {
	if month < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}
	return nil
}
