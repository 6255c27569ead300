// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

// BuildProfiles aggregates genre tags per month index. Every genre attached
// to a watch adds one unit, so a film with three genres contributes three.
// Watches dated before epochYear are skipped.
func BuildProfiles(records []WatchRecord, epochYear int) MonthlyGenreProfile {
	profiles := make(MonthlyGenreProfile)
	for i := range records {
		rec := &records[i]
		if rec.Date.Year() < epochYear {
			continue
		}
		if len(rec.Genres) == 0 {
			continue
		}
		counter, ok := profiles[rec.Month]
		if !ok {
			counter = make(GenreCounter)
			profiles[rec.Month] = counter
		}
		for _, g := range rec.Genres {
			counter[g]++
		}
	}
	return profiles
}
