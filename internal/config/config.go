package config

const (
	DefaultTimeZone = "Asia/Jakarta"

	// MinTahunAnggaran is the oldest fiscal year the application accepts;
	// the upper bound is always the current year.
	MinTahunAnggaran = 2010

	// DefaultRekapSchedule refreshes the rekap snapshot nightly at 02:00.
	DefaultRekapSchedule = "0 2 * * *"
)
