package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// Built-in jobs live in cron/jobs and self-register through cron.Register;
// this map is for static wiring when that is preferred.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
