package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// CronJobs holds built-in jobs. Jobs needing runtime dependencies (the session
// sweep needs the live store) register through cron.Register at startup instead.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
