package service

// BurnedChecks reports how many dummy hash checks have run.
func BurnedChecks() int64 { return burnedChecks.Load() }
