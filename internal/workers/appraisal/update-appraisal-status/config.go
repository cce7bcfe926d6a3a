// internal/workers/appraisal/update-appraisal-status/config.go
package updateappraisalstatus

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
