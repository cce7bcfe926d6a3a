// internal/workers/appraisal/calculate-appraisal-score/config.go
package calculateappraisalscore

import "time"

type Config struct {
	Timeout time.Duration
	// WeightTolerance is the accepted deviation of the section weight sum
	// from 1.0.
	WeightTolerance float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		WeightTolerance: 0.001,
	}
}
