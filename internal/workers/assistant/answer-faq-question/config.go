// internal/workers/assistant/answer-faq-question/config.go
package answerfaqquestion

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
