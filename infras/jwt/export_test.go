package jwt

import (
	"resort/config"
	"time"
)

func NewWithClock(cfg *config.Config, now func() time.Time) JWT {
	return &Service{
		config: cfg,
		now:    now,
	}
}
