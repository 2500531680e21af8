package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// TrackingPollInterval is how often each tracked order is recalculated.
	TrackingPollInterval time.Duration

	// CourierReclaimTimeout is the assignment age past which a courier is
	// considered stuck and returned to the available pool.
	CourierReclaimTimeout time.Duration
}
