package config

import "time"

const (
	// Opt-in listing
	DefaultOptInListLimit = 50
	MaxOptInListLimit     = 500

	// HTTP server timeouts
	RequestTimeout  = 30 * time.Second
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 10 * time.Second
	IdleTimeout     = 60 * time.Second
	ShutdownTimeout = 10 * time.Second

	// Request body cap
	MaxRequestBodySize = 1 << 20 // 1MB

	// Year-month partition layout (UTC)
	YearMonthLayout = "2006-01"
)
