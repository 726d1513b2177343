package providers

import "time"

// shutdownTimeout is the maximum time allowed for graceful shutdown operations.
const shutdownTimeout = 30 * time.Second
