package instance

import "github.com/aufaa4aaaaa/kasir-app/pkg/env"

const tillIDEnv = "KASIR_TILL_ID"

// GetID returns the till identifier used in logs and as the tick lock owner prefix.
func GetID() string {
	return env.Get(tillIDEnv, "till-1")
}
