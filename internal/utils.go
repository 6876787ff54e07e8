package internal

import (
	"os"

	"github.com/google/uuid"
)

func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateClientID identifies this process to the event bus
func GenerateClientID() string {
	host, err := os.Hostname()
	if err != nil {
		GetLogger().Warn(ComponentGeneral, "Error getting hostname: %v", err)
		return "atm-" + GenerateUUID()
	}
	return host
}
