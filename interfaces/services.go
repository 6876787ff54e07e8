package interfaces

import (
	"time"
)

// ServiceStatus represents the current status of a service
type ServiceStatus = string

const (
	// ServiceStatusRunning indicates the service is currently running
	ServiceStatusRunning ServiceStatus = "RUNNING"
	// ServiceStatusStopped indicates the service is currently stopped
	ServiceStatusStopped ServiceStatus = "STOPPED"
	// ServiceStatusUnknown indicates the service status cannot be determined
	ServiceStatusUnknown ServiceStatus = "UNKNOWN"
)

// ServiceInfo contains metadata about a service
type ServiceInfo struct {
	Name          string        `json:"name"`
	Status        ServiceStatus `json:"status"`
	LastError     string        `json:"last_error,omitempty"`
	StartTime     time.Time     `json:"start_time,omitempty"`
	EventsHandled int64         `json:"events_handled,omitempty"`
	ErrorCount    int           `json:"error_count,omitempty"`
	LastErrorTime time.Time     `json:"last_error_time,omitempty"`
}
