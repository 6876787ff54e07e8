// Package services provides service implementations using the hollywood actor model
package services

import (
	"sync"
	"time"

	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
)

// BaseActor provides common functionality for all actors
type BaseActor struct {
	logger *internal.Logger
	name   string

	mu            sync.Mutex
	status        interfaces.ServiceStatus
	startTime     time.Time
	eventsHandled int64
	errorCount    int
	lastError     error
	lastErrorTime time.Time
}

// NewBaseActor creates a new base actor with the given name and logger
func NewBaseActor(name string, logger *internal.Logger) BaseActor {
	if logger == nil {
		logger = internal.GetLogger()
	}
	return BaseActor{
		name:   name,
		logger: logger,
		status: interfaces.ServiceStatusStopped,
	}
}

func (b *BaseActor) markStarted() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = interfaces.ServiceStatusRunning
	b.startTime = time.Now()
}

func (b *BaseActor) markStopped() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = interfaces.ServiceStatusStopped
}

// record counts a handled message and remembers err when set
func (b *BaseActor) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.eventsHandled++
	if err != nil {
		b.errorCount++
		b.lastError = err
		b.lastErrorTime = time.Now()
	}
}

func (b *BaseActor) info() interfaces.ServiceInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	info := interfaces.ServiceInfo{
		Name:          b.name,
		Status:        b.status,
		StartTime:     b.startTime,
		EventsHandled: b.eventsHandled,
		ErrorCount:    b.errorCount,
		LastErrorTime: b.lastErrorTime,
	}
	if b.lastError != nil {
		info.LastError = b.lastError.Error()
	}
	return info
}

// StatusRequestMsg is a message requesting the current status of an actor
type StatusRequestMsg struct{}

// StatusResponseMsg is the response to a status request
type StatusResponseMsg struct {
	Info interfaces.ServiceInfo
}
