package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
	"golang.org/x/sync/errgroup"
)

// ManagedService defines a service that runs until its context is cancelled.
// Start returns nil on a clean shutdown.
type ManagedService interface {
	Start(ctx context.Context) error
}

// ManagedServiceFunc adapts a plain function to ManagedService
type ManagedServiceFunc func(ctx context.Context) error

func (f ManagedServiceFunc) Start(ctx context.Context) error { return f(ctx) }

// ServiceManager runs long-lived services (HTTP server, terminal) side by side.
// The first one to fail cancels the rest.
type ServiceManager struct {
	logger *internal.Logger

	mu          sync.Mutex
	order       []string
	services    map[string]ManagedService
	serviceInfo map[string]*interfaces.ServiceInfo
}

// NewServiceManager creates an empty ServiceManager
func NewServiceManager(logger *internal.Logger) *ServiceManager {
	if logger == nil {
		logger = internal.GetLogger()
	}
	return &ServiceManager{
		logger:      logger,
		services:    make(map[string]ManagedService),
		serviceInfo: make(map[string]*interfaces.ServiceInfo),
	}
}

// Register adds a new service with a unique name to the manager
func (m *ServiceManager) Register(name string, service ManagedService) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.services[name]; !exists {
		m.order = append(m.order, name)
	}
	m.services[name] = service
	m.serviceInfo[name] = &interfaces.ServiceInfo{
		Name:   name,
		Status: interfaces.ServiceStatusStopped,
	}
	m.logger.Debug(internal.ComponentService, "Service %s registered", name)
}

// Run starts every registered service and blocks until all have returned.
// Cancelling ctx asks them to stop; the first error is returned.
func (m *ServiceManager) Run(ctx context.Context) error {
	m.mu.Lock()
	names := append([]string(nil), m.order...)
	m.mu.Unlock()

	if len(names) == 0 {
		return errors.New("no services registered")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		m.mu.Lock()
		svc := m.services[name]
		m.mu.Unlock()

		g.Go(func() error {
			m.setStatus(name, interfaces.ServiceStatusRunning, nil)
			m.logger.Info(internal.ComponentService, "Service %s started", name)

			err := svc.Start(gctx)

			m.setStatus(name, interfaces.ServiceStatusStopped, err)
			if err != nil {
				m.logger.Error(internal.ComponentService, "Service %s failed: %v", name, err)
				return fmt.Errorf("service %s: %w", name, err)
			}
			m.logger.Info(internal.ComponentService, "Service %s stopped", name)
			return nil
		})
	}
	return g.Wait()
}

func (m *ServiceManager) setStatus(name string, status interfaces.ServiceStatus, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.serviceInfo[name]
	if !ok {
		return
	}
	info.Status = status
	if status == interfaces.ServiceStatusRunning {
		info.StartTime = time.Now()
	}
	if err != nil {
		info.ErrorCount++
		info.LastError = err.Error()
		info.LastErrorTime = time.Now()
	}
}

// GetServiceInfo returns information about a specific service
func (m *ServiceManager) GetServiceInfo(name string) (*interfaces.ServiceInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, ok := m.serviceInfo[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	infoCopy := *info
	return &infoCopy, nil
}

// GetAllServicesInfo returns information about all registered services, by name
func (m *ServiceManager) GetAllServicesInfo() []*interfaces.ServiceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*interfaces.ServiceInfo, 0, len(m.serviceInfo))
	for _, info := range m.serviceInfo {
		infoCopy := *info
		result = append(result, &infoCopy)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
