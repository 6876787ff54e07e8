package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/atm-go/domain/models"
	"github.com/ZanzyTHEbar/atm-go/domain/usecases"
	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/anthdm/hollywood/actor"
	"golang.org/x/sync/errgroup"
)

// DefaultRequestTimeout bounds a single request to an actor
const DefaultRequestTimeout = 5 * time.Second

// ErrServiceNotFound is returned for a service name that was never registered
var ErrServiceNotFound = errors.New("service not found")

// ActorServiceManager owns the actor engine and the actors spawned on it
type ActorServiceManager struct {
	config    *internal.Config
	logger    *internal.Logger
	publisher interfaces.EventPublisher
	timeout   time.Duration

	engine *actor.Engine

	services map[string]*actor.PID
	mu       sync.RWMutex
}

// NewActorServiceManager creates a new actor-based service manager
func NewActorServiceManager(config *internal.Config, publisher interfaces.EventPublisher, logger *internal.Logger) (*ActorServiceManager, error) {
	if logger == nil {
		logger = internal.GetLogger()
	}
	if publisher == nil {
		publisher = interfaces.NopPublisher{}
	}

	engine, err := actor.NewEngine(actor.NewEngineConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create actor engine: %w", err)
	}

	return &ActorServiceManager{
		config:    config,
		logger:    logger,
		publisher: publisher,
		timeout:   DefaultRequestTimeout,
		engine:    engine,
		services:  make(map[string]*actor.PID),
	}, nil
}

// Initialize builds the account and session from config and spawns the session actor
func (m *ActorServiceManager) Initialize() error {
	account := models.NewAccount(m.config.Account.PIN, m.config.Account.OpeningBalance)
	if err := account.Validate(); err != nil {
		return fmt.Errorf("invalid account configuration: %w", err)
	}

	session := usecases.NewSession(account, usecases.SessionOptions{
		CurrencySymbol:  m.config.Currency.Symbol,
		FastCashOptions: m.config.FastCash,
		Logger:          m.logger,
	})

	m.Register(SessionServiceName, func() actor.Receiver {
		return NewSessionActor(session, m.publisher, m.logger)
	})
	return nil
}

// Register spawns an actor service under a unique name
func (m *ActorServiceManager) Register(name string, producer actor.Producer) {
	m.logger.Debug(internal.ComponentService, "Registering actor service: %s", name)

	pid := m.engine.Spawn(producer, name, actor.WithID(name))

	m.mu.Lock()
	m.services[name] = pid
	m.mu.Unlock()

	m.logger.Debug(internal.ComponentService, "Actor service %s registered successfully", name)
}

func (m *ActorServiceManager) pid(name string) (*actor.PID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pid, ok := m.services[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}
	return pid, nil
}

// request sends msg to the named actor and waits for the answer, honouring
// the context deadline when it is sooner than the manager's timeout.
func (m *ActorServiceManager) request(ctx context.Context, name string, msg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pid, err := m.pid(name)
	if err != nil {
		return nil, err
	}

	timeout := m.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	result, err := m.engine.Request(pid, msg, timeout).Result()
	if err != nil {
		return nil, fmt.Errorf("request %T to %s: %w", msg, name, err)
	}
	return result, nil
}

// GetServiceInfo returns information about a specific service
func (m *ActorServiceManager) GetServiceInfo(ctx context.Context, name string) (*interfaces.ServiceInfo, error) {
	result, err := m.request(ctx, name, StatusRequestMsg{})
	if err != nil {
		return nil, err
	}
	response, ok := result.(StatusResponseMsg)
	if !ok {
		return nil, fmt.Errorf("unexpected status response %T from %s", result, name)
	}
	info := response.Info
	return &info, nil
}

// GetAllServicesInfo asks every registered service for its status concurrently
func (m *ActorServiceManager) GetAllServicesInfo(ctx context.Context) []*interfaces.ServiceInfo {
	m.mu.RLock()
	names := make([]string, 0, len(m.services))
	for name := range m.services {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)

	result := make([]*interfaces.ServiceInfo, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			info, err := m.GetServiceInfo(gctx, name)
			if err != nil {
				m.logger.Warn(internal.ComponentService, "Status request to %s failed: %v", name, err)
				info = &interfaces.ServiceInfo{Name: name, Status: interfaces.ServiceStatusUnknown}
			}
			result[i] = info
			return nil
		})
	}
	_ = g.Wait()

	return result
}

// Session returns a client for the session actor
func (m *ActorServiceManager) Session() *SessionClient {
	return &SessionClient{manager: m}
}

// Shutdown poisons every actor and waits for them to stop
func (m *ActorServiceManager) Shutdown(ctx context.Context) error {
	m.logger.Info(internal.ComponentService, "Shutting down actor service manager")

	m.mu.Lock()
	pids := make(map[string]*actor.PID, len(m.services))
	for name, pid := range m.services {
		pids[name] = pid
	}
	m.services = make(map[string]*actor.PID)
	m.mu.Unlock()

	var g errgroup.Group
	for name, pid := range pids {
		g.Go(func() error {
			select {
			case <-m.engine.Poison(pid).Done():
				m.logger.Debug(internal.ComponentService, "Actor service %s stopped", name)
				return nil
			case <-ctx.Done():
				return fmt.Errorf("stopping %s: %w", name, ctx.Err())
			}
		})
	}
	return g.Wait()
}

// SessionClient implements interfaces.SessionService on top of the session actor
type SessionClient struct {
	manager *ActorServiceManager
}

var _ interfaces.SessionService = (*SessionClient)(nil)

func (s *SessionClient) ask(ctx context.Context, msg any) (*interfaces.SessionReply, error) {
	result, err := s.manager.request(ctx, SessionServiceName, msg)
	if err != nil {
		return nil, err
	}
	reply, ok := result.(*interfaces.SessionReply)
	if !ok {
		return nil, fmt.Errorf("unexpected session reply %T", result)
	}
	return reply, reply.Err
}

func (s *SessionClient) View(ctx context.Context) (*interfaces.SessionReply, error) {
	return s.ask(ctx, ViewMsg{})
}

func (s *SessionClient) Login(ctx context.Context, pin string) (*interfaces.SessionReply, error) {
	return s.ask(ctx, LoginMsg{PIN: pin})
}

func (s *SessionClient) Logout(ctx context.Context) (*interfaces.SessionReply, error) {
	return s.ask(ctx, LogoutMsg{})
}

func (s *SessionClient) Navigate(ctx context.Context, screen models.Screen) (*interfaces.SessionReply, error) {
	return s.ask(ctx, NavigateMsg{Screen: screen})
}

func (s *SessionClient) Back(ctx context.Context) (*interfaces.SessionReply, error) {
	return s.ask(ctx, BackMsg{})
}

func (s *SessionClient) Input(ctx context.Context, inputs ...interfaces.Input) (*interfaces.SessionReply, error) {
	return s.ask(ctx, InputMsg{Inputs: inputs})
}

func (s *SessionClient) Confirm(ctx context.Context, inputs ...interfaces.Input) (*interfaces.SessionReply, error) {
	return s.ask(ctx, ConfirmMsg{Inputs: inputs})
}

func (s *SessionClient) FastCash(ctx context.Context, amount float64) (*interfaces.SessionReply, error) {
	return s.ask(ctx, FastCashMsg{Amount: amount})
}

func (s *SessionClient) Status(ctx context.Context) (*interfaces.ServiceInfo, error) {
	return s.manager.GetServiceInfo(ctx, SessionServiceName)
}
