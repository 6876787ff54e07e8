package cli_cmds

import (
	"context"
	"errors"
	"time"

	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/ZanzyTHEbar/atm-go/internal/cli"
	"github.com/ZanzyTHEbar/atm-go/internal/nats_common"
	"github.com/ZanzyTHEbar/atm-go/services"
)

// atmApp holds what serve and terminal share: the event publisher and the
// actor engine running the session.
type atmApp struct {
	params    *cli.CmdParams
	publisher interfaces.EventPublisher
	actors    *services.ActorServiceManager
}

func newATMApp(params *cli.CmdParams) (*atmApp, error) {
	publisher, err := nats_common.NewEventPublisher(nats_common.ConfigFrom(params.Config), params.Logger)
	if err != nil {
		return nil, err
	}

	actors, err := services.NewActorServiceManager(params.Config, publisher, params.Logger)
	if err != nil {
		_ = publisher.Close()
		return nil, err
	}
	if err := actors.Initialize(); err != nil {
		_ = publisher.Close()
		return nil, err
	}

	return &atmApp{params: params, publisher: publisher, actors: actors}, nil
}

func (a *atmApp) shutdownTimeout() time.Duration {
	d, err := time.ParseDuration(a.params.Config.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// Close stops the session actor, then flushes the publisher
func (a *atmApp) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
	defer cancel()

	errActors := a.actors.Shutdown(ctx)
	errPublisher := a.publisher.Close()
	if err := errors.Join(errActors, errPublisher); err != nil {
		a.params.Logger.Error(internal.ComponentService, "Shutdown: %v", err)
		return err
	}
	return nil
}
