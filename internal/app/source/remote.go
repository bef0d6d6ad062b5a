package source

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/coder/websocket"

	"tlog/internal/app/bus"
	"tlog/internal/app/errors"
	"tlog/internal/app/logview"
	"tlog/internal/app/rules"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

// Remote accepts lines from websocket clients
type Remote struct {
	address    string
	path       string
	listener   net.Listener
	classifier rules.Classifier
	bus        bus.Bus
	connID     atomic.Int64
	metrics    *metrics
	wg         sync.WaitGroup
	log        logger.Logger
}

// NewRemote creates a Remote listening on the configured address and path
func NewRemote(cfg *config.Config, classifier rules.Classifier, b bus.Bus, log logger.Logger) *Remote {
	return &Remote{
		address:    cfg.Remote.Address,
		path:       cfg.Remote.Path,
		classifier: classifier,
		bus:        b,
		metrics:    newMetrics(),
		log:        log.WithComponent("REMOTE"),
	}
}

// Listen binds the listening socket; Run calls it when it has not been called yet
func (r *Remote) Listen() error {
	if r.listener != nil {
		return nil
	}

	listener, err := net.Listen("tcp", r.address)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToListen, r.address, err)
	}

	r.listener = listener

	return nil
}

// Addr returns the bound address, or the configured one before Listen
func (r *Remote) Addr() string {
	if r.listener == nil {
		return r.address
	}

	return r.listener.Addr().String()
}

// URL returns the websocket URL clients connect to
func (r *Remote) URL() string {
	return "ws://" + r.Addr() + r.path
}

// MetricsURL returns where intake counters are served in Prometheus format
func (r *Remote) MetricsURL() string {
	return "http://" + r.Addr() + config.MetricsPath
}

// Run serves clients until ctx is done
func (r *Remote) Run(ctx context.Context, sink logview.Sink) error {
	if err := r.Listen(); err != nil {
		r.bus.Publish(bus.Message{
			Type:     bus.EventSourceFailed,
			Data:     bus.SourceFailed{Kind: KindRemote, Error: err},
			Critical: true,
		})

		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc(r.path, func(w http.ResponseWriter, req *http.Request) {
		r.handle(w, req, sink)
	})
	mux.Handle(config.MetricsPath, r.metrics.handler())

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: config.RemoteShutdown,
		// Hijacked connections outlive Shutdown, so their reads follow ctx instead
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	r.log.Info().Msgf("Listening on %s", r.URL())
	r.bus.Publish(bus.Message{
		Type: bus.EventSourceStarted,
		Data: bus.SourceStarted{Kind: KindRemote, Target: r.URL()},
	})

	serveErr := make(chan error, 1)

	go func() {
		serveErr <- server.Serve(r.listener)
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("%w %s: %w", errors.ErrFailedToListen, r.Addr(), err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.RemoteShutdown)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			r.log.Warn().Err(err).Msg("Server did not shut down cleanly")
		}
	}

	r.wg.Wait()
	r.log.Info().Msg("Server stopped")

	return nil
}

// handle reads frames from one client until it disconnects
func (r *Remote) handle(w http.ResponseWriter, req *http.Request, sink logview.Sink) {
	r.wg.Add(1)
	defer r.wg.Done()

	conn, err := websocket.Accept(w, req, nil)
	if err != nil {
		r.log.Warn().Err(err).Msgf("Rejected connection from %s", req.RemoteAddr)
		return
	}

	defer conn.CloseNow()

	conn.SetReadLimit(config.RemoteReadLimit)

	id := r.connID.Add(1)
	client := bus.Client{Remote: fmt.Sprintf("%s#%d", req.RemoteAddr, id)}

	r.metrics.clients.Inc()
	defer r.metrics.clients.Dec()

	r.log.Debug().Msgf("Client connected: %s", client.Remote)
	r.bus.Publish(bus.Message{Type: bus.EventClientConnected, Data: client})

	defer r.bus.Publish(bus.Message{Type: bus.EventClientDisconnected, Data: client})

	ctx := req.Context()

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				r.log.Debug().Msgf("Client %s disconnected", client.Remote)
			} else if ctx.Err() == nil {
				r.log.Warn().Err(err).Msgf("Client %s dropped", client.Remote)
			}

			return
		}

		if typ != websocket.MessageText {
			r.metrics.rejected()
			r.log.Warn().Msgf("Skipping binary frame from %s", client.Remote)
			continue
		}

		payload, err := DecodePayload(data)
		if err != nil {
			r.metrics.rejected()
			r.log.Warn().Err(err).Msgf("Skipping frame from %s", client.Remote)
			continue
		}

		r.metrics.accepted()
		payload.Apply(r.classifier, sink)
	}
}

// Send delivers payloads to a remote tlog in order
func Send(ctx context.Context, url string, payloads ...Payload) error {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToDial, url, err)
	}
	defer conn.CloseNow()

	for _, p := range payloads {
		data, err := p.Encode()
		if err != nil {
			return err
		}

		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			return fmt.Errorf("%w %s: %w", errors.ErrFailedToDial, url, err)
		}
	}

	return conn.Close(websocket.StatusNormalClosure, "")
}
