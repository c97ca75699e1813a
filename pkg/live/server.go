// Package live serves Axon apps over WebSocket to a thin browser client.
//
// The package is the integration layer between the runtime (the root
// package), the state container (pkg/cortex) and the browser. It keeps the
// authoritative tree server-side and ships DOM mutations as small JSON op
// frames; the client applies them and sends user events back.
//
// # Session Lifecycle
//
// Each WebSocket connection gets a Session with its own live Document,
// mounted root and, when the app defines one, its own cortex. The session
// runs three goroutines:
//
//   - readLoop: decodes incoming events and queues them
//   - eventLoop: dispatches events, renders, flushes op frames
//   - writeLoop: sends heartbeat pings
//
// All rendering happens on the event loop, so the document, the runtime
// and the app's state need no locking of their own.
//
// # Event Processing
//
// When the client sends an event:
//
//  1. readLoop decodes it and queues it for the event loop
//  2. the event loop dispatches it to the node's handlers
//  3. handlers mutate state; tracked changes re-render the root
//  4. the live document records the resulting host mutations as ops
//  5. the ops are flushed to the client as one frame
//
// Closing the connection unmounts the root, so cleanup hooks run exactly
// as they would on an in-process unmount.
package live

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/axon-ui/axon/pkg/cortex"
	"github.com/axon-ui/axon/pkg/vdom"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// App describes the application served to every connection.
type App struct {
	// Root builds the root component for one session, given that session's
	// cortex (nil when NewCortex is nil).
	Root func(c *cortex.Cortex) vdom.ComponentFunc

	// NewCortex builds the per-session state container. Each connection
	// gets its own so sessions never share mutable state; nil means the
	// app is stateless.
	NewCortex func() *cortex.Cortex
}

// Default server tuning.
const (
	DefaultAddress        = ":8420"
	DefaultReadTimeout    = 60 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
	DefaultHeartbeat      = 30 * time.Second
	DefaultMaxMessageSize = 64 * 1024
	DefaultEventQueue     = 256
	DefaultShutdownWait   = 10 * time.Second
)

// Server serves one live app: the HTML shell and thin client over HTTP,
// sessions over WebSocket, plus health and metrics endpoints.
type Server struct {
	app   App
	title string

	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	heartbeat       time.Duration
	maxMessageSize  int64
	queueSize       int
	shutdownTimeout time.Duration
	checkOrigin     func(*http.Request) bool

	router     chi.Router
	upgrader   websocket.Upgrader
	httpServer *http.Server

	smu      sync.Mutex
	sessions map[string]*Session

	registry prometheus.Registerer
	m        *metrics
	tracer   trace.Tracer
	log      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the listen address. Defaults to DefaultAddress.
func WithAddress(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithTitle sets the page title of the HTML shell.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// WithLogger sets the server logger. Session loggers derive from it.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithCheckOrigin sets the WebSocket origin check. The default accepts
// same-host origins only.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(s *Server) { s.checkOrigin = fn }
}

// WithHeartbeat sets the ping interval for idle connections.
func WithHeartbeat(d time.Duration) Option {
	return func(s *Server) { s.heartbeat = d }
}

// WithReadTimeout sets how long a connection may stay silent, pongs
// included, before the read side gives up.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) { s.readTimeout = d }
}

// WithWriteTimeout sets the per-message write deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) { s.writeTimeout = d }
}

// WithEventQueueSize sets the per-session buffer for incoming events.
// Events beyond it are dropped, not blocked on.
func WithEventQueueSize(n int) Option {
	return func(s *Server) { s.queueSize = n }
}

// WithRegistry sets the Prometheus registerer for the transport metrics.
// Defaults to the process-wide default registerer.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(s *Server) { s.registry = reg }
}

// New creates a live server for app.
func New(app App, opts ...Option) *Server {
	s := &Server{
		app:             app,
		title:           "Axon",
		addr:            DefaultAddress,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		heartbeat:       DefaultHeartbeat,
		maxMessageSize:  DefaultMaxMessageSize,
		queueSize:       DefaultEventQueue,
		shutdownTimeout: DefaultShutdownWait,
		sessions:        make(map[string]*Session),
		log:             slog.Default().With("component", "live"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.m = newMetrics(s.registry)
	s.tracer = otel.Tracer(tracerName)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()

	return s
}

// Handler returns the server as an http.Handler for mounting in external
// routers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/client.js", s.handleClientJS)
	r.Get("/live", s.handleLive)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metricsHandler())
	return r
}

// metricsHandler serves the configured registry when it can gather, which
// is what tests pass in; the process default otherwise.
func (s *Server) metricsHandler() http.Handler {
	if g, ok := s.registry.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="axon-root"></div>
<script src="/client.js"></script>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, struct{ Title string }{s.title}); err != nil {
		s.log.Error("index render error", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleLive upgrades the connection and starts a session on it.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		s.m.wsErrors.WithLabelValues("upgrade").Inc()
		return
	}

	sess := s.newSession(conn)

	s.smu.Lock()
	s.sessions[sess.ID] = sess
	s.smu.Unlock()
	s.m.activeSessions.Inc()

	s.log.Info("session started", "session_id", sess.ID)
	sess.Start()
}

func (s *Server) removeSession(sess *Session) {
	s.smu.Lock()
	_, known := s.sessions[sess.ID]
	delete(s.sessions, sess.ID)
	s.smu.Unlock()

	if known {
		s.m.activeSessions.Dec()
	}
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.smu.Lock()
	defer s.smu.Unlock()
	return len(s.sessions)
}

// Run starts the server and blocks until shutdown, either from a signal
// or a listener error.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", "address", s.addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.log.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	s.smu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.smu.Unlock()
	for _, sess := range open {
		sess.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.log.Error("shutdown error", "error", err)
			return err
		}
	}

	s.log.Info("server shutdown complete")
	return nil
}
