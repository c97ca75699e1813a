package live

import (
	"encoding/json"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/axon-ui/axon"
	"github.com/axon-ui/axon/pkg/cortex"
	"github.com/axon-ui/axon/pkg/host"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Session is one connected client: a WebSocket, a live document with the
// app mounted on it, and the loops moving events in and op frames out.
//
// All rendering happens on the session's event loop goroutine. Each client
// event runs to completion there, so handlers, state changes and the
// resulting re-render never interleave within a session.
type Session struct {
	// ID uniquely identifies the session in logs and traces.
	ID string

	conn   *websocket.Conn
	doc    *Document
	root   *axon.Root
	cortex *cortex.Cortex

	events chan ClientEvent
	done   chan struct{}
	closed atomic.Bool
	seq    atomic.Uint64

	// mu guards connection writes.
	mu sync.Mutex

	readTimeout    time.Duration
	writeTimeout   time.Duration
	heartbeat      time.Duration
	maxMessageSize int64

	log     *slog.Logger
	m       *metrics
	tracer  trace.Tracer
	onClose func(*Session)
}

// newSession mounts the app for one connection. The initial render's ops
// are queued on the document; Start flushes them as the first frame.
func (s *Server) newSession(conn *websocket.Conn) *Session {
	id := uuid.NewString()

	sess := &Session{
		ID:             id,
		conn:           conn,
		doc:            NewDocument(),
		events:         make(chan ClientEvent, s.queueSize),
		done:           make(chan struct{}),
		readTimeout:    s.readTimeout,
		writeTimeout:   s.writeTimeout,
		heartbeat:      s.heartbeat,
		maxMessageSize: s.maxMessageSize,
		log:            s.log.With("session_id", id),
		m:              s.m,
		tracer:         s.tracer,
		onClose:        s.removeSession,
	}

	if s.app.NewCortex != nil {
		sess.cortex = s.app.NewCortex()
	}
	component := s.app.Root(sess.cortex)
	sess.root = axon.Mount(sess.doc, sess.doc.Root(), component)

	return sess
}

// Start sends the initial frame and spawns the session loops.
func (s *Session) Start() {
	s.flush()
	go s.readLoop()
	go s.writeLoop()
	go s.eventLoop()
}

// Close tears the session down once: the connection closes, the loops
// stop, and the event loop unmounts the root on its way out so cleanups
// run. Safe to call from any goroutine, repeatedly.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)
	s.conn.Close()
	if s.onClose != nil {
		s.onClose(s)
	}
	s.log.Info("session closed")
}

// Cortex returns the session's state container, or nil for stateless apps.
func (s *Session) Cortex() *cortex.Cortex {
	return s.cortex
}

// readLoop reads client events off the socket and queues them for the
// event loop. It owns the read side: deadlines renew on every message and
// on every pong.
func (s *Session) readLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		return nil
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.log.Error("read error", "error", err)
				s.m.wsErrors.WithLabelValues("read").Inc()
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))

		var ev ClientEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			s.log.Error("event decode error", "error", err)
			s.m.wsErrors.WithLabelValues("decode").Inc()
			continue
		}

		select {
		case s.events <- ev:
		default:
			s.log.Warn("event queue full, dropping event", "node", ev.Node, "type", ev.Type)
			s.m.wsErrors.WithLabelValues("queue_full").Inc()
		}
	}
}

// writeLoop sends heartbeat pings until the session closes.
func (s *Session) writeLoop() {
	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.ping(); err != nil {
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

func (s *Session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

// eventLoop processes queued events one at a time. On exit it unmounts the
// root on this goroutine, so cleanup hooks never race a render.
func (s *Session) eventLoop() {
	defer s.root.Unmount()

	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)

		case <-s.done:
			return
		}
	}
}

// handleEvent dispatches one client event into the mounted tree and ships
// the resulting ops. Handler panics are recovered here: the session
// survives, the patch that was in flight goes out with the next flush.
func (s *Session) handleEvent(ev ClientEvent) {
	_, span := s.startEventSpan(ev)
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("handler panic",
				"panic", r,
				"event_type", ev.Type,
				"stack", string(debug.Stack()))
			s.m.handlerPanics.Inc()
			span.SetStatus(codes.Error, "handler panic")
		}
	}()

	handled := s.doc.DispatchEvent(ev.Node, host.Event{
		Type:    ev.Type,
		Value:   ev.Value,
		Checked: ev.Checked,
		Data:    ev.Data,
	})
	if !handled {
		// The client can race an update that removed the node or its
		// listener; stale events are dropped, not errors.
		s.log.Debug("event for unknown node", "node", ev.Node, "type", ev.Type)
	}

	s.flush()

	s.m.eventDuration.Observe(time.Since(start).Seconds())
	s.m.eventsTotal.WithLabelValues(ev.Type).Inc()
	span.SetStatus(codes.Ok, "")
}

// flush drains the document's queued ops and sends them as one frame.
func (s *Session) flush() {
	ops := s.doc.TakeOps()
	if len(ops) == 0 {
		return
	}

	frame := Frame{Seq: s.seq.Add(1), Ops: ops}
	data, err := json.Marshal(frame)
	if err != nil {
		s.log.Error("frame encode error", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.log.Error("write error", "error", err)
		s.m.wsErrors.WithLabelValues("write").Inc()
		s.Close()
		return
	}

	s.m.framesSent.Inc()
	s.m.opsSent.Add(float64(len(ops)))
}
