package navserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerrors "github.com/vango-dev/client360/internal/errors"
	"github.com/vango-dev/client360/pkg/router"
)

// Session is one WebSocket navigation session.
type Session struct {
	ID string

	conn         *websocket.Conn
	nav          *router.Navigator
	logger       *slog.Logger
	writeTimeout time.Duration

	writeMu sync.Mutex

	// offset is the last scroll offset the client reported.
	offset router.ScrollPosition

	closeOnce sync.Once
}

// Offset implements router.Viewport with the client's last reported offset.
func (s *Session) Offset() router.ScrollPosition {
	return s.offset
}

// ScrollTo implements router.Viewport by instructing the client.
func (s *Session) ScrollTo(pos router.ScrollPosition) {
	s.offset = pos
	if err := s.send(ScrollFrame{Type: FrameScroll, X: pos.X, Y: pos.Y}); err != nil {
		s.logger.Debug("scroll frame failed", "error", err)
	}
}

// Close closes the connection. The read loop then exits.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.writeMu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		s.conn.Close()
	})
}

func (s *Session) send(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	return s.conn.WriteJSON(v)
}

func (s *Session) sendError(code string, err error) {
	e := cerrors.New(code)
	if err != nil {
		e = e.Wrap(err)
	}
	if werr := s.send(ErrorFrame{Type: FrameError, Error: e}); werr != nil {
		s.logger.Debug("error frame failed", "error", werr)
	}
}

// handleNav upgrades the request and runs a navigation session until the
// client disconnects or the server shuts down.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	sess := &Session{
		ID:           uuid.NewString(),
		conn:         conn,
		writeTimeout: s.config.WriteTimeout,
	}
	sess.logger = s.logger.With("session_id", sess.ID)

	var pending transitionInfo
	mounter := router.MounterFunc(func(_ context.Context, m *router.MatchResult) error {
		return sess.send(newMountFrame(m, pending.path, pending.direction))
	})
	sess.nav = router.NewNavigator(s.table, mounter,
		router.WithViewport(sess),
		router.WithMiddleware(s.sessionMiddleware(&pending)...),
		router.WithLogger(sess.logger),
	)

	s.addSession(sess)
	defer func() {
		s.removeSession(sess)
		sess.Close()
		sess.logger.Debug("session closed")
	}()

	if err := sess.send(ReadyFrame{Type: FrameReady, Session: sess.ID}); err != nil {
		return
	}
	sess.logger.Debug("session opened", "remote", r.RemoteAddr)

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.logger.Debug("read failed", "error", err)
			}
			return
		}

		var frame ClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			sess.sendError("E304", err)
			continue
		}
		s.dispatch(ctx, sess, frame)
	}
}

// transitionInfo is the in-flight transition as seen by the mounter.
type transitionInfo struct {
	path      string
	direction router.Direction
}

// sessionMiddleware returns the navigator chain for one session: metrics,
// the server-wide middleware, then a step recording the in-flight path and
// direction for the mount frame.
func (s *Server) sessionMiddleware(pending *transitionInfo) []router.Middleware {
	mw := make([]router.Middleware, 0, len(s.navMW)+2)
	if s.metrics != nil {
		mw = append(mw, s.metrics.Middleware())
	}
	mw = append(mw, s.navMW...)
	mw = append(mw, router.MiddlewareFunc(func(nav *router.Navigation, next func() error) error {
		*pending = transitionInfo{path: nav.Target.String(), direction: nav.Direction}
		return next()
	}))
	return mw
}

func (s *Server) dispatch(ctx context.Context, sess *Session, frame ClientFrame) {
	switch frame.Type {
	case FrameNavigate:
		dir, err := router.ParseDirection(frame.Direction)
		if err != nil {
			sess.sendError("E303", err)
			return
		}

		var navErr error
		switch dir {
		case router.DirectionBack:
			_, navErr = sess.nav.Back(ctx)
		case router.DirectionForward:
			_, navErr = sess.nav.Forward(ctx)
		case router.DirectionReplace:
			_, navErr = sess.nav.Navigate(ctx, frame.Path, router.WithReplace())
		default:
			_, navErr = sess.nav.Navigate(ctx, frame.Path)
		}
		s.reportNavError(sess, frame.Path, navErr)

	case FrameScroll:
		sess.offset = router.ScrollPosition{X: frame.X, Y: frame.Y}

	case FramePing:
		if err := sess.send(PongFrame{Type: FramePong}); err != nil {
			sess.logger.Debug("pong failed", "error", err)
		}

	default:
		sess.sendError("E304", fmt.Errorf("unknown frame type %q", frame.Type))
	}
}

func (s *Server) reportNavError(sess *Session, path string, err error) {
	switch {
	case err == nil:
	case router.IsNotFound(err):
		if werr := sess.send(NotFoundFrame{
			Type:  FrameNotFound,
			Path:  path,
			Error: cerrors.Classify(err, "E300"),
		}); werr != nil {
			sess.logger.Debug("not_found frame failed", "error", werr)
		}
	case errors.Is(err, router.ErrNoHistory):
		sess.sendError("E302", err)
	default:
		sess.logger.Warn("navigation failed", "path", path, "error", err)
		sess.sendError("E400", err)
	}
}
