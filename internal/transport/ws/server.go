package ws

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"tiltbox/internal/orientation"

	"github.com/gorilla/websocket"
)

const (
	DefaultPingInterval = 2 * time.Second
	maxMessageSize      = 4096
)

// ErrDisconnected is returned by RequestPermission when the phone goes away before replying.
var ErrDisconnected = errors.New("phone disconnected")

//go:embed phone.html
var phonePage []byte

// SampleHandler receives every orientation message. It is called from the connection's read
// goroutine.
type SampleHandler func(orientation.RawSample)

// phone is one connected browser.
type phone struct {
	w      *SafeWriter
	closed chan struct{}
}

// Server accepts phone connections, forwards their orientation samples and relays the
// browser's motion permission. The most recent connection is the one asked for permission.
type Server struct {
	PingInterval time.Duration

	upgrader websocket.Upgrader
	onSample SampleHandler

	mu        sync.Mutex
	current   *phone
	connected chan struct{}      // closed once current is set
	pending   *permissionRequest // in flight
}

// permissionRequest is a prompt sent to one phone.
type permissionRequest struct {
	to      *phone
	replies chan string
}

func NewServer(onSample SampleHandler) *Server {
	return &Server{
		PingInterval: DefaultPingInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		onSample:  onSample,
		connected: make(chan struct{}),
	}
}

// Handler serves the phone page on / and the socket on /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.servePage)
	mux.HandleFunc("/ws", s.serveSocket)
	return mux
}

// ListenAndServe serves Handler on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Sensor: open http://<this-host>%s on your phone", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(phonePage)
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Sensor: upgrade failed: %v", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	p := &phone{w: NewSafeWriter(conn), closed: make(chan struct{})}
	s.attach(p)
	log.Printf("Sensor: phone connected from %s", r.RemoteAddr)

	go s.ping(p)
	s.readLoop(conn, p)

	s.detach(p)
	close(p.closed)
	p.w.Close()
	log.Printf("Sensor: phone %s disconnected", r.RemoteAddr)
}

func (s *Server) attach(p *phone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
	select {
	case <-s.connected:
	default:
		close(s.connected)
	}
}

func (s *Server) detach(p *phone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == p {
		s.current = nil
		s.connected = make(chan struct{})
	}
}

func (s *Server) ping(p *phone) {
	if s.PingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.closed:
			return
		case <-ticker.C:
			if err := p.w.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) readLoop(conn *websocket.Conn, p *phone) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Sensor: read failed: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Sensor: ignoring malformed message: %v", err)
			continue
		}

		switch msg.Type {
		case TypeOrientation:
			if s.onSample != nil {
				s.onSample(msg.Sample())
			}
		case TypePermission:
			s.reply(p, msg.State)
		default:
			log.Printf("Sensor: ignoring message type %q", msg.Type)
		}
	}
}

func (s *Server) reply(p *phone, state string) {
	s.mu.Lock()
	req := s.pending
	if req != nil && req.to == p {
		s.pending = nil
	} else {
		req = nil
	}
	s.mu.Unlock()

	if req == nil {
		log.Printf("Sensor: unsolicited permission reply %q", state)
		return
	}
	req.replies <- state
}

// RequestPermission implements orientation.Gate. It waits for a phone to connect, asks it
// to show the browser's motion prompt and waits for the answer.
func (s *Server) RequestPermission(ctx context.Context) (orientation.Permission, error) {
	p, err := s.waitForPhone(ctx)
	if err != nil {
		return orientation.PermissionUnknown, err
	}

	req := &permissionRequest{to: p, replies: make(chan string, 1)}
	s.mu.Lock()
	s.pending = req
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		if s.pending == req {
			s.pending = nil
		}
		s.mu.Unlock()
	}()

	if err := p.w.WriteJSON(Message{Type: TypeRequestPermission}); err != nil {
		return orientation.PermissionUnknown, fmt.Errorf("send permission request: %w", err)
	}

	select {
	case <-ctx.Done():
		return orientation.PermissionUnknown, ctx.Err()
	case <-p.closed:
		return orientation.PermissionUnknown, ErrDisconnected
	case state := <-req.replies:
		perm, ok := orientation.ParsePermission(state)
		switch {
		case !ok:
			return orientation.PermissionDenied, fmt.Errorf("permission reply %q: %w", state, orientation.ErrDenied)
		case perm == orientation.PermissionDenied:
			return perm, orientation.ErrDenied
		}
		return perm, nil
	}
}

func (s *Server) waitForPhone(ctx context.Context) (*phone, error) {
	for {
		s.mu.Lock()
		p, connected := s.current, s.connected
		s.mu.Unlock()
		if p != nil {
			return p, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-connected:
		}
	}
}

// Connected reports whether a phone is attached.
func (s *Server) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}
