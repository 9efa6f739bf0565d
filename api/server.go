package api

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matt-g-everett/blobtx/stream"
)

const (
	writeWait       = 5 * time.Second
	clientBuffer    = 4
	maxControlBytes = 4096
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Api serves the web client, the latest frame and a WebSocket stream of
// frames, and accepts control messages.
type Api struct {
	listen    string
	staticDir string
	controls  stream.ControlHandler
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	latest  []byte
	clients map[*client]struct{}
}

func NewApi(listen, staticDir string, controls stream.ControlHandler) *Api {
	a := new(Api)
	a.listen = listen
	a.staticDir = staticDir
	a.controls = controls
	a.clients = make(map[*client]struct{})
	return a
}

// Handler returns the routes without starting a server.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frame", a.handleFrame)
	mux.HandleFunc("/stream", a.handleStream)
	mux.HandleFunc("/control", a.handleControl)
	if a.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(a.staticDir)))
	}
	return mux
}

// Publish implements stream.Output. Clients that are behind miss the frame.
func (a *Api) Publish(data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.latest = data
	for c := range a.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Serve listens until ctx is done, then shuts down gracefully.
func (a *Api) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: a.listen, Handler: a.Handler()}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s...", a.listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a.mu.Lock()
	latest := a.latest
	a.mu.Unlock()

	if latest == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(latest)
}

func (a *Api) handleControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxControlBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	msg, err := stream.DecodeControl(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.controls.HandleControl(msg)
	w.WriteHeader(http.StatusAccepted)
}

func (a *Api) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("api: upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	a.register(c)
	defer func() {
		a.unregister(c)
		conn.Close()
	}()

	// Only the reader notices a closed connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case data := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("api: write: %v", err)
				return
			}
		}
	}
}

func (a *Api) register(c *client) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.latest != nil {
		c.send <- a.latest
	}
	a.clients[c] = struct{}{}
}

func (a *Api) unregister(c *client) {
	a.mu.Lock()
	delete(a.clients, c)
	a.mu.Unlock()
}

// Clients returns the number of connected stream clients.
func (a *Api) Clients() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.clients)
}
