package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type event struct {
	State string `json:"state"`
	Frame int    `json:"frame"`
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}

		var response map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}
		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
		if response["clients"] != float64(0) {
			t.Errorf("expected 0 clients, got %v", response["clients"])
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
			req := httptest.NewRequest(method, "/api/health", nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{})

	for _, path := range []string{"/", "/api/nonexistent", "/api/gestures"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusNotFound, rec.Code)
		}
	}
}

func TestServer_Status(t *testing.T) {
	s := New(Config{})

	t.Run("no content before first event", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
		}
	})

	t.Run("returns the last event", func(t *testing.T) {
		s.Publish(event{State: "IDLE", Frame: 1})
		s.Publish(event{State: "MOVING", Frame: 2})

		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

		var got event
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.State != "MOVING" || got.Frame != 2 {
			t.Errorf("unexpected status %+v", got)
		}
	})
}

func TestServer_Commands(t *testing.T) {
	t.Run("disabled without handler", func(t *testing.T) {
		s := New(Config{})
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/commands", strings.NewReader(`{"command":"quit"}`)))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})

	var got []string
	s := New(Config{OnCommand: func(name string) bool {
		got = append(got, name)
		return name == "toggle_gaming"
	}})

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"accepted", http.MethodPost, `{"command":"toggle_gaming"}`, http.StatusAccepted},
		{"rejected", http.MethodPost, `{"command":"explode"}`, http.StatusUnprocessableEntity},
		{"empty", http.MethodPost, `{}`, http.StatusBadRequest},
		{"malformed", http.MethodPost, `not json`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, ``, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/commands", strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}

	if strings.Join(got, ",") != "toggle_gaming,explode" {
		t.Errorf("handler saw %v", got)
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, h.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var e event
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatalf("read: %v", err)
	}
	return e
}

func TestHub_Broadcast(t *testing.T) {
	s := New(Config{})
	ts := httptest.NewServer(s)
	defer ts.Close()
	defer s.Hub().Close()

	s.Publish(event{State: "IDLE", Frame: 1})

	a := dial(t, ts)
	b := dial(t, ts)
	waitClients(t, s.Hub(), 2)

	// New clients first receive the latest event.
	if e := readEvent(t, a); e.State != "IDLE" {
		t.Errorf("client a replay: %+v", e)
	}
	if e := readEvent(t, b); e.State != "IDLE" {
		t.Errorf("client b replay: %+v", e)
	}

	s.Publish(event{State: "SCROLLING", Frame: 2})
	if e := readEvent(t, a); e.State != "SCROLLING" || e.Frame != 2 {
		t.Errorf("client a: %+v", e)
	}
	if e := readEvent(t, b); e.State != "SCROLLING" || e.Frame != 2 {
		t.Errorf("client b: %+v", e)
	}

	a.Close()
	waitClients(t, s.Hub(), 1)
}

func TestHub_SlowClientDropsEvents(t *testing.T) {
	h := NewHub(nil)
	c := &client{send: make(chan []byte, 1)}
	h.clients[c] = struct{}{}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			h.Publish(event{Frame: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full client")
	}
	if h.Dropped() != 9 {
		t.Errorf("expected 9 dropped deliveries, got %d", h.Dropped())
	}
}

func TestHub_CloseDisconnects(t *testing.T) {
	s := New(Config{})
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn := dial(t, ts)
	waitClients(t, s.Hub(), 1)

	s.Hub().Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("expected going-away close, got %v", err)
	}

	// A closed hub refuses new clients.
	late := dial(t, ts)
	late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); err == nil {
		t.Error("expected closed connection")
	}
}

func TestPreview_Stream(t *testing.T) {
	s := New(Config{})
	ts := httptest.NewServer(s)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/stream", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/stream: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "multipart/x-mixed-replace; boundary=frame" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if s.preview.Viewers() != 1 {
		t.Errorf("expected 1 viewer, got %d", s.preview.Viewers())
	}

	s.preview.Store([]byte{0xff, 0xd8, 0xff, 0xd9})

	r := bufio.NewReader(resp.Body)
	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if line != "--frame\r\n" {
		t.Errorf("expected boundary, got %q", line)
	}
	if line, _ = r.ReadString('\n'); line != "Content-Type: image/jpeg\r\n" {
		t.Errorf("expected part content type, got %q", line)
	}
	if line, _ = r.ReadString('\n'); line != "Content-Length: 4\r\n" {
		t.Errorf("expected content length, got %q", line)
	}
}

func TestPreview_UpdateWithoutViewers(t *testing.T) {
	p := NewPreview()
	p.Update(nil)
	if data, seq := p.Latest(); data != nil || seq != 0 {
		t.Error("Update without viewers must not store a frame")
	}
}

func TestServer_Serve(t *testing.T) {
	s := New(Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServer_RunBadAddr(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:-1"})
	if err := s.Run(context.Background()); err == nil {
		t.Error("expected listen error")
	}
}
