package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"orrery-sim/internal/config"
	"orrery-sim/internal/scene"
	"orrery-sim/internal/sim"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.SimulationConfig{
		Systems: []config.System{{
			Name: "test",
			Bodies: []config.BodySpec{
				{Name: "Sun", Type: "star", Class: "G", Radius: 10},
				{Name: "Terra", Type: "planet", Parent: "Sun", Radius: 2, OrbitRadius: 50, OrbitPeriodS: 100},
			},
		}},
	}
	s, err := sim.NewSimulator("test-system", cfg, nil, nil, 100*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	t.Cleanup(s.Close)
	return NewServer(s)
}

func TestHandleScene(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/scene", nil)
	w := httptest.NewRecorder()
	server.handleScene(w, req)

	var visuals []scene.VisualInfo
	if err := json.NewDecoder(w.Result().Body).Decode(&visuals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(visuals) != 2 {
		t.Fatalf("expected 2 visuals, got %d", len(visuals))
	}
}

func TestHandleToggleChaos(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/toggle-chaos", nil)
	w := httptest.NewRecorder()
	server.handleToggleChaos(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %v, want OK", w.Result().StatusCode)
	}
	if !server.Sim.Chaos() {
		t.Error("chaos not enabled after toggle")
	}

	w = httptest.NewRecorder()
	server.handleToggleChaos(w, req)
	if server.Sim.Chaos() {
		t.Error("chaos still enabled after second toggle")
	}
}

func TestHandleSpawnAndDestroy(t *testing.T) {
	server := newTestServer(t)

	body := `{"name":"Vagrant","type":"dwarf-planet","radius":1}`
	req := httptest.NewRequest(http.MethodPost, "/spawn", strings.NewReader(body))
	w := httptest.NewRecorder()
	server.handleSpawn(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("spawn status = %v", w.Result().StatusCode)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Result().Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id := resp["id"]
	if id == "" {
		t.Fatal("spawn returned empty id")
	}

	req = httptest.NewRequest(http.MethodPost, "/destroy?id="+id, nil)
	w = httptest.NewRecorder()
	server.handleDestroy(w, req)
	if w.Result().StatusCode != http.StatusNoContent {
		t.Errorf("destroy status = %v, want 204", w.Result().StatusCode)
	}

	// Destroying the same id again fails.
	w = httptest.NewRecorder()
	server.handleDestroy(w, req)
	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("second destroy status = %v, want 404", w.Result().StatusCode)
	}
}

func TestHandleSpawnRejectsBadInput(t *testing.T) {
	server := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/spawn", strings.NewReader(`{"name":"X","type":"meteor","radius":1}`))
	w := httptest.NewRecorder()
	server.handleSpawn(w, req)
	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %v, want 400", w.Result().StatusCode)
	}
}

func TestSceneWebsocketStream(t *testing.T) {
	server := newTestServer(t)
	server.StreamInterval = 10 * time.Millisecond
	ts := httptest.NewServer(http.HandlerFunc(server.handleSceneWS))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		var visuals []scene.VisualInfo
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if err := conn.ReadJSON(&visuals); err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if len(visuals) != 2 {
			t.Fatalf("frame %d: expected 2 visuals, got %d", i, len(visuals))
		}
	}
}
