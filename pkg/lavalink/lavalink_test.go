package lavalink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// fakeLavalink is an in-process Lavalink v4 node: enough of the REST and
// websocket surface for the client, node and player tests.
type fakeLavalink struct {
	t   *testing.T
	srv *httptest.Server

	mu            sync.Mutex
	password      string
	sessionID     string
	updates       []recordedUpdate
	deletes       []string
	failPatches   int
	patchDelay    time.Duration
	notFoundDelay time.Duration
	overlapped    bool
	inflight      int
	loadResult    string
	conns         []*websocket.Conn
	rejectWS      bool
}

type recordedUpdate struct {
	GuildID string
	Body    map[string]json.RawMessage
}

var testUpgrader = websocket.Upgrader{}

func newFakeLavalink(t *testing.T) *fakeLavalink {
	f := &fakeLavalink{
		t:          t,
		password:   "pass",
		sessionID:  "session-1",
		loadResult: `{"loadType":"empty"}`,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v4/websocket", f.handleWS)
	mux.HandleFunc("/v4/info", f.handleInfo)
	mux.HandleFunc("/v4/stats", f.handleStats)
	mux.HandleFunc("/version", f.handleVersion)
	mux.HandleFunc("/v4/loadtracks", f.handleLoadTracks)
	mux.HandleFunc("/v4/decodetrack", f.handleDecodeTrack)
	mux.HandleFunc("/v4/sessions/", f.handleSessions)
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeLavalink) Close() {
	f.mu.Lock()
	conns := f.conns
	f.conns = nil
	f.mu.Unlock()
	for _, conn := range conns {
		conn.Close()
	}
	f.srv.Close()
}

func (f *fakeLavalink) nodeConfig(name string) NodeConfig {
	u, err := url.Parse(f.srv.URL)
	require.NoError(f.t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(f.t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(f.t, err)
	f.mu.Lock()
	password := f.password
	f.mu.Unlock()
	return NodeConfig{Name: name, Host: host, Port: port, Password: password}
}

func (f *fakeLavalink) authorized(r *http.Request) bool {
	f.mu.Lock()
	password := f.password
	f.mu.Unlock()
	return r.Header.Get("Authorization") == password
}

func (f *fakeLavalink) currentSessionID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionID
}

func (f *fakeLavalink) writeRestError(w http.ResponseWriter, status int, message, path string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(RestError{
		Timestamp: time.Now().UnixMilli(),
		Status:    status,
		StatusMsg: http.StatusText(status),
		Message:   message,
		Path:      path,
	})
}

func (f *fakeLavalink) handleInfo(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		f.writeRestError(w, http.StatusUnauthorized, "bad password", r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, `{"version":{"semver":"4.0.8","major":4,"minor":0,"patch":8}}`)
}

func (f *fakeLavalink) handleStats(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		f.writeRestError(w, http.StatusUnauthorized, "bad password", r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, `{"players":3,"playingPlayers":1,"uptime":1000,"memory":{"free":1,"used":2,"allocated":3,"reservable":4},"cpu":{"cores":8,"systemLoad":0.3,"lavalinkLoad":0.1}}`)
}

func (f *fakeLavalink) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		f.writeRestError(w, http.StatusUnauthorized, "bad password", r.URL.Path)
		return
	}
	io.WriteString(w, "4.0.8")
}

func (f *fakeLavalink) handleDecodeTrack(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		f.writeRestError(w, http.StatusUnauthorized, "bad password", r.URL.Path)
		return
	}
	encoded := r.URL.Query().Get("encodedTrack")
	if encoded == "" {
		f.writeRestError(w, http.StatusBadRequest, "missing encodedTrack", r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"encoded":%q,"info":{"identifier":"decoded","title":"decoded title"}}`, encoded)
}

func (f *fakeLavalink) handleLoadTracks(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		f.writeRestError(w, http.StatusUnauthorized, "bad password", r.URL.Path)
		return
	}
	f.mu.Lock()
	result := f.loadResult
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, result)
}

func (f *fakeLavalink) handleWS(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) || r.Header.Get("User-Id") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	f.mu.Lock()
	reject := f.rejectWS
	f.mu.Unlock()
	if reject {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	conn, err := testUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	sessionID := f.currentSessionID()
	resumed := r.Header.Get("Session-Id") == sessionID
	ready := fmt.Sprintf(`{"op":"ready","resumed":%t,"sessionId":%q}`, resumed, sessionID)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(ready)); err != nil {
		conn.Close()
		return
	}

	f.mu.Lock()
	f.conns = append(f.conns, conn)
	f.mu.Unlock()

	// drain until the peer goes away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()
}

// push sends a raw frame over the most recent websocket connection.
func (f *fakeLavalink) push(t *testing.T, payload string) {
	f.mu.Lock()
	require.NotEmpty(t, f.conns, "no websocket connection")
	conn := f.conns[len(f.conns)-1]
	f.mu.Unlock()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))
}

func (f *fakeLavalink) handleSessions(w http.ResponseWriter, r *http.Request) {
	if !f.authorized(r) {
		f.writeRestError(w, http.StatusUnauthorized, "bad password", r.URL.Path)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/v4/sessions/")
	parts := strings.Split(rest, "/")

	if parts[0] != f.currentSessionID() {
		f.mu.Lock()
		delay := f.notFoundDelay
		f.mu.Unlock()
		if delay > 0 {
			time.Sleep(delay)
		}
		f.writeRestError(w, http.StatusNotFound, "session not found", r.URL.Path)
		return
	}

	// PATCH /v4/sessions/{id}
	if len(parts) == 1 {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"resuming":true,"timeout":60}`)
		return
	}

	if len(parts) != 3 || parts[1] != "players" {
		f.writeRestError(w, http.StatusNotFound, "not found", r.URL.Path)
		return
	}
	guildID := parts[2]

	switch r.Method {
	case http.MethodDelete:
		f.mu.Lock()
		f.deletes = append(f.deletes, guildID)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)

	case http.MethodPatch:
		f.mu.Lock()
		f.inflight++
		if f.inflight > 1 {
			f.overlapped = true
		}
		fail := f.failPatches > 0
		if fail {
			f.failPatches--
		}
		delay := f.patchDelay
		f.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}

		body, _ := io.ReadAll(r.Body)
		var fields map[string]json.RawMessage
		json.Unmarshal(body, &fields)

		f.mu.Lock()
		f.inflight--
		if !fail {
			f.updates = append(f.updates, recordedUpdate{GuildID: guildID, Body: fields})
		}
		f.mu.Unlock()

		if fail {
			f.writeRestError(w, http.StatusInternalServerError, "injected failure", r.URL.Path)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"guildId":%q,"volume":100,"paused":false,"state":{"time":0,"position":0,"connected":true,"ping":1},"voice":{}}`, guildID)

	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"guildId":%q,"volume":100,"paused":false,"state":{"time":0,"position":0,"connected":true,"ping":1},"voice":{}}`, guildID)

	default:
		f.writeRestError(w, http.StatusMethodNotAllowed, "method not allowed", r.URL.Path)
	}
}

func (f *fakeLavalink) recordedUpdates() []recordedUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	updates := make([]recordedUpdate, len(f.updates))
	copy(updates, f.updates)
	return updates
}

func (f *fakeLavalink) lastUpdate(t *testing.T) recordedUpdate {
	updates := f.recordedUpdates()
	require.NotEmpty(t, updates, "no player updates recorded")
	return updates[len(updates)-1]
}

// encodedTrackOf extracts the track.encoded value of an update, with
// found=false when the update carried no track field at all.
func encodedTrackOf(t *testing.T, update recordedUpdate) (value string, null bool, found bool) {
	raw, ok := update.Body["track"]
	if !ok {
		return "", false, false
	}
	var track struct {
		Encoded *string `json:"encoded"`
	}
	require.NoError(t, json.Unmarshal(raw, &track))
	if track.Encoded == nil {
		return "", true, true
	}
	return *track.Encoded, false, true
}

func newTestClientConfig() *ClientConfig {
	cfg := DefaultClientConfig()
	cfg.UserID = "bot-user"
	cfg.Logger = NullLogger()
	cfg.MaxRetries = 1
	cfg.Resuming = false
	cfg.ReconnectDelay = 10 * time.Millisecond
	cfg.MaxReconnectDelay = 50 * time.Millisecond
	cfg.ReadyTimeout = 2 * time.Second
	cfg.RestTimeout = 2 * time.Second
	return cfg
}

// newTestSetup wires a client to a fake node via the real Connect path.
func newTestSetup(t *testing.T) (*Client, *fakeLavalink, *Node) {
	f := newFakeLavalink(t)
	client, err := New(newTestClientConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		client.Close(ctx)
	})

	node, err := client.AddNode(context.Background(), f.nodeConfig("main"))
	require.NoError(t, err)
	return client, f, node
}
