package lavalink

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Node maintains one logical connection to a Lavalink server: a REST
// surface plus a long-lived websocket whose frames are decoded into typed
// events and routed to the owning client. The websocket read loop is the
// single writer of session state and the single dispatcher of events.
type Node struct {
	client *Client
	config NodeConfig
	rest   *Rest
	log    Logger

	mu          sync.RWMutex
	state       NodeState
	sessionID   string
	attempts    int
	guilds      map[string]struct{}
	stats       *Stats
	conn        *websocket.Conn
	ready       chan struct{}
	readyClosed bool

	cancel context.CancelFunc
	done   chan struct{}
}

func newNode(client *Client, config NodeConfig) *Node {
	n := &Node{
		client: client,
		config: config,
		log:    client.log.With(String("node", config.Name)),
		state:  NodeDisconnected,
		guilds: make(map[string]struct{}),
		ready:  make(chan struct{}),
	}
	n.rest = newRest(n, client.config.RestTimeout, client.config.MaxRetries, n.log)
	return n
}

// Name returns the unique name of the node within its client.
func (n *Node) Name() string { return n.config.Name }

// Config returns the node's configuration.
func (n *Node) Config() NodeConfig { return n.config }

// Rest returns the REST surface of this node.
func (n *Node) Rest() *Rest { return n.rest }

// State returns the current connection state.
func (n *Node) State() NodeState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

// SessionID returns the session id received in the last ready frame, or
// the empty string before the first one.
func (n *Node) SessionID() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sessionID
}

// Stats returns the last statistics pushed by the node, or nil.
func (n *Node) Stats() *Stats {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stats
}

// Guilds returns the guild ids currently assigned to this node.
func (n *Node) Guilds() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	guilds := make([]string, 0, len(n.guilds))
	for id := range n.guilds {
		guilds = append(guilds, id)
	}
	return guilds
}

func (n *Node) guildCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.guilds)
}

func (n *Node) addGuild(guildID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.guilds[guildID] = struct{}{}
}

func (n *Node) removeGuild(guildID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.guilds, guildID)
}

func (n *Node) setState(state NodeState) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state = state
}

// Attempts returns the total number of connection attempts this node has
// made across its lifetime.
func (n *Node) Attempts() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attempts
}

// Connect performs the authentication handshake, opens the websocket and
// waits for the ready frame carrying the session id. A rejected password
// returns ErrAuth without retrying; unreachable nodes are retried with
// exponential backoff up to the configured bound before ErrUnreachable
// is returned and the node transitions to Failed.
func (n *Node) Connect(ctx context.Context) error {
	n.setState(NodeConnecting)

	conn, err := n.establish(ctx)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	n.mu.Lock()
	n.cancel = cancel
	n.done = done
	n.conn = conn
	n.mu.Unlock()

	go n.readLoop(runCtx, conn, done)

	if err := n.awaitReady(ctx); err != nil {
		n.Close()
		n.setState(NodeFailed)
		return err
	}
	return nil
}

// establish retries the REST probe and websocket dial until either both
// succeed, the password is rejected, or the attempt budget is spent.
func (n *Node) establish(ctx context.Context) (*websocket.Conn, error) {
	cfg := n.client.config
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt-1, cfg.ReconnectDelay, cfg.MaxReconnectDelay)
			n.log.Warn("node connection failed, backing off",
				Int("attempt", attempt), Duration("delay", delay), Err(lastErr))
			if err := sleepContext(ctx, delay); err != nil {
				n.setState(NodeDisconnected)
				return nil, err
			}
		}
		n.mu.Lock()
		n.attempts++
		n.mu.Unlock()

		probeCtx, cancel := context.WithTimeout(ctx, cfg.RestTimeout)
		err := n.rest.probe(probeCtx)
		cancel()
		if err != nil {
			if errors.Is(err, ErrAuth) {
				n.setState(NodeFailed)
				n.log.Error("node rejected password")
				return nil, err
			}
			lastErr = err
			continue
		}

		conn, err := n.dial(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		return conn, nil
	}

	n.setState(NodeFailed)
	return nil, fmt.Errorf("%w: %v", ErrUnreachable, lastErr)
}

// dial opens the websocket stream. A fresh ready channel is armed first
// so the next ready frame can be awaited.
func (n *Node) dial(ctx context.Context) (*websocket.Conn, error) {
	cfg := n.client.config

	headers := http.Header{}
	headers.Set("Authorization", n.config.Password)
	headers.Set("User-Id", cfg.UserID)
	headers.Set("Client-Name", fmt.Sprintf("%s/%s", cfg.ClientName, Version))

	n.mu.Lock()
	if cfg.Resuming && n.sessionID != "" {
		headers.Set("Session-Id", n.sessionID)
	}
	n.ready = make(chan struct{})
	n.readyClosed = false
	n.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: cfg.RestTimeout}
	conn, _, err := dialer.DialContext(ctx, n.config.WebSocketURL(), headers)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// awaitReady blocks until the ready frame arrives or the window closes.
func (n *Node) awaitReady(ctx context.Context) error {
	n.mu.RLock()
	ready := n.ready
	n.mu.RUnlock()

	timer := time.NewTimer(n.client.config.ReadyTimeout)
	defer timer.Stop()
	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("%w: no ready frame within %s", ErrNotReady, n.client.config.ReadyTimeout)
	}
}

// readLoop is the single ingestion goroutine of the node. It decodes
// every inbound frame and dispatches it; on unexpected closure it runs
// the reconnect policy and, if that fails, hands the node's guilds to
// the client for failover.
func (n *Node) readLoop(ctx context.Context, conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			if ctx.Err() != nil {
				return
			}
			n.log.Warn("websocket closed unexpectedly", Err(err))
			n.setState(NodeConnecting)

			newConn, rerr := n.establish(ctx)
			if rerr != nil {
				if ctx.Err() != nil {
					return
				}
				n.log.Error("node failed, triggering failover", Err(rerr))
				n.client.handleNodeFailure(n)
				return
			}
			n.mu.Lock()
			n.conn = newConn
			n.mu.Unlock()
			conn = newConn
			continue
		}
		n.handleMessage(data)
	}
}

// handleMessage decodes one frame and routes it. Undecodable frames and
// frames for unknown guilds are logged and dropped, never fatal.
func (n *Node) handleMessage(data []byte) {
	event, err := decodeEvent(n.config.Name, data)
	if err != nil {
		n.log.Warn("dropping undecodable frame", Err(err))
		return
	}

	switch e := event.(type) {
	case ReadyEvent:
		n.handleReady(e)
	case StatsEvent:
		n.mu.Lock()
		stats := e.Stats
		n.stats = &stats
		n.mu.Unlock()
	}

	n.client.dispatch(event)
}

// handleReady stores the session id, marks the node connected and
// configures session resuming. A resumed session keeps all player
// assignments and snapshots; a fresh one triggers a player re-sync.
func (n *Node) handleReady(e ReadyEvent) {
	n.mu.Lock()
	hadSession := n.sessionID != ""
	n.sessionID = e.SessionID
	n.state = NodeConnected
	if !n.readyClosed {
		close(n.ready)
		n.readyClosed = true
	}
	n.mu.Unlock()

	n.log.Info("node ready", String("session_id", e.SessionID), Bool("resumed", e.Resumed))

	cfg := n.client.config
	if cfg.Resuming && !e.Resumed {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.RestTimeout)
			defer cancel()
			update := SessionUpdate{
				Resuming: ptr(true),
				Timeout:  ptr(int(cfg.ResumeTimeout.Seconds())),
			}
			if err := n.rest.UpdateSession(ctx, update); err != nil {
				n.log.Warn("could not enable session resuming", Err(err))
			}
		}()
	}

	if !e.Resumed && hadSession {
		n.client.handleNodeReady(n)
	}
}

// Close cancels the read loop, closes the websocket and marks the node
// disconnected. Assigned guilds are left for the caller to migrate.
func (n *Node) Close() {
	n.mu.Lock()
	cancel := n.cancel
	conn := n.conn
	done := n.done
	n.cancel = nil
	n.conn = nil
	n.done = nil
	n.state = NodeDisconnected
	n.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}
	if done != nil {
		<-done
	}
	n.log.Info("node closed")
}
