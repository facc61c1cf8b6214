package lavalink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeConnect(t *testing.T) {
	_, f, node := newTestSetup(t)

	assert.Equal(t, NodeConnected, node.State())
	assert.Equal(t, f.currentSessionID(), node.SessionID())
	assert.Equal(t, "main", node.Name())
	assert.GreaterOrEqual(t, node.Attempts(), 1)
}

func TestNodeConnectBadPassword(t *testing.T) {
	f := newFakeLavalink(t)
	client, err := New(newTestClientConfig())
	require.NoError(t, err)

	cfg := f.nodeConfig("main")
	cfg.Password = "wrong"
	_, err = client.AddNode(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrAuth)

	// a rejected node is not kept around
	_, ok := client.Node("main")
	assert.False(t, ok)
}

func TestNodeConnectUnreachable(t *testing.T) {
	f := newFakeLavalink(t)
	cfg := f.nodeConfig("main")
	f.srv.Close()

	client, err := New(newTestClientConfig())
	require.NoError(t, err)

	start := time.Now()
	_, err = client.AddNode(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrUnreachable)
	// MaxRetries=1 means two attempts with one backoff in between
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNodeStatsFromWebSocket(t *testing.T) {
	_, f, node := newTestSetup(t)
	require.Nil(t, node.Stats())

	f.push(t, `{"op":"stats","players":5,"playingPlayers":2,"uptime":100,"memory":{"free":1,"used":2,"allocated":3,"reservable":4},"cpu":{"cores":4,"systemLoad":0.2,"lavalinkLoad":0.1}}`)

	require.Eventually(t, func() bool {
		return node.Stats() != nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 5, node.Stats().Players)
}

func TestNodeEventDispatchToListeners(t *testing.T) {
	client, f, _ := newTestSetup(t)

	events := make(chan Event, 8)
	client.AddEventListener(func(e Event) {
		events <- e
	})

	// events for unknown guilds are dropped from player routing but
	// still reach listeners, and are never fatal
	f.push(t, `{"op":"event","type":"TrackStartEvent","guildId":"ghost","track":{"encoded":"xyz","info":{"title":"t"}}}`)
	f.push(t, `{"op":"this is not a valid frame`)
	f.push(t, `{"op":"stats","players":1,"playingPlayers":0,"uptime":1,"memory":{},"cpu":{}}`)

	var got []Event
	deadline := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case e := <-events:
			got = append(got, e)
		case <-deadline:
			t.Fatalf("timed out, got %d events", len(got))
		}
	}

	start, ok := got[0].(TrackStartEvent)
	require.True(t, ok)
	assert.Equal(t, "ghost", start.GuildID)
	_, ok = got[1].(StatsEvent)
	assert.True(t, ok)
}

func TestNodeReconnectResumesSession(t *testing.T) {
	f := newFakeLavalink(t)
	cfg := newTestClientConfig()
	cfg.Resuming = true
	client, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close(context.Background()) })

	node, err := client.AddNode(context.Background(), f.nodeConfig("main"))
	require.NoError(t, err)
	require.Equal(t, NodeConnected, node.State())

	// sever the stream server-side; the node must reconnect and present
	// its session id, and the resumed ready must keep it Connected
	f.mu.Lock()
	conn := f.conns[0]
	f.mu.Unlock()
	conn.Close()

	require.Eventually(t, func() bool {
		f.mu.Lock()
		reconnected := len(f.conns) > 1
		f.mu.Unlock()
		return reconnected && node.State() == NodeConnected
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, f.currentSessionID(), node.SessionID())
}

func TestNodeFailureTriggersFailover(t *testing.T) {
	client, f, node := newTestSetup(t)

	player, err := client.CreatePlayer(context.Background(), "g1")
	require.NoError(t, err)
	player.Add(testTrack("a"))
	player.SetLoop(LoopQueue)

	// refuse new websocket connections, then sever the current one:
	// the reconnect budget is spent and the node fails
	f.mu.Lock()
	f.rejectWS = true
	conn := f.conns[0]
	f.mu.Unlock()
	conn.Close()

	require.Eventually(t, func() bool {
		return node.State() == NodeFailed
	}, 5*time.Second, 20*time.Millisecond)

	// no other node exists, so the player is left unassigned with its
	// intent intact
	require.Eventually(t, func() bool {
		return player.State() == PlayerUnassigned
	}, 5*time.Second, 20*time.Millisecond)
	assert.Nil(t, player.Node())
	assert.Equal(t, 1, player.Queue().Len())
	assert.Equal(t, LoopQueue, player.Loop())

	// commands fail fast instead of retrying against nothing
	err = player.Play(context.Background())
	assert.ErrorIs(t, err, ErrPlayerUnassigned)
}

func TestNodeClose(t *testing.T) {
	_, _, node := newTestSetup(t)
	node.Close()
	assert.Equal(t, NodeDisconnected, node.State())

	// closing is idempotent
	node.Close()
}
