package lavalink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, event Event)
		wantErr bool
	}{
		{
			name:    "ready",
			payload: `{"op":"ready","resumed":false,"sessionId":"abc123"}`,
			check: func(t *testing.T, event Event) {
				e, ok := event.(ReadyEvent)
				require.True(t, ok)
				assert.Equal(t, "abc123", e.SessionID)
				assert.False(t, e.Resumed)
				assert.Equal(t, "main", e.eventNode())
			},
		},
		{
			name:    "resumed ready",
			payload: `{"op":"ready","resumed":true,"sessionId":"abc123"}`,
			check: func(t *testing.T, event Event) {
				e := event.(ReadyEvent)
				assert.True(t, e.Resumed)
			},
		},
		{
			name:    "player update",
			payload: `{"op":"playerUpdate","guildId":"g1","state":{"time":1500,"position":42000,"connected":true,"ping":12}}`,
			check: func(t *testing.T, event Event) {
				e, ok := event.(PlayerUpdateEvent)
				require.True(t, ok)
				assert.Equal(t, "g1", e.GuildID)
				assert.Equal(t, int64(42000), e.State.Position)
				assert.True(t, e.State.Connected)
				assert.Equal(t, 12, e.State.Ping)
			},
		},
		{
			name:    "stats",
			payload: `{"op":"stats","players":3,"playingPlayers":2,"uptime":1000,"memory":{"free":1,"used":2,"allocated":3,"reservable":4},"cpu":{"cores":8,"systemLoad":0.5,"lavalinkLoad":0.1}}`,
			check: func(t *testing.T, event Event) {
				e, ok := event.(StatsEvent)
				require.True(t, ok)
				assert.Equal(t, 3, e.Stats.Players)
				assert.Equal(t, 8, e.Stats.CPU.Cores)
			},
		},
		{
			name:    "track start",
			payload: `{"op":"event","type":"TrackStartEvent","guildId":"g1","track":{"encoded":"xyz","info":{"identifier":"id1","title":"song"}}}`,
			check: func(t *testing.T, event Event) {
				e, ok := event.(TrackStartEvent)
				require.True(t, ok)
				assert.Equal(t, "xyz", e.Track.Encoded)
				assert.Equal(t, "song", e.Track.Info.Title)
			},
		},
		{
			name:    "track end",
			payload: `{"op":"event","type":"TrackEndEvent","guildId":"g1","track":{"encoded":"xyz","info":{}},"reason":"finished"}`,
			check: func(t *testing.T, event Event) {
				e, ok := event.(TrackEndEvent)
				require.True(t, ok)
				assert.Equal(t, TrackEndFinished, e.Reason)
				assert.True(t, e.Reason.MayStartNext())
			},
		},
		{
			name:    "track end stopped must not advance",
			payload: `{"op":"event","type":"TrackEndEvent","guildId":"g1","track":{"encoded":"xyz","info":{}},"reason":"stopped"}`,
			check: func(t *testing.T, event Event) {
				e := event.(TrackEndEvent)
				assert.False(t, e.Reason.MayStartNext())
			},
		},
		{
			name:    "track exception",
			payload: `{"op":"event","type":"TrackExceptionEvent","guildId":"g1","track":{"encoded":"xyz","info":{}},"exception":{"message":"boom","severity":"common","cause":"test"}}`,
			check: func(t *testing.T, event Event) {
				e, ok := event.(TrackExceptionEvent)
				require.True(t, ok)
				assert.Equal(t, "boom", e.Exception.Message)
			},
		},
		{
			name:    "track stuck",
			payload: `{"op":"event","type":"TrackStuckEvent","guildId":"g1","track":{"encoded":"xyz","info":{}},"thresholdMs":5000}`,
			check: func(t *testing.T, event Event) {
				e, ok := event.(TrackStuckEvent)
				require.True(t, ok)
				assert.Equal(t, 5*time.Second, e.Threshold)
			},
		},
		{
			name:    "websocket closed",
			payload: `{"op":"event","type":"WebSocketClosedEvent","guildId":"g1","code":4006,"reason":"session invalid","byRemote":true}`,
			check: func(t *testing.T, event Event) {
				e, ok := event.(WebSocketClosedEvent)
				require.True(t, ok)
				assert.Equal(t, 4006, e.Code)
				assert.Equal(t, "session invalid", e.Reason)
				assert.True(t, e.ByRemote)
			},
		},
		{
			name:    "unknown op",
			payload: `{"op":"nonsense"}`,
			wantErr: true,
		},
		{
			name:    "unknown event type",
			payload: `{"op":"event","type":"FancyNewEvent","guildId":"g1"}`,
			wantErr: true,
		},
		{
			name:    "garbage",
			payload: `[1,2,3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := decodeEvent("main", []byte(tt.payload))
			if tt.wantErr {
				var buildErr *BuildError
				assert.ErrorAs(t, err, &buildErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, event)
		})
	}
}
