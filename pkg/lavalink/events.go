package lavalink

import (
	"encoding/json"
	"time"
)

// Event is the closed set of messages a node or player can emit. All
// events carry the name of the node they originated from; guild-scoped
// events additionally carry the guild id.
type Event interface {
	eventNode() string
}

// EventListener receives every event the client dispatches, in the order
// a node's read loop decoded them. Listeners must not block.
type EventListener func(Event)

type nodeEvent struct {
	Node string
}

func (e nodeEvent) eventNode() string { return e.Node }

// ReadyEvent is emitted once per websocket connection, carrying the
// session id required for REST calls. Resumed connections set Resumed.
type ReadyEvent struct {
	nodeEvent
	Resumed   bool
	SessionID string
}

// PlayerUpdateEvent is the periodic authoritative playback snapshot for
// one guild's player.
type PlayerUpdateEvent struct {
	nodeEvent
	GuildID string
	State   PlayerUpdateState
}

// StatsEvent carries node statistics, pushed roughly once a minute.
type StatsEvent struct {
	nodeEvent
	Stats Stats
}

// TrackStartEvent is emitted when a track starts playing.
type TrackStartEvent struct {
	nodeEvent
	GuildID string
	Track   Track
}

// TrackEndEvent is emitted when a track stops playing.
type TrackEndEvent struct {
	nodeEvent
	GuildID string
	Track   Track
	Reason  TrackEndReason
}

// TrackExceptionEvent is emitted when a track throws during playback.
type TrackExceptionEvent struct {
	nodeEvent
	GuildID   string
	Track     Track
	Exception TrackException
}

// TrackStuckEvent is emitted when a track produces no audio frames for
// longer than the node's threshold.
type TrackStuckEvent struct {
	nodeEvent
	GuildID   string
	Track     Track
	Threshold time.Duration
}

// WebSocketClosedEvent is emitted when the node's voice connection to
// Discord closes for a guild. This concerns the node's own voice
// websocket, not the client-node stream.
type WebSocketClosedEvent struct {
	nodeEvent
	GuildID  string
	Code     int
	Reason   string
	ByRemote bool
}

// QueueEndEvent is synthesized by a player when its queue is exhausted
// and autoplay found nothing to continue with.
type QueueEndEvent struct {
	nodeEvent
	GuildID string
}

// eventEnvelope is the wire shape shared by all inbound frames.
type eventEnvelope struct {
	Op          string          `json:"op"`
	Type        string          `json:"type"`
	GuildID     string          `json:"guildId"`
	Resumed     bool            `json:"resumed"`
	SessionID   string          `json:"sessionId"`
	State       json.RawMessage `json:"state"`
	Track       json.RawMessage `json:"track"`
	Reason      TrackEndReason  `json:"reason"`
	Exception   json.RawMessage `json:"exception"`
	ThresholdMs int64           `json:"thresholdMs"`
	Code        int             `json:"code"`
	ByRemote    bool            `json:"byRemote"`
}

// decodeEvent maps one inbound websocket frame to its event variant. All
// tag inspection happens here; downstream code only sees typed events.
func decodeEvent(node string, data []byte) (Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &BuildError{Reason: "invalid websocket frame", Cause: err}
	}

	base := nodeEvent{Node: node}

	switch env.Op {
	case "ready":
		return ReadyEvent{nodeEvent: base, Resumed: env.Resumed, SessionID: env.SessionID}, nil

	case "playerUpdate":
		var state PlayerUpdateState
		if err := json.Unmarshal(env.State, &state); err != nil {
			return nil, &BuildError{Reason: "invalid player update state", Cause: err}
		}
		return PlayerUpdateEvent{nodeEvent: base, GuildID: env.GuildID, State: state}, nil

	case "stats":
		var stats Stats
		if err := json.Unmarshal(data, &stats); err != nil {
			return nil, &BuildError{Reason: "invalid stats payload", Cause: err}
		}
		return StatsEvent{nodeEvent: base, Stats: stats}, nil

	case "event":
		return decodeDispatchEvent(base, env, data)

	default:
		return nil, &BuildError{Reason: "unknown op " + env.Op}
	}
}

func decodeDispatchEvent(base nodeEvent, env eventEnvelope, data []byte) (Event, error) {
	var track Track
	if len(env.Track) > 0 {
		if err := json.Unmarshal(env.Track, &track); err != nil {
			return nil, &BuildError{Reason: "invalid track in " + env.Type, Cause: err}
		}
	}

	switch env.Type {
	case "TrackStartEvent":
		return TrackStartEvent{nodeEvent: base, GuildID: env.GuildID, Track: track}, nil

	case "TrackEndEvent":
		return TrackEndEvent{nodeEvent: base, GuildID: env.GuildID, Track: track, Reason: env.Reason}, nil

	case "TrackExceptionEvent":
		var exception TrackException
		if len(env.Exception) > 0 {
			if err := json.Unmarshal(env.Exception, &exception); err != nil {
				return nil, &BuildError{Reason: "invalid track exception", Cause: err}
			}
		}
		return TrackExceptionEvent{nodeEvent: base, GuildID: env.GuildID, Track: track, Exception: exception}, nil

	case "TrackStuckEvent":
		return TrackStuckEvent{
			nodeEvent: base,
			GuildID:   env.GuildID,
			Track:     track,
			Threshold: time.Duration(env.ThresholdMs) * time.Millisecond,
		}, nil

	case "WebSocketClosedEvent":
		var closed struct {
			Reason string `json:"reason"`
		}
		// reason collides with TrackEndEvent's enum field in the
		// shared envelope, so it is picked out separately here.
		if err := json.Unmarshal(data, &closed); err != nil {
			return nil, &BuildError{Reason: "invalid websocket closed payload", Cause: err}
		}
		return WebSocketClosedEvent{
			nodeEvent: base,
			GuildID:   env.GuildID,
			Code:      env.Code,
			Reason:    closed.Reason,
			ByRemote:  env.ByRemote,
		}, nil

	default:
		return nil, &BuildError{Reason: "unknown event type " + env.Type}
	}
}
