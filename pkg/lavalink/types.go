package lavalink

import "encoding/json"

// NodeState represents the connection state of a node.
type NodeState int

const (
	NodeDisconnected NodeState = iota
	NodeConnecting
	NodeConnected
	NodeFailed
)

func (s NodeState) String() string {
	switch s {
	case NodeDisconnected:
		return "disconnected"
	case NodeConnecting:
		return "connecting"
	case NodeConnected:
		return "connected"
	case NodeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PlayerState represents the local playback state of a player.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerPlaying
	PlayerPaused
	PlayerUnassigned
)

func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerPlaying:
		return "playing"
	case PlayerPaused:
		return "paused"
	case PlayerUnassigned:
		return "unassigned"
	default:
		return "unknown"
	}
}

// LoopMode controls what happens to the queue head when a track finishes.
type LoopMode int

const (
	LoopOff LoopMode = iota
	LoopTrack
	LoopQueue
)

func (m LoopMode) String() string {
	switch m {
	case LoopOff:
		return "off"
	case LoopTrack:
		return "track"
	case LoopQueue:
		return "queue"
	default:
		return "unknown"
	}
}

// VoiceState carries the Discord voice credentials a node needs to join a
// voice channel on the bot's behalf.
type VoiceState struct {
	Token     string `json:"token"`
	Endpoint  string `json:"endpoint"`
	SessionID string `json:"sessionId"`
}

func (v VoiceState) complete() bool {
	return v.Token != "" && v.Endpoint != "" && v.SessionID != ""
}

// PlayerUpdateState is the authoritative playback snapshot pushed by a node
// in playerUpdate frames.
type PlayerUpdateState struct {
	Time      int64 `json:"time"`
	Position  int64 `json:"position"`
	Connected bool  `json:"connected"`
	Ping      int   `json:"ping"`
}

// Stats is the node statistics payload, pushed over the websocket and also
// available via GET /v4/stats.
type Stats struct {
	Players        int         `json:"players"`
	PlayingPlayers int         `json:"playingPlayers"`
	Uptime         int64       `json:"uptime"`
	Memory         Memory      `json:"memory"`
	CPU            CPU         `json:"cpu"`
	FrameStats     *FrameStats `json:"frameStats,omitempty"`
}

// Memory reports the node's JVM memory usage in bytes.
type Memory struct {
	Free       int64 `json:"free"`
	Used       int64 `json:"used"`
	Allocated  int64 `json:"allocated"`
	Reservable int64 `json:"reservable"`
}

// CPU reports the node's processor load.
type CPU struct {
	Cores        int     `json:"cores"`
	SystemLoad   float64 `json:"systemLoad"`
	LavalinkLoad float64 `json:"lavalinkLoad"`
}

// FrameStats reports audio frame delivery over the last minute.
type FrameStats struct {
	Sent    int `json:"sent"`
	Nulled  int `json:"nulled"`
	Deficit int `json:"deficit"`
}

// Info is the node information payload from GET /v4/info.
type Info struct {
	Version        InfoVersion `json:"version"`
	BuildTime      int64       `json:"buildTime"`
	JVM            string      `json:"jvm"`
	Lavaplayer     string      `json:"lavaplayer"`
	SourceManagers []string    `json:"sourceManagers"`
	Filters        []string    `json:"filters"`
	Plugins        []Plugin    `json:"plugins"`
}

// InfoVersion is the node's semantic version breakdown.
type InfoVersion struct {
	Semver     string `json:"semver"`
	Major      int    `json:"major"`
	Minor      int    `json:"minor"`
	Patch      int    `json:"patch"`
	PreRelease string `json:"preRelease,omitempty"`
}

// Plugin identifies a plugin loaded on the node.
type Plugin struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RestPlayer is the node-side representation of a player, as returned by
// the session-scoped player endpoints.
type RestPlayer struct {
	GuildID string            `json:"guildId"`
	Track   *Track            `json:"track,omitempty"`
	Volume  int               `json:"volume"`
	Paused  bool              `json:"paused"`
	State   PlayerUpdateState `json:"state"`
	Voice   VoiceState        `json:"voice"`
	Filters json.RawMessage   `json:"filters,omitempty"`
}

// SessionUpdate is the body of PATCH /v4/sessions/{sessionId}.
type SessionUpdate struct {
	Resuming *bool `json:"resuming,omitempty"`
	Timeout  *int  `json:"timeout,omitempty"`
}

// RoutePlannerStatus is the route planner state of a node, or nil-valued
// Class when no planner is configured.
type RoutePlannerStatus struct {
	Class   string               `json:"class"`
	Details *RoutePlannerDetails `json:"details,omitempty"`
}

// RoutePlannerDetails carries planner-class specific information.
type RoutePlannerDetails struct {
	IPBlock             IPBlock          `json:"ipBlock"`
	FailingAddresses    []FailingAddress `json:"failingAddresses"`
	RotateIndex         string           `json:"rotateIndex,omitempty"`
	IPIndex             string           `json:"ipIndex,omitempty"`
	CurrentAddress      string           `json:"currentAddress,omitempty"`
	CurrentAddressIndex string           `json:"currentAddressIndex,omitempty"`
	BlockIndex          string           `json:"blockIndex,omitempty"`
}

// IPBlock describes the address block a route planner rotates through.
type IPBlock struct {
	Type string `json:"type"`
	Size string `json:"size"`
}

// FailingAddress is an address the route planner has marked as failing.
type FailingAddress struct {
	Address   string `json:"failingAddress"`
	Timestamp int64  `json:"failingTimestamp"`
	Time      string `json:"failingTime"`
}

// PlayerUpdate is the body of PATCH players/{guildId}. Pointer fields are
// omitted when nil so the node only merges what was provided, mirroring
// the tri-state contract of Filters.
type PlayerUpdate struct {
	Track    *PlayerUpdateTrack `json:"track,omitempty"`
	Position *int64             `json:"position,omitempty"`
	EndTime  *int64             `json:"endTime,omitempty"`
	Volume   *int               `json:"volume,omitempty"`
	Paused   *bool              `json:"paused,omitempty"`
	Filters  *Filters           `json:"filters,omitempty"`
	Voice    *VoiceState        `json:"voice,omitempty"`
}

// PlayerUpdateTrack selects the track to play. Encoded serializes as null
// to stop the current track, which is distinct from omitting it entirely.
type PlayerUpdateTrack struct {
	Encoded  *string         `json:"encoded"`
	UserData json.RawMessage `json:"userData,omitempty"`
}

func ptr[T any](v T) *T {
	return &v
}
