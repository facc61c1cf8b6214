package lavalink

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by client, node and player operations. Callers
// should match them with errors.Is.
var (
	// ErrAuth is returned when a node rejects the configured password.
	ErrAuth = errors.New("lavalink: node rejected password")

	// ErrUnreachable is returned when a node cannot be reached after the
	// configured number of connection attempts.
	ErrUnreachable = errors.New("lavalink: node unreachable")

	// ErrNodeUnavailable is returned when a REST call is issued against a
	// node that is not in the Connected state.
	ErrNodeUnavailable = errors.New("lavalink: node not connected")

	// ErrNotReady is returned when a session-scoped REST call is issued
	// before the node has received its session id.
	ErrNotReady = errors.New("lavalink: node has no session id yet")

	// ErrNoAvailableNode is returned when no connected node exists to
	// assign a player to.
	ErrNoAvailableNode = errors.New("lavalink: no connected node available")

	// ErrNoNodes is returned when a player is requested before any node
	// has been added to the client.
	ErrNoNodes = errors.New("lavalink: no nodes configured")

	// ErrNodeExists is returned when adding a node whose name is taken.
	ErrNodeExists = errors.New("lavalink: node name already in use")

	// ErrPlayerExists is returned by NewPlayer when a player for the
	// guild already exists.
	ErrPlayerExists = errors.New("lavalink: player already exists for guild")

	// ErrPlayerUnassigned is returned when a command is issued on a
	// player that currently has no node.
	ErrPlayerUnassigned = errors.New("lavalink: player has no node assigned")

	// ErrEmptyQueue is returned by Play when nothing is queued.
	ErrEmptyQueue = errors.New("lavalink: queue is empty")

	// ErrVoiceTimeout is returned when voice credentials do not arrive
	// within the configured window after a voice channel join.
	ErrVoiceTimeout = errors.New("lavalink: timed out waiting for voice credentials")

	// ErrClientClosed is returned for operations on a closed client.
	ErrClientClosed = errors.New("lavalink: client is closed")
)

// RestError is the structured error body a node returns for 4xx/5xx
// responses, plus the HTTP status observed.
type RestError struct {
	Timestamp int64  `json:"timestamp"`
	Status    int    `json:"status"`
	StatusMsg string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Trace     string `json:"trace,omitempty"`
}

func (e *RestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("lavalink: %d %s on %s: %s", e.Status, e.StatusMsg, e.Path, e.Message)
	}
	return fmt.Sprintf("lavalink: %d %s on %s", e.Status, e.StatusMsg, e.Path)
}

// Time returns the server-side timestamp of the error.
func (e *RestError) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// BuildError is returned when a payload (track, filter, event frame) could
// not be built or decoded. Cause may be nil.
type BuildError struct {
	Reason string
	Cause  error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lavalink: build failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("lavalink: build failed: %s", e.Reason)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// CommandError wraps a failed remote player command with the operation
// that was attempted. The underlying error is typically a *RestError or
// one of the sentinel errors above.
type CommandError struct {
	Op      string
	GuildID string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("lavalink: %s failed for guild %s: %v", e.Op, e.GuildID, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func commandError(op, guildID string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Op: op, GuildID: guildID, Err: err}
}
