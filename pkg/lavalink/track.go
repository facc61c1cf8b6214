package lavalink

import (
	"encoding/json"
	"time"
)

// TrackInfo is the display metadata decoded from a track's encoded payload.
type TrackInfo struct {
	Identifier string `json:"identifier"`
	IsSeekable bool   `json:"isSeekable"`
	Author     string `json:"author"`
	Length     int64  `json:"length"`
	IsStream   bool   `json:"isStream"`
	Position   int64  `json:"position"`
	Title      string `json:"title"`
	SourceName string `json:"sourceName"`
	URI        string `json:"uri,omitempty"`
	ArtworkURL string `json:"artworkUrl,omitempty"`
	ISRC       string `json:"isrc,omitempty"`
}

// Track is an immutable reference to a playable item: the node-understood
// encoded payload plus display metadata. Requester is a local annotation
// attached at enqueue time and never sent to the node.
type Track struct {
	Encoded    string          `json:"encoded"`
	Info       TrackInfo       `json:"info"`
	PluginInfo json.RawMessage `json:"pluginInfo,omitempty"`
	UserData   json.RawMessage `json:"userData,omitempty"`
	Requester  string          `json:"-"`
}

// Duration returns the track length as a time.Duration.
func (t Track) Duration() time.Duration {
	return time.Duration(t.Info.Length) * time.Millisecond
}

// WithRequester returns a copy of the track annotated with who queued it.
func (t Track) WithRequester(requester string) Track {
	t.Requester = requester
	return t
}

// PlaylistInfo is the metadata of a loaded playlist.
type PlaylistInfo struct {
	Name          string `json:"name"`
	SelectedTrack int    `json:"selectedTrack"`
}

// Playlist is an ordered, immutable sequence of tracks with metadata.
type Playlist struct {
	Info       PlaylistInfo    `json:"info"`
	PluginInfo json.RawMessage `json:"pluginInfo,omitempty"`
	Tracks     []Track         `json:"tracks"`
}

// TrackException describes a playback failure reported by a node.
type TrackException struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Cause    string `json:"cause"`
}

// TrackEndReason explains why a track stopped playing.
type TrackEndReason string

const (
	TrackEndFinished   TrackEndReason = "finished"
	TrackEndLoadFailed TrackEndReason = "loadFailed"
	TrackEndStopped    TrackEndReason = "stopped"
	TrackEndReplaced   TrackEndReason = "replaced"
	TrackEndCleanup    TrackEndReason = "cleanup"
)

// MayStartNext reports whether this end reason should advance the queue.
// Stops, replacements and cleanups are caller-driven and must not.
func (r TrackEndReason) MayStartNext() bool {
	return r == TrackEndFinished || r == TrackEndLoadFailed
}

// LoadType discriminates the shape of a load-tracks result.
type LoadType string

const (
	LoadTypeTrack    LoadType = "track"
	LoadTypePlaylist LoadType = "playlist"
	LoadTypeSearch   LoadType = "search"
	LoadTypeEmpty    LoadType = "empty"
	LoadTypeError    LoadType = "error"
)

// LoadResult is the discriminated result of a load-tracks call. Exactly
// one of Track, Playlist, Tracks or Exception is populated, matching Type.
// An empty result is a valid outcome, not an error.
type LoadResult struct {
	Type      LoadType
	Track     *Track
	Playlist  *Playlist
	Tracks    []Track
	Exception *TrackException
}

// UnmarshalJSON decodes the wire envelope, branching on loadType before
// any payload is touched.
func (r *LoadResult) UnmarshalJSON(data []byte) error {
	var envelope struct {
		LoadType LoadType        `json:"loadType"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return &BuildError{Reason: "invalid load result envelope", Cause: err}
	}

	r.Type = envelope.LoadType
	switch envelope.LoadType {
	case LoadTypeTrack:
		var track Track
		if err := json.Unmarshal(envelope.Data, &track); err != nil {
			return &BuildError{Reason: "invalid track payload", Cause: err}
		}
		r.Track = &track
	case LoadTypePlaylist:
		var playlist Playlist
		if err := json.Unmarshal(envelope.Data, &playlist); err != nil {
			return &BuildError{Reason: "invalid playlist payload", Cause: err}
		}
		r.Playlist = &playlist
	case LoadTypeSearch:
		var tracks []Track
		if err := json.Unmarshal(envelope.Data, &tracks); err != nil {
			return &BuildError{Reason: "invalid search payload", Cause: err}
		}
		r.Tracks = tracks
	case LoadTypeEmpty:
		// no payload
	case LoadTypeError:
		var exception TrackException
		if err := json.Unmarshal(envelope.Data, &exception); err != nil {
			return &BuildError{Reason: "invalid exception payload", Cause: err}
		}
		r.Exception = &exception
	default:
		return &BuildError{Reason: "unknown load type " + string(envelope.LoadType)}
	}
	return nil
}
