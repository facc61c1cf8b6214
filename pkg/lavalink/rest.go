package lavalink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	apiPrefix        = "/v4"
	restBackoffBase  = 250 * time.Millisecond
	restBackoffLimit = 5 * time.Second
)

// Rest issues HTTP calls against one node, shared by every player
// assigned to it. Calls are paced by the node's adaptive limiter and
// transient failures are retried up to the configured bound; permanent
// failures (auth, validation) surface immediately. A call against a node
// that is not Connected fails fast with ErrNodeUnavailable.
type Rest struct {
	node       *Node
	http       *http.Client
	limiter    *adaptiveLimiter
	maxRetries int
	log        Logger
}

func newRest(node *Node, timeout time.Duration, maxRetries int, log Logger) *Rest {
	return &Rest{
		node:       node,
		http:       &http.Client{Timeout: timeout},
		limiter:    defaultNodeLimiter(),
		maxRetries: maxRetries,
		log:        log,
	}
}

// Info fetches the node's information block.
func (r *Rest) Info(ctx context.Context) (*Info, error) {
	var info Info
	if err := r.do(ctx, http.MethodGet, staticPath(apiPrefix+"/info"), nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Version fetches the node's version string from the unversioned
// /version endpoint.
func (r *Rest) Version(ctx context.Context) (string, error) {
	var version rawString
	if err := r.do(ctx, http.MethodGet, staticPath("/version"), nil, nil, &version); err != nil {
		return "", err
	}
	return string(version), nil
}

// Stats fetches node statistics on demand, in addition to the periodic
// websocket push.
func (r *Rest) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := r.do(ctx, http.MethodGet, staticPath(apiPrefix+"/stats"), nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// LoadTracks resolves an identifier (URL or prefixed search query) to a
// load result. Callers must branch on the result's Type.
func (r *Rest) LoadTracks(ctx context.Context, identifier string) (*LoadResult, error) {
	query := url.Values{"identifier": {identifier}}
	var result LoadResult
	if err := r.do(ctx, http.MethodGet, staticPath(apiPrefix+"/loadtracks"), query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search is LoadTracks with the default search prefix applied to plain
// text input.
func (r *Rest) Search(ctx context.Context, input string, searchType SearchType) (*LoadResult, error) {
	return r.LoadTracks(ctx, BuildIdentifier(input, searchType))
}

// DecodeTrack decodes a single encoded track payload into its metadata.
func (r *Rest) DecodeTrack(ctx context.Context, encoded string) (*Track, error) {
	query := url.Values{"encodedTrack": {encoded}}
	var track Track
	if err := r.do(ctx, http.MethodGet, staticPath(apiPrefix+"/decodetrack"), query, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// DecodeTracks decodes a batch of encoded track payloads.
func (r *Rest) DecodeTracks(ctx context.Context, encoded []string) ([]Track, error) {
	var tracks []Track
	if err := r.do(ctx, http.MethodPost, staticPath(apiPrefix+"/decodetracks"), nil, encoded, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// FetchPlayers lists the node-side players of the current session.
func (r *Rest) FetchPlayers(ctx context.Context) ([]RestPlayer, error) {
	var players []RestPlayer
	if err := r.do(ctx, http.MethodGet, r.sessionPath("/players"), nil, nil, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// FetchPlayer fetches the node-side player for one guild.
func (r *Rest) FetchPlayer(ctx context.Context, guildID string) (*RestPlayer, error) {
	var player RestPlayer
	if err := r.do(ctx, http.MethodGet, r.sessionPath("/players/"+guildID), nil, nil, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// UpdatePlayer merges the provided fields into the node-side player.
// Unset fields are left untouched server-side. With noReplace, a track in
// the update is ignored if something is already playing.
func (r *Rest) UpdatePlayer(ctx context.Context, guildID string, update PlayerUpdate, noReplace bool) (*RestPlayer, error) {
	query := url.Values{}
	if noReplace {
		query.Set("noReplace", "true")
	}
	var player RestPlayer
	if err := r.do(ctx, http.MethodPatch, r.sessionPath("/players/"+guildID), query, update, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// DestroyPlayer removes the node-side player for a guild.
func (r *Rest) DestroyPlayer(ctx context.Context, guildID string) error {
	return r.do(ctx, http.MethodDelete, r.sessionPath("/players/"+guildID), nil, nil, nil)
}

// UpdateSession configures resuming for the current session.
func (r *Rest) UpdateSession(ctx context.Context, update SessionUpdate) error {
	return r.do(ctx, http.MethodPatch, r.sessionPath(""), nil, update, nil)
}

// RoutePlannerStatus fetches the node's route planner state. A nil result
// with a nil error means no planner is configured.
func (r *Rest) RoutePlannerStatus(ctx context.Context) (*RoutePlannerStatus, error) {
	var status RoutePlannerStatus
	if err := r.do(ctx, http.MethodGet, staticPath(apiPrefix+"/routeplanner/status"), nil, nil, &status); err != nil {
		return nil, err
	}
	if status.Class == "" {
		return nil, nil
	}
	return &status, nil
}

// FreeRoutePlannerAddress unmarks a failing route planner address.
func (r *Rest) FreeRoutePlannerAddress(ctx context.Context, address string) error {
	body := map[string]string{"address": address}
	return r.do(ctx, http.MethodPost, staticPath(apiPrefix+"/routeplanner/free/address"), nil, body, nil)
}

// FreeAllRoutePlannerAddresses unmarks all failing route planner
// addresses.
func (r *Rest) FreeAllRoutePlannerAddresses(ctx context.Context) error {
	return r.do(ctx, http.MethodPost, staticPath(apiPrefix+"/routeplanner/free/all"), nil, nil, nil)
}

// probe makes a single unpaced GET /v4/info, used by the connect
// handshake to validate the password before the websocket is opened.
func (r *Rest) probe(ctx context.Context) error {
	err := r.once(ctx, http.MethodGet, apiPrefix+"/info", nil, nil, nil)
	var restErr *RestError
	if errors.As(err, &restErr) && authStatus(restErr.Status) {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return err
}

// rawString accepts a plain-text response body.
type rawString string

// staticPath builds paths that do not depend on the session id.
func staticPath(path string) func() (string, error) {
	return func() (string, error) {
		return path, nil
	}
}

// sessionPath builds session-scoped paths from the node's current session
// id, re-read on every attempt so a mid-call reconnect picks up the
// refreshed id.
func (r *Rest) sessionPath(suffix string) func() (string, error) {
	return func() (string, error) {
		sessionID := r.node.SessionID()
		if sessionID == "" {
			return "", ErrNotReady
		}
		return apiPrefix + "/sessions/" + sessionID + suffix, nil
	}
}

// do runs one REST call with circuit check, pacing, bounded retries for
// transient failures, and a single immediate retry when the session id
// changed under the call.
func (r *Rest) do(ctx context.Context, method string, buildPath func() (string, error), query url.Values, body, out interface{}) error {
	var lastErr error
	sessionRetried := false
	attempt := 0

	for {
		if r.node.State() != NodeConnected {
			return ErrNodeUnavailable
		}
		path, err := buildPath()
		if err != nil {
			return err
		}
		sessionBefore := r.node.SessionID()

		if err := r.limiter.wait(ctx); err != nil {
			return err
		}

		err = r.once(ctx, method, path, query, body, out)
		if err == nil {
			r.limiter.success()
			return nil
		}
		lastErr = err

		var restErr *RestError
		if errors.As(err, &restErr) {
			if authStatus(restErr.Status) {
				return fmt.Errorf("%w: %v", ErrAuth, err)
			}
			// The node may have cycled its session mid-call; one
			// immediate retry against the refreshed id.
			if restErr.Status == http.StatusNotFound && !sessionRetried &&
				r.node.SessionID() != sessionBefore {
				sessionRetried = true
				continue
			}
		}

		if !retryableError(err) {
			return err
		}
		r.limiter.failure()

		attempt++
		if attempt > r.maxRetries {
			return lastErr
		}
		r.log.Debug("retrying request",
			String("method", method), String("path", path),
			Int("attempt", attempt), Err(err))
		if err := sleepContext(ctx, backoffDelay(attempt-1, restBackoffBase, restBackoffLimit)); err != nil {
			return err
		}
	}
}

// once performs a single HTTP round trip and decodes the response.
func (r *Rest) once(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := r.node.Config().BaseURL() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &BuildError{Reason: "could not encode request body", Cause: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", r.node.Config().Password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		restErr := &RestError{Status: resp.StatusCode, StatusMsg: http.StatusText(resp.StatusCode), Path: path}
		if len(payload) > 0 {
			var decoded RestError
			if jsonErr := json.Unmarshal(payload, &decoded); jsonErr == nil && decoded.Status != 0 {
				restErr = &decoded
			}
		}
		return restErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(payload) == 0 {
		return nil
	}

	if str, ok := out.(*rawString); ok {
		*str = rawString(payload)
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &BuildError{Reason: "could not decode response from " + path, Cause: err}
	}
	return nil
}
