package lavalink

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// VolumeDefault is restored by ResetVolume.
	VolumeDefault = 100
	// VolumeMax is the clamp ceiling. Values above 100 are allowed but
	// produce distortion.
	VolumeMax = 1000

	destroyTimeout = 3 * time.Second
	advanceTimeout = 30 * time.Second
)

// Player is the per-guild playback controller: the locally owned queue
// and intent (loop mode, autoplay, volume, filters, paused flag) plus the
// remote-mirrored snapshot that only playerUpdate frames may write.
//
// Mutating remote commands are serialized per player, so a Skip racing a
// Pause waits for the first command to commit instead of both racing the
// remote state. Queue mutations are synchronous and purely local.
type Player struct {
	client  *Client
	guildID string
	queue   *Queue
	log     Logger

	// execMu serializes mutating remote commands for this player.
	execMu chan struct{}

	mu       sync.RWMutex
	node     *Node
	state    PlayerState
	loop     LoopMode
	autoplay bool
	volume   int
	filters  *Filters
	paused   bool

	channelID string
	voice     VoiceState
	voiceWait chan struct{}

	// remote-mirrored snapshot, written only from playerUpdate frames
	// and invalidated on node reassignment.
	position      int64
	connected     bool
	ping          int
	updatedAt     time.Time
	snapshotValid bool

	current      *Track
	advanceGuard string
}

func newPlayer(client *Client, guildID string, node *Node) *Player {
	execMu := make(chan struct{}, 1)
	return &Player{
		client:  client,
		guildID: guildID,
		queue:   NewQueue(),
		log:     client.log.With(String("guild_id", guildID)),
		execMu:  execMu,
		node:    node,
		state:   PlayerIdle,
		volume:  VolumeDefault,
		filters: NewFilters(),
	}
}

func (p *Player) lockExec(ctx context.Context) error {
	select {
	case p.execMu <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Player) unlockExec() {
	<-p.execMu
}

// GuildID returns the guild this player belongs to.
func (p *Player) GuildID() string { return p.guildID }

// Queue returns the player's queue.
func (p *Player) Queue() *Queue { return p.queue }

// Node returns the node currently assigned to this player, or nil while
// the player is unassigned.
func (p *Player) Node() *Node {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.node
}

// State returns the local playback state.
func (p *Player) State() PlayerState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Paused reports the local paused flag.
func (p *Player) Paused() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused
}

// Volume returns the player volume in [0, 1000].
func (p *Player) Volume() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.volume
}

// Loop returns the loop mode.
func (p *Player) Loop() LoopMode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loop
}

// Autoplay reports whether autoplay is enabled.
func (p *Player) Autoplay() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.autoplay
}

// Filters returns the active filter set. Callers must not mutate it;
// use SetFilters.
func (p *Player) Filters() *Filters {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filters
}

// ChannelID returns the voice channel the player was told to join, or
// the empty string.
func (p *Player) ChannelID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.channelID
}

// Current returns the track the node last reported as playing, or nil.
func (p *Player) Current() *Track {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Connected reports whether the node's voice connection for this guild
// is up, per the last snapshot.
func (p *Player) Connected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotValid && p.connected
}

// Ping returns the node's voice ping in milliseconds, or -1 before the
// first snapshot.
func (p *Player) Ping() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.snapshotValid {
		return -1
	}
	return p.ping
}

// Position returns the playback position, interpolated from the last
// snapshot while playing. Zero before the first snapshot.
func (p *Player) Position() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.snapshotValid {
		return 0
	}
	position := p.position
	if p.state == PlayerPlaying && !p.paused {
		position += time.Since(p.updatedAt).Milliseconds()
	}
	return time.Duration(position) * time.Millisecond
}

func (p *Player) assignedNode() (*Node, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.node == nil {
		return nil, ErrPlayerUnassigned
	}
	return p.node, nil
}

// Connect joins the given voice channel: the voice state update is sent
// through the configured VoiceStateSender, then the call waits (bounded)
// for the gateway to deliver the voice credentials and pushes them to
// the node.
func (p *Player) Connect(ctx context.Context, channelID string, mute, deaf bool) error {
	sender := p.client.config.VoiceStateSender
	if sender == nil {
		return fmt.Errorf("lavalink: no voice state sender configured")
	}
	node, err := p.assignedNode()
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.channelID = channelID
	complete := p.voice.complete()
	if !complete && p.voiceWait == nil {
		p.voiceWait = make(chan struct{})
	}
	wait := p.voiceWait
	p.mu.Unlock()

	if err := sender.SendVoiceStateUpdate(p.guildID, channelID, mute, deaf); err != nil {
		return fmt.Errorf("lavalink: voice state update failed: %w", err)
	}

	if !complete {
		timer := time.NewTimer(p.client.config.VoiceTimeout)
		defer timer.Stop()
		select {
		case <-wait:
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return ErrVoiceTimeout
		}
	}

	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	p.mu.RLock()
	voice := p.voice
	p.mu.RUnlock()
	_, err = node.Rest().UpdatePlayer(ctx, p.guildID, PlayerUpdate{Voice: &voice}, false)
	return commandError("connect", p.guildID, err)
}

// Disconnect leaves the voice channel and destroys the player.
func (p *Player) Disconnect(ctx context.Context) error {
	if sender := p.client.config.VoiceStateSender; sender != nil {
		if err := sender.SendVoiceStateUpdate(p.guildID, "", false, false); err != nil {
			p.log.Warn("voice channel leave failed", Err(err))
		}
	}
	return p.client.DestroyPlayer(ctx, p.guildID)
}

// Play starts the current queue head, failing with ErrEmptyQueue when
// nothing is queued.
func (p *Player) Play(ctx context.Context) error {
	return p.play(ctx, nil)
}

// PlayTrack installs track at queue index 0, replacing any current head,
// and starts it.
func (p *Player) PlayTrack(ctx context.Context, track Track) error {
	return p.play(ctx, &track)
}

func (p *Player) play(ctx context.Context, track *Track) error {
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	var prev Track
	var hadPrev, staged bool
	if track != nil {
		prev, hadPrev = p.queue.ReplaceHead(*track)
		staged = true
	}
	if err := p.playHead(ctx, node); err != nil {
		if staged {
			p.queue.restoreHead(prev, hadPrev)
		}
		return err
	}
	return nil
}

// playHead issues the remote play command for the queue head. The exec
// lock must be held.
func (p *Player) playHead(ctx context.Context, node *Node) error {
	head, ok := p.queue.Head()
	if !ok {
		return ErrEmptyQueue
	}

	p.mu.RLock()
	update := PlayerUpdate{
		Track:  &PlayerUpdateTrack{Encoded: ptr(head.Encoded)},
		Volume: ptr(p.volume),
		Paused: ptr(false),
	}
	if p.voice.complete() {
		voice := p.voice
		update.Voice = &voice
	}
	p.mu.RUnlock()

	if _, err := node.Rest().UpdatePlayer(ctx, p.guildID, update, false); err != nil {
		return commandError("play", p.guildID, err)
	}

	p.mu.Lock()
	p.paused = false
	p.state = PlayerPlaying
	p.mu.Unlock()
	p.log.Debug("play issued", String("track", head.Info.Title))
	return nil
}

// Pause toggles the paused flag.
func (p *Player) Pause(ctx context.Context) error {
	return p.SetPaused(ctx, !p.Paused())
}

// SetPaused forces the paused flag. The local flag is set optimistically
// and rolled back if the node rejects the update.
func (p *Player) SetPaused(ctx context.Context, paused bool) error {
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	p.mu.Lock()
	prevPaused, prevState := p.paused, p.state
	p.paused = paused
	p.mu.Unlock()

	if _, err := node.Rest().UpdatePlayer(ctx, p.guildID, PlayerUpdate{Paused: ptr(paused)}, false); err != nil {
		p.mu.Lock()
		p.paused, p.state = prevPaused, prevState
		p.mu.Unlock()
		return commandError("pause", p.guildID, err)
	}

	p.mu.Lock()
	if p.state == PlayerPlaying || p.state == PlayerPaused {
		if paused {
			p.state = PlayerPaused
		} else {
			p.state = PlayerPlaying
		}
	}
	p.mu.Unlock()
	return nil
}

// Stop halts the current track on the node. The queue is left untouched.
func (p *Player) Stop(ctx context.Context) error {
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()
	return p.stopRemote(ctx, node, "stop")
}

// stopRemote issues a remote stop and moves the player to Idle. The exec
// lock must be held.
func (p *Player) stopRemote(ctx context.Context, node *Node, op string) error {
	update := PlayerUpdate{Track: &PlayerUpdateTrack{Encoded: nil}}
	if _, err := node.Rest().UpdatePlayer(ctx, p.guildID, update, false); err != nil {
		return commandError(op, p.guildID, err)
	}
	p.mu.Lock()
	p.state = PlayerIdle
	p.current = nil
	p.mu.Unlock()
	return nil
}

// Skip removes n tracks from the queue head. Tracks beyond the first are
// only removed, not stopped. If the queue empties a remote stop is
// issued; otherwise the new head is played.
func (p *Player) Skip(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	dropped := p.queue.Drop(n)
	if len(dropped) == 0 {
		return ErrEmptyQueue
	}

	if p.queue.Len() == 0 {
		if err := p.stopRemote(ctx, node, "skip"); err != nil {
			p.queue.pushFront(dropped)
			return err
		}
		return nil
	}
	if err := p.playHead(ctx, node); err != nil {
		p.queue.pushFront(dropped)
		return err
	}
	return nil
}

// Seek moves the playback position of the current track.
func (p *Player) Seek(ctx context.Context, position time.Duration) error {
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	update := PlayerUpdate{Position: ptr(position.Milliseconds())}
	if _, err := node.Rest().UpdatePlayer(ctx, p.guildID, update, false); err != nil {
		return commandError("seek", p.guildID, err)
	}
	return nil
}

// SetVolume sets the player volume, clamped into [0, 1000]. Values above
// 100 are allowed but produce distortion.
func (p *Player) SetVolume(ctx context.Context, volume int) error {
	if volume < 0 {
		volume = 0
	}
	if volume > VolumeMax {
		volume = VolumeMax
	}
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	p.mu.Lock()
	prev := p.volume
	p.volume = volume
	p.mu.Unlock()

	if _, err := node.Rest().UpdatePlayer(ctx, p.guildID, PlayerUpdate{Volume: ptr(volume)}, false); err != nil {
		p.mu.Lock()
		p.volume = prev
		p.mu.Unlock()
		return commandError("volume", p.guildID, err)
	}
	return nil
}

// ResetVolume restores the default volume of 100.
func (p *Player) ResetVolume(ctx context.Context) error {
	return p.SetVolume(ctx, VolumeDefault)
}

// SetLoop sets the loop mode. Purely local intent.
func (p *Player) SetLoop(mode LoopMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loop = mode
}

// SetAutoplay toggles autoplay. Purely local intent.
func (p *Player) SetAutoplay(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.autoplay = enabled
}

// SetFilters merges the given filter update into the active set and
// pushes the result to the node. Fields unset in the update keep their
// previous value; explicitly cleared fields are removed.
func (p *Player) SetFilters(ctx context.Context, filters *Filters) error {
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	p.mu.RLock()
	merged := p.filters.Merge(filters)
	p.mu.RUnlock()

	if _, err := node.Rest().UpdatePlayer(ctx, p.guildID, PlayerUpdate{Filters: merged}, false); err != nil {
		return commandError("filters", p.guildID, err)
	}
	p.mu.Lock()
	p.filters = merged
	p.mu.Unlock()
	return nil
}

// ClearFilters removes every active filter.
func (p *Player) ClearFilters(ctx context.Context) error {
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	if _, err := node.Rest().UpdatePlayer(ctx, p.guildID, PlayerUpdate{Filters: NewFilters()}, false); err != nil {
		return commandError("filters", p.guildID, err)
	}
	p.mu.Lock()
	p.filters = NewFilters()
	p.mu.Unlock()
	return nil
}

// Add appends tracks to the queue tail. Never starts playback by itself.
func (p *Player) Add(tracks ...Track) {
	p.queue.Add(tracks...)
}

// AddPlaylist appends all playlist tracks to the queue tail.
func (p *Player) AddPlaylist(playlist Playlist, requester string) {
	tracks := make([]Track, len(playlist.Tracks))
	for i, track := range playlist.Tracks {
		tracks[i] = track.WithRequester(requester)
	}
	p.queue.Add(tracks...)
}

// Remove removes the first queued track with the same encoded payload.
// Removing the head does not stop current playback; it only changes what
// subsequent skips and advances see.
func (p *Player) Remove(track Track) bool {
	return p.queue.Remove(track)
}

// RemoveAt removes the track at the given queue index. Index 0 follows
// the same continues-playing contract as Remove.
func (p *Player) RemoveAt(index int) (Track, bool) {
	return p.queue.RemoveAt(index)
}

// Clear empties the queue and stops the current track. Unlike removing
// the head, clearing is an explicit stop.
func (p *Player) Clear(ctx context.Context) error {
	node, err := p.assignedNode()
	if err != nil {
		return err
	}
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	if err := p.stopRemote(ctx, node, "clear"); err != nil {
		return err
	}
	p.queue.Clear()
	return nil
}

// Shuffle randomizes the queue behind the current head.
func (p *Player) Shuffle() {
	p.queue.Shuffle()
}

// handleEvent consumes one decoded node event for this guild. Called
// from the node's read loop; snapshot fields are written here and
// nowhere else.
func (p *Player) handleEvent(event Event) {
	switch e := event.(type) {
	case PlayerUpdateEvent:
		p.mu.Lock()
		p.position = e.State.Position
		p.connected = e.State.Connected
		p.ping = e.State.Ping
		p.updatedAt = time.Now()
		p.snapshotValid = true
		p.mu.Unlock()

	case TrackStartEvent:
		p.mu.Lock()
		track := e.Track
		p.current = &track
		if p.paused {
			p.state = PlayerPaused
		} else {
			p.state = PlayerPlaying
		}
		p.mu.Unlock()

	case TrackEndEvent:
		p.mu.Lock()
		p.current = nil
		p.mu.Unlock()
		if e.Reason.MayStartNext() {
			go p.advance(e)
		}

	case TrackExceptionEvent:
		p.log.Warn("track exception",
			String("track", e.Track.Info.Title),
			String("severity", e.Exception.Severity),
			String("message", e.Exception.Message))

	case TrackStuckEvent:
		p.log.Warn("track stuck",
			String("track", e.Track.Info.Title),
			Duration("threshold", e.Threshold))

	case WebSocketClosedEvent:
		p.log.Warn("voice websocket closed",
			Int("code", e.Code), String("reason", e.Reason), Bool("by_remote", e.ByRemote))
	}
}

// advance reconciles the queue after a track ended on its own. Loop mode
// decides what happens to the head; afterwards the next head is played,
// or autoplay fetches a follow-up, or the player goes idle. A repeated
// load failure of the same track never replays it a second time.
func (p *Player) advance(e TrackEndEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), advanceTimeout)
	defer cancel()

	if err := p.lockExec(ctx); err != nil {
		return
	}
	defer p.unlockExec()

	p.mu.Lock()
	loop := p.loop
	autoplay := p.autoplay
	guard := p.advanceGuard
	node := p.node
	p.mu.Unlock()
	if node == nil {
		return
	}

	switch loop {
	case LoopTrack:
		// head stays in place for a replay
	case LoopQueue:
		p.queue.RotateHeadToTail()
	default:
		p.queue.Pop()
	}

	head, ok := p.queue.Head()
	if ok && e.Reason == TrackEndLoadFailed && head.Encoded == e.Track.Encoded {
		if guard == e.Track.Encoded {
			// second load failure for the same track: give up on it
			p.queue.Pop()
			p.setAdvanceGuard("")
			head, ok = p.queue.Head()
		} else {
			p.setAdvanceGuard(e.Track.Encoded)
		}
	} else {
		p.setAdvanceGuard("")
	}

	if ok {
		if err := p.playHead(ctx, node); err != nil {
			p.log.Warn("queue advance failed", Err(err))
		}
		return
	}

	if autoplay {
		related, err := p.client.config.RelatedTrack(ctx, node, e.Track)
		if err != nil {
			p.log.Warn("autoplay lookup failed", Err(err))
		}
		if related != nil {
			p.queue.Add(*related)
			if err := p.playHead(ctx, node); err != nil {
				p.log.Warn("autoplay play failed", Err(err))
			}
			return
		}
	}

	p.mu.Lock()
	p.state = PlayerIdle
	p.mu.Unlock()
	p.client.dispatch(QueueEndEvent{nodeEvent: nodeEvent{Node: node.Name()}, GuildID: p.guildID})
}

func (p *Player) setAdvanceGuard(encoded string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanceGuard = encoded
}

// onVoiceServerUpdate merges fresh voice server credentials and, when the
// credential set becomes complete, hands it to whoever is waiting or
// pushes it straight to the node (endpoint changes mid-session).
func (p *Player) onVoiceServerUpdate(token, endpoint string) {
	p.mu.Lock()
	p.voice.Token = token
	p.voice.Endpoint = endpoint
	complete := p.voice.complete()
	wait := p.voiceWait
	if complete && wait != nil {
		close(wait)
		p.voiceWait = nil
		wait = nil
		complete = false // Connect will push
	}
	voice := p.voice
	node := p.node
	p.mu.Unlock()

	if complete && node != nil {
		go p.pushVoice(voice, node)
	}
}

// onVoiceStateUpdate merges the bot's voice session id. An update that
// removes the bot from the channel tears the player down.
func (p *Player) onVoiceStateUpdate(channelID, sessionID string) {
	if channelID == "" {
		p.log.Info("removed from voice channel, destroying player")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), destroyTimeout)
			defer cancel()
			p.client.DestroyPlayer(ctx, p.guildID)
		}()
		return
	}

	p.mu.Lock()
	p.channelID = channelID
	p.voice.SessionID = sessionID
	complete := p.voice.complete()
	wait := p.voiceWait
	if complete && wait != nil {
		close(wait)
		p.voiceWait = nil
		complete = false
	}
	voice := p.voice
	node := p.node
	p.mu.Unlock()

	if complete && node != nil {
		go p.pushVoice(voice, node)
	}
}

func (p *Player) pushVoice(voice VoiceState, node *Node) {
	ctx, cancel := context.WithTimeout(context.Background(), p.client.config.RestTimeout)
	defer cancel()
	if err := p.lockExec(ctx); err != nil {
		return
	}
	defer p.unlockExec()
	if _, err := node.Rest().UpdatePlayer(ctx, p.guildID, PlayerUpdate{Voice: &voice}, false); err != nil {
		p.log.Warn("voice update push failed", Err(err))
	}
}

// transfer moves the player to a new node, preserving queue and intent.
// The remote snapshot is invalidated until the new node's first
// playerUpdate arrives.
func (p *Player) transfer(ctx context.Context, target *Node) error {
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	p.mu.Lock()
	old := p.node
	p.node = target
	p.snapshotValid = false
	if p.state == PlayerUnassigned {
		p.state = PlayerIdle
	}
	p.mu.Unlock()

	if old != nil && old != target {
		old.removeGuild(p.guildID)
	}
	target.addGuild(p.guildID)
	p.log.Info("player transferred", String("node", target.Name()))

	return p.pushFullState(ctx, target)
}

// resync re-pushes the full local intent after the assigned node came
// back with a fresh session.
func (p *Player) resync(ctx context.Context) error {
	if err := p.lockExec(ctx); err != nil {
		return err
	}
	defer p.unlockExec()

	p.mu.Lock()
	p.snapshotValid = false
	node := p.node
	p.mu.Unlock()
	if node == nil {
		return ErrPlayerUnassigned
	}
	return p.pushFullState(ctx, node)
}

// pushFullState reissues voice, track, position, volume, paused flag and
// filters in a single update. The exec lock must be held.
func (p *Player) pushFullState(ctx context.Context, node *Node) error {
	p.mu.RLock()
	voice := p.voice
	state := p.state
	position := p.position
	update := PlayerUpdate{
		Volume: ptr(p.volume),
		Paused: ptr(p.paused),
	}
	if p.filters != nil && len(p.filters.fields) > 0 {
		update.Filters = p.filters
	}
	p.mu.RUnlock()

	if !voice.complete() {
		// nothing can play without credentials; the next Connect
		// pushes everything that matters
		return nil
	}
	update.Voice = &voice

	if head, ok := p.queue.Head(); ok && (state == PlayerPlaying || state == PlayerPaused) {
		update.Track = &PlayerUpdateTrack{Encoded: ptr(head.Encoded)}
		update.Position = ptr(position)
	}

	_, err := node.Rest().UpdatePlayer(ctx, p.guildID, update, false)
	return commandError("transfer", p.guildID, err)
}

// markUnassigned detaches the player from its node, keeping queue and
// intent. Commands fail with ErrPlayerUnassigned until reassignment.
func (p *Player) markUnassigned() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.node = nil
	p.state = PlayerUnassigned
	p.snapshotValid = false
}

// teardown unassigns the guild and issues a best-effort remote destroy
// with a short timeout, swallowing failure; the node-side player is
// garbage collected by the server regardless.
func (p *Player) teardown(ctx context.Context) {
	if err := p.lockExec(ctx); err != nil {
		return
	}
	defer p.unlockExec()

	p.mu.Lock()
	node := p.node
	p.node = nil
	p.state = PlayerUnassigned
	p.snapshotValid = false
	p.mu.Unlock()

	if node != nil {
		node.removeGuild(p.guildID)
		destroyCtx, cancel := context.WithTimeout(ctx, destroyTimeout)
		if err := node.Rest().DestroyPlayer(destroyCtx, p.guildID); err != nil {
			p.log.Debug("remote destroy failed", Err(err))
		}
		cancel()
	}
	p.queue.Clear()
}
