package lavalink

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Client is the top-level owner of all node connections and players. It
// assigns a connected node to every player, migrates players away from
// failed nodes, routes decoded node events to players and listeners, and
// accepts the voice credential updates from the Discord gateway.
//
// Nodes are never created automatically: callers must add at least one
// node before a player can be created.
type Client struct {
	config ClientConfig
	log    Logger

	mu        sync.RWMutex
	nodes     map[string]*Node
	nodeOrder []string
	players   map[string]*Player
	listeners []EventListener
	closed    bool
}

// New creates a client from the given configuration. A nil config uses
// DefaultClientConfig, but UserID must always be set.
func New(config *ClientConfig) (*Client, error) {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.Logger == nil {
		config.Logger = DefaultLogger()
	}
	if config.RelatedTrack == nil {
		config.RelatedTrack = defaultRelatedTrack
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config:  *config,
		log:     config.Logger,
		nodes:   make(map[string]*Node),
		players: make(map[string]*Player),
	}, nil
}

// Config returns the client configuration.
func (c *Client) Config() ClientConfig { return c.config }

// AddEventListener registers a listener for every event the client
// dispatches, including player-synthesized ones.
func (c *Client) AddEventListener(listener EventListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// AddNode registers a node under its unique name and connects it. The
// node is removed again if the connection handshake fails entirely.
func (c *Client) AddNode(ctx context.Context, config NodeConfig) (*Node, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClientClosed
	}
	if _, exists := c.nodes[config.Name]; exists {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNodeExists, config.Name)
	}
	node := newNode(c, config)
	c.nodes[config.Name] = node
	c.nodeOrder = append(c.nodeOrder, config.Name)
	c.mu.Unlock()

	if err := node.Connect(ctx); err != nil {
		c.mu.Lock()
		delete(c.nodes, config.Name)
		c.removeNodeOrder(config.Name)
		c.mu.Unlock()
		return nil, err
	}
	c.log.Info("node added", String("node", config.Name))
	c.reassignUnassigned(ctx, node)
	return node, nil
}

// reassignUnassigned picks up players that were stranded without a node
// and moves them onto the freshly connected one, pushing their preserved
// intent.
func (c *Client) reassignUnassigned(ctx context.Context, node *Node) {
	for _, player := range c.Players() {
		if player.Node() != nil {
			continue
		}
		if err := player.transfer(ctx, node); err != nil {
			c.log.Warn("reassignment failed", String("guild_id", player.GuildID()), Err(err))
		}
	}
}

// RemoveNode migrates the node's players to other connected nodes, stops
// the node and forgets it. Players that cannot be migrated are left
// unassigned with their intent intact.
func (c *Client) RemoveNode(ctx context.Context, name string) error {
	c.mu.Lock()
	node, ok := c.nodes[name]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("lavalink: unknown node %s", name)
	}
	delete(c.nodes, name)
	c.removeNodeOrder(name)
	c.mu.Unlock()

	c.migratePlayers(ctx, node)
	node.Close()
	c.log.Info("node removed", String("node", name))
	return nil
}

// Node returns the node with the given name.
func (c *Client) Node(name string) (*Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	node, ok := c.nodes[name]
	return node, ok
}

// Nodes returns all nodes in insertion order.
func (c *Client) Nodes() []*Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nodes := make([]*Node, 0, len(c.nodes))
	for _, name := range c.nodeOrder {
		nodes = append(nodes, c.nodes[name])
	}
	return nodes
}

// BestNode applies the selection policy: the connected node with the
// fewest assigned guilds, ties broken by insertion order. Nodes that are
// connecting or failed are never selected.
func (c *Client) BestNode() (*Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bestNodeLocked()
}

func (c *Client) bestNodeLocked() (*Node, error) {
	if len(c.nodes) == 0 {
		return nil, ErrNoNodes
	}
	var best *Node
	for _, name := range c.nodeOrder {
		node := c.nodes[name]
		if node.State() != NodeConnected {
			continue
		}
		if best == nil || node.guildCount() < best.guildCount() {
			best = node
		}
	}
	if best == nil {
		return nil, ErrNoAvailableNode
	}
	return best, nil
}

// CreatePlayer returns the existing player for the guild or creates one
// on the best available node. Creation is idempotent per guild.
func (c *Client) CreatePlayer(ctx context.Context, guildID string) (*Player, error) {
	c.mu.RLock()
	player, ok := c.players[guildID]
	c.mu.RUnlock()
	if ok {
		return player, nil
	}
	return c.NewPlayer(ctx, guildID)
}

// NewPlayer creates a player for the guild, failing with ErrPlayerExists
// when one is already registered.
func (c *Client) NewPlayer(ctx context.Context, guildID string) (*Player, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClientClosed
	}
	if _, exists := c.players[guildID]; exists {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrPlayerExists, guildID)
	}
	node, err := c.bestNodeLocked()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	player := newPlayer(c, guildID, node)
	c.players[guildID] = player
	c.mu.Unlock()

	node.addGuild(guildID)
	c.log.Info("player created", String("guild_id", guildID), String("node", node.Name()))
	return player, nil
}

// Player returns the player for the guild, if any.
func (c *Client) Player(guildID string) (*Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	player, ok := c.players[guildID]
	return player, ok
}

// Players returns all registered players.
func (c *Client) Players() []*Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	players := make([]*Player, 0, len(c.players))
	for _, player := range c.players {
		players = append(players, player)
	}
	return players
}

// DestroyPlayer tears down the guild's player: the guild is unassigned,
// the node-side player is destroyed best-effort with a short timeout, and
// local state is discarded.
func (c *Client) DestroyPlayer(ctx context.Context, guildID string) error {
	c.mu.Lock()
	player, ok := c.players[guildID]
	if ok {
		delete(c.players, guildID)
	}
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("lavalink: no player for guild %s", guildID)
	}
	player.teardown(ctx)
	c.log.Info("player destroyed", String("guild_id", guildID))
	return nil
}

// OnVoiceServerUpdate feeds a gateway voice-server update into the
// matching player. Updates for guilds without a player are dropped.
func (c *Client) OnVoiceServerUpdate(guildID, token, endpoint string) {
	if player, ok := c.Player(guildID); ok {
		player.onVoiceServerUpdate(token, endpoint)
	}
}

// OnVoiceStateUpdate feeds a gateway voice-state update for the bot user
// into the matching player. Updates for other users are ignored.
func (c *Client) OnVoiceStateUpdate(guildID, channelID, sessionID, userID string) {
	if userID != c.config.UserID {
		return
	}
	if player, ok := c.Player(guildID); ok {
		player.onVoiceStateUpdate(channelID, sessionID)
	}
}

// Close drains all players best-effort and stops every node. The client
// cannot be reused afterwards.
func (c *Client) Close(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	players := make([]*Player, 0, len(c.players))
	for _, player := range c.players {
		players = append(players, player)
	}
	c.players = make(map[string]*Player)
	nodes := make([]*Node, 0, len(c.nodes))
	for _, name := range c.nodeOrder {
		nodes = append(nodes, c.nodes[name])
	}
	c.nodes = make(map[string]*Node)
	c.nodeOrder = nil
	c.mu.Unlock()

	for _, player := range players {
		player.teardown(ctx)
	}
	for _, node := range nodes {
		node.Close()
	}
	c.log.Info("client closed")
}

// dispatch routes one decoded event to the matching player (for
// guild-scoped events) and to every registered listener.
func (c *Client) dispatch(event Event) {
	if guildID := eventGuildID(event); guildID != "" {
		if player, ok := c.Player(guildID); ok {
			player.handleEvent(event)
		} else {
			c.log.Debug("dropping event for unknown guild", String("guild_id", guildID))
		}
	}

	c.mu.RLock()
	listeners := make([]EventListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()
	for _, listener := range listeners {
		listener(event)
	}
}

// handleNodeFailure migrates every guild of a failed node to another
// connected node. Guilds with no node left enter the unassigned state
// with their playback intent preserved.
func (c *Client) handleNodeFailure(node *Node) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	c.migratePlayers(ctx, node)
}

func (c *Client) migratePlayers(ctx context.Context, from *Node) {
	for _, guildID := range from.Guilds() {
		player, ok := c.Player(guildID)
		if !ok {
			from.removeGuild(guildID)
			continue
		}
		target, err := c.BestNode()
		if err != nil || target == from {
			c.log.Warn("no node available, player unassigned", String("guild_id", guildID))
			player.markUnassigned()
			from.removeGuild(guildID)
			continue
		}
		if err := player.transfer(ctx, target); err != nil {
			c.log.Warn("player transfer failed", String("guild_id", guildID), Err(err))
		}
	}
}

// handleNodeReady re-syncs the players of a node that came back with a
// fresh session: their snapshots are stale and the node-side players no
// longer exist, so full intent is pushed again.
func (c *Client) handleNodeReady(node *Node) {
	for _, guildID := range node.Guilds() {
		player, ok := c.Player(guildID)
		if !ok {
			continue
		}
		go func(p *Player) {
			ctx, cancel := context.WithTimeout(context.Background(), c.config.RestTimeout)
			defer cancel()
			if err := p.resync(ctx); err != nil {
				c.log.Warn("player resync failed", String("guild_id", p.GuildID()), Err(err))
			}
		}(player)
	}
}

func (c *Client) removeNodeOrder(name string) {
	for i, n := range c.nodeOrder {
		if n == name {
			c.nodeOrder = append(c.nodeOrder[:i], c.nodeOrder[i+1:]...)
			return
		}
	}
}

// eventGuildID extracts the guild id from guild-scoped events.
func eventGuildID(event Event) string {
	switch e := event.(type) {
	case PlayerUpdateEvent:
		return e.GuildID
	case TrackStartEvent:
		return e.GuildID
	case TrackEndEvent:
		return e.GuildID
	case TrackExceptionEvent:
		return e.GuildID
	case TrackStuckEvent:
		return e.GuildID
	case WebSocketClosedEvent:
		return e.GuildID
	}
	return ""
}
