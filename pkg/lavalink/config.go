package lavalink

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

// Version is reported to nodes in the Client-Name websocket header.
const Version = "0.1.0"

// NodeConfig identifies and authenticates one Lavalink node.
type NodeConfig struct {
	Name     string `env:"LAVALINK_NODE_NAME"`
	Host     string `env:"LAVALINK_HOST" envDefault:"127.0.0.1"`
	Port     int    `env:"LAVALINK_PORT" envDefault:"2333"`
	Password string `env:"LAVALINK_PASSWORD"`
	Secure   bool   `env:"LAVALINK_SECURE" envDefault:"false"`
}

// NodeConfigFromEnvironment builds a NodeConfig from LAVALINK_* environment
// variables.
func NodeConfigFromEnvironment() (NodeConfig, error) {
	var cfg NodeConfig
	if err := env.Parse(&cfg); err != nil {
		return NodeConfig{}, err
	}
	return cfg, nil
}

// Validate checks the node configuration and fills a generated name when
// none was given.
func (c *NodeConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("node config: host cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("node config: port %d out of range", c.Port)
	}
	if c.Password == "" {
		return fmt.Errorf("node config: password cannot be empty")
	}
	if c.Name == "" {
		c.Name = uuid.NewString()
	}
	return nil
}

// BaseURL returns the HTTP base URL of the node, without the /v4 prefix.
func (c NodeConfig) BaseURL() string {
	scheme := "http"
	if c.Secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// WebSocketURL returns the websocket endpoint of the node.
func (c NodeConfig) WebSocketURL() string {
	scheme := "ws"
	if c.Secure {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s:%d/v4/websocket", scheme, c.Host, c.Port)
}

// ClientConfig configures a Client and the defaults its nodes inherit.
type ClientConfig struct {
	// UserID is the Discord user id of the bot, sent in the User-Id
	// websocket header. Required.
	UserID string

	// ClientName is the name part of the Client-Name header.
	ClientName string

	// MaxRetries bounds connection attempts and transient REST retries
	// per call.
	MaxRetries int

	// ReconnectDelay is the initial backoff between connection attempts;
	// it doubles per attempt up to MaxReconnectDelay.
	ReconnectDelay    time.Duration
	MaxReconnectDelay time.Duration

	// RestTimeout bounds each individual REST request.
	RestTimeout time.Duration

	// ReadyTimeout bounds the wait for the ready frame after the
	// websocket opens.
	ReadyTimeout time.Duration

	// VoiceTimeout bounds the wait for voice credentials after a voice
	// channel join.
	VoiceTimeout time.Duration

	// Resuming asks nodes to keep the session alive for ResumeTimeout
	// after an unclean disconnect, so a reconnect can pick it back up.
	Resuming      bool
	ResumeTimeout time.Duration

	// DefaultSearchType is applied to plain (non-URL, non-prefixed)
	// queries handed to LoadTracks helpers.
	DefaultSearchType SearchType

	// RelatedTrack resolves the autoplay follow-up for a finished track.
	// When nil, a search-based default is used.
	RelatedTrack RelatedTrackFunc

	// VoiceStateSender pushes voice state updates to the Discord
	// gateway. Required for Player.Connect / Player.Disconnect.
	VoiceStateSender VoiceStateSender

	// Logger receives structured log output. Defaults to a text logger
	// at Info level.
	Logger Logger
}

// VoiceStateSender sends a voice state update through the Discord gateway
// on behalf of a player.
type VoiceStateSender interface {
	SendVoiceStateUpdate(guildID, channelID string, mute, deaf bool) error
}

// RelatedTrackFunc resolves a follow-up track for autoplay. Returning a
// nil track with a nil error means nothing suitable was found.
type RelatedTrackFunc func(ctx context.Context, node *Node, last Track) (*Track, error)

// DefaultClientConfig returns a configuration with sensible defaults.
// UserID must still be set by the caller.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		ClientName:        "Hibiki",
		MaxRetries:        3,
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		RestTimeout:       10 * time.Second,
		ReadyTimeout:      10 * time.Second,
		VoiceTimeout:      10 * time.Second,
		Resuming:          true,
		ResumeTimeout:     60 * time.Second,
		DefaultSearchType: SearchYouTube,
		Logger:            DefaultLogger(),
	}
}

// Validate checks the client configuration.
func (c *ClientConfig) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("client config: user id cannot be empty")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("client config: max retries must be >= 0")
	}
	if c.ReconnectDelay <= 0 {
		return fmt.Errorf("client config: reconnect delay must be > 0")
	}
	if c.RestTimeout <= 0 {
		return fmt.Errorf("client config: rest timeout must be > 0")
	}
	return nil
}
