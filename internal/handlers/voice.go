package handlers

import (
	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/pkg/lavalink"
)

// VoiceServerUpdateHandler forwards gateway voice server updates into the
// lavalink client, which merges them into the matching player.
func VoiceServerUpdateHandler(client *lavalink.Client) func(s *discordgo.Session, e *discordgo.VoiceServerUpdate) {
	return func(s *discordgo.Session, e *discordgo.VoiceServerUpdate) {
		client.OnVoiceServerUpdate(e.GuildID, e.Token, e.Endpoint)
	}
}

// VoiceStateUpdateHandler forwards the bot's own voice state updates into
// the lavalink client. Updates for other users are filtered client-side.
func VoiceStateUpdateHandler(client *lavalink.Client) func(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
	return func(s *discordgo.Session, e *discordgo.VoiceStateUpdate) {
		client.OnVoiceStateUpdate(e.GuildID, e.ChannelID, e.SessionID, e.UserID)
	}
}

// gatewayVoiceSender implements lavalink.VoiceStateSender on top of the
// discordgo session.
type gatewayVoiceSender struct {
	session *discordgo.Session
}

// NewVoiceStateSender wires lavalink voice channel joins through the
// Discord gateway.
func NewVoiceStateSender(session *discordgo.Session) lavalink.VoiceStateSender {
	return gatewayVoiceSender{session: session}
}

func (g gatewayVoiceSender) SendVoiceStateUpdate(guildID, channelID string, mute, deaf bool) error {
	// an empty channel id leaves the current voice channel
	return g.session.ChannelVoiceJoinManual(guildID, channelID, mute, deaf)
}
