package commands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/pkg/lavalink"
)

// JoinCommand connects the bot to the author's voice channel.
func JoinCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := joinAuthorChannel(s, m); err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", err.Error(), colorError)
		return
	}
	sendEmbedMessage(s, m.ChannelID, "🔊 Joined", "Connected to your voice channel.", colorSuccess)
}

// joinAuthorChannel creates (or reuses) the guild player and connects it
// to the author's voice channel.
func joinAuthorChannel(s *discordgo.Session, m *discordgo.MessageCreate) (*lavalink.Player, error) {
	channelID, ok := userVoiceChannel(s, m.GuildID, m.Author.ID)
	if !ok {
		return nil, errNotInVoice
	}

	ctx, cancel := commandContext()
	defer cancel()

	player, err := client.CreatePlayer(ctx, m.GuildID)
	if err != nil {
		return nil, err
	}
	if player.ChannelID() == channelID && player.Connected() {
		return player, nil
	}
	if err := player.Connect(ctx, channelID, false, true); err != nil {
		return nil, err
	}
	return player, nil
}
