package commands

import (
	"github.com/bwmarrin/discordgo"
)

// LeaveCommand disconnects from the voice channel and destroys the
// player, dropping the queue.
func LeaveCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}

	ctx, cancel := commandContext()
	defer cancel()
	if err := player.Disconnect(ctx); err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not leave the voice channel.", colorError)
		return
	}
	sendEmbedMessage(s, m.ChannelID, "👋 Left", "Disconnected from the voice channel.", colorWarn)
}
