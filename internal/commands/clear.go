package commands

import (
	"github.com/bwmarrin/discordgo"
)

// ClearCommand stops playback and empties the queue.
func ClearCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}

	ctx, cancel := commandContext()
	defer cancel()
	if err := player.Clear(ctx); err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not clear the queue.", colorError)
		return
	}
	sendEmbedMessage(s, m.ChannelID, "🧹 Cleared", "Playback stopped and the queue emptied.", colorWarn)
}
