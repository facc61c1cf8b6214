package commands

import (
	"github.com/bwmarrin/discordgo"
)

// ShuffleCommand randomizes the queue behind the current track.
func ShuffleCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}
	if player.Queue().Len() < 3 {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Not enough queued tracks to shuffle.", colorError)
		return
	}

	player.Shuffle()
	sendEmbedMessage(s, m.ChannelID, "🔀 Shuffled", "The queue has been shuffled.", colorSuccess)
}
