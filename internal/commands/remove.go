package commands

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// RemoveCommand removes a track from the queue by its position. Removing
// the first entry never interrupts the current track.
func RemoveCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}
	if len(args) < 1 {
		sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "Please provide the queue position to remove.", colorError)
		return
	}

	position, err := strconv.Atoi(args[0])
	if err != nil || position < 1 {
		sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "The position must be a positive number.", colorError)
		return
	}

	removed, ok := player.RemoveAt(position - 1)
	if !ok {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "No track at that position.", colorError)
		return
	}
	sendEmbedMessage(s, m.ChannelID, "🗑️ Removed", "Removed **"+removed.Info.Title+"** from the queue.", colorSuccess)
}
