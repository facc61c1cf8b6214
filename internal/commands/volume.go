package commands

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// VolumeCommand sets the player volume. Without an argument the volume is
// reset to the default of 100.
func VolumeCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}

	ctx, cancel := commandContext()
	defer cancel()

	if len(args) == 0 {
		if err := player.ResetVolume(ctx); err != nil {
			sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not reset the volume.", colorError)
			return
		}
		sendEmbedMessage(s, m.ChannelID, "🔊 Volume Reset", "Volume restored to 100.", colorSuccess)
		return
	}

	volume, err := strconv.Atoi(args[0])
	if err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "Volume must be a number between 0 and 1000.", colorError)
		return
	}
	if err := player.SetVolume(ctx, volume); err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not set the volume.", colorError)
		return
	}
	// out-of-range input is clamped, so report the effective value
	sendEmbedMessage(s, m.ChannelID, "🔊 Volume Set", fmt.Sprintf("Volume is now %d.", player.Volume()), colorSuccess)
}
