package commands

import (
	"github.com/bwmarrin/discordgo"
)

// StopCommand halts the current track. The queue is kept.
func StopCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}

	ctx, cancel := commandContext()
	defer cancel()
	if err := player.Stop(ctx); err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not stop playback.", colorError)
		return
	}
	sendEmbedMessage(s, m.ChannelID, "⏹️ Stopped", "Playback stopped. The queue is untouched; use play to continue.", colorWarn)
}
