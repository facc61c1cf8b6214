package commands

import (
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

// SeekCommand moves the playback position, in seconds.
func SeekCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}
	if len(args) < 1 {
		sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "Please provide a position in seconds.", colorError)
		return
	}
	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds < 0 {
		sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "Position must be a non-negative number of seconds.", colorError)
		return
	}

	position := time.Duration(seconds) * time.Second
	ctx, cancel := commandContext()
	defer cancel()
	if err := player.Seek(ctx, position); err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not seek.", colorError)
		return
	}
	sendEmbedMessage(s, m.ChannelID, "⏩ Seeked", "Moved to "+formatDuration(position)+".", colorSuccess)
}
