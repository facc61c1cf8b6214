package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/pkg/lavalink"
)

// SkipCommand skips the current track, or the next n tracks when a count
// is given.
func SkipCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}

	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "Skip count must be a positive number.", colorError)
			return
		}
		n = parsed
	}

	ctx, cancel := commandContext()
	defer cancel()
	if err := player.Skip(ctx, n); err != nil {
		if errors.Is(err, lavalink.ErrEmptyQueue) {
			sendEmbedMessage(s, m.ChannelID, "❌ Error", "The queue is empty.", colorError)
			return
		}
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not skip.", colorError)
		return
	}

	if n == 1 {
		sendEmbedMessage(s, m.ChannelID, "⏭️ Skipped", "Skipped to the next track.", colorSuccess)
	} else {
		sendEmbedMessage(s, m.ChannelID, "⏭️ Skipped", fmt.Sprintf("Skipped %d tracks.", n), colorSuccess)
	}
}
