package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const queuePageSize = 10

// QueueCommand shows the queued tracks.
func QueueCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}

	tracks := player.Queue().Tracks()
	if len(tracks) == 0 {
		sendEmbedMessage(s, m.ChannelID, "📭 Queue", "The queue is empty.", colorInfo)
		return
	}

	var b strings.Builder
	for i, track := range tracks {
		if i >= queuePageSize {
			fmt.Fprintf(&b, "…and %d more", len(tracks)-queuePageSize)
			break
		}
		marker := "  "
		if i == 0 {
			marker = "▶ "
		}
		fmt.Fprintf(&b, "%s`%2d.` **%s** — %s (%s)\n",
			marker, i+1, track.Info.Title, track.Info.Author, formatDuration(track.Duration()))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎶 Queue",
		Description: b.String(),
		Color:       colorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d tracks | loop: %s", len(tracks), loopModeName(player.Loop())),
		},
	}
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}
