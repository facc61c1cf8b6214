package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// StatsCommand shows per-node statistics from the last stats push.
func StatsCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	if client == nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Audio backend is not ready yet.", colorError)
		return
	}

	nodes := client.Nodes()
	if len(nodes) == 0 {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "No audio nodes configured.", colorError)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Node Statistics",
		Color: colorInfo,
	}
	for _, node := range nodes {
		stats := node.Stats()
		value := "state: " + node.State().String()
		if stats != nil {
			uptime := time.Duration(stats.Uptime) * time.Millisecond
			value = fmt.Sprintf(
				"state: %s\nplayers: %d (%d playing)\nuptime: %s\nmemory: %d MiB used\ncpu: %.1f%% lavalink",
				node.State(), stats.Players, stats.PlayingPlayers,
				formatDuration(uptime),
				stats.Memory.Used/1024/1024,
				stats.CPU.LavalinkLoad*100,
			)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   node.Name(),
			Value:  value,
			Inline: true,
		})
	}
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}
