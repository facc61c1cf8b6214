package commands

import (
	"github.com/bwmarrin/discordgo"
)

// HelpCommand lists every available command.
func HelpCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	embed := &discordgo.MessageEmbed{
		Title:       "🎧 Commands",
		Description: "Prefix commands for music playback.",
		Color:       colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Playback",
				Value: "`join` — join your voice channel\n" +
					"`play <url | query>` — queue a track, playlist or search result\n" +
					"`pause` / `resume` — pause or resume\n" +
					"`skip [n]` — skip one or more tracks\n" +
					"`stop` — stop playback, keep the queue\n" +
					"`seek <seconds>` — jump to a position\n" +
					"`volume [0-1000]` — set or reset the volume",
			},
			{
				Name: "Queue",
				Value: "`queue` — show the queue\n" +
					"`nowplaying` — show the current track\n" +
					"`remove <position>` — remove a queued track\n" +
					"`clear` — stop and empty the queue\n" +
					"`shuffle` — shuffle the queue\n" +
					"`loop <off|track|queue>` — set the loop mode\n" +
					"`autoplay [on|off]` — keep playing related tracks",
			},
			{
				Name:  "Other",
				Value: "`leave` — disconnect and drop the queue\n`stats` — audio node statistics",
			},
		},
	}
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}
