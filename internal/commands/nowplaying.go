package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// NowPlayingCommand shows the track the node reports as playing.
func NowPlayingCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}

	current := player.Current()
	if current == nil {
		sendEmbedMessage(s, m.ChannelID, "🔇 Nothing Playing", "No track is currently playing.", colorInfo)
		return
	}

	status := "playing"
	if player.Paused() {
		status = "paused"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎵 Now Playing",
		Description: describeTrack(*current),
		Color:       colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Position",
				Value:  fmt.Sprintf("%s / %s", formatDuration(player.Position()), formatDuration(current.Duration())),
				Inline: true,
			},
			{
				Name:   "Status",
				Value:  status,
				Inline: true,
			},
			{
				Name:   "Volume",
				Value:  fmt.Sprintf("%d", player.Volume()),
				Inline: true,
			},
		},
	}
	if current.Info.ArtworkURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: current.Info.ArtworkURL}
	}
	if current.Requester != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Requested by " + current.Requester}
	}
	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}
