package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/pkg/lavalink"
)

const (
	colorSuccess = 0x00ff00
	colorInfo    = 0x7289da
	colorWarn    = 0xffa500
	colorError   = 0xff0000

	commandTimeout = 10 * time.Second
)

var client *lavalink.Client

var errNotInVoice = errors.New("you must be in a voice channel first")

// SetClient hands the shared lavalink client to the commands package.
// Must be called before any command runs.
func SetClient(c *lavalink.Client) {
	client = c
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

func sendEmbedMessage(s *discordgo.Session, channelID, title, description string, color int) {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
	s.ChannelMessageSendEmbed(channelID, embed)
}

// getPlayer fetches the guild's player, replying with an error embed when
// none exists.
func getPlayer(s *discordgo.Session, m *discordgo.MessageCreate) (*lavalink.Player, bool) {
	if client == nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Audio backend is not ready yet.", colorError)
		return nil, false
	}
	player, ok := client.Player(m.GuildID)
	if !ok {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Nothing is playing in this server.", colorError)
		return nil, false
	}
	return player, true
}

// userVoiceChannel finds the voice channel the message author is in.
func userVoiceChannel(s *discordgo.Session, guildID, userID string) (string, bool) {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		return "", false
	}
	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID {
			return vs.ChannelID, true
		}
	}
	return "", false
}

// formatDuration formats a duration into a human-readable string
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60

	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
