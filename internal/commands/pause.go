package commands

import (
	"github.com/bwmarrin/discordgo"
)

// PauseCommand pauses the current track.
func PauseCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}
	if player.Paused() {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Playback is already paused.", colorError)
		return
	}

	ctx, cancel := commandContext()
	defer cancel()
	if err := player.SetPaused(ctx, true); err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not pause playback.", colorError)
		return
	}
	sendEmbedMessage(s, m.ChannelID, "⏸️ Playback Paused", "Music playback has been paused.", colorWarn)
}

// ResumeCommand resumes a paused track.
func ResumeCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}
	if !player.Paused() {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Playback is not paused.", colorError)
		return
	}

	ctx, cancel := commandContext()
	defer cancel()
	if err := player.SetPaused(ctx, false); err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not resume playback.", colorError)
		return
	}
	sendEmbedMessage(s, m.ChannelID, "▶️ Playback Resumed", "Music playback has been resumed.", colorSuccess)
}
