package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// AutoplayCommand toggles autoplay, or forces it with on/off.
func AutoplayCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}

	enabled := !player.Autoplay()
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "enable":
			enabled = true
		case "off", "disable":
			enabled = false
		default:
			sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "Use `autoplay`, `autoplay on` or `autoplay off`.", colorError)
			return
		}
	}

	player.SetAutoplay(enabled)
	if enabled {
		sendEmbedMessage(s, m.ChannelID, "♾️ Autoplay", "Autoplay is now **on**: related tracks keep the music going when the queue runs out.", colorSuccess)
	} else {
		sendEmbedMessage(s, m.ChannelID, "♾️ Autoplay", "Autoplay is now **off**.", colorWarn)
	}
}
