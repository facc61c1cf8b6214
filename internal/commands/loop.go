package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/pkg/lavalink"
)

// LoopCommand sets the loop mode: off, track or queue.
func LoopCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	player, ok := getPlayer(s, m)
	if !ok {
		return
	}
	if len(args) < 1 {
		sendEmbedMessage(s, m.ChannelID, "🔁 Loop Mode", "Current mode: **"+loopModeName(player.Loop())+"**\nUse `loop off`, `loop track` or `loop queue`.", colorInfo)
		return
	}

	var mode lavalink.LoopMode
	switch strings.ToLower(args[0]) {
	case "off", "none":
		mode = lavalink.LoopOff
	case "track", "song", "one":
		mode = lavalink.LoopTrack
	case "queue", "all":
		mode = lavalink.LoopQueue
	default:
		sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "Loop mode must be `off`, `track` or `queue`.", colorError)
		return
	}

	player.SetLoop(mode)
	sendEmbedMessage(s, m.ChannelID, "🔁 Loop Mode", "Loop mode set to **"+loopModeName(mode)+"**.", colorSuccess)
}

func loopModeName(mode lavalink.LoopMode) string {
	switch mode {
	case lavalink.LoopTrack:
		return "track"
	case lavalink.LoopQueue:
		return "queue"
	default:
		return "off"
	}
}
