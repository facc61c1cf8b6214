package handlers

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/internal/commands"
)

// MessageHandler returns the prefix command dispatcher.
func MessageHandler(prefix string) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore all messages created by the bot itself
		if m.Author.ID == s.State.User.ID {
			return
		}

		if !strings.HasPrefix(m.Content, prefix) {
			return
		}
		args := strings.Fields(strings.TrimPrefix(m.Content, prefix))
		if len(args) == 0 {
			return
		}
		command := strings.ToLower(args[0])

		switch command {
		case "join":
			commands.JoinCommand(s, m)
		case "play", "p":
			commands.PlayCommand(s, m, args[1:])
		case "pause":
			commands.PauseCommand(s, m)
		case "resume":
			commands.ResumeCommand(s, m)
		case "skip":
			commands.SkipCommand(s, m, args[1:])
		case "stop":
			commands.StopCommand(s, m)
		case "seek":
			commands.SeekCommand(s, m, args[1:])
		case "volume", "vol":
			commands.VolumeCommand(s, m, args[1:])
		case "loop":
			commands.LoopCommand(s, m, args[1:])
		case "autoplay":
			commands.AutoplayCommand(s, m, args[1:])
		case "shuffle":
			commands.ShuffleCommand(s, m)
		case "queue", "q":
			commands.QueueCommand(s, m)
		case "nowplaying", "np":
			commands.NowPlayingCommand(s, m)
		case "remove":
			commands.RemoveCommand(s, m, args[1:])
		case "clear":
			commands.ClearCommand(s, m)
		case "leave":
			commands.LeaveCommand(s, m)
		case "stats":
			commands.StatsCommand(s, m)
		case "help":
			commands.HelpCommand(s, m)
		default:
			s.ChannelMessageSend(m.ChannelID, "Unknown command. Try "+prefix+"help for the full list.")
		}
	}
}
