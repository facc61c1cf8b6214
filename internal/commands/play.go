package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/pkg/lavalink"
)

// PlayCommand resolves a URL or search query, queues the result and
// starts playback when the player is idle.
func PlayCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		sendEmbedMessage(s, m.ChannelID, "❌ Usage Error", "Please provide a URL or search query.", colorError)
		return
	}

	player, err := joinAuthorChannel(s, m)
	if err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", err.Error(), colorError)
		return
	}

	ctx, cancel := commandContext()
	defer cancel()

	input := strings.Join(args, " ")
	identifier := lavalink.BuildIdentifier(input, client.Config().DefaultSearchType)
	result, err := player.Node().Rest().LoadTracks(ctx, identifier)
	if err != nil {
		sendEmbedMessage(s, m.ChannelID, "❌ Error", "Could not load that track.", colorError)
		return
	}

	wasIdle := player.State() != lavalink.PlayerPlaying && player.State() != lavalink.PlayerPaused

	switch result.Type {
	case lavalink.LoadTypeTrack:
		track := result.Track.WithRequester(m.Author.ID)
		player.Add(track)
		sendEmbedMessage(s, m.ChannelID, "🎵 Queued", describeTrack(track), colorSuccess)

	case lavalink.LoadTypeSearch:
		if len(result.Tracks) == 0 {
			sendEmbedMessage(s, m.ChannelID, "❌ Search Error", "No results for your query.", colorError)
			return
		}
		track := result.Tracks[0].WithRequester(m.Author.ID)
		player.Add(track)
		sendEmbedMessage(s, m.ChannelID, "🎵 Queued", describeTrack(track), colorSuccess)

	case lavalink.LoadTypePlaylist:
		player.AddPlaylist(*result.Playlist, m.Author.ID)
		sendEmbedMessage(s, m.ChannelID, "🎵 Playlist Queued",
			fmt.Sprintf("**%s** (%d tracks)", result.Playlist.Info.Name, len(result.Playlist.Tracks)), colorSuccess)

	case lavalink.LoadTypeEmpty:
		sendEmbedMessage(s, m.ChannelID, "❌ Not Found", "Nothing matched your query.", colorError)
		return

	case lavalink.LoadTypeError:
		message := "The track could not be loaded."
		if result.Exception != nil {
			message = result.Exception.Message
		}
		sendEmbedMessage(s, m.ChannelID, "❌ Load Error", message, colorError)
		return
	}

	if wasIdle {
		if err := player.Play(ctx); err != nil {
			sendEmbedMessage(s, m.ChannelID, "❌ Error", "Playback could not be started.", colorError)
		}
	}
}

func describeTrack(track lavalink.Track) string {
	return fmt.Sprintf("**%s** by %s (%s)",
		track.Info.Title, track.Info.Author, formatDuration(track.Duration()))
}
