// Package lavalink is a client for Lavalink v4 audio nodes. It manages
// one or more node connections, exposes a per-guild player abstraction
// backed by those nodes, and keeps local playback state consistent with
// remote server state across network failures.
//
// # Core Components
//
//   - Client: top-level owner of nodes and players; assigns a connected
//     node to each player and migrates players away from failed nodes
//   - Node: one REST + websocket connection to a Lavalink server, with
//     automatic reconnection, session resuming and typed event decoding
//   - Player: per-guild queue and playback intent (loop mode, autoplay,
//     volume, filters) reconciled against the node's authoritative state
//   - Rest: the node's HTTP surface with adaptive pacing and bounded
//     retries for transient failures
//
// # Architecture
//
// Each node runs a single ingestion goroutine that decodes inbound
// websocket frames into a closed set of event types and routes them to
// the matching player and to registered listeners. Remote player
// commands are serialized per player, so concurrent calls observe each
// other's committed results instead of racing the remote state. Queue
// mutations are synchronous and purely in-memory.
//
// # Usage Example
//
//	config := lavalink.DefaultClientConfig()
//	config.UserID = botUserID
//
//	client, err := lavalink.New(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_, err = client.AddNode(ctx, lavalink.NodeConfig{
//		Name:     "main",
//		Host:     "127.0.0.1",
//		Port:     2333,
//		Password: "youshallnotpass",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	player, err := client.CreatePlayer(ctx, guildID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := player.Connect(ctx, voiceChannelID, false, true); err != nil {
//		log.Fatal(err)
//	}
//
//	node := player.Node()
//	result, err := node.Rest().Search(ctx, "never gonna give you up", lavalink.SearchYouTube)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.Type == lavalink.LoadTypeSearch && len(result.Tracks) > 0 {
//		player.Add(result.Tracks[0])
//		player.Play(ctx)
//	}
//
// Voice credentials arrive through the Discord gateway; wire the host
// framework's voice-server and voice-state update events into
// Client.OnVoiceServerUpdate and Client.OnVoiceStateUpdate, and provide
// a VoiceStateSender in the client configuration so players can join
// voice channels.
package lavalink
