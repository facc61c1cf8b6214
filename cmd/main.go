package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/internal/commands"
	"github.com/latoulicious/Hibiki/internal/config"
	"github.com/latoulicious/Hibiki/internal/handlers"
	"github.com/latoulicious/Hibiki/internal/presence"
	"github.com/latoulicious/Hibiki/pkg/lavalink"
)

func main() {
	// Load configuration (reads .env when present)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Create a new Discord session using the provided token
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentMessageContent

	// Open a websocket connection to Discord and begin listening
	if err := dg.Open(); err != nil {
		log.Fatalf("Failed to open Discord session: %v", err)
	}

	// Build the lavalink client around the bot identity
	clientCfg := lavalink.DefaultClientConfig()
	clientCfg.UserID = dg.State.User.ID
	clientCfg.ClientName = "Hibiki"
	clientCfg.VoiceStateSender = handlers.NewVoiceStateSender(dg)
	clientCfg.Logger = lavalink.NewStructuredLogger(lavalink.LogConfig{
		Level:  cfg.LogLevel,
		Format: "text",
	})

	client, err := lavalink.New(clientCfg)
	if err != nil {
		log.Fatalf("Failed to create lavalink client: %v", err)
	}

	// Connect the node described by LAVALINK_* environment variables
	nodeCfg, err := lavalink.NodeConfigFromEnvironment()
	if err != nil {
		log.Fatalf("Failed to read node config: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := client.AddNode(ctx, nodeCfg); err != nil {
		cancel()
		log.Fatalf("Failed to connect audio node: %v", err)
	}
	cancel()

	// Wire the command surface and the gateway plumbing
	commands.SetClient(client)
	dg.AddHandler(handlers.MessageHandler(cfg.Prefix))
	dg.AddHandler(handlers.VoiceServerUpdateHandler(client))
	dg.AddHandler(handlers.VoiceStateUpdateHandler(client))

	// Presence follows playback
	presenceManager := presence.NewPresenceManager(dg, client)
	presenceManager.UpdateDefaultPresence()
	presenceManager.ListenForEvents()
	presenceManager.StartPeriodicUpdates()

	log.Println("Bot is running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly drain players and close both connections
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	client.Close(shutdownCtx)
	shutdownCancel()
	dg.Close()
}
