package presence

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/latoulicious/Hibiki/pkg/lavalink"
)

var (
	currentPresence string
	presenceMutex   sync.RWMutex
)

// PresenceManager manages the bot's presence
type PresenceManager struct {
	session *discordgo.Session
	client  *lavalink.Client
}

// NewPresenceManager creates a new presence manager
func NewPresenceManager(session *discordgo.Session, client *lavalink.Client) *PresenceManager {
	return &PresenceManager{
		session: session,
		client:  client,
	}
}

// UpdateDefaultPresence updates the bot's presence with player statistics
func (pm *PresenceManager) UpdateDefaultPresence() {
	guilds := pm.session.State.Guilds
	players := len(pm.client.Players())

	presence := &discordgo.UpdateStatusData{
		Status: "online",
		Activities: []*discordgo.Activity{
			{
				Name:  strconv.Itoa(players) + " players",
				Type:  discordgo.ActivityTypeWatching,
				State: "in " + strconv.Itoa(len(guilds)) + " servers",
			},
		},
	}

	err := pm.session.UpdateStatusComplex(*presence)
	if err != nil {
		log.Printf("Failed to update bot presence: %v", err)
	}

	presenceMutex.Lock()
	currentPresence = "default"
	presenceMutex.Unlock()
}

// UpdateMusicPresence updates the bot's presence to show currently playing music
func (pm *PresenceManager) UpdateMusicPresence(songTitle string) {
	presence := &discordgo.UpdateStatusData{
		Status: "online",
		Activities: []*discordgo.Activity{
			{
				Name:  "to",
				Type:  discordgo.ActivityTypeListening,
				State: songTitle,
			},
		},
	}

	err := pm.session.UpdateStatusComplex(*presence)
	if err != nil {
		log.Printf("Failed to update music presence: %v", err)
	}

	presenceMutex.Lock()
	currentPresence = "music"
	presenceMutex.Unlock()
}

// ClearMusicPresence clears the music presence and returns to default
func (pm *PresenceManager) ClearMusicPresence() {
	pm.UpdateDefaultPresence()
}

// GetCurrentPresence returns the current presence type
func (pm *PresenceManager) GetCurrentPresence() string {
	presenceMutex.RLock()
	defer presenceMutex.RUnlock()
	return currentPresence
}

// ListenForEvents drives the presence from player events: track starts
// show the title, queue exhaustion returns to the default.
func (pm *PresenceManager) ListenForEvents() {
	pm.client.AddEventListener(func(e lavalink.Event) {
		switch event := e.(type) {
		case lavalink.TrackStartEvent:
			pm.UpdateMusicPresence(event.Track.Info.Title)
		case lavalink.QueueEndEvent:
			pm.ClearMusicPresence()
		}
	})
}

// StartPeriodicUpdates starts a goroutine that updates the default presence periodically
func (pm *PresenceManager) StartPeriodicUpdates() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			// Only update if we're not showing music
			if pm.GetCurrentPresence() != "music" {
				pm.UpdateDefaultPresence()
			}
		}
	}()
}
