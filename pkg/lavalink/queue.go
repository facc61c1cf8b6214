package lavalink

import (
	"math/rand"
	"sync"
)

// Queue is the ordered track list of one player. Index 0 is the current
// track while something is playing. All methods are safe for concurrent
// use; mutations are synchronous and purely in-memory.
type Queue struct {
	mu     sync.RWMutex
	tracks []Track
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{tracks: make([]Track, 0)}
}

// Add appends tracks to the tail of the queue.
func (q *Queue) Add(tracks ...Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, tracks...)
}

// Head returns the current head of the queue.
func (q *Queue) Head() (Track, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if len(q.tracks) == 0 {
		return Track{}, false
	}
	return q.tracks[0], true
}

// ReplaceHead installs track at index 0, returning the previous head if
// one existed. With an empty queue it behaves like Add.
func (q *Queue) ReplaceHead(track Track) (Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) == 0 {
		q.tracks = append(q.tracks, track)
		return Track{}, false
	}
	prev := q.tracks[0]
	q.tracks[0] = track
	return prev, true
}

// restoreHead undoes a ReplaceHead after a failed remote command.
func (q *Queue) restoreHead(prev Track, hadPrev bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) == 0 {
		return
	}
	if hadPrev {
		q.tracks[0] = prev
	} else {
		q.tracks = q.tracks[1:]
	}
}

// Pop removes and returns the head of the queue.
func (q *Queue) Pop() (Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) == 0 {
		return Track{}, false
	}
	head := q.tracks[0]
	q.tracks = q.tracks[1:]
	return head, true
}

// Drop removes up to n tracks from the head and returns them.
func (q *Queue) Drop(n int) []Track {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n <= 0 || len(q.tracks) == 0 {
		return nil
	}
	if n > len(q.tracks) {
		n = len(q.tracks)
	}
	dropped := make([]Track, n)
	copy(dropped, q.tracks[:n])
	q.tracks = q.tracks[n:]
	return dropped
}

// pushFront reinserts tracks at the head, undoing a Drop after a failed
// remote command.
func (q *Queue) pushFront(tracks []Track) {
	if len(tracks) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(append(make([]Track, 0, len(tracks)+len(q.tracks)), tracks...), q.tracks...)
}

// RotateHeadToTail moves the head of the queue to the tail, used for
// queue-loop advancement.
func (q *Queue) RotateHeadToTail() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) < 2 {
		return
	}
	head := q.tracks[0]
	q.tracks = append(q.tracks[1:], head)
}

// Remove removes the first track whose encoded payload matches. It
// reports whether anything was removed.
func (q *Queue) Remove(track Track) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.tracks {
		if t.Encoded == track.Encoded {
			q.tracks = append(q.tracks[:i], q.tracks[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAt removes and returns the track at the given index.
func (q *Queue) RemoveAt(index int) (Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= len(q.tracks) {
		return Track{}, false
	}
	removed := q.tracks[index]
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	return removed, true
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = q.tracks[:0]
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.tracks)
}

// Tracks returns a copy of the queue contents in order.
func (q *Queue) Tracks() []Track {
	q.mu.RLock()
	defer q.mu.RUnlock()
	tracks := make([]Track, len(q.tracks))
	copy(tracks, q.tracks)
	return tracks
}

// Shuffle randomizes the order of everything behind the head. The head
// stays in place so current playback is unaffected.
func (q *Queue) Shuffle() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) < 3 {
		return
	}
	rest := q.tracks[1:]
	rand.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
}
