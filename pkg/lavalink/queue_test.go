package lavalink

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTrack(id string) Track {
	return Track{
		Encoded: "enc-" + id,
		Info: TrackInfo{
			Identifier: id,
			Title:      "title-" + id,
			Author:     "author-" + id,
			Length:     180000,
			SourceName: "youtube",
		},
	}
}

func queueTitles(q *Queue) []string {
	tracks := q.Tracks()
	titles := make([]string, len(tracks))
	for i, t := range tracks {
		titles[i] = t.Info.Identifier
	}
	return titles
}

func TestQueueInsertionOrder(t *testing.T) {
	q := NewQueue()
	q.Add(testTrack("a"), testTrack("b"))
	q.Add(testTrack("c"))

	assert.Equal(t, []string{"a", "b", "c"}, queueTitles(q))
	assert.Equal(t, 3, q.Len())
}

func TestQueueSurvivingInsertions(t *testing.T) {
	// Queue order must always match the sequence of surviving
	// insertions, whatever mix of add/remove/clear was applied.
	q := NewQueue()
	q.Add(testTrack("a"), testTrack("b"), testTrack("c"), testTrack("d"))

	removed, ok := q.RemoveAt(1)
	require.True(t, ok)
	assert.Equal(t, "b", removed.Info.Identifier)
	assert.Equal(t, []string{"a", "c", "d"}, queueTitles(q))

	assert.True(t, q.Remove(testTrack("d")))
	assert.False(t, q.Remove(testTrack("d")))
	assert.Equal(t, []string{"a", "c"}, queueTitles(q))

	q.Add(testTrack("e"))
	assert.Equal(t, []string{"a", "c", "e"}, queueTitles(q))

	q.Clear()
	assert.Equal(t, 0, q.Len())
	_, ok = q.Head()
	assert.False(t, ok)
}

func TestQueueRemoveAtBounds(t *testing.T) {
	q := NewQueue()
	q.Add(testTrack("a"))

	tests := []struct {
		name  string
		index int
		ok    bool
	}{
		{"negative index", -1, false},
		{"valid index", 0, true},
		{"out of range", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQueue()
			q.Add(testTrack("a"))
			_, ok := q.RemoveAt(tt.index)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestQueueDrop(t *testing.T) {
	q := NewQueue()
	q.Add(testTrack("a"), testTrack("b"), testTrack("c"))

	dropped := q.Drop(2)
	require.Len(t, dropped, 2)
	assert.Equal(t, "a", dropped[0].Info.Identifier)
	assert.Equal(t, "b", dropped[1].Info.Identifier)
	assert.Equal(t, []string{"c"}, queueTitles(q))

	dropped = q.Drop(5)
	assert.Len(t, dropped, 1)
	assert.Equal(t, 0, q.Len())

	assert.Nil(t, q.Drop(1))
	assert.Nil(t, q.Drop(0))
}

func TestQueuePushFront(t *testing.T) {
	q := NewQueue()
	q.Add(testTrack("c"))
	q.pushFront([]Track{testTrack("a"), testTrack("b")})
	assert.Equal(t, []string{"a", "b", "c"}, queueTitles(q))
}

func TestQueueReplaceAndRestoreHead(t *testing.T) {
	q := NewQueue()
	q.Add(testTrack("a"), testTrack("b"))

	prev, had := q.ReplaceHead(testTrack("x"))
	require.True(t, had)
	assert.Equal(t, "a", prev.Info.Identifier)
	assert.Equal(t, []string{"x", "b"}, queueTitles(q))

	q.restoreHead(prev, had)
	assert.Equal(t, []string{"a", "b"}, queueTitles(q))

	empty := NewQueue()
	_, had = empty.ReplaceHead(testTrack("y"))
	assert.False(t, had)
	assert.Equal(t, []string{"y"}, queueTitles(empty))
	empty.restoreHead(Track{}, false)
	assert.Equal(t, 0, empty.Len())
}

func TestQueueRotateHeadToTail(t *testing.T) {
	q := NewQueue()
	q.Add(testTrack("a"), testTrack("b"), testTrack("c"))

	q.RotateHeadToTail()
	assert.Equal(t, []string{"b", "c", "a"}, queueTitles(q))

	single := NewQueue()
	single.Add(testTrack("a"))
	single.RotateHeadToTail()
	assert.Equal(t, []string{"a"}, queueTitles(single))
}

func TestQueueShuffleKeepsHead(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 20; i++ {
		q.Add(testTrack(fmt.Sprintf("%02d", i)))
	}
	q.Shuffle()

	head, ok := q.Head()
	require.True(t, ok)
	assert.Equal(t, "00", head.Info.Identifier)
	assert.Equal(t, 20, q.Len())
}
