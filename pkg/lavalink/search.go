package lavalink

import (
	"context"
	"net/url"
	"strings"
)

// SearchType selects the source a plain text query is resolved against.
type SearchType string

const (
	SearchYouTube      SearchType = "ytsearch"
	SearchYouTubeMusic SearchType = "ytmsearch"
	SearchSoundCloud   SearchType = "scsearch"
)

// Apply prefixes a plain query with this search type's selector.
func (st SearchType) Apply(query string) string {
	return string(st) + ":" + query
}

var searchPrefixes = []string{
	string(SearchYouTube) + ":",
	string(SearchYouTubeMusic) + ":",
	string(SearchSoundCloud) + ":",
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// BuildIdentifier turns user input into a load-tracks identifier. URLs and
// already-prefixed queries pass through untouched; everything else gets
// the given search prefix.
func BuildIdentifier(input string, searchType SearchType) string {
	input = strings.TrimSpace(input)
	if IsURL(input) {
		return input
	}
	for _, prefix := range searchPrefixes {
		if strings.HasPrefix(input, prefix) {
			return input
		}
	}
	return searchType.Apply(input)
}

// defaultRelatedTrack is the autoplay fallback when no RelatedTrackFunc
// is configured: search the finished track's source for its author and
// title and take the first result that is not the track itself.
func defaultRelatedTrack(ctx context.Context, node *Node, last Track) (*Track, error) {
	searchType := SearchYouTube
	if last.Info.SourceName == "soundcloud" {
		searchType = SearchSoundCloud
	}

	query := strings.TrimSpace(last.Info.Author + " " + last.Info.Title)
	if query == "" {
		return nil, nil
	}

	result, err := node.Rest().LoadTracks(ctx, searchType.Apply(query))
	if err != nil {
		return nil, err
	}
	if result.Type != LoadTypeSearch {
		return nil, nil
	}
	for _, track := range result.Tracks {
		if track.Encoded != last.Encoded && track.Info.Identifier != last.Info.Identifier {
			return &track, nil
		}
	}
	return nil, nil
}
