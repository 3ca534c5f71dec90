package scraper

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
)

// platformStrategy searches one social platform for a query. Strategies are
// heuristic placeholders; a real API client can replace any entry in the
// registry without touching the collector or scorer.
type platformStrategy func(ctx context.Context, query string) []Evidence

// supportedPlatforms fixes the fan-out order for one milestone check.
var supportedPlatforms = []string{
	SourceTwitter,
	SourceLinkedIn,
	SourceFacebook,
	SourceInstagram,
	SourceYouTube,
}

var platformRegistry = map[string]platformStrategy{
	SourceTwitter:   searchTwitter,
	SourceLinkedIn:  searchLinkedIn,
	SourceFacebook:  searchFacebook,
	SourceInstagram: searchInstagram,
	SourceYouTube:   searchYouTube,
}

// SearchPlatform dispatches to the strategy registered for the platform key.
// Unknown keys log a warning and contribute no evidence.
func SearchPlatform(ctx context.Context, platform, query string) []Evidence {
	strategy, ok := platformRegistry[platform]
	if !ok {
		log.Printf("scraper: unsupported platform: %s", platform)
		return nil
	}
	return strategy(ctx, query)
}

func queryMentionsAny(query string, terms ...string) bool {
	q := strings.ToLower(query)
	for _, t := range terms {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

func searchTwitter(_ context.Context, query string) []Evidence {
	if !queryMentionsAny(query, "milestone", "completed") {
		return nil
	}
	searchURL := "https://twitter.com/search?q=" + url.QueryEscape(query)
	return []Evidence{newEvidence(SourceTwitter, searchURL,
		fmt.Sprintf("Twitter search: %s", query),
		fmt.Sprintf("Found relevant tweets about %s", query), 0.7)}
}

func searchLinkedIn(_ context.Context, query string) []Evidence {
	if !queryMentionsAny(query, "project", "launch") {
		return nil
	}
	searchURL := "https://www.linkedin.com/search/results/content/?keywords=" + url.QueryEscape(query)
	return []Evidence{newEvidence(SourceLinkedIn, searchURL,
		fmt.Sprintf("LinkedIn posts: %s", query),
		fmt.Sprintf("Found relevant LinkedIn posts about %s", query), 0.8)}
}

func searchFacebook(_ context.Context, query string) []Evidence {
	if !queryMentionsAny(query, "update", "progress") {
		return nil
	}
	searchURL := "https://www.facebook.com/search/posts/?q=" + url.QueryEscape(query)
	return []Evidence{newEvidence(SourceFacebook, searchURL,
		fmt.Sprintf("Facebook posts: %s", query),
		fmt.Sprintf("Found relevant Facebook posts about %s", query), 0.6)}
}

func searchInstagram(_ context.Context, query string) []Evidence {
	if !queryMentionsAny(query, "launch", "release") {
		return nil
	}
	tag := strings.ReplaceAll(query, " ", "")
	searchURL := "https://www.instagram.com/explore/tags/" + url.PathEscape(tag)
	return []Evidence{newEvidence(SourceInstagram, searchURL,
		fmt.Sprintf("Instagram posts: %s", query),
		fmt.Sprintf("Found relevant Instagram posts about %s", query), 0.5)}
}

func searchYouTube(_ context.Context, query string) []Evidence {
	if !queryMentionsAny(query, "demo", "showcase") {
		return nil
	}
	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
	return []Evidence{newEvidence(SourceYouTube, searchURL,
		fmt.Sprintf("YouTube videos: %s", query),
		fmt.Sprintf("Found relevant YouTube videos about %s", query), 0.9)}
}
