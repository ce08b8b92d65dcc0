// Package links holds the YouTube link rule the submission form enforces.
package links

import (
	"regexp"
)

// Scheme and host are case-insensitive; everything after the first slash is taken as-is.
var linkRe = regexp.MustCompile(`^(?i:https?://)?(?i:www\.youtube\.com|youtube\.com|youtu\.be|youtube\.be)/.+$`)

var videoIDRe = regexp.MustCompile(`(?i:https?://)?(?i:www\.)?(?i:youtube|youtu)\.(?i:com|be)/(?:watch\?v=|embed/|v/|.+\?v=|shorts/)?([a-zA-Z0-9_-]{11})`)

// Valid reports whether link looks like a video link on one of the accepted hosts.
func Valid(link string) bool {
	return linkRe.MatchString(link)
}

// VideoID returns the 11 character video id carried by link, or "" if there is none.
func VideoID(link string) string {
	if !Valid(link) {
		return ""
	}
	matches := videoIDRe.FindStringSubmatch(link)
	if len(matches) >= 2 {
		return matches[1]
	}
	return ""
}
