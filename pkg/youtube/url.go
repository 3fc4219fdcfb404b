package youtube

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// MaxURLLen is the longest raw URL accepted before parsing is attempted.
const MaxURLLen = 500

// Validation failures, checked in order. The first failing check wins.
var (
	ErrTooLong          = errors.New("URL too long")
	ErrMalformedURL     = errors.New("invalid URL format")
	ErrDisallowedDomain = errors.New("invalid domain, only YouTube URLs are allowed")
	ErrUnsupportedLink  = errors.New("unsupported YouTube link type")
)

// videoIDRe matches an exact YouTube video ID: 11 chars of [A-Za-z0-9_-].
var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// shortPathRe matches the path of a youtu.be short link.
var shortPathRe = regexp.MustCompile(`^/([A-Za-z0-9_-]{11})$`)

// ParseVideoURL validates a raw YouTube URL and extracts the 11-character
// video ID. It never panics and returns exactly one of: a video ID, or one
// of the sentinel errors above.
//
// Accepted hosts: youtube.com and subdomains, youtu.be, youtube-nocookie.com
// and subdomains. Accepted shapes: /watch?v=<id> on the long domains, /<id>
// on youtu.be.
func ParseVideoURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	// Length check precedes parsing so oversized garbage is rejected cheaply.
	if len(raw) > MaxURLLen {
		return "", ErrTooLong
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", ErrMalformedURL
	}

	host := strings.ToLower(u.Hostname())
	isLongForm := host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") ||
		host == "youtube-nocookie.com" || strings.HasSuffix(host, ".youtube-nocookie.com")
	isShortForm := host == "youtu.be"

	if !isLongForm && !isShortForm {
		return "", ErrDisallowedDomain
	}

	if isShortForm {
		if m := shortPathRe.FindStringSubmatch(u.Path); m != nil {
			return m[1], nil
		}
		return "", ErrUnsupportedLink
	}

	if v := u.Query().Get("v"); videoIDRe.MatchString(v) {
		return v, nil
	}
	return "", ErrUnsupportedLink
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL returns the deterministic thumbnail URL for a video ID,
// used as the fallback when oEmbed lookup fails.
func ThumbnailURL(videoID string) string {
	return "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg"
}
