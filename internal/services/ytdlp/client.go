package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"ytmeta/internal/services"
)

var commandContext = exec.CommandContext

const (
	// fieldSeparator keeps printed fields apart; titles cannot contain it.
	fieldSeparator = "\x1f"

	videoSearchURL   = "https://www.youtube.com/results?search_query=%s&sp=EgIQAQ%%253D%%253D"
	channelSearchURL = "https://www.youtube.com/results?search_query=%s&sp=EgIQAg%%253D%%253D"
	watchURL         = "https://www.youtube.com/watch?v=%s"
	channelURL       = "https://www.youtube.com/channel/%s"
	cookieProbeURL   = "https://www.youtube.com/playlist?list=WL"

	videoPrintSpec   = "%(id)s\x1f%(title)s\x1f%(channel_id)s\x1f%(uploader)s\x1f%(thumbnail)s"
	channelPrintSpec = "%(id)s\x1f%(title)s\x1f%(thumbnail)s"

	missingPlaylistMarker = "The playlist does not exist"
)

// SearchResult is one candidate row from a backend search. It is ephemeral
// and never persisted.
type SearchResult struct {
	ID           string
	Title        string
	ChannelID    string
	Uploader     string
	ThumbnailURL string
}

// Client defines the search and fetch operations the resolution pipeline
// needs from the backend.
type Client interface {
	SearchVideos(ctx context.Context, query string, limit int) ([]SearchResult, error)
	SearchChannels(ctx context.Context, query string, limit int) ([]SearchResult, error)
	SearchChannelFirst(ctx context.Context, query string) (string, error)
	FetchVideoInfo(ctx context.Context, id, destBase string) error
	FetchChannelInfo(ctx context.Context, channelID, destBase string) error
	CheckCookies(ctx context.Context) (bool, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithCookieFile sets the cookies.txt path attached when the file exists.
func WithCookieFile(path string) Option {
	return func(c *CLI) {
		c.cookieFile = strings.TrimSpace(path)
	}
}

// WithTimeout bounds every backend invocation. Zero disables the deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// CLI wraps the yt-dlp command-line tool.
type CLI struct {
	binary     string
	cookieFile string
	timeout    time.Duration
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "yt-dlp"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// SearchVideos returns up to limit video candidates for the query.
func (c *CLI) SearchVideos(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	lines, err := c.search(ctx, fmt.Sprintf(videoSearchURL, url.QueryEscape(query)), videoPrintSpec, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, fieldSeparator)
		if len(parts) < 5 {
			continue
		}
		results = append(results, SearchResult{
			ID:           parts[0],
			Title:        parts[1],
			ChannelID:    parts[2],
			Uploader:     parts[3],
			ThumbnailURL: parts[4],
		})
	}
	return results, nil
}

// SearchChannels returns up to limit channel candidates for the query. For
// channels the identifier and channel identifier coincide, and the uploader
// equals the title.
func (c *CLI) SearchChannels(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	lines, err := c.search(ctx, fmt.Sprintf(channelSearchURL, url.QueryEscape(query)), channelPrintSpec, limit)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, fieldSeparator)
		if len(parts) < 3 {
			continue
		}
		results = append(results, SearchResult{
			ID:           parts[0],
			Title:        parts[1],
			ChannelID:    parts[0],
			Uploader:     parts[1],
			ThumbnailURL: parts[2],
		})
	}
	return results, nil
}

// SearchChannelFirst returns the backend's best-guess channel identifier for
// the query, or empty when the backend produced no results.
func (c *CLI) SearchChannelFirst(ctx context.Context, query string) (string, error) {
	args := []string{
		"--simulate",
		"--flat-playlist",
		"--playlist-items", "1",
		"--print", "url",
	}
	args = c.appendCookies(args)
	args = append(args, fmt.Sprintf(channelSearchURL, url.QueryEscape(query)))

	stdout, _, err := c.run(ctx, "search channel", args)
	if err != nil {
		return "", err
	}

	lines := splitLines(stdout)
	if len(lines) == 0 {
		return "", nil
	}
	parsed, err := url.Parse(lines[0])
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "ytdlp", "search channel", "unparsable result url", err)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	return segments[len(segments)-1], nil
}

// FetchVideoInfo downloads the full record for a video identifier, writing
// <destBase>.info.json without downloading media.
func (c *CLI) FetchVideoInfo(ctx context.Context, id, destBase string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("video id required")
	}
	if strings.TrimSpace(destBase) == "" {
		return errors.New("destination path required")
	}

	args := []string{
		"--write-info-json",
		"--skip-download",
		"-o", destBase,
	}
	args = c.appendCookies(args)
	args = append(args, fmt.Sprintf(watchURL, id))

	_, _, err := c.run(ctx, "fetch video info", args)
	return err
}

// FetchChannelInfo downloads channel-level metadata only, enumerating zero
// media items.
func (c *CLI) FetchChannelInfo(ctx context.Context, channelID, destBase string) error {
	if strings.TrimSpace(channelID) == "" {
		return errors.New("channel id required")
	}
	if strings.TrimSpace(destBase) == "" {
		return errors.New("destination path required")
	}

	args := []string{
		"--playlist-items", "0",
		"--write-info-json",
		"-o", destBase,
	}
	args = c.appendCookies(args)
	args = append(args, fmt.Sprintf(channelURL, channelID))

	_, _, err := c.run(ctx, "fetch channel info", args)
	return err
}

// CheckCookies probes an authenticated-only playlist to verify the configured
// cookies still work. A missing-playlist response means the credential is
// absent or expired.
func (c *CLI) CheckCookies(ctx context.Context) (bool, error) {
	args := []string{
		"--playlist-items", "0",
		"--skip-download",
	}
	args = c.appendCookies(args)
	args = append(args, cookieProbeURL)

	_, stderr, err := c.run(ctx, "check cookies", args)
	if strings.Contains(stderr, missingPlaylistMarker) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *CLI) search(ctx context.Context, searchURL, printSpec string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 1
	}
	args := []string{
		"--simulate",
		"--flat-playlist",
		"--playlist-items", fmt.Sprintf("1:%d", limit),
		"--print", printSpec,
	}
	args = c.appendCookies(args)
	args = append(args, searchURL)

	stdout, _, err := c.run(ctx, "search", args)
	if err != nil {
		return nil, err
	}
	return splitLines(stdout), nil
}

func (c *CLI) run(ctx context.Context, operation string, args []string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return stdout.String(), stderr.String(), ctx.Err()
		}
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = "backend invocation failed"
		}
		return stdout.String(), stderr.String(),
			services.Wrap(services.ErrExternalTool, "ytdlp", operation, message, err)
	}
	return stdout.String(), stderr.String(), nil
}

func (c *CLI) appendCookies(args []string) []string {
	if c.cookieFile == "" {
		return args
	}
	if _, err := os.Stat(c.cookieFile); err != nil {
		return args
	}
	return append(args, "--cookies", c.cookieFile)
}

func splitLines(output string) []string {
	raw := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

var _ Client = (*CLI)(nil)
