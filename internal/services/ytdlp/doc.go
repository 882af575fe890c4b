// Package ytdlp wraps the yt-dlp command-line tool as the search and fetch
// backend for remote video metadata.
//
// Searches run in simulate/flat-playlist mode and project result fields
// through --print with a unit-separator delimiter, so natural-language titles
// cannot collide with the field framing. Fetches use --write-info-json to
// persist the full record where the cache layer expects it. An optional
// cookies.txt is attached to every invocation when present; its absence is
// not an error.
package ytdlp
