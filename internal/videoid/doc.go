// Package videoid extracts remote identifiers from local filenames and builds
// normalized search phrases for files that carry none.
//
// Files downloaded by archiving tools conventionally embed the source video ID
// in square brackets ("Show Name [dQw4w9WgXcQ].mkv"); channel folders embed
// the 24-character channel ID the same way. The extractor recognizes both and
// reports absence with an empty string rather than an error.
package videoid
