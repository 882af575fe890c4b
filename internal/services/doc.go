// Package services holds the error taxonomy and context plumbing shared by
// every backend client in ytmeta.
//
// Backend failures (yt-dlp invocations, the chat-completion endpoint) are
// wrapped with sentinel markers so callers can classify them without string
// matching. Context helpers carry the correlation ID, source path, and video
// ID that the logging package folds into every line.
package services
