// Package mapper transforms raw backend records into library entity metadata.
//
// All mapping functions are pure: they never touch the network or filesystem,
// and every data-quality problem has a fixed fallback (sentinel date, empty
// overview, episode index 1) instead of an error. Callers that need to tell
// "unknown date" apart from a real 1970 release can compare against
// SentinelDate.
package mapper
