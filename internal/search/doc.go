// Package search scores backend search results against local titles and
// picks the best candidate for a file that carries no embedded identifier.
package search
