package mapper

import "time"

// PersonKindDirector is the only person role this provider attaches; the
// uploader is credited as the director of their own videos.
const PersonKindDirector = "Director"

// Person credits an individual on a mapped entity.
type Person struct {
	Name        string
	Kind        string
	ProviderIDs map[string]string
}

// Movie is the mapped representation of a standalone video.
type Movie struct {
	Title          string
	Overview       string
	ProductionYear int
	PremiereDate   time.Time
}

// Episode is the mapped representation of a video inside a series folder.
type Episode struct {
	Title          string
	Overview       string
	ProductionYear int
	PremiereDate   time.Time
	SortTitle      string
	EpisodeNumber  int
	SeasonNumber   int
}

// Series is the mapped representation of a channel or playlist grouping.
type Series struct {
	Name     string
	Overview string
}

// MusicVideo is the mapped representation of a music upload.
type MusicVideo struct {
	Title          string
	Artists        []string
	Album          string
	Overview       string
	ProductionYear int
	PremiereDate   time.Time
}

// Result pairs a mapped entity with its people and provider identifiers.
// Entity fields are write-once per mapping call; the caller owns persistence.
type Result[T any] struct {
	HasMetadata bool
	Item        T
	People      []Person
	ProviderIDs map[string]string
}
