package mapper

import (
	"strings"

	"ytmeta/internal/config"
)

// ToMovie maps a raw record onto a movie entity.
func ToMovie(record RawRecord) Result[Movie] {
	date := ParseDate(record.UploadDate)
	return Result[Movie]{
		HasMetadata: true,
		Item: Movie{
			Title:          record.Title,
			Overview:       record.Description,
			ProductionYear: date.Year(),
			PremiereDate:   date,
		},
		People:      []Person{newDirector(record.Uploader, record.ChannelID)},
		ProviderIDs: map[string]string{config.ProviderName: record.ID},
	}
}

// ToEpisode maps a raw record onto an episode entity. The sort title keys on
// the upload date so episodes order chronologically within a series even when
// display titles are similar. Episode number inference runs only when auto
// indexing is enabled; otherwise the index stays at 1.
func ToEpisode(record RawRecord, cfg *config.Config, fallbackTitle string) Result[Episode] {
	title := record.Title
	if strings.TrimSpace(title) == "" {
		title = fallbackTitle
	}
	date := ParseDate(record.UploadDate)

	episodeNumber := 1
	autoIndex := cfg == nil || cfg.Lookup.EnableAutoEpisodeIndexing
	if autoIndex {
		if number, found := ExtractEpisodeNumber(title); found {
			episodeNumber = number
		}
	}

	return Result[Episode]{
		HasMetadata: true,
		Item: Episode{
			Title:          title,
			Overview:       record.Description,
			ProductionYear: date.Year(),
			PremiereDate:   date,
			SortTitle:      date.Format("20060102") + "-" + title,
			EpisodeNumber:  episodeNumber,
			SeasonNumber:   1,
		},
		People:      []Person{newDirector(record.Uploader, record.ChannelID)},
		ProviderIDs: map[string]string{config.ProviderName: record.ID},
	}
}

// ToSeries maps a raw record onto a series entity. The provider identifier
// stores the channel ID, not the video ID, so every episode of the channel
// resolves to the same series.
func ToSeries(record RawRecord, cfg *config.Config, fallbackName string) Result[Series] {
	preferUploader := cfg == nil || cfg.Lookup.PreferUploaderAsSeriesName
	overview := record.Description
	if strings.TrimSpace(overview) == "" {
		overview = "Series metadata from YouTube."
	}
	return Result[Series]{
		HasMetadata: true,
		Item: Series{
			Name:     SeriesName(record, fallbackName, preferUploader),
			Overview: overview,
		},
		ProviderIDs: map[string]string{config.ProviderName: record.ChannelID},
	}
}

// ToMusicVideo maps a raw record onto a music video entity, preferring the
// track field over the general title.
func ToMusicVideo(record RawRecord) Result[MusicVideo] {
	title := record.Track
	if title == "" {
		title = record.Title
	}
	date := ParseDate(record.UploadDate)
	return Result[MusicVideo]{
		HasMetadata: true,
		Item: MusicVideo{
			Title:          title,
			Artists:        []string{record.Artist},
			Album:          record.Album,
			Overview:       record.Description,
			ProductionYear: date.Year(),
			PremiereDate:   date,
		},
		People:      []Person{newDirector(record.Uploader, record.ChannelID)},
		ProviderIDs: map[string]string{config.ProviderName: record.ID},
	}
}

// SeriesName resolves the display name for a series. Precedence: uploader
// when preferred, playlist title, uploader, fallback, empty.
func SeriesName(record RawRecord, fallbackName string, preferUploader bool) string {
	if preferUploader && strings.TrimSpace(record.Uploader) != "" {
		return record.Uploader
	}
	if strings.TrimSpace(record.PlaylistTitle) != "" {
		return record.PlaylistTitle
	}
	if strings.TrimSpace(record.Uploader) != "" {
		return record.Uploader
	}
	if strings.TrimSpace(fallbackName) != "" {
		return fallbackName
	}
	return ""
}

func newDirector(name, channelID string) Person {
	person := Person{
		Name: name,
		Kind: PersonKindDirector,
	}
	if channelID != "" {
		person.ProviderIDs = map[string]string{config.ProviderName: channelID}
	}
	return person
}
