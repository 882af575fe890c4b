package mapper

import (
	"testing"
	"time"

	"ytmeta/internal/config"
)

func sampleRecord() RawRecord {
	return RawRecord{
		ID:          "dQw4w9WgXcQ",
		Title:       "Cool Video",
		Description: "A description.",
		UploadDate:  "20230115",
		Uploader:    "Chan",
		ChannelID:   "UC1234567890abcdefghijkl",
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"20230115", time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{"bad", SentinelDate},
		{"", SentinelDate},
		{"2023011", SentinelDate},
		{"202301155", SentinelDate},
		{"20231301", SentinelDate},
	}
	for _, tc := range cases {
		if got := ParseDate(tc.in); !got.Equal(tc.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestToMovie(t *testing.T) {
	result := ToMovie(sampleRecord())

	if !result.HasMetadata {
		t.Fatal("expected metadata")
	}
	if result.Item.Title != "Cool Video" {
		t.Errorf("unexpected title %q", result.Item.Title)
	}
	if result.Item.ProductionYear != 2023 {
		t.Errorf("unexpected production year %d", result.Item.ProductionYear)
	}
	if !result.Item.PremiereDate.Equal(time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected premiere date %v", result.Item.PremiereDate)
	}
	if got := result.ProviderIDs[config.ProviderName]; got != "dQw4w9WgXcQ" {
		t.Errorf("unexpected provider id %q", got)
	}
	if len(result.People) != 1 {
		t.Fatalf("expected one person, got %d", len(result.People))
	}
	person := result.People[0]
	if person.Name != "Chan" || person.Kind != PersonKindDirector {
		t.Errorf("unexpected person %+v", person)
	}
	if got := person.ProviderIDs[config.ProviderName]; got != "UC1234567890abcdefghijkl" {
		t.Errorf("unexpected person provider id %q", got)
	}
}

func TestToMovieBadDateUsesSentinel(t *testing.T) {
	record := sampleRecord()
	record.UploadDate = "not-a-date"

	result := ToMovie(record)
	if result.Item.ProductionYear != 1970 {
		t.Errorf("expected sentinel year, got %d", result.Item.ProductionYear)
	}
	if !result.Item.PremiereDate.Equal(SentinelDate) {
		t.Errorf("expected sentinel premiere date, got %v", result.Item.PremiereDate)
	}
}

func TestExtractEpisodeNumber(t *testing.T) {
	cases := []struct {
		title     string
		want      int
		wantFound bool
	}{
		{"Show S02E07 Extra", 7, true},
		{"Episode 12 - Something", 12, true},
		{"Folge 3: Anfang", 3, true},
		{"ep. 44", 44, true},
		{"Ep 5", 5, true},
		{"S01E02 or Episode 9", 2, true},
		{"Random Title", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, found := ExtractEpisodeNumber(tc.title)
		if got != tc.want || found != tc.wantFound {
			t.Errorf("ExtractEpisodeNumber(%q) = (%d, %v), want (%d, %v)",
				tc.title, got, found, tc.want, tc.wantFound)
		}
	}
}

func TestToEpisode(t *testing.T) {
	cfg := config.Default()
	record := sampleRecord()
	record.Title = "Cool Video Episode 12"

	result := ToEpisode(record, &cfg, "")
	if result.Item.EpisodeNumber != 12 {
		t.Errorf("expected inferred episode 12, got %d", result.Item.EpisodeNumber)
	}
	if result.Item.SeasonNumber != 1 {
		t.Errorf("season must stay fixed at 1, got %d", result.Item.SeasonNumber)
	}
	if result.Item.SortTitle != "20230115-Cool Video Episode 12" {
		t.Errorf("unexpected sort title %q", result.Item.SortTitle)
	}
}

func TestToEpisodeAutoIndexDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Lookup.EnableAutoEpisodeIndexing = false
	record := sampleRecord()
	record.Title = "Show S02E07 Extra"

	result := ToEpisode(record, &cfg, "")
	if result.Item.EpisodeNumber != 1 {
		t.Errorf("expected index 1 with auto indexing off, got %d", result.Item.EpisodeNumber)
	}
}

func TestToEpisodeFallbackTitle(t *testing.T) {
	record := sampleRecord()
	record.Title = "  "

	result := ToEpisode(record, nil, "From Filename")
	if result.Item.Title != "From Filename" {
		t.Errorf("expected fallback title, got %q", result.Item.Title)
	}
	if result.Item.EpisodeNumber != 1 {
		t.Errorf("expected default index 1, got %d", result.Item.EpisodeNumber)
	}
}

func TestSeriesNamePrecedence(t *testing.T) {
	record := RawRecord{Uploader: "Chan", PlaylistTitle: "Pl"}

	if got := SeriesName(record, "Fb", true); got != "Chan" {
		t.Errorf("prefer uploader: got %q", got)
	}
	if got := SeriesName(record, "Fb", false); got != "Pl" {
		t.Errorf("playlist first without preference: got %q", got)
	}

	record.PlaylistTitle = ""
	if got := SeriesName(record, "Fb", false); got != "Chan" {
		t.Errorf("uploader fallback: got %q", got)
	}

	record.Uploader = ""
	if got := SeriesName(record, "Fb", false); got != "Fb" {
		t.Errorf("fallback name: got %q", got)
	}
	if got := SeriesName(record, "", false); got != "" {
		t.Errorf("expected empty name, got %q", got)
	}
}

func TestToSeries(t *testing.T) {
	cfg := config.Default()
	record := sampleRecord()
	record.Description = ""

	result := ToSeries(record, &cfg, "Fallback")
	if result.Item.Name != "Chan" {
		t.Errorf("unexpected series name %q", result.Item.Name)
	}
	if result.Item.Overview != "Series metadata from YouTube." {
		t.Errorf("expected generic overview, got %q", result.Item.Overview)
	}
	if got := result.ProviderIDs[config.ProviderName]; got != "UC1234567890abcdefghijkl" {
		t.Errorf("series must store the channel id, got %q", got)
	}
}

func TestToMusicVideoPrefersTrack(t *testing.T) {
	record := sampleRecord()
	record.Track = "Never Gonna Give You Up"
	record.Artist = "Rick Astley"
	record.Album = "Whenever You Need Somebody"

	result := ToMusicVideo(record)
	if result.Item.Title != "Never Gonna Give You Up" {
		t.Errorf("expected track preferred, got %q", result.Item.Title)
	}
	if len(result.Item.Artists) != 1 || result.Item.Artists[0] != "Rick Astley" {
		t.Errorf("unexpected artists %v", result.Item.Artists)
	}
	if result.Item.Album != "Whenever You Need Somebody" {
		t.Errorf("unexpected album %q", result.Item.Album)
	}

	record.Track = ""
	result = ToMusicVideo(record)
	if result.Item.Title != "Cool Video" {
		t.Errorf("expected title fallback, got %q", result.Item.Title)
	}
}
