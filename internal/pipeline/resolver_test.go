package pipeline

import (
	"context"
	"errors"
	"testing"

	"ytmeta/internal/config"
	"ytmeta/internal/mapper"
	"ytmeta/internal/refine"
	"ytmeta/internal/services/ytdlp"
)

type fakeMatcher struct {
	match     *ytdlp.SearchResult
	err       error
	lastQuery string
	calls     int
}

func (f *fakeMatcher) BestMatch(_ context.Context, query string, _ int) (*ytdlp.SearchResult, error) {
	f.calls++
	f.lastQuery = query
	return f.match, f.err
}

type fakeChannelSearcher struct {
	id        string
	err       error
	lastQuery string
}

func (f *fakeChannelSearcher) SearchChannelFirst(_ context.Context, query string) (string, error) {
	f.lastQuery = query
	return f.id, f.err
}

type fakeCache struct {
	records        map[string]*mapper.RawRecord
	channelRecords map[string]*mapper.RawRecord
	err            error
	lastFolder     string
}

func (f *fakeCache) GetRecord(_ context.Context, id string) (*mapper.RawRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.records[id]
	if !ok {
		return nil, errors.New("record missing")
	}
	return record, nil
}

func (f *fakeCache) GetChannelRecord(_ context.Context, channelID, folderName string) (*mapper.RawRecord, error) {
	f.lastFolder = folderName
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.channelRecords[channelID]
	if !ok {
		return nil, errors.New("channel record missing")
	}
	return record, nil
}

type fakeRefiner struct {
	refinement refine.Refinement
	called     bool
}

func (f *fakeRefiner) Refine(_ context.Context, title, description string) refine.Refinement {
	f.called = true
	if f.refinement.Refined {
		return f.refinement
	}
	return refine.Refinement{Title: title, Description: description}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Lookup.EnableTitleLookup = true
	return &cfg
}

func sampleCache() *fakeCache {
	return &fakeCache{
		records: map[string]*mapper.RawRecord{
			"dQw4w9WgXcQ": {
				ID:          "dQw4w9WgXcQ",
				Title:       "Never Gonna Give You Up",
				Description: "Official video.",
				UploadDate:  "20091025",
				Uploader:    "Rick Astley",
				ChannelID:   "UCuAXFkgsw1L7xaCfnd5JJOw",
			},
		},
		channelRecords: map[string]*mapper.RawRecord{
			"UCuAXFkgsw1L7xaCfnd5JJOw": {
				ID:          "UCuAXFkgsw1L7xaCfnd5JJOw",
				Title:       "Rick Astley",
				Description: "The official channel.",
				Uploader:    "Rick Astley",
				ChannelID:   "UCuAXFkgsw1L7xaCfnd5JJOw",
			},
		},
	}
}

func TestResolveMovieWithEmbeddedID(t *testing.T) {
	matcher := &fakeMatcher{}
	resolver := New(testConfig(), matcher, &fakeChannelSearcher{}, sampleCache(), nil, nil)

	result, err := resolver.ResolveMovie(context.Background(), "/media/Never Gonna Give You Up [dQw4w9WgXcQ].mkv")
	if err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if !result.HasMetadata {
		t.Fatal("expected metadata for embedded id")
	}
	if result.Item.Title != "Never Gonna Give You Up" {
		t.Errorf("unexpected title %q", result.Item.Title)
	}
	if result.Item.ProductionYear != 2009 {
		t.Errorf("unexpected year %d", result.Item.ProductionYear)
	}
	if matcher.calls != 0 {
		t.Errorf("embedded id must skip search, saw %d calls", matcher.calls)
	}
	if result.ProviderIDs[config.ProviderName] != "dQw4w9WgXcQ" {
		t.Errorf("unexpected provider ids %v", result.ProviderIDs)
	}
}

func TestResolveMovieFallsBackToSearch(t *testing.T) {
	matcher := &fakeMatcher{match: &ytdlp.SearchResult{ID: "dQw4w9WgXcQ", Title: "Never Gonna Give You Up"}}
	resolver := New(testConfig(), matcher, &fakeChannelSearcher{}, sampleCache(), nil, nil)

	result, err := resolver.ResolveMovie(context.Background(), "/media/never_gonna_give_you_up.mkv")
	if err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if !result.HasMetadata {
		t.Fatal("expected metadata via search")
	}
	if matcher.calls != 1 {
		t.Fatalf("expected one search, got %d", matcher.calls)
	}
	if matcher.lastQuery == "" {
		t.Fatal("expected non-empty search query")
	}
}

func TestResolveMovieNoIDWithLookupDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Lookup.EnableTitleLookup = false
	matcher := &fakeMatcher{}
	resolver := New(cfg, matcher, &fakeChannelSearcher{}, sampleCache(), nil, nil)

	result, err := resolver.ResolveMovie(context.Background(), "/media/untitled.mkv")
	if err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if result.HasMetadata {
		t.Fatal("expected no metadata when lookup is disabled")
	}
	if matcher.calls != 0 {
		t.Fatal("search must not run when lookup is disabled")
	}
}

func TestResolveMovieNoSearchMatch(t *testing.T) {
	resolver := New(testConfig(), &fakeMatcher{}, &fakeChannelSearcher{}, sampleCache(), nil, nil)

	result, err := resolver.ResolveMovie(context.Background(), "/media/untitled.mkv")
	if err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if result.HasMetadata {
		t.Fatal("expected no metadata without a search match")
	}
}

func TestResolveMoviePropagatesSearchError(t *testing.T) {
	searchErr := errors.New("backend down")
	resolver := New(testConfig(), &fakeMatcher{err: searchErr}, &fakeChannelSearcher{}, sampleCache(), nil, nil)

	_, err := resolver.ResolveMovie(context.Background(), "/media/untitled.mkv")
	if !errors.Is(err, searchErr) {
		t.Fatalf("expected search error to propagate, got %v", err)
	}
}

func TestResolveMoviePropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("fetch failed")
	cache := &fakeCache{err: fetchErr}
	resolver := New(testConfig(), &fakeMatcher{}, &fakeChannelSearcher{}, cache, nil, nil)

	_, err := resolver.ResolveMovie(context.Background(), "/media/clip [dQw4w9WgXcQ].mkv")
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
}

func TestResolveMovieAppliesRefinement(t *testing.T) {
	refiner := &fakeRefiner{refinement: refine.Refinement{
		Title:       "Clean Title",
		Description: "Clean overview.",
		Refined:     true,
	}}
	resolver := New(testConfig(), &fakeMatcher{}, &fakeChannelSearcher{}, sampleCache(), refiner, nil)

	result, err := resolver.ResolveMovie(context.Background(), "/media/clip [dQw4w9WgXcQ].mkv")
	if err != nil {
		t.Fatalf("ResolveMovie returned error: %v", err)
	}
	if !refiner.called {
		t.Fatal("expected refiner to run")
	}
	if result.Item.Title != "Clean Title" || result.Item.Overview != "Clean overview." {
		t.Fatalf("expected refined fields, got %+v", result.Item)
	}
}

func TestResolveEpisodeUsesFallbackTitleAndSortKey(t *testing.T) {
	cache := sampleCache()
	cache.records["dQw4w9WgXcQ"].Title = ""
	resolver := New(testConfig(), &fakeMatcher{}, &fakeChannelSearcher{}, cache, nil, nil)

	result, err := resolver.ResolveEpisode(context.Background(), "/media/Show/some_episode [dQw4w9WgXcQ].mkv")
	if err != nil {
		t.Fatalf("ResolveEpisode returned error: %v", err)
	}
	if result.Item.Title != "Some Episode" {
		t.Errorf("expected derived fallback title, got %q", result.Item.Title)
	}
	if result.Item.SortTitle != "20091025-Some Episode" {
		t.Errorf("unexpected sort title %q", result.Item.SortTitle)
	}
	if result.Item.SeasonNumber != 1 {
		t.Errorf("season must stay 1, got %d", result.Item.SeasonNumber)
	}
}

func TestResolveMusicVideoSkipsRefinement(t *testing.T) {
	cache := sampleCache()
	cache.records["dQw4w9WgXcQ"].Track = "Never Gonna Give You Up"
	cache.records["dQw4w9WgXcQ"].Artist = "Rick Astley"
	refiner := &fakeRefiner{refinement: refine.Refinement{Title: "x", Refined: true}}
	resolver := New(testConfig(), &fakeMatcher{}, &fakeChannelSearcher{}, cache, refiner, nil)

	result, err := resolver.ResolveMusicVideo(context.Background(), "/media/clip [dQw4w9WgXcQ].mkv")
	if err != nil {
		t.Fatalf("ResolveMusicVideo returned error: %v", err)
	}
	if refiner.called {
		t.Fatal("music videos must not be refined")
	}
	if result.Item.Title != "Never Gonna Give You Up" {
		t.Errorf("expected track-first title, got %q", result.Item.Title)
	}
}

func TestResolveSeriesWithEmbeddedChannelID(t *testing.T) {
	channels := &fakeChannelSearcher{}
	resolver := New(testConfig(), &fakeMatcher{}, channels, sampleCache(), nil, nil)

	result, err := resolver.ResolveSeries(context.Background(), "/media/Rick Astley [UCuAXFkgsw1L7xaCfnd5JJOw]")
	if err != nil {
		t.Fatalf("ResolveSeries returned error: %v", err)
	}
	if !result.HasMetadata {
		t.Fatal("expected series metadata")
	}
	if result.ProviderIDs[config.ProviderName] != "UCuAXFkgsw1L7xaCfnd5JJOw" {
		t.Errorf("series provider id must be the channel id, got %v", result.ProviderIDs)
	}
	if channels.lastQuery != "" {
		t.Fatal("embedded channel id must skip channel search")
	}
}

func TestResolveSeriesViaChannelSearch(t *testing.T) {
	channels := &fakeChannelSearcher{id: "UCuAXFkgsw1L7xaCfnd5JJOw"}
	cache := sampleCache()
	resolver := New(testConfig(), &fakeMatcher{}, channels, cache, nil, nil)

	result, err := resolver.ResolveSeries(context.Background(), "/media/Rick Astley")
	if err != nil {
		t.Fatalf("ResolveSeries returned error: %v", err)
	}
	if !result.HasMetadata {
		t.Fatal("expected series metadata via channel search")
	}
	if channels.lastQuery != "Rick Astley" {
		t.Errorf("unexpected channel query %q", channels.lastQuery)
	}
	if cache.lastFolder != "Rick Astley" {
		t.Errorf("unexpected cache folder %q", cache.lastFolder)
	}
}

func TestResolveSeriesNoChannelFound(t *testing.T) {
	resolver := New(testConfig(), &fakeMatcher{}, &fakeChannelSearcher{}, sampleCache(), nil, nil)

	result, err := resolver.ResolveSeries(context.Background(), "/media/Unknown Channel")
	if err != nil {
		t.Fatalf("ResolveSeries returned error: %v", err)
	}
	if result.HasMetadata {
		t.Fatal("expected no metadata when channel search finds nothing")
	}
}
