package videoid

import "testing"

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain video id", "Cool Show [dQw4w9WgXcQ].mkv", "dQw4w9WgXcQ"},
		{"id with hyphen and underscore", "clip [ab12].webm [x_-9zYw81Qk].mp4", "x_-9zYw81Qk"},
		{"channel id", "Some Channel [UC1234567890abcdefghijkl]/folder", "UC1234567890abcdefghijkl"},
		{"video id wins over channel id", "[UC1234567890abcdefghijkl] ep [dQw4w9WgXcQ].mkv", "dQw4w9WgXcQ"},
		{"no brackets", "Cool Show Episode 4.mkv", ""},
		{"wrong length", "Cool Show [abc123].mkv", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Extract(tc.in); got != tc.want {
				t.Errorf("Extract(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractChannelID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"channel id in folder name", "Some Channel [UC1234567890abcdefghijkl]", "UC1234567890abcdefghijkl"},
		{"video id ignored", "clip [dQw4w9WgXcQ].mkv", ""},
		{"channel id next to video id", "[UC1234567890abcdefghijkl] ep [dQw4w9WgXcQ].mkv", "UC1234567890abcdefghijkl"},
		{"no brackets", "Some Channel", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractChannelID(tc.in); got != tc.want {
				t.Errorf("ExtractChannelID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanSearchText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The.Daily_Show [dQw4w9WgXcQ]", "The Daily Show"},
		{"a__b..c", "a b c"},
		{"  spaced   out  ", "spaced out"},
		{"[UC1234567890abcdefghijkl]", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanSearchText(tc.in); got != tc.want {
			t.Errorf("CleanSearchText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanSearchTextIdempotent(t *testing.T) {
	inputs := []string{
		"The.Daily_Show [dQw4w9WgXcQ]",
		"already clean",
		"__.__",
		"Mixed_Case.Title [x_-9zYw81Qk] extra",
	}
	for _, in := range inputs {
		once := CleanSearchText(in)
		twice := CleanSearchText(once)
		if once != twice {
			t.Errorf("CleanSearchText not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestBuildSearchQuery(t *testing.T) {
	if got := BuildSearchQuery("Some_Title", "/media/file [dQw4w9WgXcQ].mkv"); got != "Some Title" {
		t.Errorf("expected title preferred, got %q", got)
	}
	if got := BuildSearchQuery("", "/media/The.Show [dQw4w9WgXcQ].mkv"); got != "The Show" {
		t.Errorf("expected filename fallback, got %q", got)
	}
	if got := BuildSearchQuery("", ""); got != "" {
		t.Errorf("expected empty query, got %q", got)
	}
}

func TestSafeCacheKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Channel", "My_Channel"},
		{"a/b:c", "a_b_c"},
		{"", "unknown"},
		{"???", "unknown"},
	}
	for _, tc := range cases {
		if got := SafeCacheKey(tc.in); got != tc.want {
			t.Errorf("SafeCacheKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/media/the.daily_show [dQw4w9WgXcQ].mkv", "The Daily Show"},
		{"/media/!!!.mkv", "Unknown Video"},
		{"", "Unknown Video"},
	}
	for _, tc := range cases {
		if got := DeriveTitle(tc.in); got != tc.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
