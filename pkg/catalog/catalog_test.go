package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		src   Source
		want  []Record
	}{
		{
			name:  "local_line",
			lines: []string{"bravura 1.2 Bravura"},
			src:   Local,
			want:  []Record{{Basename: "bravura", DisplayName: "Bravura", LocalVersion: "1.2", RemoteVersion: "0"}},
		},
		{
			name:  "remote_line",
			lines: []string{"bravura 1.2 Bravura"},
			src:   Remote,
			want:  []Record{{Basename: "bravura", DisplayName: "Bravura", LocalVersion: "0", RemoteVersion: "1.2"}},
		},
		{
			name:  "display_name_with_spaces",
			lines: []string{"  lilyjazz   2.0.1   LilyJAZZ   Text  Font "},
			src:   Local,
			want:  []Record{{Basename: "lilyjazz", DisplayName: "LilyJAZZ Text Font", LocalVersion: "2.0.1", RemoteVersion: "0"}},
		},
		{
			name:  "comments_and_blank_lines",
			lines: []string{"# Local font catalog", "", "   ", "\t# indented comment", "gonville 0.9 Gonville"},
			src:   Local,
			want:  []Record{{Basename: "gonville", DisplayName: "Gonville", LocalVersion: "0.9", RemoteVersion: "0"}},
		},
		{
			name:  "malformed_lines_are_skipped",
			lines: []string{"onlybasename", "two tokens", "beethoven 1.0 Beethoven"},
			src:   Remote,
			want:  []Record{{Basename: "beethoven", DisplayName: "Beethoven", LocalVersion: "0", RemoteVersion: "1.0"}},
		},
		{
			name:  "empty",
			lines: nil,
			src:   Local,
			want:  []Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(testContext(t), tt.lines, tt.src)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerialize(t *testing.T) {
	records := []Record{
		{Basename: "bravura", DisplayName: "Bravura", LocalVersion: "1.2"},
		{Basename: "lilyjazz", DisplayName: "LilyJAZZ Text", LocalVersion: "2.0.1"},
	}
	date := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

	got := Serialize(records, Width(records), date)

	want := []string{
		"# Local font catalog",
		"# Written by fontsync",
		"# 2025-03-07",
		"",
		"bravura  1.2      Bravura",
		"lilyjazz 2.0.1    LilyJAZZ Text",
	}
	assert.Equal(t, want, got)
}

func TestSerializeParseRoundTrip(t *testing.T) {
	records := []Record{
		{Basename: "beethoven", DisplayName: "Beethoven", LocalVersion: "1.0", RemoteVersion: "0"},
		{Basename: "bravura", DisplayName: "Bravura", LocalVersion: "1.2", RemoteVersion: "0"},
		{Basename: "lilyjazz", DisplayName: "LilyJAZZ Text Font", LocalVersion: "2.0.1", RemoteVersion: "0"},
		{Basename: "x", DisplayName: "Never Installed", LocalVersion: "0", RemoteVersion: "0"},
	}

	lines := Serialize(records, Width(records), time.Now())
	parsed := Parse(testContext(t), lines, Local)

	require.Len(t, parsed, len(records))
	for i := range records {
		assert.Equal(t, records[i].Basename, parsed[i].Basename)
		assert.Equal(t, records[i].LocalVersion, parsed[i].LocalVersion)
		assert.Equal(t, records[i].DisplayName, parsed[i].DisplayName)
	}
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 0, Width(nil))
	assert.Equal(t, 8, Width([]Record{{Basename: "bravura"}, {Basename: "lilyjazz"}}))
}
