package m3u

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/voyagen/m3ugroups/internal/models"
)

const samplePlaylist = `#EXTM3U
#EXTINF:-1 tvg-id="bbc1" tvg-name="BBC One" tvg-logo="http://logo/bbc1.png" group-title="News",BBC One
http://example.com/bbc1
#EXTINF:-1 tvg-id="espn" group-title="Sports",ESPN
http://example.com/espn
#EXTINF:-1 tvg-id="cnn" group-title="News",CNN International
http://example.com/cnn
#EXTINF:-1 tvg-id="local",Local TV
http://example.com/local`

func TestParseSingleEntry(t *testing.T) {
	res := ParseText("#EXTINF:-1 tvg-id=\"bbc1\" group-title=\"News\",BBC One\nhttp://example.com/bbc1")

	require.Equal(t, StatusOK, res.Status)
	require.NoError(t, res.Err())
	require.Len(t, res.Entries, 1)
	assert.Equal(t, models.Channel{
		ID:         1,
		TvgID:      "bbc1",
		TvgName:    "",
		TvgLogo:    "",
		GroupTitle: "News",
		Title:      "BBC One",
		URL:        "http://example.com/bbc1",
	}, res.Entries[0])
	require.Len(t, res.Groups, 1)
	assert.Equal(t, models.Group{ID: 1, Name: "News", Count: 1}, res.Groups[0])
}

func TestParseSample(t *testing.T) {
	res := ParseText(samplePlaylist)

	require.Equal(t, StatusOK, res.Status)
	require.Len(t, res.Entries, 4)
	for i, e := range res.Entries {
		assert.Equal(t, int64(i+1), e.ID, "ids must be contiguous from 1")
	}
	assert.Equal(t, "http://logo/bbc1.png", res.Entries[0].TvgLogo)
	assert.Equal(t, "BBC One", res.Entries[0].TvgName)
	assert.Equal(t, models.DefaultGroupTitle, res.Entries[3].GroupTitle)

	// Discovery order: News=1, Sports=2, Ungrouped=3; display order is by name.
	assert.Equal(t, []models.Group{
		{ID: 1, Name: "News", Count: 2},
		{ID: 2, Name: "Sports", Count: 1},
		{ID: 3, Name: "Ungrouped", Count: 1},
	}, res.Groups)
	assert.Equal(t, "Successfully processed 4 channels in 3 groups", res.Message())
}

func TestParseNoExtinf(t *testing.T) {
	for name, text := range map[string]string{
		"empty":       "",
		"header only": "#EXTM3U\n",
		"urls only":   "#EXTM3U\nhttp://a\nhttp://b",
		"lowercase":   "#extinf:-1,A\nhttp://a",
	} {
		t.Run(name, func(t *testing.T) {
			res := ParseText(text)
			assert.Equal(t, StatusNoEntriesFound, res.Status)
			assert.ErrorIs(t, res.Err(), ErrNoEntriesFound)
			assert.Empty(t, res.Entries)
			assert.Empty(t, res.Groups)
			assert.NotNil(t, res.Entries)
			assert.NotNil(t, res.Groups)
			assert.Equal(t, "No valid M3U entries found in file", res.Message())
		})
	}
}

func TestParseEmptyResult(t *testing.T) {
	res := ParseText("#EXTM3U\n#EXTINF:-1,Dangling")

	assert.Equal(t, StatusEmpty, res.Status)
	assert.ErrorIs(t, res.Err(), ErrEmptyResult)
	assert.Empty(t, res.Entries)
	assert.Empty(t, res.Groups)
	assert.Equal(t, "No channels found in file", res.Message())
}

func TestParsePairSlots(t *testing.T) {
	t.Run("metadata followed by directive is dropped", func(t *testing.T) {
		res := Parse([]string{
			"#EXTM3U",
			"#EXTINF:-1,A",
			"#EXTVLCOPT:http-user-agent=x",
			"#EXTINF:-1,B",
			"http://b",
		})
		require.Len(t, res.Entries, 1)
		assert.Equal(t, "B", res.Entries[0].Title)
		assert.Equal(t, int64(1), res.Entries[0].ID)
	})

	t.Run("blank line shifts the pairing", func(t *testing.T) {
		res := Parse([]string{
			"#EXTINF:-1,A",
			"http://a",
			"",
			"#EXTINF:-1,B",
			"http://b",
		})
		require.Len(t, res.Entries, 1)
		assert.Equal(t, "A", res.Entries[0].Title)
	})

	t.Run("whitespace-only url line is rejected", func(t *testing.T) {
		res := Parse([]string{"#EXTINF:-1,A", "   ", "#EXTINF:-1,B", "http://b"})
		require.Len(t, res.Entries, 1)
		assert.Equal(t, "B", res.Entries[0].Title)
	})

	t.Run("preamble before first extinf is ignored", func(t *testing.T) {
		res := Parse([]string{"garbage", "#EXTM3U x-tvg-url=\"http://epg\"", "#EXTINF:-1,A", "http://a"})
		require.Len(t, res.Entries, 1)
		assert.Equal(t, "http://a", res.Entries[0].URL)
	})
}

func TestParseCRLF(t *testing.T) {
	res := ParseText("#EXTM3U\r\n#EXTINF:-1 group-title=\"News\",BBC One \r\n  http://example.com/bbc1 \r\n")

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "BBC One", res.Entries[0].Title)
	assert.Equal(t, "http://example.com/bbc1", res.Entries[0].URL)
}

func TestParseTitleSplit(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		title string
		group string
	}{
		{"commas in title", `#EXTINF:-1 group-title="News",Hello, World`, "Hello, World", "News"},
		{"comma inside quoted attribute", `#EXTINF:-1 group-title="A, B",Title`, `B",Title`, models.DefaultGroupTitle},
		{"trailing comma", `#EXTINF:-1 group-title="News",`, models.DefaultTitle, "News"},
		{"blank title", `#EXTINF:-1 group-title="News",   `, models.DefaultTitle, "News"},
		{"no comma", `#EXTINF:-1 group-title="News"`, models.DefaultTitle, "News"},
		{"bare", `#EXTINF:-1,Plain`, "Plain", models.DefaultGroupTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse([]string{tt.line, "http://x"})
			require.Len(t, res.Entries, 1)
			assert.Equal(t, tt.title, res.Entries[0].Title)
			assert.Equal(t, tt.group, res.Entries[0].GroupTitle)
		})
	}
}

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want models.Channel
	}{
		{
			name: "last occurrence wins",
			line: `#EXTINF:-1 tvg-id="a" tvg-id="b",T`,
			want: models.Channel{TvgID: "b", GroupTitle: models.DefaultGroupTitle},
		},
		{
			name: "unknown and prefixed keys ignored",
			line: `#EXTINF:-1 x-tvg-id="bad" tvg-chno="7" tvg-name="Name",T`,
			want: models.Channel{TvgName: "Name", GroupTitle: models.DefaultGroupTitle},
		},
		{
			name: "keys are case sensitive",
			line: `#EXTINF:-1 TVG-ID="upper" tvg-logo="l",T`,
			want: models.Channel{TvgLogo: "l", GroupTitle: models.DefaultGroupTitle},
		},
		{
			name: "adjacent attributes",
			line: `#EXTINF:-1 tvg-name="A"group-title="B",T`,
			want: models.Channel{TvgName: "A", GroupTitle: "B"},
		},
		{
			name: "empty group falls back",
			line: `#EXTINF:-1 group-title="",T`,
			want: models.Channel{GroupTitle: models.DefaultGroupTitle},
		},
		{
			name: "unterminated value",
			line: `#EXTINF:-1 tvg-id="abc,T`,
			want: models.Channel{GroupTitle: models.DefaultGroupTitle},
		},
		{
			name: "spaces inside values",
			line: `#EXTINF:-1 tvg-name="BBC One HD" group-title="UK | News",T`,
			want: models.Channel{TvgName: "BBC One HD", GroupTitle: "UK | News"},
		},
		{
			name: "no-break space separator",
			line: "#EXTINF:-1 tvg-id=\"a\"\u00a0group-title=\"News\",T",
			want: models.Channel{TvgID: "a", GroupTitle: "News"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse([]string{tt.line, "http://x"})
			require.Len(t, res.Entries, 1)
			got := res.Entries[0]
			assert.Equal(t, tt.want.TvgID, got.TvgID)
			assert.Equal(t, tt.want.TvgName, got.TvgName)
			assert.Equal(t, tt.want.TvgLogo, got.TvgLogo)
			assert.Equal(t, tt.want.GroupTitle, got.GroupTitle)
		})
	}
}

func TestParseGroupPartition(t *testing.T) {
	res := ParseText(samplePlaylist + "\n#EXTINF:-1 group-title=\"Sports\",Extra\nhttp://example.com/extra")

	total := 0
	names := make(map[string]int)
	for _, g := range res.Groups {
		total += g.Count
		names[g.Name]++
	}
	assert.Equal(t, len(res.Entries), total)
	for _, e := range res.Entries {
		assert.Equal(t, 1, names[e.GroupTitle], "entry %d must belong to exactly one group", e.ID)
	}
}

func TestParseGroupCollation(t *testing.T) {
	var lines []string
	for _, g := range []string{"Zulu", "alpha", "Éclair", "delta", "alpha"} {
		lines = append(lines, `#EXTINF:-1 group-title="`+g+`",`+g, "http://x/"+g)
	}

	res := Parse(lines)

	assert.Equal(t, []models.Group{
		{ID: 2, Name: "alpha", Count: 2},
		{ID: 4, Name: "delta", Count: 1},
		{ID: 3, Name: "Éclair", Count: 1},
		{ID: 1, Name: "Zulu", Count: 1},
	}, res.Groups)
}

func TestParserLocale(t *testing.T) {
	lines := []string{
		`#EXTINF:-1 group-title="Öl",A`, "http://a",
		`#EXTINF:-1 group-title="Zucker",B`, "http://b",
	}

	// Swedish sorts Ö after Z; the root locale treats it as O.
	sv := Parser{Locale: language.Swedish}.Parse(lines)
	root := Parse(lines)

	assert.Equal(t, "Zucker", sv.Groups[0].Name)
	assert.Equal(t, "Öl", root.Groups[0].Name)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c\rd", ""}, SplitLines("a\r\nb\nc\rd\n"))
	assert.Equal(t, []string{""}, SplitLines(""))
}
