package m3u

import (
	"io"
	"strings"
	"time"

	"github.com/voyagen/m3ugroups/internal/models"
)

const header = "#EXTM3U"

// Generate renders entries as M3U text: the #EXTM3U header followed by one
// EXTINF line and one URL line per entry, joined by "\n" with no trailing newline.
func Generate(entries []models.Channel) string {
	var b strings.Builder
	b.WriteString(header)
	for _, e := range entries {
		b.WriteByte('\n')
		b.WriteString(extinfLine(e))
		b.WriteByte('\n')
		b.WriteString(e.URL)
	}
	return b.String()
}

// Write writes the output of Generate to w.
func Write(w io.Writer, entries []models.Channel) error {
	_, err := io.WriteString(w, Generate(entries))
	return err
}

// ExportFilename names an export made at t, e.g. playlist_2024-05-01.m3u.
// The date is the UTC calendar date.
func ExportFilename(t time.Time) string {
	return "playlist_" + t.UTC().Format("2006-01-02") + ".m3u"
}

// extinfLine emits non-empty attributes in fixed order; the title is written
// verbatim after the first comma.
func extinfLine(e models.Channel) string {
	attrs := make([]string, 0, 4)
	for _, kv := range [...][2]string{
		{AttrTvgID, e.TvgID},
		{AttrTvgName, e.TvgName},
		{AttrTvgLogo, e.TvgLogo},
		{AttrGroupTitle, e.GroupTitle},
	} {
		if kv[1] != "" {
			attrs = append(attrs, kv[0]+`="`+kv[1]+`"`)
		}
	}
	return "#EXTINF:-1 " + strings.Join(attrs, " ") + "," + e.Title
}
