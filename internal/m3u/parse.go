// Package m3u parses extended M3U playlists (#EXTM3U/#EXTINF) into channel
// entries and groups, and generates M3U text from a list of entries.
//
// Parsing is lenient: malformed EXTINF/URL pairs are dropped, missing attributes
// fall back to defaults, and the only reported outcomes are the three statuses
// of Result. Nothing in this package performs I/O.
package m3u

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/voyagen/m3ugroups/internal/models"
)

const extinfPrefix = "#EXTINF"

// Parser holds parse options. The zero value sorts groups with the root locale.
type Parser struct {
	// Locale drives the collation used to sort groups by name.
	Locale language.Tag
}

// Parse parses lines with the default Parser.
func Parse(lines []string) Result {
	return Parser{}.Parse(lines)
}

// ParseText splits text into lines and parses it with the default Parser.
func ParseText(text string) Result {
	return Parser{}.Parse(SplitLines(text))
}

// SplitLines splits text on \n, dropping a \r that precedes each \n.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Parse converts lines into channel entries and sorted groups.
//
// Everything before the first #EXTINF line is ignored. From there lines are
// consumed two at a time; a pair is kept only when the first line is an EXTINF
// line and the second is a non-empty line that does not start with '#'.
// Rejected pairs still consume both lines.
func (p Parser) Parse(lines []string) Result {
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, extinfPrefix) {
			start = i
			break
		}
	}
	if start < 0 {
		return Result{
			Entries: []models.Channel{},
			Groups:  []models.Group{},
			Status:  StatusNoEntriesFound,
		}
	}

	entries := []models.Channel{}
	for i := start; i < len(lines); i += 2 {
		if i+1 >= len(lines) {
			break
		}
		info, url := lines[i], lines[i+1]
		if !strings.HasPrefix(info, extinfPrefix) || strings.TrimSpace(url) == "" || strings.HasPrefix(url, "#") {
			continue
		}

		ch := parseEntry(info, url)
		ch.ID = int64(len(entries) + 1)
		entries = append(entries, ch)
	}

	groups := p.sortGroups(deriveGroups(entries))
	status := StatusOK
	if len(entries) == 0 {
		status = StatusEmpty
	}
	return Result{Entries: entries, Groups: groups, Status: status}
}

// parseEntry builds a channel from an accepted EXTINF/URL pair. ID is left unset.
func parseEntry(info, url string) models.Channel {
	attrPart, title := splitTitle(info)
	attrs := scanAttributes(attrPart)

	ch := models.Channel{
		TvgID:      attrs[AttrTvgID],
		TvgName:    attrs[AttrTvgName],
		TvgLogo:    attrs[AttrTvgLogo],
		GroupTitle: attrs[AttrGroupTitle],
		Title:      strings.TrimSpace(title),
		URL:        strings.TrimSpace(url),
	}
	if ch.GroupTitle == "" {
		ch.GroupTitle = models.DefaultGroupTitle
	}
	if ch.Title == "" {
		ch.Title = models.DefaultTitle
	}
	return ch
}

// splitTitle splits an EXTINF line at its first comma. A comma that ends the
// line does not count, so such a line has no title.
func splitTitle(line string) (attrs, title string) {
	i := strings.IndexByte(line, ',')
	if i < 0 || i == len(line)-1 {
		return line, ""
	}
	return line[:i], line[i+1:]
}
