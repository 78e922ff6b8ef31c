package parse

import (
	"fmt"
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// ParsedRoom holds the structured data parsed from a room identifier.
type ParsedRoom struct {
	Building string
	Name     string
}

// ID returns the canonical "BUILDING/Name" form.
func (p ParsedRoom) ID() string {
	return p.Building + "/" + p.Name
}

// ParseRoomID splits an identifier such as "S/応接室" into building code and room name.
// Whitespace around either part is dropped and inner runs are collapsed; full-width
// slashes are accepted as separators.
func ParseRoomID(raw string) (ParsedRoom, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "／", "/")
	s = spaceRe.ReplaceAllString(s, " ")

	building, name, ok := strings.Cut(s, "/")
	if !ok {
		return ParsedRoom{}, fmt.Errorf("room id %q has no building prefix", raw)
	}
	building = strings.ToUpper(strings.TrimSpace(building))
	name = strings.TrimSpace(name)

	if building == "" || name == "" {
		return ParsedRoom{}, fmt.Errorf("unable to parse room id: %q", raw)
	}
	if strings.Contains(name, "/") {
		return ParsedRoom{}, fmt.Errorf("room id %q has more than one separator", raw)
	}
	return ParsedRoom{Building: building, Name: name}, nil
}
