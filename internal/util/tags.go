package util

import (
	"encoding/json"
	"regexp"
	"strings"
)

var hashtagRegex = regexp.MustCompile(`#([\p{L}\p{N}_-]+)`)

// NoteTags finds the #hashtags in a session note, lowercased and de-duplicated
// in order of first appearance.
func NoteTags(note string) []string {
	matches := hashtagRegex.FindAllStringSubmatch(note, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]bool)

	for _, match := range matches {
		tag := strings.ToLower(match[1])
		if !seen[tag] {
			tags = append(tags, tag)
			seen[tag] = true
		}
	}
	return tags
}

// TagsToJSON converts a slice of tags into a JSON array string.
func TagsToJSON(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	bytes, _ := json.Marshal(tags)
	return string(bytes)
}

// JSONToTags converts a JSON array string back into a slice of tags.
// Malformed input yields an empty slice.
func JSONToTags(jsonStr string) []string {
	if jsonStr == "" || jsonStr == "null" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(jsonStr), &tags); err != nil {
		return []string{}
	}
	return tags
}

// HasTag reports whether tags contains tag, ignoring case and a leading '#'.
func HasTag(tags []string, tag string) bool {
	tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
