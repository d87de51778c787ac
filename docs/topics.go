// Package docs embeds the user documentation topics shown by the topic verb.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var topics embed.FS

// GetTopic returns the content of a single documentation topic.
// The special topic "*" expands to all topics.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics(ListTopics()...)
	}
	content, err := topics.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics concatenates the content of several topics, expanding "*".
func GetTopics(names ...string) (string, error) {
	var expanded []string
	for _, name := range names {
		if name == "*" {
			expanded = append(expanded, ListTopics()...)
			continue
		}
		expanded = append(expanded, name)
	}
	var b strings.Builder
	for _, name := range expanded {
		content, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ListTopics returns every available topic name, sorted, excluding the
// readme index itself.
func ListTopics() []string {
	files, err := fs.Glob(topics, "*.md")
	if err != nil {
		return nil
	}
	var names []string
	for _, f := range files {
		name := strings.TrimSuffix(f, ".md")
		if name == "readme" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
