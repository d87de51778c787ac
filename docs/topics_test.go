package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics extracts the topic names listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var names []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			names = append(names, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	return names
}

func TestTopicsMatchReadme(t *testing.T) {
	// The readme is the topic index; it must agree with the embedded files
	// in both directions.
	listed := readmeTopics(t)

	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("readme.md lists topic %q but it cannot be loaded: %v", topic, err)
		}
	}
	for _, topic := range ListTopics() {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*): %v", err)
	}
	single, err := GetTopic("trading")
	if err != nil {
		t.Fatalf("GetTopic(trading): %v", err)
	}
	if !strings.Contains(all, single) {
		t.Error("GetTopics(*) does not contain the trading topic")
	}

	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("GetTopic on an unknown topic should fail")
	}
}

func TestTopicsStartWithHeading(t *testing.T) {
	// Every topic should render as a standalone document, so it must open
	// with a level 1 heading.
	topics := append(ListTopics(), "readme")
	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))

			first := root.FirstChild()
			heading, ok := first.(*ast.Heading)
			if !ok {
				t.Fatalf("topic %q does not start with a heading", topic)
			}
			if heading.Level != 1 {
				t.Errorf("topic %q opens with a level %d heading, want 1", topic, heading.Level)
			}
		})
	}
}
