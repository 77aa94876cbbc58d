// Package fixture serves the club backend endpoints from a YAML content file,
// with per-path failure, malformed-body and delay injection for development.
package fixture

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"clubsite/internal/club"
)

// Content is what the fixture backend serves.
type Content struct {
	Club    []club.Profile `yaml:"club"`
	Events  []club.Event   `yaml:"events"`
	Team    []club.Member  `yaml:"team"`
	Socials []club.Social  `yaml:"socials"`

	// Failures maps a path to the status it answers with instead of its list.
	Failures map[string]int `yaml:"failures"`
	// Malformed lists paths that answer with a body that is not valid JSON.
	Malformed []string `yaml:"malformed"`
	// Delays holds a response before writing it.
	Delays map[string]time.Duration `yaml:"delays"`
}

// LoadContent reads a Content file.
func LoadContent(path string) (Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read content %s: %w", path, err)
	}
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Content{}, fmt.Errorf("parse content %s: %w", path, err)
	}
	for path, code := range c.Failures {
		if code < 400 || code > 599 {
			return Content{}, fmt.Errorf("failures[%s]: status %d is not an error status", path, code)
		}
	}
	return c, nil
}

// DefaultContent is a small sample club used when no content file is given.
func DefaultContent() Content {
	return Content{
		Club: []club.Profile{{
			Name:           "Open Source Society",
			Tagline:        "Read • Fork • Ship",
			About:          "We meet every Thursday to contribute to open source together.",
			Vision:         "Every member lands a merged pull request.",
			Mission:        "Pair newcomers with maintainers and ship small fixes weekly.",
			PrimaryColor:   "#10b981",
			SecondaryColor: "#f59e0b",
		}},
		Events: []club.Event{
			{Title: "Hacktoberfest Kickoff", Date: "2025-10-01", Location: "Room 204", Description: "Find your first issue.", Tags: []string{"Open Source", "Beginner"}},
			{Title: "Git Internals", Date: "2025-10-15", Location: "Lab 1", Description: "Objects, refs and packfiles.", Tags: []string{"Talk", "Git"}},
		},
		Team: []club.Member{
			{Name: "Dana Ortiz", Role: "Coordinator"},
			{Name: "Kenji Watanabe", Role: "Maintainer Liaison"},
		},
		Socials: []club.Social{
			{Platform: "GitHub", URL: "https://github.com"},
			{Platform: "Email", URL: "mailto:oss@club.example"},
		},
	}
}
