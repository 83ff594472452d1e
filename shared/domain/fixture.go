package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// TopicFixture is a topic record as it appears in seed files.
// Optional fields are pointers so that absence can be told apart from zero values.
type TopicFixture struct {
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Color       *string       `json:"color,omitempty"`
	Posts       []PostFixture `json:"posts,omitempty"`
}

type PostFixture struct {
	Name    string     `json:"name"`
	Likes   *int       `json:"likes,omitempty"`
	Content string     `json:"content"`
	Date    *time.Time `json:"date,omitempty"`
}

// FixtureSet decodes either a bare array of topic records
// or the paged export object {"records": [...]}.
type FixtureSet []TopicFixture

func (s *FixtureSet) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []TopicFixture
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return err
		}
		*s = records
		return nil
	}

	var paged struct {
		Records []TopicFixture `json:"records"`
	}
	if err := json.Unmarshal(trimmed, &paged); err != nil {
		return err
	}
	*s = paged.Records
	return nil
}

// Counts reports how many topics and posts the set describes.
func (s FixtureSet) Counts() (topics, posts int) {
	for _, r := range s {
		posts += len(r.Posts)
	}
	return len(s), posts
}
