package gamedb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one id/name pair from a bucket manifest.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Manifest is an ordered bucket listing.
type Manifest struct {
	Entries []Entry `json:"entries"`
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

type manifestValue struct {
	Name string `json:"name"`
}

// UnmarshalJSON decodes a bucket object, preserving key order.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("manifest: expected object, got %v", tok)
	}
	entries := make([]Entry, 0, 64)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("manifest: expected string key, got %v", keyTok)
		}
		var value manifestValue
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("manifest entry %q: %w", key, err)
		}
		entries = append(entries, Entry{ID: key, Name: value.Name})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	m.Entries = entries
	return nil
}

// Cover holds the IGDB cover reference of a game.
type Cover struct {
	URL     string `json:"url"`
	ImageID string `json:"image_id,omitempty"`
}

// Game is a full catalog record.
type Game struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Cover   *Cover `json:"cover,omitempty"`
	Summary string `json:"summary,omitempty"`
	URL     string `json:"url,omitempty"`
}

// CoverHash returns the image hash embedded in the game's cover URL.
func (g *Game) CoverHash() (string, bool) {
	if g == nil || g.Cover == nil {
		return "", false
	}
	return CoverHash(g.Cover.URL)
}

// CoverHash extracts the segment between the last '/' and the last '.' of an
// IGDB image URL, e.g. "//images.igdb.com/.../t_thumb/co1rs4.jpg" -> "co1rs4".
// A URL without an extension yields everything after the last '/'.
func CoverHash(coverURL string) (string, bool) {
	coverURL = strings.TrimSpace(coverURL)
	if coverURL == "" {
		return "", false
	}
	start := strings.LastIndex(coverURL, "/") + 1
	end := strings.LastIndex(coverURL, ".")
	if end < start {
		end = len(coverURL)
	}
	hash := coverURL[start:end]
	if hash == "" {
		return "", false
	}
	return hash, true
}
