package applist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"coverfinder/internal/fileutil"
)

// Format selects the file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const appsKey = "apps"

// FormatFromPath picks the encoding from the file extension; unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// File is a decoded application list.
type File struct {
	Format  Format
	Records []Record

	wrapped  bool
	envelope map[string]any
}

// Load reads and decodes path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read app list: %w", err)
	}
	file, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return file, nil
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*File, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		format = FormatJSON
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	}

	file := &File{Format: format}
	switch v := doc.(type) {
	case []any:
		records, err := toRecords(v)
		if err != nil {
			return nil, err
		}
		file.Records = records
	case map[string]any:
		apps, ok := v[appsKey].([]any)
		if !ok {
			return nil, errors.New(`app list object must contain an "apps" array`)
		}
		records, err := toRecords(apps)
		if err != nil {
			return nil, err
		}
		file.Records = records
		file.wrapped = true
		file.envelope = v
	case nil:
		file.Records = []Record{}
	default:
		return nil, fmt.Errorf("app list must be an array or object, got %T", doc)
	}
	return file, nil
}

func toRecords(items []any) ([]Record, error) {
	records := make([]Record, 0, len(items))
	for idx, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("app list entry %d must be an object, got %T", idx, item)
		}
		records = append(records, Record(obj))
	}
	return records, nil
}

// Encode serializes the list in its format, keeping the original layout.
func (f *File) Encode() ([]byte, error) {
	var doc any = f.Records
	if f.wrapped {
		envelope := make(map[string]any, len(f.envelope))
		for key, value := range f.envelope {
			envelope[key] = value
		}
		envelope[appsKey] = f.Records
		doc = envelope
	}

	if f.Format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save atomically writes the list to path, creating parent directories.
func (f *File) Save(path string) error {
	data, err := f.Encode()
	if err != nil {
		return fmt.Errorf("encode app list: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write app list: %w", err)
	}
	return nil
}
