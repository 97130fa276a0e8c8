package models

import (
	"encoding/json"
	"fmt"
)

// ImportEntry accepts the two wire shapes the legacy importer produced:
// a ["word", "meaning"] pair or a {"word": ..., "meaning": ..., "image_url": ...}
// object. The variant is resolved here, once; everything past the JSON
// boundary sees a single canonical shape.
type ImportEntry struct {
	Word     string  `json:"word"`
	Meaning  string  `json:"meaning"`
	ImageURL *string `json:"image_url"`
}

func (e *ImportEntry) UnmarshalJSON(data []byte) error {
	// Array form first: ["word", "meaning"]
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("pair entry must have exactly 2 elements, got %d", len(pair))
		}
		e.Word = pair[0]
		e.Meaning = pair[1]
		e.ImageURL = nil
		return nil
	}

	// Object form. Alias type avoids recursing into this method.
	type entryObject ImportEntry
	var obj entryObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("entry must be a [word, meaning] pair or an object: %w", err)
	}
	*e = ImportEntry(obj)
	return nil
}
