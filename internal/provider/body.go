package provider

import (
	"encoding/json"
	"fmt"
)

// BodyKind tags the three response shapes the text endpoint produces.
type BodyKind int

const (
	// BodyScalar is a single unit as a bare string.
	BodyScalar BodyKind = iota
	// BodyFlat is a single chapter as a flat array of units.
	BodyFlat
	// BodyNested is a multi-chapter span as an array of chapter arrays.
	BodyNested
)

// Body is the text payload decoded once at the adapter boundary into a tagged
// variant. The rest of the system only ever sees the normalized unit form
// produced by Flatten.
type Body struct {
	Kind   BodyKind
	Scalar string
	Flat   []string
	Nested [][]string
}

func (b *Body) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*b = Body{Kind: BodyScalar, Scalar: scalar}
		return nil
	}

	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		*b = Body{Kind: BodyFlat, Flat: flat}
		return nil
	}

	var nested [][]string
	if err := json.Unmarshal(data, &nested); err == nil {
		*b = Body{Kind: BodyNested, Nested: nested}
		return nil
	}

	return fmt.Errorf("unrecognized text body shape: %s", truncateForError(data))
}

func truncateForError(data []byte) string {
	const max = 120
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

// FlatUnit is one normalized content unit in a single language.
type FlatUnit struct {
	Text           string
	Chapter        int
	FirstInChapter bool
}

// Flatten normalizes the body into ordered units with chapter numbering.
// chapterStart is the chapter the payload begins at; nested payloads advance
// it per inner array.
func (b Body) Flatten(chapterStart int) []FlatUnit {
	switch b.Kind {
	case BodyScalar:
		return []FlatUnit{{Text: b.Scalar, Chapter: chapterStart, FirstInChapter: true}}
	case BodyFlat:
		units := make([]FlatUnit, 0, len(b.Flat))
		for i, text := range b.Flat {
			units = append(units, FlatUnit{Text: text, Chapter: chapterStart, FirstInChapter: i == 0})
		}
		return units
	case BodyNested:
		var units []FlatUnit
		for chapterIndex, chapter := range b.Nested {
			for i, text := range chapter {
				units = append(units, FlatUnit{
					Text:           text,
					Chapter:        chapterStart + chapterIndex,
					FirstInChapter: i == 0,
				})
			}
		}
		return units
	}
	return nil
}
