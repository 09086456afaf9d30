package provider

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Body
		wantErr bool
	}{
		{
			name:  "scalar",
			input: `"A single reading."`,
			want:  Body{Kind: BodyScalar, Scalar: "A single reading."},
		},
		{
			name:  "flat chapter",
			input: `["first verse", "second verse"]`,
			want:  Body{Kind: BodyFlat, Flat: []string{"first verse", "second verse"}},
		},
		{
			name:  "nested chapters",
			input: `[["1:1", "1:2"], ["2:1"]]`,
			want:  Body{Kind: BodyNested, Nested: [][]string{{"1:1", "1:2"}, {"2:1"}}},
		},
		{
			name:    "unrecognized shape",
			input:   `{"verse": "no"}`,
			wantErr: true,
		},
		{
			name:    "number",
			input:   `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body Body
			err := json.Unmarshal([]byte(tt.input), &body)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestBody_Flatten(t *testing.T) {
	tests := []struct {
		name         string
		body         Body
		chapterStart int
		want         []FlatUnit
	}{
		{
			name:         "scalar",
			body:         Body{Kind: BodyScalar, Scalar: "one"},
			chapterStart: 3,
			want: []FlatUnit{
				{Text: "one", Chapter: 3, FirstInChapter: true},
			},
		},
		{
			name:         "flat",
			body:         Body{Kind: BodyFlat, Flat: []string{"a", "b", "c"}},
			chapterStart: 1,
			want: []FlatUnit{
				{Text: "a", Chapter: 1, FirstInChapter: true},
				{Text: "b", Chapter: 1},
				{Text: "c", Chapter: 1},
			},
		},
		{
			name:         "nested advances the chapter per inner array",
			body:         Body{Kind: BodyNested, Nested: [][]string{{"a", "b"}, {"c"}}},
			chapterStart: 4,
			want: []FlatUnit{
				{Text: "a", Chapter: 4, FirstInChapter: true},
				{Text: "b", Chapter: 4},
				{Text: "c", Chapter: 5, FirstInChapter: true},
			},
		},
		{
			name:         "empty flat",
			body:         Body{Kind: BodyFlat},
			chapterStart: 1,
			want:         []FlatUnit{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.body.Flatten(tt.chapterStart))
		})
	}
}
