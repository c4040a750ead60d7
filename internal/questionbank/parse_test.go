package questionbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuestions = `{
  "teoria-riesgo": [
    {"id": "tr-1", "question": "¿Qué es el riesgo?", "options": ["A", "B", "C"], "correct": 2,
     "subtopic": "Conceptos", "difficulty": "intermediate", "explanation": "Porque C."},
    {"question": "Sin id ni subtema", "options": ["Sí", "No"], "correct": 0}
  ],
  "sistema-financiero": [
    {"id": 7, "text": "Tasa nominal vs efectiva", "options": ["x", "y"], "correct": 1, "subtopic": "Tasas"}
  ]
}`

const sampleModules = `{
  "version": "v1.2.0",
  "modules": [
    {"key": "teoria-riesgo", "title": "Teoría del riesgo", "description": "Conceptos básicos"},
    {"key": "sistema-financiero", "title": "Sistema financiero", "count": 1, "subtopics": {"Tasas": 1}}
  ]
}`

func TestParseQuestions_Defaults(t *testing.T) {
	qs, err := ParseQuestions([]byte(sampleQuestions))
	require.NoError(t, err)
	require.Len(t, qs["teoria-riesgo"], 2)

	first := qs["teoria-riesgo"][0]
	assert.Equal(t, "tr-1", first.ID)
	assert.Equal(t, "teoria-riesgo", first.Module)
	assert.Equal(t, "Conceptos", first.Subtopic)
	assert.Equal(t, DifficultyIntermediate, first.Difficulty)
	assert.Equal(t, "C", first.CorrectOption())
	assert.Equal(t, "Porque C.", first.Explanation)

	second := qs["teoria-riesgo"][1]
	assert.Equal(t, "teoria-riesgo-2", second.ID, "missing ids are derived from position")
	assert.Equal(t, DefaultSubtopic, second.Subtopic)
	assert.Equal(t, DifficultyBasic, second.Difficulty)

	fin := qs["sistema-financiero"][0]
	assert.Equal(t, "7", fin.ID, "numeric ids are accepted")
	assert.Equal(t, "Tasa nominal vs efectiva", fin.Text, "text is accepted as an alias of question")
}

func TestParseQuestions_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"a": [`},
		{"not an object", `[1, 2, 3]`},
		{"single option", `{"m": [{"question": "q", "options": ["only"], "correct": 0}]}`},
		{"correct out of range", `{"m": [{"question": "q", "options": ["a", "b"], "correct": 2}]}`},
		{"negative correct", `{"m": [{"question": "q", "options": ["a", "b"], "correct": -1}]}`},
		{"missing text", `{"m": [{"options": ["a", "b"], "correct": 0}]}`},
		{"blank text", `{"m": [{"question": "   ", "options": ["a", "b"], "correct": 0}]}`},
		{"bad difficulty", `{"m": [{"question": "q", "options": ["a", "b"], "correct": 0, "difficulty": "expert"}]}`},
		{"duplicate id", `{"m": [
			{"id": "x", "question": "q1", "options": ["a", "b"], "correct": 0},
			{"id": "x", "question": "q2", "options": ["a", "b"], "correct": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestions([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseModules(t *testing.T) {
	mods, err := ParseModules([]byte(sampleModules))
	require.NoError(t, err)
	require.Len(t, mods, 2)
	assert.Equal(t, "teoria-riesgo", mods[0].Key)
	assert.Equal(t, "Teoría del riesgo", mods[0].Title)
	assert.Equal(t, 1, mods[1].Count)
	assert.Equal(t, map[string]int{"Tasas": 1}, mods[1].SubtopicCounts)
}

func TestParseModules_Version(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"", false},
		{"v1.0.0", false},
		{"v1.9.3", false},
		{"1.0.0", true},
		{"v2.0.0", true},
		{"latest", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			doc := `{"version": "` + tt.version + `", "modules": [{"key": "m", "title": "M"}]}`
			_, err := ParseModules([]byte(doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseModules_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no modules", `{}`},
		{"empty modules", `{"modules": []}`},
		{"missing key", `{"modules": [{"title": "x"}]}`},
		{"duplicate key", `{"modules": [{"key": "a", "title": "A"}, {"key": "a", "title": "B"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModules([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
