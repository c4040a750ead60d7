package questionbank

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// supportedIndexMajor is the module index format major version this build reads.
const supportedIndexMajor = "v1"

// flexibleID accepts both string and numeric question ids.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

type rawQuestion struct {
	ID          flexibleID `json:"id"`
	Question    string     `json:"question"`
	Text        string     `json:"text"`
	Options     []string   `json:"options"`
	Correct     int        `json:"correct"`
	Subtopic    string     `json:"subtopic"`
	Difficulty  string     `json:"difficulty"`
	Explanation string     `json:"explanation"`
}

type rawModule struct {
	Key          string         `json:"key"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Count        int            `json:"count"`
	Subtopics    map[string]int `json:"subtopics"`
	Difficulties map[string]int `json:"difficulties"`
}

type rawIndex struct {
	Version string      `json:"version"`
	Modules []rawModule `json:"modules"`
}

// ParseQuestions validates and decodes the question dataset.
func ParseQuestions(raw []byte) (map[string][]Question, error) {
	if err := validateDocument(QuestionsSchema, raw); err != nil {
		return nil, err
	}

	var doc map[string][]rawQuestion
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string][]Question, len(doc))
	for _, module := range keys {
		qs, err := convertQuestions(module, doc[module])
		if err != nil {
			return nil, err
		}
		out[module] = qs
	}
	return out, nil
}

func convertQuestions(module string, raws []rawQuestion) ([]Question, error) {
	seen := make(map[string]int, len(raws))
	qs := make([]Question, 0, len(raws))
	for i, r := range raws {
		id := strings.TrimSpace(string(r.ID))
		if id == "" {
			id = fmt.Sprintf("%s-%d", module, i+1)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("module %q: duplicate question id %q (entries %d and %d)", module, id, prev+1, i+1)
		}
		seen[id] = i

		text := r.Question
		if text == "" {
			text = r.Text
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("module %q: question %q has no text", module, id)
		}

		if r.Correct < 0 || r.Correct >= len(r.Options) {
			return nil, fmt.Errorf("module %q: question %q: correct index %d out of range [0,%d)",
				module, id, r.Correct, len(r.Options))
		}

		subtopic := strings.TrimSpace(r.Subtopic)
		if subtopic == "" {
			subtopic = DefaultSubtopic
		}

		difficulty := Difficulty(r.Difficulty)
		if difficulty == "" {
			difficulty = DifficultyBasic
		}
		if !difficulty.Valid() {
			return nil, fmt.Errorf("module %q: question %q: unknown difficulty %q", module, id, r.Difficulty)
		}

		qs = append(qs, Question{
			ID:           id,
			Module:       module,
			Subtopic:     subtopic,
			Difficulty:   difficulty,
			Text:         text,
			Options:      append([]string(nil), r.Options...),
			CorrectIndex: r.Correct,
			Explanation:  strings.TrimSpace(r.Explanation),
		})
	}
	return qs, nil
}

// ParseModules validates and decodes the module index.
func ParseModules(raw []byte) ([]ModuleDescriptor, error) {
	if err := validateDocument(ModulesSchema, raw); err != nil {
		return nil, err
	}

	var idx rawIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("decode modules: %w", err)
	}

	if idx.Version != "" {
		if !semver.IsValid(idx.Version) {
			return nil, fmt.Errorf("invalid index version %q", idx.Version)
		}
		if major := semver.Major(idx.Version); major != supportedIndexMajor {
			return nil, fmt.Errorf("unsupported index version %s (want %s.x)", idx.Version, supportedIndexMajor)
		}
	}

	seen := make(map[string]bool, len(idx.Modules))
	mods := make([]ModuleDescriptor, 0, len(idx.Modules))
	for _, m := range idx.Modules {
		if seen[m.Key] {
			return nil, fmt.Errorf("duplicate module key %q", m.Key)
		}
		seen[m.Key] = true

		d := ModuleDescriptor{
			Key:         m.Key,
			Title:       m.Title,
			Description: m.Description,
			Count:       m.Count,
		}
		if len(m.Subtopics) > 0 {
			d.SubtopicCounts = make(map[string]int, len(m.Subtopics))
			for k, v := range m.Subtopics {
				d.SubtopicCounts[k] = v
			}
		}
		if len(m.Difficulties) > 0 {
			d.DifficultyCounts = make(map[Difficulty]int, len(m.Difficulties))
			for k, v := range m.Difficulties {
				d.DifficultyCounts[Difficulty(k)] = v
			}
		}
		mods = append(mods, d)
	}
	return mods, nil
}
