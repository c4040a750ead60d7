package questionbank

import (
	"fmt"
	"sort"
)

// Bank is the loaded, immutable question store. Accessors return copies
// so callers may reorder freely.
type Bank struct {
	modules   []ModuleDescriptor
	byKey     map[string]int
	questions map[string][]Question
}

// NewBank builds a Bank from module metadata and questions keyed by module.
// Descriptor counts missing from modules are derived from questions.
// Questions for keys absent from modules get a descriptor titled by key.
func NewBank(modules []ModuleDescriptor, questions map[string][]Question) *Bank {
	b := &Bank{
		byKey:     make(map[string]int, len(modules)),
		questions: make(map[string][]Question, len(questions)),
	}

	for _, m := range modules {
		if _, dup := b.byKey[m.Key]; dup {
			continue
		}
		b.byKey[m.Key] = len(b.modules)
		b.modules = append(b.modules, m)
	}
	var unindexed []string
	for key := range questions {
		if _, ok := b.byKey[key]; !ok {
			unindexed = append(unindexed, key)
		}
	}
	sort.Strings(unindexed)
	for _, key := range unindexed {
		b.byKey[key] = len(b.modules)
		b.modules = append(b.modules, ModuleDescriptor{Key: key, Title: key})
	}

	for key, qs := range questions {
		cp := make([]Question, len(qs))
		for i, q := range qs {
			cp[i] = q.Clone()
		}
		b.questions[key] = cp
	}

	for i := range b.modules {
		b.modules[i] = withDerivedCounts(b.modules[i], b.questions[b.modules[i].Key])
	}
	return b
}

// withDerivedCounts fills Count and the breakdowns when the index left
// them empty.
func withDerivedCounts(m ModuleDescriptor, qs []Question) ModuleDescriptor {
	if m.Count == 0 {
		m.Count = len(qs)
	}
	if len(m.SubtopicCounts) == 0 {
		m.SubtopicCounts = make(map[string]int)
		for _, q := range qs {
			m.SubtopicCounts[q.Subtopic]++
		}
	}
	if len(m.DifficultyCounts) == 0 {
		m.DifficultyCounts = make(map[Difficulty]int)
		for _, q := range qs {
			m.DifficultyCounts[q.Difficulty]++
		}
	}
	return m
}

// Modules returns module descriptors in index order.
func (b *Bank) Modules() []ModuleDescriptor {
	out := make([]ModuleDescriptor, len(b.modules))
	copy(out, b.modules)
	return out
}

// Module returns the descriptor for key.
func (b *Bank) Module(key string) (ModuleDescriptor, error) {
	i, ok := b.byKey[key]
	if !ok {
		return ModuleDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownModule, key)
	}
	return b.modules[i], nil
}

// Has reports whether key names a module.
func (b *Bank) Has(key string) bool {
	_, ok := b.byKey[key]
	return ok
}

// Questions returns a copy of the questions for key, in dataset order.
// Unknown keys yield nil.
func (b *Bank) Questions(key string) []Question {
	qs := b.questions[key]
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
