package questionbank

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Loader fetches and validates both datasets and assembles a Bank.
type Loader struct {
	// Questions supplies the question dataset.
	Questions Source

	// Modules supplies the module index.
	Modules Source

	// RequiredModules lists keys that must be present in both datasets.
	// When empty, every key in the index must have a question list.
	RequiredModules []string
}

// NewLoader builds a Loader for the given dataset locations (paths or URLs).
func NewLoader(questionsLocation, modulesLocation string) *Loader {
	return &Loader{
		Questions: SourceFor(questionsLocation),
		Modules:   SourceFor(modulesLocation),
	}
}

// Load fetches both datasets concurrently. Any fetch, parse or validation
// failure returns *ErrDataUnavailable; there are no retries.
func (l *Loader) Load(ctx context.Context) (*Bank, error) {
	var questionsRaw, modulesRaw []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := l.Questions.Fetch(gctx)
		if err != nil {
			return &ErrDataUnavailable{Dataset: DatasetQuestions, Err: err}
		}
		questionsRaw = b
		return nil
	})
	g.Go(func() error {
		b, err := l.Modules.Fetch(gctx)
		if err != nil {
			return &ErrDataUnavailable{Dataset: DatasetModules, Err: err}
		}
		modulesRaw = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	questions, err := ParseQuestions(questionsRaw)
	if err != nil {
		return nil, &ErrDataUnavailable{Dataset: DatasetQuestions, Err: err}
	}
	modules, err := ParseModules(modulesRaw)
	if err != nil {
		return nil, &ErrDataUnavailable{Dataset: DatasetModules, Err: err}
	}

	if err := checkCoverage(modules, questions, l.RequiredModules); err != nil {
		return nil, &ErrDataUnavailable{Err: err}
	}

	return NewBank(modules, questions), nil
}

// checkCoverage verifies the expected module keys exist in both datasets.
// With no required list, the index and the question dataset must name the
// same modules. With one, only the listed keys are checked and extra
// question modules are kept under descriptors titled by key.
func checkCoverage(modules []ModuleDescriptor, questions map[string][]Question, required []string) error {
	indexed := make(map[string]bool, len(modules))
	for _, m := range modules {
		indexed[m.Key] = true
	}

	if len(required) == 0 {
		for _, m := range modules {
			if _, ok := questions[m.Key]; !ok {
				return fmt.Errorf("module %q is indexed but has no questions entry", m.Key)
			}
		}
		var unindexed []string
		for key := range questions {
			if !indexed[key] {
				unindexed = append(unindexed, key)
			}
		}
		if len(unindexed) > 0 {
			sort.Strings(unindexed)
			return fmt.Errorf("module %q has questions but is missing from index", unindexed[0])
		}
		return nil
	}

	for _, key := range required {
		if !indexed[key] {
			return fmt.Errorf("required module %q missing from index", key)
		}
		if _, ok := questions[key]; !ok {
			return fmt.Errorf("required module %q missing from questions", key)
		}
	}
	return nil
}
