package quiz

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/repaso/internal/logging"
	"github.com/abhisek/repaso/internal/questionbank"
	"github.com/abhisek/repaso/internal/router"
	"github.com/abhisek/repaso/internal/screen"
	"github.com/abhisek/repaso/internal/screens/results"
	"github.com/abhisek/repaso/internal/session"
	"github.com/abhisek/repaso/internal/ui/components"
	"github.com/abhisek/repaso/internal/ui/layout"
)

// QuizScreen asks the questions of one session.
type QuizScreen struct {
	svc    *screen.Services
	module questionbank.ModuleDescriptor
	sess   *session.Session

	question questionbank.Question
	mc       components.MultiChoice

	// result is set once the current question is answered.
	result *session.Result

	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// New creates a quiz screen over a started session.
func New(svc *screen.Services, module questionbank.ModuleDescriptor, sess *session.Session) *QuizScreen {
	s := &QuizScreen{svc: svc, module: module, sess: sess}
	s.loadCurrent()
	return s
}

func (s *QuizScreen) loadCurrent() {
	q, ok := s.sess.Current()
	if !ok {
		return
	}
	s.question = q
	s.mc = components.NewMultiChoice(q.Options, q.CorrectIndex)
	s.result = nil
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.module.Title
}

func (s *QuizScreen) InterceptsBack() bool { return true }

func (s *QuizScreen) Status() string {
	correct, incorrect := s.sess.Score()
	return fmt.Sprintf("✓ %d  ✗ %d", correct, incorrect)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.result != nil {
		label := "Next"
		if s.sess.IsLast() {
			label = "See results"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "1-9", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case finishMsg:
		return s.finish()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return finishMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	// Feedback shown: Enter or Space moves on.
	if s.result != nil {
		switch key {
		case "enter", "space", " ":
			if s.sess.Next() {
				s.loadCurrent()
				return s, nil
			}
			return s, func() tea.Msg { return finishMsg{} }
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		s.submit(s.mc.ChosenIndex)
	}
	return s, cmd
}

// submit scores choice through the session.
func (s *QuizScreen) submit(choice int) {
	res, err := s.sess.Answer(s.svc.Context(), choice)
	if err != nil {
		log := logging.FromContext(s.svc.Context())
		log.Warn().Err(err).Int("choice", choice).Msg("answer rejected")
		s.errMsg = err.Error()
		s.mc = components.NewMultiChoice(s.question.Options, s.question.CorrectIndex)
		return
	}
	s.errMsg = ""
	s.result = &res
}

func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	ctx := s.svc.Context()
	if len(s.sess.Entries()) == 0 {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	summary := s.sess.Finish(ctx)
	log := logging.FromContext(ctx)
	log.Info().
		Str("module", s.module.Key).
		Str("session", s.sess.ID).
		Int("percent", summary.Percent).
		Msg("session finished")

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: results.New(s.svc, s.module, summary)}
	}
}
