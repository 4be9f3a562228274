package system

import (
	"io"
	"time"

	coresys "github.com/l1jgo/cubecollect/internal/core/system"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ScoreDisplay prints "Score: N" whenever the score changed since the last
// tick. Formatting follows the configured locale. Phase 8 (Output).
type ScoreDisplay struct {
	score   ScoreReader
	out     io.Writer
	printer *message.Printer
	last    int64
	shown   bool
}

func NewScoreDisplay(score ScoreReader, out io.Writer, locale string) *ScoreDisplay {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &ScoreDisplay{score: score, out: out, printer: message.NewPrinter(tag)}
}

func (s *ScoreDisplay) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *ScoreDisplay) Update(_ time.Duration) {
	cur := s.score.Score()
	if s.shown && cur == s.last {
		return
	}
	s.last = cur
	s.shown = true
	s.printer.Fprintf(s.out, "Score: %d\n", cur)
}
