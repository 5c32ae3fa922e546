package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/brixbalance/internal/domain"
)

const recoveredToast = "Unexpected error (see logs)"

// errRecovered stands in for a result lost to a recovered panic.
var errRecovered = &domain.OpError{
	Op:   "tui.recover",
	Kind: domain.KindExecution,
	Err:  errors.New("internal error"),
}

// safeModel keeps a panic in the form from taking down the terminal. After a
// panic the inputs go back to their values before the message and the result
// is recomputed, so no figures from the failed update stay on screen.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	// fields share their backing array across model copies; keep the text.
	prev := make([]string, len(s.m.fields))
	for i, f := range s.m.fields {
		prev[i] = f.input.Value()
	}

	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.update", r)
			s.restore(prev)
			tm = s
			cmd = nil
		}
	}()

	inner, c := s.m.Update(msg)

	if mm, ok := inner.(model); ok {
		s.m = mm
	} else if sm, ok := inner.(safeModel); ok {
		s = sm
	}

	return s, c
}

func (s *safeModel) restore(prev []string) {
	for i := range s.m.fields {
		if i < len(prev) {
			s.m.fields[i].input.SetValue(prev[i])
			s.m.fields[i].input.CursorEnd()
		}
	}
	s.m.showExplain = false
	s.m.balance = domain.Balance{}
	s.m.err = errRecovered
	s.m.toast = recoveredToast

	if s.m.deps.Solver == nil || len(s.m.fields) != len(prev) {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.recompute", r)
			s.m.balance = domain.Balance{}
			s.m.err = errRecovered
		}
	}()
	s.m.recompute()
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r)
			out = recoveredToast
		}
	}()
	return s.m.View()
}

func (s safeModel) logPanic(where string, r any) {
	s.log.Error("panic.recovered",
		"where", where,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*safeModel)(nil)
