package tui

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/ports"
	"github.com/aalvaropc/brixbalance/internal/usecase"
)

func testModel() model {
	return newModel(Deps{
		Solver:    usecase.NewSolveBalance(domain.DefaultInputOptions()),
		Precision: 2,
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		mm, ok := next.(model)
		if !ok {
			t.Fatalf("unexpected model type %T", next)
		}
		m = mm
	}
	return m
}

// focusTarget moves focus to the target field and clears it.
func focusTarget(t *testing.T, m model) model {
	t.Helper()
	m = send(t, m, key(tea.KeyTab), key(tea.KeyTab))
	for range m.fields[2].input.Value() {
		m = send(t, m, key(tea.KeyBackspace))
	}
	return m
}

func TestNewModel_ShowsDefaultBalance(t *testing.T) {
	m := testModel()
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}

	v := m.View()
	for _, want := range []string{"Add 1.67 kg of sugar", "51.67 kg", "Sugar to add (M2)", "from 7.00% to 10.00%"} {
		if !strings.Contains(v, want) {
			t.Errorf("expected %q in view:\n%s", want, v)
		}
	}
	if strings.Contains(v, "How it is computed") {
		t.Errorf("explanation must be hidden by default")
	}
}

func TestTypingRecomputes(t *testing.T) {
	m := focusTarget(t, testModel())
	m = send(t, m, runes("12"))

	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if m.balance.Inputs.TargetPercent != 12 {
		t.Fatalf("expected target 12, got %v", m.balance.Inputs.TargetPercent)
	}
	want := 50 * 0.93 / 0.88
	if d := m.balance.FinalMass - want; d > 1e-9 || d < -1e-9 {
		t.Fatalf("expected M3 %v, got %v", want, m.balance.FinalMass)
	}
}

func TestInvalidOrderShowsNoNumbers(t *testing.T) {
	m := focusTarget(t, testModel())
	m = send(t, m, runes("5"))

	if !domain.IsKind(m.err, domain.KindInvalidConcentrationOrder) {
		t.Fatalf("expected KindInvalidConcentrationOrder, got %v", m.err)
	}
	if m.balance != (domain.Balance{}) {
		t.Fatalf("expected zero balance, got %+v", m.balance)
	}

	v := m.View()
	if !strings.Contains(v, "Target concentration must be higher") {
		t.Errorf("expected error card, got:\n%s", v)
	}
	for _, banned := range []string{"of sugar", "Sugar to add (M2)", "Final pulp (M3)"} {
		if strings.Contains(v, banned) {
			t.Errorf("error view must not show %q:\n%s", banned, v)
		}
	}

	m = send(t, m, runes("e"))
	if strings.Contains(m.View(), "How it is computed") {
		t.Errorf("explanation must not render for an invalid balance")
	}
}

func TestStepStaysWithinBounds(t *testing.T) {
	m := send(t, testModel(), key(tea.KeyTab), key(tea.KeyTab))

	m = send(t, m, key(tea.KeyUp))
	if got := m.fields[2].input.Value(); got != "10.1" {
		t.Fatalf("expected 10.1 after one step, got %q", got)
	}

	for i := 0; i < 1000; i++ {
		m = send(t, m, key(tea.KeyUp))
	}
	if got := m.fields[2].input.Value(); got != "100" {
		t.Fatalf("expected clamp at 100, got %q", got)
	}
	if !domain.IsKind(m.err, domain.KindUnreachableTarget) {
		t.Fatalf("expected KindUnreachableTarget, got %v", m.err)
	}
	if !strings.Contains(m.View(), "cannot be reached") {
		t.Errorf("expected unreachable message")
	}

	m = send(t, m, key(tea.KeyShiftTab), key(tea.KeyShiftTab))
	for i := 0; i < 100; i++ {
		m = send(t, m, key(tea.KeyDown))
	}
	if got := m.fields[0].input.Value(); got != "0" {
		t.Fatalf("expected mass clamped at 0, got %q", got)
	}
}

func TestFocusWraps(t *testing.T) {
	m := send(t, testModel(), key(tea.KeyShiftTab))
	if m.focus != 2 {
		t.Fatalf("expected focus 2, got %d", m.focus)
	}
	m = send(t, m, key(tea.KeyTab))
	if m.focus != 0 {
		t.Fatalf("expected focus 0, got %d", m.focus)
	}
}

func TestLettersAreCommandsNotInput(t *testing.T) {
	m := send(t, testModel(), runes("x"))
	if got := m.fields[0].input.Value(); got != "50" {
		t.Fatalf("expected letters to be ignored, got %q", got)
	}

	m = send(t, m, runes("e"))
	v := m.View()
	if !m.showExplain || !strings.Contains(v, "How it is computed") {
		t.Fatalf("expected explanation panel:\n%s", v)
	}
	if !strings.Contains(v, "M2 = 51.67 kg - 50.00 kg = 1.67 kg") {
		t.Errorf("expected substituted equation:\n%s", v)
	}

	m = send(t, m, runes("e"))
	if m.showExplain {
		t.Fatalf("expected e to toggle the explanation off")
	}
}

func TestUnparsableInput(t *testing.T) {
	m := send(t, testModel(), runes("-"))

	if !domain.IsKind(m.err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", m.err)
	}
	if !strings.Contains(m.View(), "Initial mass is not a valid number") {
		t.Errorf("expected parse message:\n%s", m.View())
	}

	// Stepping an unparsable value restarts from the default.
	m = send(t, m, key(tea.KeyUp))
	if got := m.fields[0].input.Value(); got != "51" {
		t.Fatalf("expected 51, got %q", got)
	}
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
}

func TestDecimalComma(t *testing.T) {
	m := send(t, testModel(), key(tea.KeyBackspace), key(tea.KeyBackspace), runes("12,5"))
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if m.balance.Inputs.InitialMass != 12.5 {
		t.Fatalf("expected 12.5, got %v", m.balance.Inputs.InitialMass)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), key(tea.KeyCtrlC)} {
		_, cmd := testModel().Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", msg)
		}
	}
}

type fakeInitializer struct {
	root  string
	force bool
	err   error
}

func (f *fakeInitializer) Init(root string, force bool) (string, error) {
	f.root, f.force = root, force
	return root + "/brix.yaml", f.err
}

type fakeLocator struct {
	root string
	err  error
}

func (f fakeLocator) FindRoot(string) (string, error) { return f.root, f.err }

func TestWriteConfigKey(t *testing.T) {
	fi := &fakeInitializer{}
	m := newModel(Deps{Precision: 2, ConfigInitializer: fi})
	m.cwd = "/work"

	_, cmd := m.Update(runes("w"))
	if cmd == nil {
		t.Fatal("expected init command")
	}
	msg := cmd()
	if fi.root != "/work" || fi.force {
		t.Fatalf("unexpected init call root=%q force=%v", fi.root, fi.force)
	}

	m = send(t, m, msg)
	if m.configPath != "/work/brix.yaml" || !strings.Contains(m.toast, "Wrote /work/brix.yaml") {
		t.Fatalf("unexpected state path=%q toast=%q", m.configPath, m.toast)
	}

	_, cmd = m.Update(runes("w"))
	if cmd != nil {
		t.Fatalf("expected no command once a config is loaded")
	}
}

func TestWriteConfigFailure(t *testing.T) {
	fi := &fakeInitializer{err: &domain.OpError{Op: "fsworkspace.write", Kind: domain.KindExecution, Err: errors.New("denied")}}
	m := newModel(Deps{Precision: 2, ConfigInitializer: fi})

	_, cmd := m.Update(runes("w"))
	m = send(t, m, cmd())
	if m.toast != "Unexpected error (see logs)" || m.configPath != "" {
		t.Fatalf("unexpected state path=%q toast=%q", m.configPath, m.toast)
	}
}

func TestRefreshConfig(t *testing.T) {
	msg := cmdRefreshConfig(Deps{ConfigLocator: fakeLocator{root: "/proj"}})()
	rm, ok := msg.(configRefreshedMsg)
	if !ok || !rm.found || rm.root != "/proj" || rm.cwd == "" {
		t.Fatalf("unexpected msg %+v", msg)
	}

	m := send(t, testModel(), rm)
	if !strings.Contains(m.toast, "/proj") {
		t.Fatalf("expected toast about found config, got %q", m.toast)
	}

	msg = cmdRefreshConfig(Deps{ConfigLocator: fakeLocator{err: domain.ErrNotFound}})()
	if rm := msg.(configRefreshedMsg); rm.found || rm.err == nil {
		t.Fatalf("expected not found, got %+v", rm)
	}

	msg = cmdRefreshConfig(Deps{})()
	if rm := msg.(configRefreshedMsg); rm.err == nil {
		t.Fatalf("expected error for nil locator")
	}
}

func TestSafeModelRecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	s := wrapSafe(model{}, slog.New(slog.NewJSONHandler(&buf, nil)))

	next, cmd := s.Update(key(tea.KeyTab))
	if cmd != nil {
		t.Fatalf("expected nil cmd after panic")
	}
	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if sm.m.toast != "Unexpected error (see logs)" {
		t.Fatalf("expected toast, got %q", sm.m.toast)
	}
	if !domain.IsKind(sm.m.err, domain.KindExecution) {
		t.Fatalf("expected execution error, got %v", sm.m.err)
	}
	if !strings.Contains(sm.View(), "Unexpected error") {
		t.Fatalf("expected error in view:\n%s", sm.View())
	}
	if !strings.Contains(buf.String(), "panic.recovered") {
		t.Fatalf("expected panic log, got %s", buf.String())
	}
}

func TestSafeModelRestoresInputsAfterSolverPanic(t *testing.T) {
	var buf bytes.Buffer
	solver := ports.SolverFunc(func(in domain.Inputs) (domain.Balance, error) {
		if in.TargetPercent == 13 {
			panic("solver blew up")
		}
		return domain.SolveInputs(in)
	})
	m := newModel(Deps{
		Solver:    usecase.NewSolveBalance(domain.DefaultInputOptions(), usecase.WithSolver(solver)),
		Precision: 2,
	})
	m = send(t, focusTarget(t, m), runes("1"))

	s := wrapSafe(m, slog.New(slog.NewJSONHandler(&buf, nil)))
	next, _ := s.Update(runes("3"))
	sm := next.(safeModel)

	if got := sm.m.fields[2].input.Value(); got != "1" {
		t.Fatalf("expected target restored to 1, got %q", got)
	}
	if sm.m.balance != (domain.Balance{}) {
		t.Fatalf("expected no figures after panic, got %+v", sm.m.balance)
	}
	if !domain.IsKind(sm.m.err, domain.KindInvalidConcentrationOrder) {
		t.Fatalf("expected recomputed order error, got %v", sm.m.err)
	}
	if sm.m.toast != "Unexpected error (see logs)" {
		t.Fatalf("expected toast, got %q", sm.m.toast)
	}
	if !strings.Contains(buf.String(), `"where":"tui.update"`) {
		t.Fatalf("expected panic log, got %s", buf.String())
	}

	// The restored form keeps working.
	next, _ = sm.Update(key(tea.KeyBackspace))
	next, _ = next.Update(runes("12"))
	sm = next.(safeModel)
	if sm.m.err != nil || sm.m.balance.Inputs.TargetPercent != 12 {
		t.Fatalf("expected a fresh balance, got %+v, %v", sm.m.balance, sm.m.err)
	}
}

func TestSafeModelPassesThrough(t *testing.T) {
	s := wrapSafe(testModel(), nil)
	next, _ := s.Update(runes("e"))
	if !next.(safeModel).m.showExplain {
		t.Fatal("expected update to reach the wrapped model")
	}
	if !strings.Contains(next.View(), "How it is computed") {
		t.Fatal("expected view of the wrapped model")
	}
}

func TestBannerShowsLogPathWhenDebugging(t *testing.T) {
	deps := Deps{
		Solver:    usecase.NewSolveBalance(domain.DefaultInputOptions()),
		Precision: 2,
		LogPath:   "/tmp/x/.brix/logs/brix.log",
	}
	if strings.Contains(newModel(deps).View(), "Log: ") {
		t.Fatal("log path must stay hidden without --debug")
	}

	deps.Debug = true
	if v := newModel(deps).View(); !strings.Contains(v, "Log: /tmp/x/.brix/logs/brix.log") {
		t.Fatalf("expected log path in banner:\n%s", v)
	}
}
