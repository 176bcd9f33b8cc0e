package ui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/gibberlab/gibber"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testModel() Model {
	return New(gibber.NewDetector(), gibber.Medium)
}

func TestSubmitClassifies(t *testing.T) {
	m := testModel()
	m.input.SetValue("asdfgh jkl")

	mm, cmd := m.Update(specialKey(tea.KeyEnter))
	m = mm.(Model)
	if cmd == nil {
		t.Fatal("expected a classify command after enter")
	}
	if !m.checking {
		t.Error("expected checking state after submit")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared, got %q", m.input.Value())
	}

	msg := cmd()
	vm, ok := msg.(verdictMsg)
	if !ok {
		t.Fatalf("command produced %T, want verdictMsg", msg)
	}
	if !vm.res.Gibberish {
		t.Error("expected gibberish verdict for keyboard mash")
	}

	mm, _ = m.Update(msg)
	m = mm.(Model)
	if m.checking {
		t.Error("checking should end when the verdict arrives")
	}
	if len(m.history) != 1 {
		t.Fatalf("history length = %d, want 1", len(m.history))
	}
	if m.history[0].text != "asdfgh jkl" {
		t.Errorf("history text = %q", m.history[0].text)
	}
}

func TestEmptySubmitIgnored(t *testing.T) {
	m := testModel()
	m.input.SetValue("   ")

	mm, cmd := m.Update(specialKey(tea.KeyEnter))
	m = mm.(Model)
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
	if m.checking {
		t.Error("blank input should not enter checking state")
	}
}

func TestSubmitWhileCheckingIgnored(t *testing.T) {
	m := testModel()
	m.checking = true
	m.input.SetValue("hello world")

	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command while a check is in flight")
	}
}

func TestTabCyclesSensitivity(t *testing.T) {
	m := testModel()

	want := []gibber.Sensitivity{gibber.High, gibber.Low, gibber.Medium}
	for _, w := range want {
		mm, _ := m.Update(specialKey(tea.KeyTab))
		m = mm.(Model)
		if m.sens != w {
			t.Fatalf("sensitivity = %v, want %v", m.sens, w)
		}
	}
}

func TestEscQuits(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Error("expected quit command on esc")
	}
}

func TestTypingReachesInput(t *testing.T) {
	m := testModel()

	for _, r := range "hey" {
		mm, _ := m.Update(keyPress(r))
		m = mm.(Model)
	}
	if m.input.Value() != "hey" {
		t.Errorf("input value = %q, want %q", m.input.Value(), "hey")
	}
}

func TestHistoryCapped(t *testing.T) {
	m := testModel()
	for i := 0; i < historyLimit; i++ {
		m.history = append(m.history, verdict{text: "old"})
	}

	mm, _ := m.Update(verdictMsg{
		text: "new",
		sens: gibber.Medium,
		res:  gibber.Result{Gibberish: true, Reason: gibber.ReasonNoSignal},
		took: time.Millisecond,
	})
	m = mm.(Model)

	if len(m.history) != historyLimit {
		t.Fatalf("history length = %d, want %d", len(m.history), historyLimit)
	}
	if m.history[historyLimit-1].text != "new" {
		t.Error("newest verdict should be kept when history overflows")
	}
}
