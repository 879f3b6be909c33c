package ui

import (
	"testing"

	"github.com/charmbracelet/x/exp/golden"
)

func TestToast_Hidden(t *testing.T) {
	toast := NewToast()
	golden.RequireEqual(t, []byte(toast.View(testWidth)))
}

func TestToast_Visible(t *testing.T) {
	toast := NewToast()
	toast.Show("Copied to clipboard!")
	golden.RequireEqual(t, []byte(toast.View(testWidth)))
}

func TestToast_StaleHideIgnored(t *testing.T) {
	toast := NewToast()
	toast.Show("first")
	toast.Show("second")

	toast.HandleHide(ToastHideMsg{Seq: 1})
	if !toast.Visible() || toast.Message() != "second" {
		t.Fatalf("expected the newer toast to stay visible, got %q", toast.Message())
	}

	toast.HandleHide(ToastHideMsg{Seq: 2})
	if toast.Visible() {
		t.Error("expected the current toast to hide")
	}
}

func TestFocusStack_PushPop(t *testing.T) {
	f := NewFocusStack()
	if f.Current() != FocusMain {
		t.Fatalf("expected FocusMain at the base, got %v", f.Current())
	}

	f.Push(FocusDialog)
	f.Push(FocusDialog)
	if f.Depth() != 2 {
		t.Errorf("expected duplicate push to be ignored, depth %d", f.Depth())
	}

	if got := f.Pop(); got != FocusDialog {
		t.Errorf("expected to pop FocusDialog, got %v", got)
	}
	if got := f.Pop(); got != FocusMain {
		t.Errorf("expected FocusMain when popping the base, got %v", got)
	}
	if f.Depth() != 1 {
		t.Errorf("expected base layer to remain, depth %d", f.Depth())
	}
}

func TestFocusStack_Remove(t *testing.T) {
	f := NewFocusStack()
	f.Push(FocusDialog)
	f.Push(FocusHelp)

	f.Remove(FocusDialog)
	if f.Has(FocusDialog) {
		t.Error("expected FocusDialog removed from the middle of the stack")
	}
	if f.Current() != FocusHelp {
		t.Errorf("expected FocusHelp on top, got %v", f.Current())
	}

	f.Remove(FocusMain)
	f.Clear()
	if f.Depth() != 1 || f.Current() != FocusMain {
		t.Errorf("expected only the base layer after Clear, got depth %d", f.Depth())
	}
}

func TestFocusLayer_String(t *testing.T) {
	tests := []struct {
		layer FocusLayer
		want  string
	}{
		{FocusMain, "Main"},
		{FocusHelp, "Help"},
		{FocusDialog, "Dialog"},
		{FocusLayer(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.layer.String(); got != tt.want {
			t.Errorf("FocusLayer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much longer text", 10, "much lo..."},
		{"abc", 0, "abc"},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
