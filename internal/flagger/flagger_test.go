package flagger

import "testing"

func TestNewEmptyCommand(t *testing.T) {
	if New("") != nil {
		t.Fatal("empty command must yield nil")
	}
	if New("   ") != nil {
		t.Fatal("blank command must yield nil")
	}
}

func TestSetFlagSuccess(t *testing.T) {
	r := New("true")
	if r == nil {
		t.Fatal("expected a runner")
	}
	if err := r.SetFlag("abc-123", true); err != nil {
		t.Fatalf("expected success: %v", err)
	}
}

func TestSetFlagFailure(t *testing.T) {
	if err := New("false").SetFlag("abc-123", false); err == nil {
		t.Fatal("expected failure from exiting command")
	}
}

func TestSetFlagMissingCommand(t *testing.T) {
	if err := New("/no/such/binary-xyz").SetFlag("id", true); err == nil {
		t.Fatal("expected failure for missing binary")
	}
}
