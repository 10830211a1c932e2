package completion

import (
	"errors"
	"testing"
)

func TestOutcome_Succeeded(t *testing.T) {
	o := Succeeded("Hello")
	if !o.OK() {
		t.Fatal("OK() = false, want true")
	}
	if o.Text() != "Hello" {
		t.Errorf("Text() = %q", o.Text())
	}
	if o.Err() != nil {
		t.Errorf("Err() = %v, want nil", o.Err())
	}
}

func TestOutcome_Failed(t *testing.T) {
	reason := errors.New("boom")
	o := Failed(reason)
	if o.OK() {
		t.Fatal("OK() = true, want false")
	}
	if !errors.Is(o.Err(), reason) {
		t.Errorf("Err() = %v, want %v", o.Err(), reason)
	}
	if o.Text() != "" {
		t.Errorf("Text() = %q, want empty", o.Text())
	}
}
