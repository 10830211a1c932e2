package message

import (
	"testing"
	"time"

	"github.com/kailas-cloud/vaidya/internal/domain/search/kind"
	"github.com/kailas-cloud/vaidya/internal/domain/search/result"
)

func TestNew(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	src := []result.Result{result.New(kind.Remedy, "r1", "Insomnia", "Warm milk", 40, "")}

	m := New("m1", RoleAssistant, "hello", src, ts)

	if m.ID() != "m1" {
		t.Errorf("ID() = %q", m.ID())
	}
	if m.Role() != RoleAssistant {
		t.Errorf("Role() = %q", m.Role())
	}
	if m.Text() != "hello" {
		t.Errorf("Text() = %q", m.Text())
	}
	if !m.Timestamp().Equal(ts) {
		t.Errorf("Timestamp() = %v", m.Timestamp())
	}
	if len(m.Sources()) != 1 || m.Sources()[0].ID() != "r1" {
		t.Errorf("Sources() = %v", m.Sources())
	}

	src[0] = result.New(kind.Article, "changed", "", "", 0, "")
	if m.Sources()[0].ID() != "r1" {
		t.Error("message shares the caller's sources slice")
	}
}

func TestNew_NilSources(t *testing.T) {
	m := New("m1", RoleUser, "hi", nil, time.Time{})
	if m.Sources() != nil {
		t.Errorf("Sources() = %v, want nil", m.Sources())
	}
}

func TestRole_IsValid(t *testing.T) {
	if !RoleUser.IsValid() || !RoleAssistant.IsValid() {
		t.Error("known roles must be valid")
	}
	for _, r := range []Role{"", "system", "User"} {
		if r.IsValid() {
			t.Errorf("%q.IsValid() = true", r)
		}
	}
}
