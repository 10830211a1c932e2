package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockAssistant struct {
	err error
}

func (m *mockAssistant) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockAssistant{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[CheckProfileStore] != CheckOK {
		t.Errorf("expected profile_store %q, got %q", CheckOK, r.Checks[CheckProfileStore])
	}
	if r.Checks[CheckAssistant] != CheckOK {
		t.Errorf("expected assistant %q, got %q", CheckOK, r.Checks[CheckAssistant])
	}
}

func TestCheck_Failures(t *testing.T) {
	tests := []struct {
		name         string
		storeErr     error
		assistantErr error
		wantStore    CheckResult
		wantAsst     CheckResult
	}{
		{"store down", errors.New("conn refused"), nil, CheckError, CheckOK},
		{"assistant down", nil, errors.New("timeout"), CheckOK, CheckError},
		{"both down", errors.New("db down"), errors.New("api down"), CheckError, CheckError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockPinger{err: tt.storeErr}, &mockAssistant{err: tt.assistantErr})
			r := svc.Check(context.Background())

			if r.Status != Degraded {
				t.Errorf("expected %q, got %q", Degraded, r.Status)
			}
			if r.Checks[CheckProfileStore] != tt.wantStore {
				t.Errorf("profile_store: expected %q, got %q", tt.wantStore, r.Checks[CheckProfileStore])
			}
			if r.Checks[CheckAssistant] != tt.wantAsst {
				t.Errorf("assistant: expected %q, got %q", tt.wantAsst, r.Checks[CheckAssistant])
			}
		})
	}
}

func TestCheck_NothingConfigured(t *testing.T) {
	svc := New(nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if len(r.Checks) != 0 {
		t.Errorf("expected no checks, got %v", r.Checks)
	}
}

func TestCheck_OnlyAssistant(t *testing.T) {
	svc := New(nil, &mockAssistant{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckProfileStore]; ok {
		t.Error("profile_store check should be absent when store is nil")
	}
}
