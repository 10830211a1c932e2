package consultation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vaidya/internal/domain"
	"github.com/kailas-cloud/vaidya/internal/domain/completion"
	"github.com/kailas-cloud/vaidya/internal/domain/corpus"
	"github.com/kailas-cloud/vaidya/internal/domain/message"
	domsession "github.com/kailas-cloud/vaidya/internal/domain/session"
	"github.com/kailas-cloud/vaidya/internal/usecase/search"
	"github.com/kailas-cloud/vaidya/internal/usecase/synthesis"
)

// --- Mocks ---

type mockAssistant struct {
	configured bool
	text       string
	err        error
	panicWith  any
	calls      int
	lastReq    completion.Request
}

func (m *mockAssistant) IsConfigured() bool { return m.configured }

func (m *mockAssistant) Complete(_ context.Context, req completion.Request) (string, error) {
	m.calls++
	m.lastReq = req
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	return m.text, m.err
}

type staticCorpus struct{}

func (staticCorpus) Articles() []corpus.Article { return nil }

func (staticCorpus) Remedies() []corpus.Remedy {
	return []corpus.Remedy{
		{ID: "rem-insomnia", Problem: "Insomnia", Remedy: "Warm milk with nutmeg before bed.", Rationale: "Nutmeg calms the mind for sleep.", Citation: "Bhavaprakasha"},
		{ID: "rem-acid", Problem: "Acidity", Remedy: "Coriander water on an empty stomach.", Rationale: "Coriander cools pitta."},
	}
}

func (staticCorpus) TextExcerpts() []corpus.TextExcerpt { return nil }
func (staticCorpus) DoshaGuides() []corpus.DoshaGuide   { return nil }

func newTestOrchestrator(a domain.Assistant, opts ...Option) *Orchestrator {
	searcher := search.New(staticCorpus{}, zap.NewNop())
	seq := 0
	opts = append([]Option{
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
		WithIDGenerator(func() string { seq++; return "m" + strconv.Itoa(seq) }),
	}, opts...)
	return New(searcher, synthesis.New(), a, zap.NewNop(), opts...)
}

func greeting() message.Message {
	return message.New(domsession.GreetingID, message.RoleAssistant, "Namaste! How can I help?", nil, time.Unix(0, 0))
}

// --- Tests ---

func TestSubmit_FallbackOnRemoteFailure(t *testing.T) {
	a := &mockAssistant{configured: true, text: "should not be used", err: errors.New("HTTP 500")}
	o := newTestOrchestrator(a)
	h := domsession.NewHistory(greeting())

	turn := o.Submit(context.Background(), h, "I can't sleep at night", "")

	if turn.Path != PathLocal {
		t.Fatalf("expected local path, got %s", turn.Path)
	}
	if !errors.Is(turn.Reason, domain.ErrRemoteCallFailed) {
		t.Errorf("expected ErrRemoteCallFailed, got %v", turn.Reason)
	}
	sources := turn.Message.Sources()
	if len(sources) == 0 || sources[0].ID() != "rem-insomnia" {
		t.Fatalf("expected sleep remedy citation, got %d sources", len(sources))
	}
	text := turn.Message.Text()
	if !strings.HasPrefix(text, "For Insomnia:") {
		t.Errorf("expected synthesized remedy answer, got %q", text)
	}
	if strings.Contains(text, "should not be used") {
		t.Error("remote text leaked into local answer")
	}
	if a.calls != 1 {
		t.Errorf("expected exactly one remote call, got %d", a.calls)
	}
}

func TestSubmit_BudgetExceededFallsBack(t *testing.T) {
	a := &mockAssistant{configured: true, err: fmt.Errorf("budget check: %w", domain.ErrBudgetExceeded)}
	o := newTestOrchestrator(a)

	turn := o.Submit(context.Background(), domsession.NewHistory(), "acidity", "")

	if turn.Path != PathLocal {
		t.Fatalf("expected local path, got %s", turn.Path)
	}
	if !errors.Is(turn.Reason, domain.ErrRemoteCallFailed) || !errors.Is(turn.Reason, domain.ErrBudgetExceeded) {
		t.Errorf("expected remote failure wrapping the budget error, got %v", turn.Reason)
	}
	if got := reasonLabel(turn.Reason); got != "budget_exceeded" {
		t.Errorf("reason label = %q", got)
	}
}

func TestSubmit_NoMatch(t *testing.T) {
	o := newTestOrchestrator(nil)
	h := domsession.NewHistory(greeting())

	turn := o.Submit(context.Background(), h, "xyzzy plugh", "")

	if len(turn.Message.Sources()) != 0 {
		t.Errorf("expected no sources, got %d", len(turn.Message.Sources()))
	}
	if want := synthesis.New().Compose(nil); turn.Message.Text() != want {
		t.Errorf("expected apology text, got %q", turn.Message.Text())
	}
}

func TestSubmit_CitationIndependence(t *testing.T) {
	a := &mockAssistant{configured: true, text: "Hello"}
	o := newTestOrchestrator(a)
	h := domsession.NewHistory(greeting())

	turn := o.Submit(context.Background(), h, "I can't sleep at night", "vata")

	if turn.Path != PathRemote || turn.Reason != nil {
		t.Fatalf("expected remote path, got %s (%v)", turn.Path, turn.Reason)
	}
	if turn.Message.Text() != "Hello" {
		t.Errorf("expected remote prose, got %q", turn.Message.Text())
	}

	local := search.New(staticCorpus{}, zap.NewNop()).Search(context.Background(), "I can't sleep at night")
	if !reflect.DeepEqual(turn.Message.Sources(), local) {
		t.Error("sources differ from the locally computed ranked list")
	}
	if a.lastReq.ProfileHint != "vata" || a.lastReq.Query != "I can't sleep at night" {
		t.Errorf("unexpected request: %+v", a.lastReq)
	}
}

func TestSubmit_NotConfigured(t *testing.T) {
	a := &mockAssistant{configured: false, text: "Hello"}
	o := newTestOrchestrator(a)
	h := domsession.NewHistory()

	turn := o.Submit(context.Background(), h, "acidity", "")

	if a.calls != 0 {
		t.Errorf("unconfigured assistant must not be called, got %d calls", a.calls)
	}
	if !errors.Is(turn.Reason, domain.ErrRemoteUnavailable) {
		t.Errorf("expected ErrRemoteUnavailable, got %v", turn.Reason)
	}
	want := []State{StateIdle, StateDispatching, StateLocalFallback, StateCompleted}
	if !reflect.DeepEqual(turn.Trace, want) {
		t.Errorf("trace = %v, want %v", turn.Trace, want)
	}
}

func TestSubmit_Traces(t *testing.T) {
	tests := []struct {
		name string
		a    *mockAssistant
		want []State
	}{
		{
			name: "remote success",
			a:    &mockAssistant{configured: true, text: "ok"},
			want: []State{StateIdle, StateDispatching, StateRemoteAttempt, StateRemoteSuccess, StateCompleted},
		},
		{
			name: "remote failure",
			a:    &mockAssistant{configured: true, err: errors.New("boom")},
			want: []State{StateIdle, StateDispatching, StateRemoteAttempt, StateRemoteFailure, StateLocalFallback, StateCompleted},
		},
		{
			name: "empty completion",
			a:    &mockAssistant{configured: true, text: "  "},
			want: []State{StateIdle, StateDispatching, StateRemoteAttempt, StateRemoteFailure, StateLocalFallback, StateCompleted},
		},
		{
			name: "panic",
			a:    &mockAssistant{configured: true, panicWith: "nil map"},
			want: []State{StateIdle, StateDispatching, StateRemoteAttempt, StateRemoteFailure, StateLocalFallback, StateCompleted},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			turn := newTestOrchestrator(tc.a).Submit(context.Background(), domsession.NewHistory(), "insomnia", "")
			if !reflect.DeepEqual(turn.Trace, tc.want) {
				t.Errorf("trace = %v, want %v", turn.Trace, tc.want)
			}
			if tc.a.calls != 1 {
				t.Errorf("expected one call, got %d", tc.a.calls)
			}
		})
	}
}

func TestSubmit_HistoryContext(t *testing.T) {
	a := &mockAssistant{configured: true, text: "first answer"}
	o := newTestOrchestrator(a)
	h := domsession.NewHistory(greeting())
	ctx := context.Background()

	o.Submit(ctx, h, "insomnia", "")
	if len(a.lastReq.History) != 0 {
		t.Fatalf("greeting and current query must be excluded, got %+v", a.lastReq.History)
	}

	a.text = "second answer"
	o.Submit(ctx, h, "acidity", "")

	want := []completion.Turn{
		{Role: completion.RoleUser, Text: "insomnia"},
		{Role: completion.RoleAssistant, Text: "first answer"},
	}
	if !reflect.DeepEqual(a.lastReq.History, want) {
		t.Errorf("history = %+v, want %+v", a.lastReq.History, want)
	}
	if h.Len() != 5 {
		t.Errorf("expected 5 messages in log, got %d", h.Len())
	}
}

func TestSubmit_HistoryLimit(t *testing.T) {
	a := &mockAssistant{configured: true, text: "answer"}
	o := newTestOrchestrator(a, WithHistoryLimit(1))
	h := domsession.NewHistory()
	ctx := context.Background()

	o.Submit(ctx, h, "insomnia", "")
	o.Submit(ctx, h, "acidity", "")

	if len(a.lastReq.History) != 1 || a.lastReq.History[0].Role != completion.RoleAssistant {
		t.Errorf("expected only the last assistant turn, got %+v", a.lastReq.History)
	}
}

func TestSubmit_AppendsUserThenAssistant(t *testing.T) {
	o := newTestOrchestrator(nil)
	h := domsession.NewHistory()

	turn := o.Submit(context.Background(), h, "insomnia", "")

	msgs := h.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role() != message.RoleUser || msgs[0].Text() != "insomnia" {
		t.Errorf("unexpected first message: %s %q", msgs[0].Role(), msgs[0].Text())
	}
	if msgs[1].Role() != message.RoleAssistant || msgs[1].ID() != turn.Message.ID() {
		t.Errorf("unexpected second message: %s %s", msgs[1].Role(), msgs[1].ID())
	}
}
