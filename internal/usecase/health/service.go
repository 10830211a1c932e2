package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names reported in Report.Checks.
const (
	CheckProfileStore = "profile_store"
	CheckAssistant    = "assistant"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
//
// Both dependencies are optional. The local corpus is loaded at startup and
// cannot fail afterwards, so a service with nothing configured is healthy.
// A failing assistant only degrades the report: consultations still answer
// from the local fallback.
type Service struct {
	profiles  StorePinger
	assistant AssistantChecker
}

// New creates a Service. profiles and assistant can be nil.
func New(profiles StorePinger, assistant AssistantChecker) *Service {
	return &Service{profiles: profiles, assistant: assistant}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.profiles != nil {
		checks[CheckProfileStore] = result(s.profiles.Ping(ctx))
	}
	if s.assistant != nil {
		checks[CheckAssistant] = result(s.assistant.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
