package health

import "context"

// StorePinger checks profile store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// AssistantChecker checks remote assistant availability.
type AssistantChecker interface {
	HealthCheck(ctx context.Context) error
}
