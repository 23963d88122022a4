package models

// Health statuses reported by the actuator endpoints.
const (
	HealthUp   = "UP"
	HealthDown = "DOWN"
)

// HealthReport is the body of the liveness and readiness endpoints.
type HealthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}
