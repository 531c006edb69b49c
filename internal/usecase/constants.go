package usecase

import "time"

const (
	// DefaultIdentityRetries is how many times a wrong record may be reopened.
	DefaultIdentityRetries = 2

	// MaxMessageLength caps the audit message so one line stays readable.
	MaxMessageLength = 500
)

// Options bounds every wait and search the sync performs.
type Options struct {
	IdentityRetries int

	MaxScrolls          int
	MaxContainers       int
	ContainerScrollStep int
	ViewportScrollStep  int
	ScrollPause         time.Duration

	ElementTimeout     time.Duration
	ListReadyTimeout   time.Duration
	NetworkIdleTimeout time.Duration
	SuccessTimeout     time.Duration
	NavigationDeadline time.Duration
	PollInterval       time.Duration

	TypeDelay   time.Duration
	SettleDelay time.Duration
}

// DefaultOptions returns the bounds used against the production application.
func DefaultOptions() Options {
	return Options{
		IdentityRetries:     DefaultIdentityRetries,
		MaxScrolls:          60,
		MaxContainers:       25,
		ContainerScrollStep: 800,
		ViewportScrollStep:  1000,
		ScrollPause:         80 * time.Millisecond,
		ElementTimeout:      1800 * time.Millisecond,
		ListReadyTimeout:    20 * time.Second,
		NetworkIdleTimeout:  15 * time.Second,
		SuccessTimeout:      7 * time.Second,
		NavigationDeadline:  15 * time.Second,
		PollInterval:        250 * time.Millisecond,
		TypeDelay:           40 * time.Millisecond,
		SettleDelay:         200 * time.Millisecond,
	}
}
