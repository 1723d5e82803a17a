package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks registered through fx.Lifecycle so tests
// can fire OnStart/OnStop directly instead of running a container.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append implements fx.Lifecycle.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called whenever the application requests
// termination. A nil channel drops the signal.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown implements fx.Shutdowner.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
