package gate

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/toshy/toshyd/pkg/environ"
)

// ErrExhausted is returned when the retry ceiling is reached before the
// required environment shows up. It is a deliberate non-error exit for the
// process, not a failure.
var ErrExhausted = errors.New("environment gate retry ceiling reached")

// Rule is the session/desktop combination the gate waits for.
type Rule struct {
	SessionType environ.SessionType
	DesktopEnvs []string
}

// Matches reports whether a snapshot satisfies the rule.
func (r Rule) Matches(s environ.Snapshot) bool {
	if s.SessionType != r.SessionType {
		return false
	}
	for _, de := range r.DesktopEnvs {
		if s.DesktopEnv == de {
			return true
		}
	}
	return false
}

func (r Rule) String() string {
	return string(r.SessionType) + "+" + strings.Join(r.DesktopEnvs, "/")
}

// Service polls a prober until the required environment is observed or the
// retry ceiling is exceeded. The graphical session may not be fully up when
// the process launches, so mismatches before the ceiling are expected.
type Service struct {
	prober environ.Prober
	rule   Rule

	initial time.Duration
	step    time.Duration
	max     time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a gate that retries with a linear backoff: the first retry
// waits initial, each subsequent retry waits step longer, and the loop
// gives up once the delay exceeds max.
func New(prober environ.Prober, rule Rule, initial, step, max time.Duration) *Service {
	return &Service{
		prober:  prober,
		rule:    rule,
		initial: initial,
		step:    step,
		max:     max,
		sleep:   sleepCtx,
	}
}

// Wait blocks until a probed snapshot matches the rule and returns it.
// It returns ErrExhausted once the delay exceeds the ceiling, or the
// context error if cancelled mid-wait.
func (s *Service) Wait(ctx context.Context) (environ.Snapshot, error) {
	delay := s.initial
	for attempt := 1; ; attempt++ {
		snap := s.prober.Probe()
		if s.rule.Matches(snap) {
			log.Printf("Environment matched %s on attempt %d", s.rule, attempt)
			return snap, nil
		}
		if delay > s.max {
			return environ.Snapshot{}, ErrExhausted
		}
		log.Printf("Not a %s environment yet (%s/%s), retrying in %v",
			s.rule, snap.SessionType, snap.DesktopEnv, delay)
		if err := s.sleep(ctx, delay); err != nil {
			return environ.Snapshot{}, err
		}
		delay += s.step
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
