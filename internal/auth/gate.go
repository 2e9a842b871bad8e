// ABOUTME: Password gate state machine guarding access to the journal
// ABOUTME: Handles credential setup, verification with bounded attempts, and secret rotation

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"moodlog/internal/store"
)

// ErrBadCredential is returned when a supplied secret does not match the stored one
var ErrBadCredential = errors.New("credential mismatch")

// ErrLockedOut is returned once the attempt budget is exhausted.
// The state is terminal for the session; the process must be restarted to retry.
var ErrLockedOut = errors.New("locked out after too many failed attempts")

// ErrSetupDeclined is returned when setup is invoked with an empty secret,
// which is treated as the user declining setup rather than a retry path.
var ErrSetupDeclined = errors.New("credential setup declined")

// ErrSetupRequired is returned when verification is attempted before any
// credential exists
var ErrSetupRequired = errors.New("credential setup required")

// ErrAlreadySetUp is returned when setup is invoked but a credential exists
var ErrAlreadySetUp = errors.New("credential already configured")

// ErrNotUnlocked is returned when an operation requires the unlocked state
var ErrNotUnlocked = errors.New("gate is not unlocked")

// DefaultMaxAttempts is the verification attempt budget per session.
const DefaultMaxAttempts = 3

// State is the gate's position in its lifecycle.
type State int

const (
	// StateUninitialized means no credential exists yet; setup is required.
	StateUninitialized State = iota
	// StateLocked means a credential exists and has not been verified.
	StateLocked
	// StateUnlocked means the caller has proven knowledge of the secret.
	StateUnlocked
	// StateLockedOut is terminal: the attempt budget is exhausted.
	StateLockedOut
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateLockedOut:
		return "locked_out"
	default:
		return "unknown"
	}
}

// Gate is the password gate for one interactive session. It is not safe for
// concurrent use; exactly one session drives it at a time.
type Gate struct {
	creds     store.CredentialStore
	logger    *slog.Logger
	state     State
	remaining int
}

// NewGate builds a gate with the default attempt budget, probing the
// credential store to decide the initial state.
func NewGate(ctx context.Context, creds store.CredentialStore) (*Gate, error) {
	return NewGateWithAttempts(ctx, creds, DefaultMaxAttempts)
}

// NewGateWithAttempts builds a gate with an explicit attempt budget.
func NewGateWithAttempts(ctx context.Context, creds store.CredentialStore, maxAttempts int) (*Gate, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	g := &Gate{
		creds:     creds,
		logger:    slog.Default().With("component", "auth"),
		state:     StateLocked,
		remaining: maxAttempts,
	}

	_, err := creds.GetSecretHash(ctx)
	if errors.Is(err, store.ErrNoCredential) {
		g.state = StateUninitialized
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("probing credential store: %w", err)
	}
	return g, nil
}

// State reports the gate's current state.
func (g *Gate) State() State {
	return g.state
}

// Remaining reports how many verification attempts are left.
func (g *Gate) Remaining() int {
	return g.remaining
}

// Setup stores a first credential and unlocks the gate. An empty secret is a
// deliberate abort (ErrSetupDeclined), leaving the gate uninitialized so the
// caller can terminate the session.
func (g *Gate) Setup(ctx context.Context, secret string) error {
	if g.state != StateUninitialized {
		return ErrAlreadySetUp
	}
	if secret == "" {
		g.logger.Info("credential setup declined")
		return ErrSetupDeclined
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing secret: %w", err)
	}
	if err := g.creds.SetSecretHash(ctx, string(hash)); err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}

	g.state = StateUnlocked
	g.logger.Info("credential created")
	return nil
}

// Verify checks an attempt against the stored secret. A match unlocks the
// gate. A mismatch burns one attempt; when the budget reaches zero the gate
// locks out for the rest of the session and even a correct secret is refused.
func (g *Gate) Verify(ctx context.Context, attempt string) error {
	switch g.state {
	case StateLockedOut:
		return ErrLockedOut
	case StateUnlocked:
		return nil
	case StateUninitialized:
		return ErrSetupRequired
	}

	hash, err := g.creds.GetSecretHash(ctx)
	if err != nil {
		return fmt.Errorf("loading credential: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(attempt)) != nil {
		g.remaining--
		g.logger.Warn("verification failed", "remaining", g.remaining)
		if g.remaining <= 0 {
			g.state = StateLockedOut
			return ErrLockedOut
		}
		return ErrBadCredential
	}

	g.state = StateUnlocked
	g.logger.Info("gate unlocked")
	return nil
}

// ChangeSecret replaces the credential while unlocked. The old secret must
// match or nothing is mutated. An empty new secret is a no-op; the existing
// credential stays in place.
func (g *Gate) ChangeSecret(ctx context.Context, old, updated string) error {
	if g.state != StateUnlocked {
		return ErrNotUnlocked
	}

	hash, err := g.creds.GetSecretHash(ctx)
	if err != nil {
		return fmt.Errorf("loading credential: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(old)) != nil {
		return ErrBadCredential
	}

	if updated == "" {
		return nil
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(updated), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing new secret: %w", err)
	}
	if err := g.creds.SetSecretHash(ctx, string(newHash)); err != nil {
		return fmt.Errorf("persisting new credential: %w", err)
	}

	g.logger.Info("credential changed")
	return nil
}
