package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// Status represents the state of a single checkout attempt
type Status string

const (
	StatusStarted    Status = "STARTED"
	StatusValidating Status = "VALIDATING"
	StatusReserving  Status = "RESERVING"
	StatusCommitting Status = "COMMITTING"
	StatusCompleted  Status = "COMPLETED"
	StatusAborted    Status = "ABORTED"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for states a checkout cannot leave
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAborted
}

// CanTransitionTo checks if the status can transition to the target status.
// Progress is strictly forward; any non-terminal state may abort.
func (s Status) CanTransitionTo(target Status) bool {
	if target == StatusAborted {
		return !s.IsTerminal()
	}
	switch s {
	case StatusStarted:
		return target == StatusValidating
	case StatusValidating:
		return target == StatusReserving
	case StatusReserving:
		return target == StatusCommitting
	case StatusCommitting:
		return target == StatusCompleted
	}
	return false
}

// Checkout tracks one checkout attempt through its states
type Checkout struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    Status
	StartedAt time.Time
}

// NewCheckout starts a checkout attempt for the given user
func NewCheckout(userID uuid.UUID) *Checkout {
	return &Checkout{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    StatusStarted,
		StartedAt: time.Now(),
	}
}

// Advance moves the attempt to the target state
func (c *Checkout) Advance(target Status) error {
	if !c.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move checkout from %s to %s", c.Status, target))
	}
	c.Status = target
	return nil
}

// Abort marks the attempt as aborted. Aborting a terminal attempt is a
// no-op so failure paths can call it unconditionally.
func (c *Checkout) Abort() {
	if !c.Status.IsTerminal() {
		c.Status = StatusAborted
	}
}
