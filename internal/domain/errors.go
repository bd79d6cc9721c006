package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotWilling             = errors.New("donor is not willing to donate")
	ErrNotAvailable           = errors.New("donor is not currently available")
	ErrIncompatibleGroup      = errors.New("donor blood group is not compatible with this request")
	ErrSelfAcceptance         = errors.New("requester cannot accept their own request")
	ErrAlreadyAccepted        = errors.New("donor has already accepted this request")
	ErrConflict               = errors.New("request state changed, please retry")
	ErrInvalidStateTransition = errors.New("invalid request state transition")
)

// CooldownError reports how many days remain before the donor may donate again.
type CooldownError struct {
	DaysRemaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("donor is in cooldown, eligible again in %d days", e.DaysRemaining)
}

// IsCooldown unwraps err as a CooldownError.
func IsCooldown(err error) (*CooldownError, bool) {
	var ce *CooldownError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
