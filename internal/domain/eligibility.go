package domain

import "time"

// CanAccept decides whether a donor may accept a blood request right now.
// Checks run cheapest and most general first so the reported reason is
// deterministic; the first failure wins.
//
// hasActiveAcceptance is a snapshot supplied by the caller and may be stale by
// the time the acceptance is written; the storage layer re-validates it
// atomically on insert. This function has no side effects.
func CanAccept(profile *Profile, request *BloodRequest, hasActiveAcceptance bool, now time.Time) error {
	if !profile.WillingToDonate {
		return ErrNotWilling
	}
	if !profile.IsAvailable {
		return ErrNotAvailable
	}
	if days := DaysUntilEligible(profile.LastDonationDate, now); days != nil && *days > 0 {
		return &CooldownError{DaysRemaining: *days}
	}
	if !CanDonate(profile.BloodGroup, request.BloodGroup) {
		return ErrIncompatibleGroup
	}
	if request.RequesterID == profile.ID {
		return ErrSelfAcceptance
	}
	if hasActiveAcceptance {
		return ErrAlreadyAccepted
	}
	return nil
}
