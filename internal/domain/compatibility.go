package domain

import (
	"math"
	"time"
)

// CooldownDays is the mandatory minimum interval between two donations.
const CooldownDays = 90

// compatibleDonors maps a requested blood group to the donor groups that may
// supply it, per the standard transfusion compatibility table.
var compatibleDonors = map[BloodGroup][]BloodGroup{
	GroupONeg:  {GroupONeg},
	GroupOPos:  {GroupOPos, GroupONeg},
	GroupANeg:  {GroupANeg, GroupONeg},
	GroupAPos:  {GroupAPos, GroupANeg, GroupOPos, GroupONeg},
	GroupBNeg:  {GroupBNeg, GroupONeg},
	GroupBPos:  {GroupBPos, GroupBNeg, GroupOPos, GroupONeg},
	GroupABNeg: {GroupABNeg, GroupANeg, GroupBNeg, GroupONeg},
	GroupABPos: {GroupABPos, GroupABNeg, GroupAPos, GroupANeg, GroupBPos, GroupBNeg, GroupOPos, GroupONeg},
}

// CompatibleDonors returns the donor groups permitted to supply the requested
// group. The returned slice must not be mutated.
func CompatibleDonors(requested BloodGroup) []BloodGroup {
	return compatibleDonors[requested]
}

func CanDonate(donor, recipient BloodGroup) bool {
	for _, g := range compatibleDonors[recipient] {
		if g == donor {
			return true
		}
	}
	return false
}

// DaysUntilEligible returns the whole days remaining until the donor may
// donate again, zero when the cooldown has elapsed, or nil when no prior
// donation is recorded. Partial days count as a full day remaining.
func DaysUntilEligible(lastDonation *time.Time, now time.Time) *int {
	if lastDonation == nil {
		return nil
	}

	nextEligible := lastDonation.AddDate(0, 0, CooldownDays)
	days := int(math.Ceil(nextEligible.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return &days
}
