package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompatibleDonors_Table(t *testing.T) {
	expected := map[BloodGroup][]BloodGroup{
		GroupONeg:  {GroupONeg},
		GroupOPos:  {GroupOPos, GroupONeg},
		GroupANeg:  {GroupANeg, GroupONeg},
		GroupAPos:  {GroupAPos, GroupANeg, GroupOPos, GroupONeg},
		GroupBNeg:  {GroupBNeg, GroupONeg},
		GroupBPos:  {GroupBPos, GroupBNeg, GroupOPos, GroupONeg},
		GroupABNeg: {GroupABNeg, GroupANeg, GroupBNeg, GroupONeg},
		GroupABPos: {GroupABPos, GroupABNeg, GroupAPos, GroupANeg, GroupBPos, GroupBNeg, GroupOPos, GroupONeg},
	}

	for requested, donors := range expected {
		assert.ElementsMatch(t, donors, CompatibleDonors(requested), "requested %s", requested)
	}
}

func TestCompatibleDonors_SelfAndUniversalDonor(t *testing.T) {
	for _, g := range AllBloodGroups {
		donors := CompatibleDonors(g)
		assert.Contains(t, donors, g, "%s must be able to supply itself", g)
		assert.Contains(t, donors, GroupONeg, "O- must be able to supply %s", g)
	}
	assert.Equal(t, []BloodGroup{GroupONeg}, CompatibleDonors(GroupONeg))
}

func TestCanDonate_NotSymmetric(t *testing.T) {
	assert.True(t, CanDonate(GroupONeg, GroupABPos))
	assert.False(t, CanDonate(GroupABPos, GroupONeg))
}

func TestDaysUntilEligible(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("no prior donation", func(t *testing.T) {
		assert.Nil(t, DaysUntilEligible(nil, now))
	})

	t.Run("exactly at cooldown boundary", func(t *testing.T) {
		last := now.AddDate(0, 0, -CooldownDays)
		days := DaysUntilEligible(&last, now)
		if assert.NotNil(t, days) {
			assert.Equal(t, 0, *days)
		}
	})

	t.Run("one day after donating", func(t *testing.T) {
		last := now.AddDate(0, 0, -1)
		days := DaysUntilEligible(&last, now)
		if assert.NotNil(t, days) {
			assert.Equal(t, 89, *days)
		}
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		last := now.AddDate(0, 0, -CooldownDays).Add(6 * time.Hour)
		days := DaysUntilEligible(&last, now)
		if assert.NotNil(t, days) {
			assert.Equal(t, 1, *days)
		}
	})

	t.Run("long past cooldown is floored at zero", func(t *testing.T) {
		last := now.AddDate(-1, 0, 0)
		days := DaysUntilEligible(&last, now)
		if assert.NotNil(t, days) {
			assert.Equal(t, 0, *days)
		}
	})
}
