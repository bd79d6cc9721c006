package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func eligibleDonor(group BloodGroup) *Profile {
	return &Profile{
		ID:              uuid.New(),
		Name:            "Donor",
		BloodGroup:      group,
		WillingToDonate: true,
		IsAvailable:     true,
	}
}

func openRequest(group BloodGroup) *BloodRequest {
	return &BloodRequest{
		ID:          uuid.New(),
		RequesterID: uuid.New(),
		PatientName: "Patient",
		BloodGroup:  group,
		Status:      RequestOpen,
	}
}

func TestCanAccept(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("universal donor with clean profile", func(t *testing.T) {
		donor := eligibleDonor(GroupONeg)
		req := openRequest(GroupABNeg)

		assert.NoError(t, CanAccept(donor, req, false, now))
	})

	t.Run("not willing wins even when everything else passes", func(t *testing.T) {
		donor := eligibleDonor(GroupONeg)
		donor.WillingToDonate = false
		req := openRequest(GroupABNeg)

		assert.ErrorIs(t, CanAccept(donor, req, false, now), ErrNotWilling)
	})

	t.Run("not available", func(t *testing.T) {
		donor := eligibleDonor(GroupONeg)
		donor.IsAvailable = false
		req := openRequest(GroupABNeg)

		assert.ErrorIs(t, CanAccept(donor, req, false, now), ErrNotAvailable)
	})

	t.Run("cooldown ten days after donating", func(t *testing.T) {
		donor := eligibleDonor(GroupONeg)
		last := now.AddDate(0, 0, -10)
		donor.LastDonationDate = &last
		req := openRequest(GroupABNeg)

		err := CanAccept(donor, req, false, now)
		ce, ok := IsCooldown(err)
		if assert.True(t, ok, "expected cooldown error, got %v", err) {
			assert.Equal(t, 80, ce.DaysRemaining)
		}
	})

	t.Run("cooldown reported before incompatibility", func(t *testing.T) {
		donor := eligibleDonor(GroupABPos)
		last := now.AddDate(0, 0, -10)
		donor.LastDonationDate = &last
		req := openRequest(GroupONeg)

		_, ok := IsCooldown(CanAccept(donor, req, false, now))
		assert.True(t, ok)
	})

	t.Run("incompatible group", func(t *testing.T) {
		donor := eligibleDonor(GroupABPos)
		req := openRequest(GroupONeg)

		assert.ErrorIs(t, CanAccept(donor, req, false, now), ErrIncompatibleGroup)
	})

	t.Run("requester accepting own request", func(t *testing.T) {
		donor := eligibleDonor(GroupONeg)
		req := openRequest(GroupONeg)
		req.RequesterID = donor.ID

		assert.ErrorIs(t, CanAccept(donor, req, false, now), ErrSelfAcceptance)
	})

	t.Run("duplicate acceptance", func(t *testing.T) {
		donor := eligibleDonor(GroupONeg)
		req := openRequest(GroupABNeg)

		assert.ErrorIs(t, CanAccept(donor, req, true, now), ErrAlreadyAccepted)
	})

	t.Run("cooldown elapsed exactly today", func(t *testing.T) {
		donor := eligibleDonor(GroupONeg)
		last := now.AddDate(0, 0, -CooldownDays)
		donor.LastDonationDate = &last
		req := openRequest(GroupABNeg)

		assert.NoError(t, CanAccept(donor, req, false, now))
	})
}

func TestRequestStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		ok       bool
	}{
		{RequestOpen, RequestAccepted, true},
		{RequestOpen, RequestFulfilled, true},
		{RequestOpen, RequestCancelled, true},
		{RequestAccepted, RequestFulfilled, true},
		{RequestAccepted, RequestCancelled, true},
		{RequestAccepted, RequestOpen, false},
		{RequestFulfilled, RequestFulfilled, false},
		{RequestFulfilled, RequestCancelled, false},
		{RequestCancelled, RequestOpen, false},
		{RequestCancelled, RequestFulfilled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}

	assert.True(t, RequestFulfilled.IsTerminal())
	assert.True(t, RequestCancelled.IsTerminal())
	assert.False(t, RequestOpen.IsTerminal())
	assert.False(t, RequestAccepted.IsTerminal())
}
