package services

import (
	"errors"
	"testing"
	"time"

	"legal_cms_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleHearingMovesNextHearing(t *testing.T) {
	db := setupTestDB(t)
	advocate := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	c := mustCase(t, db, &models.Case{CaseNumber: "CIV-1", Title: "Property Dispute", Petitioner: "A", Respondent: "B", AdvocateID: &advocate.ID})

	reload := func() models.Case {
		var got models.Case
		require.NoError(t, db.First(&got, c.ID).Error)
		return got
	}

	_, err := ScheduleHearing(db, advocate, HearingInput{CaseID: c.ID, Date: "2030-03-20", StartTime: "2030-03-20T11:00:00"})
	require.NoError(t, err)
	got := reload()
	assert.Equal(t, models.CaseStatusHearingScheduled, got.Status)
	require.NotNil(t, got.NextHearing)
	assert.True(t, got.NextHearing.Equal(time.Date(2030, 3, 20, 11, 0, 0, 0, time.UTC)))

	_, err = ScheduleHearing(db, advocate, HearingInput{CaseID: c.ID, Date: "2030-03-10", StartTime: "2030-03-10T10:30:00"})
	require.NoError(t, err)
	got = reload()
	assert.True(t, got.NextHearing.Equal(time.Date(2030, 3, 10, 10, 30, 0, 0, time.UTC)))

	// later start times and date-only hearings leave the case alone
	status := models.CaseStatusInProgress
	_, err = UpdateCase(db, advocate, c.ID, CaseUpdate{Status: &status})
	require.NoError(t, err)
	_, err = ScheduleHearing(db, advocate, HearingInput{CaseID: c.ID, Date: "2030-04-01", StartTime: "2030-04-01T10:00:00"})
	require.NoError(t, err)
	_, err = ScheduleHearing(db, advocate, HearingInput{CaseID: c.ID, Date: "2030-03-01"})
	require.NoError(t, err)
	got = reload()
	assert.Equal(t, models.CaseStatusInProgress, got.Status)
	assert.True(t, got.NextHearing.Equal(time.Date(2030, 3, 10, 10, 30, 0, 0, time.UTC)))

	hearings, err := ListHearings(db, advocate, c.ID)
	require.NoError(t, err)
	require.Len(t, hearings, 4)
	assert.Equal(t, "2030-04-01", hearings[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2030-03-01", hearings[3].Date.Format("2006-01-02"))
}

func TestScheduleHearingValidation(t *testing.T) {
	db := setupTestDB(t)
	advocate := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	other := mustUser(t, db, "Adv. Vikram Singh", "vikram@example.com", models.RoleAdvocate)
	citizen := mustUser(t, db, "Ramesh Kumar", "ramesh@example.com", models.RolePublic)
	c := mustCase(t, db, &models.Case{CaseNumber: "CIV-1", Title: "Property Dispute", Petitioner: "A", Respondent: "B", AdvocateID: &advocate.ID})

	cases := []struct {
		name  string
		user  *models.User
		input HearingInput
		kind  error
	}{
		{"public", citizen, HearingInput{CaseID: c.ID, Date: "2030-03-10"}, ErrForbidden},
		{"missing case", advocate, HearingInput{Date: "2030-03-10"}, ErrBadRequest},
		{"bad date", advocate, HearingInput{CaseID: c.ID, Date: "March 10"}, ErrBadRequest},
		{"bad start", advocate, HearingInput{CaseID: c.ID, Date: "2030-03-10", StartTime: "10:30"}, ErrBadRequest},
		{"end before start", advocate, HearingInput{CaseID: c.ID, Date: "2030-03-10", StartTime: "2030-03-10T11:00:00", EndTime: "2030-03-10T10:00:00"}, ErrBadRequest},
		{"out of scope", other, HearingInput{CaseID: c.ID, Date: "2030-03-10"}, ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ScheduleHearing(db, tc.user, tc.input)
			assert.True(t, errors.Is(err, tc.kind), "got %v", err)
		})
	}
}

func TestUpdateAndDeleteHearing(t *testing.T) {
	db := setupTestDB(t)
	advocate := mustUser(t, db, "Adv. Priya Sharma", "priya@example.com", models.RoleAdvocate)
	c := mustCase(t, db, &models.Case{CaseNumber: "CIV-1", Title: "Property Dispute", Petitioner: "A", Respondent: "B", AdvocateID: &advocate.ID})
	h, err := ScheduleHearing(db, advocate, HearingInput{CaseID: c.ID, Date: "2030-03-10", Type: "Arguments"})
	require.NoError(t, err)

	bogus := "postponed"
	_, err = UpdateHearing(db, advocate, h.ID, HearingUpdate{Status: &bogus})
	assert.True(t, errors.Is(err, ErrBadRequest))

	done, day := models.HearingStatusCompleted, "2030-03-11"
	updated, err := UpdateHearing(db, advocate, h.ID, HearingUpdate{Status: &done, Date: &day})
	require.NoError(t, err)
	assert.Equal(t, done, updated.Status)
	assert.Equal(t, "Arguments", updated.Type)
	assert.Equal(t, "2030-03-11", updated.Date.Format("2006-01-02"))

	require.NoError(t, DeleteHearing(db, advocate, h.ID))
	err = DeleteHearing(db, advocate, h.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
