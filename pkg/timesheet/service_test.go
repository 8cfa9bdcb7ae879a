package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stafftrack/stafftrack/internal/utils"
	"github.com/stafftrack/stafftrack/pkg/billing"
	"github.com/stafftrack/stafftrack/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.WithValue(context.Background(), user.UserKey, user.User{
	Id:          10,
	Uid:         uuid.NewString(),
	Username:    "test-user-1",
	DisplayName: "Test User 1",
})

var repoStub = NewRepositoryStub()
var lookupStub = billing.NewRepositoryStub()
var clock = &utils.MockClock{FixedNow: time.Date(2025, 12, 19, 17, 0, 0, 0, time.UTC)}

var errStoreDown = errors.New("connection refused")

var service Service

func setup(t *testing.T) func() {
	lookupStub.SetAssignment(activeAssignment(1))
	service = NewService(repoStub, NewSubmissionValidator(lookupStub), clock)
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
		lookupStub.Reset()
	}
}

func TestServiceImpl_Submit(t *testing.T) {
	t.Run("persists a valid submission with the submission time", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		entries := []Entry{
			{BillingAssignmentId: 1, Hours: DailyHours{Mon: 8, Tue: 8, Wed: 8, Thu: 8, Fri: 8}},
		}

		submission, result, err := service.Submit(ctx, entries, weekEnding)

		require.NoError(t, err)
		assert.True(t, result.IsValid())
		assert.NotZero(t, submission.Id)
		assert.Equal(t, clock.FixedNow, submission.SubmittedAt)

		stored, err := service.GetSubmission(ctx, weekEnding)
		require.NoError(t, err)
		assert.Equal(t, submission.Id, stored.Id)
	})

	t.Run("does not persist an invalid submission", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		submission, result, err := service.Submit(ctx, []Entry{{BillingAssignmentId: 1}}, weekEnding)

		require.NoError(t, err)
		assert.False(t, result.IsValid())
		assert.Zero(t, submission.Id)

		_, err = service.GetSubmission(ctx, weekEnding)
		require.ErrorIs(t, err, ErrSubmissionNotFound)
	})

	t.Run("rejects a second submission for the same week", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		entries := []Entry{
			{BillingAssignmentId: 1, Hours: DailyHours{Mon: 8, Tue: 8, Wed: 8, Thu: 8, Fri: 8}},
		}

		_, _, err := service.Submit(ctx, entries, weekEnding)
		require.NoError(t, err)

		_, _, err = service.Submit(ctx, entries, weekEnding)
		require.ErrorIs(t, err, ErrAlreadySubmitted)
	})

	t.Run("propagates lookup failure as an error", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		lookupStub.FailWith(errStoreDown)

		entries := []Entry{
			{BillingAssignmentId: 1, Hours: DailyHours{Mon: 8}},
		}

		_, _, err := service.Submit(ctx, entries, weekEnding)

		require.ErrorIs(t, err, errStoreDown)
	})

	t.Run("returns error when user is missing from context", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, _, err := service.Submit(context.Background(), nil, weekEnding)

		require.Error(t, err)
	})
}
