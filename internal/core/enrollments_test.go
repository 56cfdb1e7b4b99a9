package core_test

import (
	"context"
	"testing"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll_SamePairTwice(t *testing.T) {
	ctx := context.Background()
	f := seed(t, 1, 1)
	in := core.EnrollmentInput{CourseID: itoa(f.courses[0]), ParticipantID: itoa(f.people[0])}

	e, err := f.svc.Enroll(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-10", e.Date.Time.Format("2006-01-02"))

	_, err = f.svc.Enroll(ctx, in)
	assert.ErrorIs(t, err, core.ErrAlreadyEnrolled)
	assert.Equal(t, 1, f.store.EnrollmentCount())
}

func TestEnroll_IgnoresSuppliedDate(t *testing.T) {
	f := seed(t, 1, 2)

	for i, date := range []string{"2023-12-31", "10/05/2024"} {
		e, err := f.svc.Enroll(context.Background(), core.EnrollmentInput{
			CourseID:      itoa(f.courses[0]),
			ParticipantID: itoa(f.people[i]),
			Date:          date,
		})
		require.NoError(t, err, date)
		assert.Equal(t, "2024-05-10", e.Date.Time.Format("2006-01-02"), date)
	}
}

func TestEnroll_NoPreCheck(t *testing.T) {
	f := seed(t, 1, 1)
	before := len(f.store.Calls())

	f.enroll(t, f.courses[0], f.people[0])

	assert.Equal(t, []string{"CreateEnrollment"}, f.store.Calls()[before:])
}

func TestEnroll_Validation(t *testing.T) {
	ctx := context.Background()
	f := seed(t, 1, 1)

	tests := []struct {
		name string
		in   core.EnrollmentInput
		want []string
	}{
		{"empty", core.EnrollmentInput{}, []string{"Participant is required.", "Course is required."}},
		{"non numeric", core.EnrollmentInput{ParticipantID: "x", CourseID: "1"}, []string{"Participant must be a whole number."}},
		{"unknown course", core.EnrollmentInput{ParticipantID: itoa(f.people[0]), CourseID: "999"}, []string{"The selected course does not exist."}},
		{"unknown participant", core.EnrollmentInput{ParticipantID: "999", CourseID: itoa(f.courses[0])}, []string{"The selected participant does not exist."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Enroll(ctx, tt.in)
			requireValidation(t, err, tt.want...)
		})
	}
	assert.Zero(t, f.store.EnrollmentCount())
}

func TestUpdateEnrollment(t *testing.T) {
	ctx := context.Background()
	f := seed(t, 2, 1)
	f.enroll(t, f.courses[0], f.people[0])
	f.enroll(t, f.courses[1], f.people[0])

	list, err := f.svc.ListEnrollments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	first := list[1].ID // newest first; ties broken by id descending

	t.Run("change date", func(t *testing.T) {
		in := core.EnrollmentInput{CourseID: itoa(f.courses[0]), ParticipantID: itoa(f.people[0]), Date: "2024-01-15"}
		require.NoError(t, f.svc.UpdateEnrollment(ctx, first, in))

		got, err := f.svc.GetEnrollment(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, in, core.EnrollmentInputFrom(got))
	})

	t.Run("empty date keeps stored date", func(t *testing.T) {
		in := core.EnrollmentInput{CourseID: itoa(f.courses[0]), ParticipantID: itoa(f.people[0])}
		require.NoError(t, f.svc.UpdateEnrollment(ctx, first, in))

		got, err := f.svc.GetEnrollment(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-15", got.Date.Time.Format("2006-01-02"))
	})

	t.Run("colliding pair", func(t *testing.T) {
		in := core.EnrollmentInput{CourseID: itoa(f.courses[1]), ParticipantID: itoa(f.people[0])}
		assert.ErrorIs(t, f.svc.UpdateEnrollment(ctx, first, in), core.ErrAlreadyEnrolled)
	})

	t.Run("missing", func(t *testing.T) {
		in := core.EnrollmentInput{CourseID: itoa(f.courses[0]), ParticipantID: itoa(f.people[0])}
		assert.ErrorIs(t, f.svc.UpdateEnrollment(ctx, 999, in), core.ErrNotFound)
	})
}

func TestListEnrollments_NewestFirst(t *testing.T) {
	ctx := context.Background()
	f := seed(t, 2, 1)
	f.enroll(t, f.courses[0], f.people[0])
	f.enroll(t, f.courses[1], f.people[0])

	list, err := f.svc.ListEnrollments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, f.svc.UpdateEnrollment(ctx, list[0].ID, core.EnrollmentInput{
		CourseID: itoa(f.courses[1]), ParticipantID: itoa(f.people[0]), Date: "2023-12-31",
	}))

	list, err = f.svc.ListEnrollments(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Course A", list[0].CourseName)
	assert.Equal(t, "Person A", list[0].ParticipantName)
	assert.Equal(t, "Course B", list[1].CourseName)
}

func TestDeleteEnrollment(t *testing.T) {
	ctx := context.Background()
	f := seed(t, 1, 1)
	f.enroll(t, f.courses[0], f.people[0])

	list, err := f.svc.ListEnrollments(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEnrollment(ctx, list[0].ID))
	assert.ErrorIs(t, f.svc.DeleteEnrollment(ctx, list[0].ID), core.ErrNotFound)

	// The course is free to delete once nothing references it.
	assert.NoError(t, f.svc.DeleteCourse(ctx, f.courses[0]))
}

func TestEnrollmentOptions(t *testing.T) {
	f := seed(t, 2, 3)

	opts, err := f.svc.EnrollmentOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts.Participants, 3)
	assert.Len(t, opts.Courses, 2)
}
