package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/JonMunkholm/coursereg/internal/core/coretest"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var _ core.Store = (*coretest.Store)(nil)

var fixedNow = time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*core.Service, *coretest.Store) {
	t.Helper()
	store := coretest.New()
	svc, err := core.NewService(store,
		core.WithBcryptCost(bcrypt.MinCost),
		core.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return svc, store
}

func requireValidation(t *testing.T, err error, want ...string) {
	t.Helper()
	msgs, ok := core.AsValidation(err)
	require.True(t, ok, "expected ValidationErrors, got %v", err)
	require.Equal(t, core.ValidationErrors(want), msgs)
}

type fixture struct {
	svc      *core.Service
	store    *coretest.Store
	category int32
	courses  []int32
	people   []int32
}

// seed creates one category, nCourses courses and nPeople participants.
func seed(t *testing.T, nCourses, nPeople int) fixture {
	t.Helper()
	ctx := context.Background()
	svc, store := newService(t)
	f := fixture{svc: svc, store: store}

	cat, err := svc.CreateCategory(ctx, core.CategoryInput{Name: "Programming"})
	require.NoError(t, err)
	f.category = cat.ID

	for i := 0; i < nCourses; i++ {
		c, err := svc.CreateCourse(ctx, core.CourseInput{
			Name:        "Course " + string(rune('A'+i)),
			Description: "About " + string(rune('A'+i)),
			CategoryID:  itoa(cat.ID),
		})
		require.NoError(t, err)
		f.courses = append(f.courses, c.ID)
	}
	for i := 0; i < nPeople; i++ {
		p, err := svc.CreateParticipant(ctx, core.ParticipantInput{
			Name:  "Person " + string(rune('A'+i)),
			Email: "p" + string(rune('a'+i)) + "@example.com",
			Phone: "555-000" + string(rune('0'+i)),
		})
		require.NoError(t, err)
		f.people = append(f.people, p.ID)
	}
	return f
}

func (f fixture) enroll(t *testing.T, course, person int32) {
	t.Helper()
	_, err := f.svc.Enroll(context.Background(), core.EnrollmentInput{
		CourseID:      itoa(course),
		ParticipantID: itoa(person),
	})
	require.NoError(t, err)
}
