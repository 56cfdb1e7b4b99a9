package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := seed(t, 7, 4)

	// Course i gets i+1 enrollments (capped by the 4 participants).
	for i, course := range f.courses {
		for j := 0; j <= i && j < len(f.people); j++ {
			f.enroll(t, course, f.people[j])
		}
	}

	d, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 7, d.TotalCourses)
	assert.EqualValues(t, 4, d.TotalParticipants)

	require.Len(t, d.TopCourses, core.TopCoursesLimit)
	for i := 1; i < len(d.TopCourses); i++ {
		assert.GreaterOrEqual(t, d.TopCourses[i-1].Total, d.TopCourses[i].Total)
	}
	// Courses D..G tie at 4; lower id wins.
	assert.Equal(t, f.courses[3], d.TopCourses[0].CourseID)
	assert.Equal(t, f.courses[4], d.TopCourses[1].CourseID)

	require.Len(t, d.ByCategory, 1)
	assert.Equal(t, "Programming", d.ByCategory[0].CategoryName)
	assert.EqualValues(t, 1+2+3+4+4+4+4, d.ByCategory[0].Total)

	require.Len(t, d.ByMonth, 1)
	assert.Equal(t, "2024-05", d.ByMonth[0].Month)
}

func TestDashboard_Empty(t *testing.T) {
	svc, _ := newService(t)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d.TotalCourses)
	assert.Empty(t, d.TopCourses)
	assert.Empty(t, d.ByMonth)
}

func TestDashboard_StoreError(t *testing.T) {
	svc, store := newService(t)
	store.Err = errors.New("connection refused")

	_, err := svc.Dashboard(context.Background())
	require.Error(t, err)
	assert.Equal(t, "DB004", core.MapError(err).Code)
}
