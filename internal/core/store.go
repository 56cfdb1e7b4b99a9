package core

import (
	"context"

	"github.com/JonMunkholm/coursereg/internal/database"
)

// Store is the persistence surface the service depends on.
// *database.Queries satisfies it; tests use coretest.Store.
type Store interface {
	ListCategories(ctx context.Context, order database.CategoryOrder) ([]database.Category, error)
	GetCategory(ctx context.Context, id int32) (database.Category, error)
	CategoryExists(ctx context.Context, id int32) (bool, error)
	CategoryNameExists(ctx context.Context, arg database.UniqueCheckParams) (bool, error)
	CreateCategory(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error)
	UpdateCategory(ctx context.Context, arg database.UpdateCategoryParams) (int64, error)
	DeleteCategory(ctx context.Context, id int32) (int64, error)

	ListCourses(ctx context.Context, search string) ([]database.CourseWithCategory, error)
	GetCourse(ctx context.Context, id int32) (database.Course, error)
	CourseExists(ctx context.Context, id int32) (bool, error)
	CourseNameExists(ctx context.Context, arg database.UniqueCheckParams) (bool, error)
	CreateCourse(ctx context.Context, arg database.CreateCourseParams) (database.Course, error)
	UpdateCourse(ctx context.Context, arg database.UpdateCourseParams) (int64, error)
	DeleteCourse(ctx context.Context, id int32) (int64, error)
	CountCourses(ctx context.Context) (int64, error)

	ListParticipants(ctx context.Context, search string) ([]database.Participant, error)
	GetParticipant(ctx context.Context, id int32) (database.Participant, error)
	GetParticipantByUsername(ctx context.Context, username string) (database.Participant, error)
	ParticipantExists(ctx context.Context, id int32) (bool, error)
	ParticipantNameExists(ctx context.Context, arg database.UniqueCheckParams) (bool, error)
	ParticipantEmailExists(ctx context.Context, arg database.UniqueCheckParams) (bool, error)
	ParticipantPhoneExists(ctx context.Context, arg database.UniqueCheckParams) (bool, error)
	ParticipantUsernameExists(ctx context.Context, arg database.UniqueCheckParams) (bool, error)
	CreateParticipant(ctx context.Context, arg database.CreateParticipantParams) (database.Participant, error)
	UpdateParticipant(ctx context.Context, arg database.UpdateParticipantParams) (int64, error)
	DeleteParticipant(ctx context.Context, id int32) (int64, error)
	CountParticipants(ctx context.Context) (int64, error)

	CreateEnrollment(ctx context.Context, arg database.CreateEnrollmentParams) (database.Enrollment, error)
	GetEnrollment(ctx context.Context, id int32) (database.Enrollment, error)
	ListEnrollments(ctx context.Context) ([]database.Enrollment, error)
	ListEnrollmentDetails(ctx context.Context) ([]database.EnrollmentDetail, error)
	UpdateEnrollment(ctx context.Context, arg database.UpdateEnrollmentParams) (int64, error)
	DeleteEnrollment(ctx context.Context, id int32) (int64, error)

	TopCoursesByEnrollment(ctx context.Context, limit int32) ([]database.CourseEnrollmentCount, error)
	EnrollmentsByCategory(ctx context.Context) ([]database.CategoryEnrollmentCount, error)
	EnrollmentsByMonth(ctx context.Context) ([]database.MonthlyEnrollmentCount, error)
}

var _ Store = (*database.Queries)(nil)
