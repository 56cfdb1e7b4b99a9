//go:build property
// +build property

package core_test

import (
	"context"
	"testing"

	"github.com/JonMunkholm/coursereg/internal/core"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Every empty required field contributes exactly one message.
func TestCourseValidation_OneMessagePerEmptyField(t *testing.T) {
	svc, _ := newService(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	properties.Property("message count equals empty required fields", prop.ForAll(
		func(hasName, hasDesc, hasCategory bool) bool {
			in := core.CourseInput{}
			want := 0
			if hasName {
				in.Name = "x"
			} else {
				want++
			}
			if hasDesc {
				in.Description = "y"
			} else {
				want++
			}
			if hasCategory {
				in.CategoryID = "1"
			} else {
				want++
			}
			if want == 0 {
				return true
			}

			_, err := svc.CreateCourse(context.Background(), in)
			msgs, ok := core.AsValidation(err)
			if !ok {
				return false
			}
			// An unknown category adds one reference message.
			extra := 0
			if hasCategory {
				extra = 1
			}
			return len(msgs) == want+extra
		},
		gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}
