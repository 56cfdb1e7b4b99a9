package database

import (
	"strings"
	"testing"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "%%"},
		{"ana", "%ana%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}
	for _, tt := range tests {
		if got := likePattern(tt.in); got != tt.want {
			t.Errorf("likePattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSchema_DeclaresIntegrityConstraints(t *testing.T) {
	schema := Schema()
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS categories",
		"CREATE TABLE IF NOT EXISTS courses",
		"CREATE TABLE IF NOT EXISTS participants",
		"CREATE TABLE IF NOT EXISTS enrollments",
		"ON DELETE RESTRICT",
		"CREATE UNIQUE INDEX IF NOT EXISTS enrollments_course_participant_key",
		"participants_username_key UNIQUE (username)",
	} {
		if !strings.Contains(schema, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}

func TestCreateEnrollment_UsesConflictTarget(t *testing.T) {
	if !strings.Contains(createEnrollment, "ON CONFLICT (course_id, participant_id) DO NOTHING") {
		t.Error("createEnrollment must rely on the (course_id, participant_id) unique index")
	}
}
