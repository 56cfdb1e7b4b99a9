// Package core provides the business logic for course registration.
//
// This package holds all domain rules independent of HTTP or storage. The
// web layer calls a [Service]; the Service talks to a [Store], which in
// production is the generated query layer over PostgreSQL.
//
// # Validation
//
// Each entity has an input type carrying the raw submitted form. Field rules
// live in struct tags; uniqueness and reference rules are separate existence
// queries. All failures accumulate into [ValidationErrors], returned through
// the normal error path:
//
//	if msgs, ok := core.AsValidation(err); ok {
//	    // re-render the form with msgs
//	}
//
// # Integrity
//
// Storage constraints are the source of truth. Deleting a referenced row
// yields [ErrInUse]; enrolling an existing (course, participant) pair yields
// [ErrAlreadyEnrolled] and leaves the stored row as it was.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - DB001-DB006: record and database errors
//   - VAL001-VAL003: validation and constraint errors
//   - AUTH001-AUTH002: login and session errors
//   - EXP001: report download capacity
package core
