// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Not found: The requested record does not exist
//	        Action: Return to the list; it may have been deleted
//	        Patterns: "record not found"
//
//	DB002 - Already enrolled: The participant is already in the course
//	        Action: Pick a different course or participant
//	        Patterns: "already enrolled"
//
//	DB003 - In use: The record is still referenced
//	        Action: Delete the dependent records first
//	        Patterns: "record in use"
//
//	DB004 - Connection refused: Unable to connect to database
//	        Action: Please try again in a few moments
//	        Patterns: "connection refused"
//
//	DB005 - Connection reset: Database connection was interrupted
//	        Action: Please try again
//	        Patterns: "connection reset"
//
//	DB006 - Timeout: Operation timed out
//	        Action: Please try again
//	        Patterns: "timeout", "context deadline exceeded"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid form: One or more fields failed validation
//	         Action: Review the messages on the form
//	         Patterns: "validation failed"
//
//	VAL002 - Duplicate value: A unique value already exists
//	         Action: Choose a different value
//	         Patterns: "duplicate key", "unique constraint"
//
//	VAL003 - Missing reference: Referenced record does not exist
//	         Action: Select an existing record
//	         Patterns: "foreign key"
//
// # Auth Errors (AUTH001-AUTH099)
//
//	AUTH001 - Invalid credentials: Invalid username or password
//	          Action: Check your username and password
//	          Patterns: "invalid credentials"
//
//	AUTH002 - No session: You must log in to continue
//	          Action: Log in and try again
//	          Patterns: "no active session"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Busy: Too many reports are being generated
//	         Action: Wait a few seconds and download again
//	         Patterns: "report generation busy"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are listed
// before general ones. When users report ERR000, check the application
// logs for the original error and its request id.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Sentinel errors in this package are matched through their text, so wrapped
// sentinels resolve the same way.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Record Errors (DB001-DB003)
	// =========================================================================
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "The requested record was not found",
			Action:  "Return to the list; it may have been deleted",
			Code:    "DB001",
		},
	},
	{
		pattern: "already enrolled",
		msg: UserMessage{
			Message: "The participant is already enrolled in this course",
			Action:  "Pick a different course or participant",
			Code:    "DB002",
		},
	},
	{
		pattern: "record in use",
		msg: UserMessage{
			Message: "This record is still referenced by other records",
			Action:  "Delete the dependent records first",
			Code:    "DB003",
		},
	},

	// =========================================================================
	// Database Connection Errors (DB004-DB006)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again",
			Code:    "DB006",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again",
			Code:    "DB006",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL003)
	// =========================================================================
	{
		pattern: "validation failed",
		msg: UserMessage{
			Message: "Some fields need attention",
			Action:  "Review the messages on the form",
			Code:    "VAL001",
		},
	},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value",
			Code:    "VAL002",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value",
			Code:    "VAL002",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Select an existing record",
			Code:    "VAL003",
		},
	},

	// =========================================================================
	// Auth Errors (AUTH001-AUTH002)
	// =========================================================================
	{
		pattern: "invalid credentials",
		msg: UserMessage{
			Message: "Invalid username or password.",
			Action:  "Check your username and password",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "no active session",
		msg: UserMessage{
			Message: "You must log in to continue",
			Action:  "Log in and try again",
			Code:    "AUTH002",
		},
	},

	// =========================================================================
	// Export Errors (EXP001)
	// =========================================================================
	{
		pattern: "report generation busy",
		msg: UserMessage{
			Message: "Too many reports are being generated right now",
			Action:  "Wait a few seconds and download again",
			Code:    "EXP001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	msg := MapError(fmt.Errorf("delete category: %w", ErrInUse))
//	// msg.Code == "DB003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
