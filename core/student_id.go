package core

import (
	"regexp"
)

// A student id is two uppercase letters, a batch code, a dash and a three digit sequence, e.g. CS25-001.
var studentIDPattern = regexp.MustCompile(`^[A-Z]{2}([0-9A-Za-z]+)-\d{3}$`)

// ParseStudentID validates the format of a student identifier.
func ParseStudentID(input string) (StudentIDString, error) {
	if !studentIDPattern.MatchString(input) {
		return "", ErrInvalidStudentID
	}

	return input, nil
}

// BatchOf extracts the batch code from a student identifier.
// The second return value is false for identifiers that do not follow the format.
func BatchOf(studentID StudentIDString) (string, bool) {
	match := studentIDPattern.FindStringSubmatch(studentID)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// BatchPattern builds the matcher for all student ids of one batch.
// The batch code is matched verbatim, so "2" does not match CS25-001.
func BatchPattern(batchCode string) *regexp.Regexp {
	return regexp.MustCompile(`^[A-Z]{2}` + regexp.QuoteMeta(batchCode) + `-\d{3}$`)
}

// ClassName renders the display name of a batch; two digit codes are years.
func ClassName(batchCode string) string {
	if len(batchCode) == 2 && isDigits(batchCode) {
		return "Batch 20" + batchCode
	}

	return "Batch " + batchCode
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
