package utils

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

func Slugify(input string) string {
	slug := strings.ToLower(strings.TrimSpace(input))

	// Replace non-alphanumeric characters with dash
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Pagination clamps limit/page the same way everywhere: default 20, max 100, pages start at 1.
func Pagination(limit, page *int32) (finalLimit, offset int32) {
	finalLimit = 20
	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if page != nil && *page > 0 {
		finalPage = *page
	}

	// computed in int64 so huge pages saturate instead of wrapping negative
	off := int64(finalPage-1) * int64(finalLimit)
	if off > math.MaxInt32 {
		off = math.MaxInt32
	}
	return finalLimit, int32(off)
}

func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgerrcode.UniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgerrcode.ForeignKeyViolation
}

// IsNumericOutOfRange reports a value that overflowed its column type.
func IsNumericOutOfRange(err error) bool {
	return pgCode(err) == pgerrcode.NumericValueOutOfRange
}

// ConstraintName returns the violated constraint for postgres errors, if any.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
