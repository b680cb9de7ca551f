// Package filter provides reusable GORM scopes for list-endpoint filtering.
//
// Scopes are nil-safe building blocks: a scope built from an empty query
// parameter is a no-op, so repositories can chain every filter
// unconditionally:
//
//	db.Scopes(
//	    filter.Search(term, "name", "description"),
//	    filter.Eq("type", productType),
//	    filter.DateFrom("created_at", from),
//	).Find(&products)
package filter

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Scope is the gorm scope signature.
type Scope = func(*gorm.DB) *gorm.DB

// noop leaves the query untouched.
func noop(db *gorm.DB) *gorm.DB { return db }

// Search matches term case-insensitively against any of the given columns.
// Empty term is a no-op.
func Search(term string, columns ...string) Scope {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return noop
	}

	pattern := "%" + strings.ToLower(term) + "%"
	conds := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		conds[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
		args[i] = pattern
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// Eq matches a column exactly. Empty value is a no-op.
func Eq(column, value string) Scope {
	if strings.TrimSpace(value) == "" {
		return noop
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// EqUint matches a column against a numeric ID. Zero is a no-op.
func EqUint(column string, value uint) Scope {
	if value == 0 {
		return noop
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// True restricts to rows where the boolean column is set, when apply is true.
func True(column string, apply bool) Scope {
	if !apply {
		return noop
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column + " = " + dialectTrue(db))
	}
}

// DateFrom keeps rows where column is on or after the given bound
// (inclusive). Accepts "2006-01-02" or RFC3339; unparseable or empty input
// is a no-op.
func DateFrom(column, date string) Scope {
	t, _, ok := parseBound(date)
	if !ok {
		return noop
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ?", t)
	}
}

// DateTo keeps rows where column is on or before the given bound
// (inclusive). For a date-only bound the cutoff is the start of the
// following day, so the whole day is included; an RFC3339 bound is the
// exact instant.
func DateTo(column, date string) Scope {
	t, dayOnly, ok := parseBound(date)
	if !ok {
		return noop
	}
	if dayOnly {
		cutoff := t.AddDate(0, 0, 1)
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(column+" < ?", cutoff)
		}
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" <= ?", t)
	}
}

// parseBound parses a date-only or RFC3339 bound. The second return reports
// whether the input carried only a date.
func parseBound(date string) (time.Time, bool, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false, false
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t, true, true
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t, false, true
	}
	return time.Time{}, false, false
}

// dialectTrue returns the SQL literal for boolean true. SQLite stores
// booleans as integers; everything else understands TRUE.
func dialectTrue(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "1"
	}
	return "TRUE"
}
