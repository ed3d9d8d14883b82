package repository

import (
	"strings"

	"github.com/sangkips/salesdocs-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ActiveScope keeps rows that have not been soft-deleted.
// Every read of invoices and purchases goes through this or DeletedScope.
func ActiveScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// DeletedScope keeps soft-deleted rows only
func DeletedScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", true)
}

// LifecycleScope selects the scope for a requested record state
func LifecycleScope(state enum.RecordState) func(db *gorm.DB) *gorm.DB {
	if state == enum.RecordStateDeleted {
		return DeletedScope
	}
	return ActiveScope
}

// ContainsScope matches term as a case-insensitive substring of any column
func ContainsScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		cond, args := containsCondition(term, columns...)
		if cond == "" {
			return db
		}
		return db.Where(cond, args...)
	}
}

// containsCondition spells the LIKE predicate with LOWER so it behaves the
// same on sqlite, postgres and mysql.
func containsCondition(term string, columns ...string) (string, []interface{}) {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return "", nil
	}
	pattern := "%" + strings.ToLower(escapeLike(term)) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
		args[i] = pattern
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}

func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}
