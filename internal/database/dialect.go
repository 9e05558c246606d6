package database

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// SupportsLastInsertId returns true if the driver supports LastInsertId()
	SupportsLastInsertId() bool

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// BoolValue returns the SQL representation of a boolean value
	BoolValue(b bool) string

	// UpsertSkillProgressQuery returns an insert-or-update statement for one skill_progress row
	UpsertSkillProgressQuery() string

	// ForUpdateClause returns the suffix that row-locks a SELECT inside a transaction,
	// or "" when the database locks on write instead
	ForUpdateClause() string
}

// skillProgressColumns are the columns written by UpsertSkillProgressQuery, in argument order
var skillProgressColumns = []string{
	"student_id", "skill_id", "attempts", "correct", "sessions", "recent_accuracy",
	"average_response_time_ms", "mastery_level", "review_interval_days",
	"last_practiced", "next_review_at", "mastered", "updated_at",
}

// skillProgressInsert is the INSERT half shared by every dialect's upsert
func skillProgressInsert() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(skillProgressColumns)), ", ")
	return "INSERT INTO skill_progress (" + strings.Join(skillProgressColumns, ", ") + ") VALUES (" + placeholders + ")"
}

// skillProgressUpdates lists the columns replaced when the row already exists
var skillProgressUpdates = skillProgressColumns[2:]

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders not inside quotes
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}
