package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()
	
	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})
	
	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})
	
	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "sqlite"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()
	
	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})
	
	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if result {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})
	
	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "postgres"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()
	
	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})
	
	t.Run("SupportsLastInsertId", func(t *testing.T) {
		result := dialect.SupportsLastInsertId()
		if !result {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})
	
	t.Run("MigrationsSubdir", func(t *testing.T) {
		result := dialect.MigrationsSubdir()
		expected := "mysql"
		if result != expected {
			t.Errorf("MigrationsSubdir() = %v, want %v", result, expected)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM practice_sessions WHERE id = ?",
			expected: "SELECT * FROM practice_sessions WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM practice_sessions WHERE id = ?",
			expected: "SELECT * FROM practice_sessions WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO attempts (session_id, round_id) VALUES (?, ?)",
			expected: "INSERT INTO attempts (session_id, round_id) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE practice_sessions SET status = ?, rounds_completed = ? WHERE id = ?",
			expected: "UPDATE practice_sessions SET status = ?, rounds_completed = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestUpsertSkillProgressQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		contains string
	}{
		{name: "SQLite", dialect: NewSQLiteDialect(), contains: "ON CONFLICT (student_id, skill_id) DO UPDATE SET attempts = excluded.attempts"},
		{name: "PostgreSQL", dialect: NewPostgresDialect(), contains: "mastered = excluded.mastered"},
		{name: "MySQL", dialect: NewMySQLDialect(), contains: "ON DUPLICATE KEY UPDATE attempts = VALUES(attempts)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := tt.dialect.RewriteQuery(tt.dialect.UpsertSkillProgressQuery())
			if !strings.Contains(query, tt.contains) {
				t.Errorf("upsert query %q does not contain %q", query, tt.contains)
			}
			if strings.Contains(query, "student_id = excluded") || strings.Contains(query, "student_id = VALUES") {
				t.Error("upsert must not overwrite the key columns")
			}
		})
	}

	postgres := NewPostgresDialect().RewriteQuery(NewPostgresDialect().UpsertSkillProgressQuery())
	if !strings.Contains(postgres, "$13") || strings.Contains(postgres, "?") {
		t.Errorf("PostgreSQL upsert placeholders not rewritten: %s", postgres)
	}
}

func TestBoolValue(t *testing.T) {
	if NewSQLiteDialect().BoolValue(true) != "1" || NewSQLiteDialect().BoolValue(false) != "0" {
		t.Error("SQLite booleans should be 1/0")
	}
	if NewPostgresDialect().BoolValue(true) != "TRUE" || NewMySQLDialect().BoolValue(false) != "FALSE" {
		t.Error("PostgreSQL and MySQL booleans should be TRUE/FALSE")
	}
}

func TestForUpdateClause(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{name: "SQLite", dialect: NewSQLiteDialect(), want: ""},
		{name: "PostgreSQL", dialect: NewPostgresDialect(), want: " FOR UPDATE"},
		{name: "MySQL", dialect: NewMySQLDialect(), want: " FOR UPDATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.ForUpdateClause(); got != tt.want {
				t.Errorf("ForUpdateClause() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn := NewMySQLDialect().DSN(DialectConfig{URL: "user:pass@tcp(localhost:3306)/phonics"})
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("DSN %q missing parseTime", dsn)
	}
	if !strings.Contains(dsn, "multiStatements=true") {
		t.Errorf("DSN %q missing multiStatements", dsn)
	}
	if !strings.Contains(dsn, "clientFoundRows=true") {
		t.Errorf("DSN %q missing clientFoundRows", dsn)
	}
}
