package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"phonicsquest/internal/database"
	"phonicsquest/internal/models"
	"phonicsquest/internal/repository"
)

// BackupVersion is written to every export and checked on import
const BackupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string                   `json:"version"`
	ExportedAt   time.Time                `json:"exported_at"`
	DatabaseType string                   `json:"database_type"`
	Sessions     []models.PracticeSession `json:"sessions"`
	Attempts     []models.Attempt         `json:"attempts"`
	Progress     []models.SkillProgress   `json:"skill_progress"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(file)
	if err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d sessions, %d attempts, %d progress records",
		len(backup.Sessions), len(backup.Attempts), len(backup.Progress))
	return nil
}

// ExportToWriter writes the backup as indented JSON and returns what was written
func (s *BackupService) ExportToWriter(w io.Writer) (*BackupData, error) {
	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
		Sessions:     []models.PracticeSession{},
		Attempts:     []models.Attempt{},
		Progress:     []models.SkillProgress{},
	}

	if err := s.exportSessions(backup); err != nil {
		return nil, fmt.Errorf("failed to export sessions: %w", err)
	}
	if err := s.exportProgress(backup); err != nil {
		return nil, fmt.Errorf("failed to export progress: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return backup, nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup inside a single transaction. Existing
// sessions and progress with the same keys are overwritten.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	err := s.db.WithTx(func(tx *database.Tx) error {
		sessions := repository.NewPracticeRepository(tx)
		progress := repository.NewProgressRepository(tx)

		log.Printf("Importing %d sessions...", len(backup.Sessions))
		for i := range backup.Sessions {
			if err := sessions.PutSession(&backup.Sessions[i]); err != nil {
				return fmt.Errorf("failed to import session %s: %w", backup.Sessions[i].ID, err)
			}
		}

		// attempts go in file order, which is their submission order
		log.Printf("Importing %d attempts...", len(backup.Attempts))
		for i := range backup.Attempts {
			if err := sessions.AppendAttempt(&backup.Attempts[i]); err != nil {
				return fmt.Errorf("failed to import attempt %s: %w", backup.Attempts[i].ID, err)
			}
		}

		log.Printf("Importing %d progress records...", len(backup.Progress))
		for i := range backup.Progress {
			p := &backup.Progress[i]
			if err := progress.PutProgress(p); err != nil {
				return fmt.Errorf("failed to import progress %s/%s: %w", p.StudentID, p.SkillID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id FROM practice_sessions ORDER BY started_at, id")
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	repo := repository.NewPracticeRepository(s.db)
	for _, id := range ids {
		session, err := repo.GetSession(id)
		if err != nil {
			return err
		}
		attempts, err := repo.ListAttempts(id)
		if err != nil {
			return err
		}
		backup.Sessions = append(backup.Sessions, *session)
		backup.Attempts = append(backup.Attempts, attempts...)
	}
	return nil
}

func (s *BackupService) exportProgress(backup *BackupData) error {
	rows, err := s.db.Query("SELECT DISTINCT student_id FROM skill_progress ORDER BY student_id")
	if err != nil {
		return err
	}
	var students []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		students = append(students, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	repo := repository.NewProgressRepository(s.db)
	for _, student := range students {
		list, err := repo.ListProgress(student, false)
		if err != nil {
			return err
		}
		backup.Progress = append(backup.Progress, list...)
	}
	return nil
}
