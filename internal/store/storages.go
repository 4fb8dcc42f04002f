package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
)

// MockStorages groups the repositories of the mock backend.
type MockStorages struct {
	db *DB

	Subjects  SubjectRepository
	Questions QuestionRepository
	Templates TemplateRepository
	Users     UserRepository
	Access    AccessRepository
	Auth      AuthRepository
}

// NewMockStorages connects to dsn (SQLite or PostgreSQL), applies the mock
// backend migrations and wires every repository.
func NewMockStorages(ctx context.Context, dsn string, log *logger.Logger) (*MockStorages, error) {
	log.Info().Msg("creating mock backend storages...")

	db, err := NewConnect(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("mock database connection error: %w", err)
	}

	if err := db.MigrateMock(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newMockStorages(db, log), nil
}

func newMockStorages(db *DB, log *logger.Logger) *MockStorages {
	return &MockStorages{
		db:        db,
		Subjects:  NewSubjectRepository(db, log),
		Questions: NewQuestionRepository(db, log),
		Templates: NewTemplateRepository(db, log),
		Users:     NewUserRepository(db, log),
		Access:    NewAccessRepository(db, log),
		Auth:      NewAuthRepository(db, log),
	}
}

// Close releases the database connection.
func (s *MockStorages) Close() error {
	return s.db.Close()
}
