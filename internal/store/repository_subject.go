package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/models"
)

// subjectRepository is the SQL implementation of [SubjectRepository].
type subjectRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewSubjectRepository(db *DB, log *logger.Logger) SubjectRepository {
	log.Debug().Msg("creating subject repository")
	return &subjectRepository{db: db, logger: log}
}

func (r *subjectRepository) ListSubjects(ctx context.Context, mainOnly bool) ([]models.Subject, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListSubjectsQuery(r.db.builder, mainOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*subjectRepository.ListSubjects").Msg("error querying subjects")
		return nil, r.db.classify(err)
	}
	defer rows.Close()

	subjects := make([]models.Subject, 0)
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Calculator, &s.ImageURL, &s.Main); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, r.db.classify(err)
	}

	return subjects, nil
}

func (r *subjectRepository) GetSubject(ctx context.Context, id int64) (models.Subject, error) {
	query, args, err := buildGetSubjectQuery(r.db.builder, id)
	if err != nil {
		return models.Subject{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var s models.Subject
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &s.Calculator, &s.ImageURL, &s.Main)
	if err != nil {
		return models.Subject{}, r.db.classify(err)
	}

	return s, nil
}

func (r *subjectRepository) CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSubjectQuery(r.db.builder, subject)
	if err != nil {
		return models.Subject{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&subject.ID); err != nil {
		log.Err(err).Str("func", "*subjectRepository.CreateSubject").Msg("error inserting subject")
		return models.Subject{}, r.db.classify(err)
	}

	return subject, nil
}

func (r *subjectRepository) UpdateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateSubjectQuery(r.db.builder, subject)
	if err != nil {
		return models.Subject{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*subjectRepository.UpdateSubject").Msg("error updating subject")
		return models.Subject{}, r.db.classify(err)
	}
	if err := expectAffected(res); err != nil {
		return models.Subject{}, err
	}

	return subject, nil
}

func (r *subjectRepository) DeleteSubject(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, tableSubjects, id)
}
