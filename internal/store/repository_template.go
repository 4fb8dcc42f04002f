// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/models"
)

// templateRepository stores each template as a JSON document and mirrors
// its subject links into template_subjects for filtering.
type templateRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewTemplateRepository(db *DB, log *logger.Logger) TemplateRepository {
	log.Debug().Msg("creating template repository")
	return &templateRepository{db: db, logger: log}
}

func (r *templateRepository) ListTemplates(ctx context.Context, subjectID int64, page models.PageRequest) ([]models.TestTemplate, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountTemplatesQuery(r.db.builder, subjectID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	total, err := count(ctx, r.db, r.db, countQuery, countArgs)
	if err != nil {
		log.Err(err).Str("func", "*templateRepository.ListTemplates").Msg("error counting templates")
		return nil, 0, err
	}

	query, args, err := buildListTemplatesQuery(r.db.builder, subjectID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*templateRepository.ListTemplates").Msg("error querying templates")
		return nil, 0, r.db.classify(err)
	}
	defer rows.Close()

	templates := make([]models.TestTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.db.classify(err)
	}

	return templates, total, nil
}

func (r *templateRepository) GetTemplate(ctx context.Context, id int64) (models.TestTemplate, error) {
	query, args, err := buildGetTemplateQuery(r.db.builder, id)
	if err != nil {
		return models.TestTemplate{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.TestTemplate{}, r.db.classify(err)
	}
	return t, nil
}

func (r *templateRepository) CreateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error) {
	doc, err := encodeTemplate(template)
	if err != nil {
		return models.TestTemplate{}, err
	}

	err = r.db.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildInsertTemplateQuery(r.db.builder, template.Title, doc)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&template.ID); err != nil {
			return r.db.classify(err)
		}
		return r.linkSubjects(ctx, tx, template.ID, template.Subjects)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*templateRepository.CreateTemplate").Msg("error creating template")
		return models.TestTemplate{}, err
	}

	return template, nil
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error) {
	doc, err := encodeTemplate(template)
	if err != nil {
		return models.TestTemplate{}, err
	}

	err = r.db.inTx(ctx, func(tx *sql.Tx) error {
		query, args, err := buildUpdateTemplateQuery(r.db.builder, template.ID, template.Title, doc)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return r.db.classify(err)
		}
		if err := expectAffected(res); err != nil {
			return err
		}
		return r.linkSubjects(ctx, tx, template.ID, template.Subjects)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*templateRepository.UpdateTemplate").Msg("error updating template")
		}
		return models.TestTemplate{}, err
	}

	return template, nil
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, tableTemplates, id)
}

// linkSubjects replaces the template's rows in template_subjects.
func (r *templateRepository) linkSubjects(ctx context.Context, tx *sql.Tx, templateID int64, subjects []models.TemplateSubject) error {
	query, args, err := buildDeleteTemplateSubjectsQuery(r.db.builder, templateID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return r.db.classify(err)
	}

	if len(subjects) == 0 {
		return nil
	}

	query, args, err = buildInsertTemplateSubjectsQuery(r.db.builder, templateID, subjects)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return r.db.classify(err)
	}
	return nil
}

func scanTemplate(row rowScanner) (models.TestTemplate, error) {
	var (
		id  int64
		doc []byte
	)
	if err := row.Scan(&id, &doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TestTemplate{}, err
		}
		return models.TestTemplate{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var t models.TestTemplate
	if err := json.Unmarshal(doc, &t); err != nil {
		return models.TestTemplate{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	t.ID = id

	return t, nil
}

func encodeTemplate(t models.TestTemplate) (string, error) {
	t.ID = 0
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	return string(b), nil
}
