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

// questionRepository stores each question as a JSON document with its
// subject and position kept in indexed columns.
type questionRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewQuestionRepository(db *DB, log *logger.Logger) QuestionRepository {
	log.Debug().Msg("creating question repository")
	return &questionRepository{db: db, logger: log}
}

func (r *questionRepository) ListQuestions(ctx context.Context, subjectID int64, page models.PageRequest) ([]models.Question, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountQuestionsQuery(r.db.builder, subjectID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	total, err := count(ctx, r.db, r.db, countQuery, countArgs)
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.ListQuestions").Msg("error counting questions")
		return nil, 0, err
	}

	query, args, err := buildListQuestionsQuery(r.db.builder, subjectID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.ListQuestions").Msg("error querying questions")
		return nil, 0, r.db.classify(err)
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.db.classify(err)
	}

	return questions, total, nil
}

func (r *questionRepository) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	query, args, err := buildGetQuestionQuery(r.db.builder, id)
	if err != nil {
		return models.Question{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Question{}, r.db.classify(err)
	}
	return q, nil
}

func (r *questionRepository) CreateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	log := logger.FromContext(ctx)

	doc, err := encodeQuestion(question)
	if err != nil {
		return models.Question{}, err
	}

	query, args, err := buildInsertQuestionQuery(r.db.builder, question.TestSubjectID, question.Position, doc)
	if err != nil {
		return models.Question{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&question.ID); err != nil {
		log.Err(err).Str("func", "*questionRepository.CreateQuestion").Msg("error inserting question")
		return models.Question{}, r.db.classify(err)
	}

	numberOptions(&question)
	return question, nil
}

func (r *questionRepository) UpdateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	log := logger.FromContext(ctx)

	doc, err := encodeQuestion(question)
	if err != nil {
		return models.Question{}, err
	}

	query, args, err := buildUpdateQuestionQuery(r.db.builder, question.ID, question.TestSubjectID, question.Position, doc)
	if err != nil {
		return models.Question{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*questionRepository.UpdateQuestion").Msg("error updating question")
		return models.Question{}, r.db.classify(err)
	}
	if err := expectAffected(res); err != nil {
		return models.Question{}, err
	}

	numberOptions(&question)
	return question, nil
}

func (r *questionRepository) DeleteQuestion(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, tableQuestions, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (models.Question, error) {
	var (
		id, subjectID int64
		doc           []byte
	)
	if err := row.Scan(&id, &subjectID, &doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Question{}, err
		}
		return models.Question{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var q models.Question
	if err := json.Unmarshal(doc, &q); err != nil {
		return models.Question{}, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	q.ID = id
	q.TestSubjectID = subjectID

	return q, nil
}

// encodeQuestion serialises the question without its row identity.
func encodeQuestion(q models.Question) (string, error) {
	q.ID = 0
	numberOptions(&q)

	b, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}
	return string(b), nil
}

// numberOptions assigns option IDs by position in the slice.
func numberOptions(q *models.Question) {
	for i := range q.Options {
		q.Options[i].ID = int64(i + 1)
	}
}
