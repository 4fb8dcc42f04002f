// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-exam-admin/models"
)

var (
	dollar   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	question = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name       string
		page       models.PageRequest
		wantLimit  uint64
		wantOffset uint64
	}{
		{name: "first page", page: models.PageRequest{Page: 0, Size: 10}, wantLimit: 10, wantOffset: 0},
		{name: "third page", page: models.PageRequest{Page: 2, Size: 10}, wantLimit: 10, wantOffset: 20},
		{name: "default size", page: models.PageRequest{Page: 1}, wantLimit: models.DefaultPageSize, wantOffset: models.DefaultPageSize},
		{name: "size capped", page: models.PageRequest{Page: 0, Size: 1000}, wantLimit: models.MaxPageSize, wantOffset: 0},
		{name: "negative page", page: models.PageRequest{Page: -3, Size: 5}, wantLimit: 5, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pageBounds(tt.page)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func Test_buildUpsertKVQuery(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildUpsertKVQuery(dollar, map[string]string{
		"refreshToken": "r",
		"accessToken":  "a",
	}, now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into session_kv (key,value,updated_at)")
	require.Contains(t, q, "on conflict (key) do update")
	require.Contains(t, query, "$6")

	// keys are sorted for a stable statement
	require.Equal(t, []any{"accessToken", "a", now, "refreshToken", "r", now}, args)
}

func Test_buildDeleteKVQuery(t *testing.T) {
	query, args, err := buildDeleteKVQuery(question, []string{"accessToken", "refreshToken", "admin_authenticated"})
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM session_kv WHERE key IN (?,?,?)", query)
	assert.Len(t, args, 3)
}

func Test_buildListSubjectsQuery(t *testing.T) {
	query, args, err := buildListSubjectsQuery(dollar, false)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, calculator, image_url, main FROM subjects ORDER BY id", query)
	assert.Empty(t, args)

	query, args, err = buildListSubjectsQuery(dollar, true)
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE main = $1")
	assert.Equal(t, []any{true}, args)
}

func Test_buildInsertSubjectQuery_Returning(t *testing.T) {
	query, args, err := buildInsertSubjectQuery(question, models.Subject{Name: "Math", Main: true})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(query, "RETURNING id"))
	assert.Equal(t, []any{"Math", false, "", true}, args)
}

func Test_buildUpdateSubjectQuery(t *testing.T) {
	query, args, err := buildUpdateSubjectQuery(dollar, models.Subject{ID: 9, Name: "Physics"})
	require.NoError(t, err)

	// SetMap orders columns alphabetically
	assert.Equal(t, "UPDATE subjects SET calculator = $1, image_url = $2, main = $3, name = $4 WHERE id = $5", query)
	assert.Equal(t, []any{false, "", false, "Physics", int64(9)}, args)
}

func Test_buildListQuestionsQuery_Pagination(t *testing.T) {
	query, args, err := buildListQuestionsQuery(dollar, 4, models.PageRequest{Page: 2, Size: 25})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE subject_id = $1")
	assert.Contains(t, query, "ORDER BY position, id")
	assert.Contains(t, query, "LIMIT 25 OFFSET 50")
	assert.Equal(t, []any{int64(4)}, args)
}

func Test_buildListTemplatesQuery_JoinsLinks(t *testing.T) {
	query, args, err := buildListTemplatesQuery(dollar, 3, models.PageRequest{Page: 0, Size: 100})
	require.NoError(t, err)

	assert.Contains(t, query, "JOIN template_subjects ts ON ts.template_id = t.id")
	assert.Contains(t, query, "WHERE ts.subject_id = $1")
	assert.Contains(t, query, "LIMIT 100 OFFSET 0")
	assert.Equal(t, []any{int64(3)}, args)
}

func Test_buildInsertTemplateSubjectsQuery_MultiRow(t *testing.T) {
	query, args, err := buildInsertTemplateSubjectsQuery(dollar, 7, []models.TemplateSubject{
		{Subject: models.Subject{ID: 1}, Role: models.SubjectRoleMain},
		{Subject: models.Subject{ID: 2}, Role: models.SubjectRoleAdditional},
	})
	require.NoError(t, err)

	assert.Contains(t, query, "VALUES ($1,$2,$3),($4,$5,$6)")
	assert.Equal(t, []any{int64(7), int64(1), "MAIN", int64(7), int64(2), "ADDITIONAL"}, args)
}

func Test_buildGrantAccessQuery_Idempotent(t *testing.T) {
	at := time.Now().UTC()
	query, args, err := buildGrantAccessQuery(dollar, models.AccessGrant{UserID: 1, TemplateID: 2, GrantedAt: at})
	require.NoError(t, err)

	assert.Contains(t, query, "ON CONFLICT (user_id, template_id) DO NOTHING")
	assert.Equal(t, []any{int64(1), int64(2), at}, args)
}

func Test_buildRevokeAccessQuery(t *testing.T) {
	query, args, err := buildRevokeAccessQuery(dollar, 5, 6)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM access_grants WHERE template_id = $1 AND user_id = $2", query)
	assert.Equal(t, []any{int64(6), int64(5)}, args)
}
