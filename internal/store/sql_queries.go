package store

import (
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-exam-admin/models"
)

const (
	tableSessionKV        = "session_kv"
	tableSubjects         = "subjects"
	tableQuestions        = "questions"
	tableTemplates        = "templates"
	tableTemplateSubjects = "template_subjects"
	tableUsers            = "users"
	tableAccessGrants     = "access_grants"
	tableOTPCodes         = "otp_codes"
	tableRefreshTokens    = "refresh_tokens"
)

var (
	subjectColumns = []string{"id", "name", "calculator", "image_url", "main"}
	userColumns    = []string{"id", "full_name", "phone_number", "role"}
)

// pageBounds converts a zero-based page request into LIMIT and OFFSET.
func pageBounds(page models.PageRequest) (limit, offset uint64) {
	page = page.Normalize()
	return uint64(page.Size), uint64(page.Page) * uint64(page.Size)
}

// ── session kv ────────────────────────────────────────────────────────────────

func buildGetKVQuery(b sq.StatementBuilderType, key string) (string, []any, error) {
	return b.Select("value").From(tableSessionKV).Where(sq.Eq{"key": key}).ToSql()
}

func buildUpsertKVQuery(b sq.StatementBuilderType, values map[string]string, now time.Time) (string, []any, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	insert := b.Insert(tableSessionKV).Columns("key", "value", "updated_at")
	for _, k := range keys {
		insert = insert.Values(k, values[k], now)
	}

	return insert.
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteKVQuery(b sq.StatementBuilderType, keys []string) (string, []any, error) {
	return b.Delete(tableSessionKV).Where(sq.Eq{"key": keys}).ToSql()
}

// ── generic ───────────────────────────────────────────────────────────────────

func buildDeleteByIDQuery(b sq.StatementBuilderType, table string, id int64) (string, []any, error) {
	return b.Delete(table).Where(sq.Eq{"id": id}).ToSql()
}

// ── subjects ──────────────────────────────────────────────────────────────────

func buildListSubjectsQuery(b sq.StatementBuilderType, mainOnly bool) (string, []any, error) {
	q := b.Select(subjectColumns...).From(tableSubjects).OrderBy("id")
	if mainOnly {
		q = q.Where(sq.Eq{"main": true})
	}
	return q.ToSql()
}

func buildGetSubjectQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(subjectColumns...).From(tableSubjects).Where(sq.Eq{"id": id}).ToSql()
}

func buildInsertSubjectQuery(b sq.StatementBuilderType, s models.Subject) (string, []any, error) {
	return b.Insert(tableSubjects).
		Columns("name", "calculator", "image_url", "main").
		Values(s.Name, s.Calculator, s.ImageURL, s.Main).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateSubjectQuery(b sq.StatementBuilderType, s models.Subject) (string, []any, error) {
	return b.Update(tableSubjects).
		SetMap(map[string]any{
			"name":       s.Name,
			"calculator": s.Calculator,
			"image_url":  s.ImageURL,
			"main":       s.Main,
		}).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
}

// ── questions ─────────────────────────────────────────────────────────────────

func buildListQuestionsQuery(b sq.StatementBuilderType, subjectID int64, page models.PageRequest) (string, []any, error) {
	limit, offset := pageBounds(page)
	return b.Select("id", "subject_id", "document").
		From(tableQuestions).
		Where(sq.Eq{"subject_id": subjectID}).
		OrderBy("position", "id").
		Limit(limit).
		Offset(offset).
		ToSql()
}

func buildCountQuestionsQuery(b sq.StatementBuilderType, subjectID int64) (string, []any, error) {
	return b.Select("COUNT(*)").From(tableQuestions).Where(sq.Eq{"subject_id": subjectID}).ToSql()
}

func buildGetQuestionQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select("id", "subject_id", "document").From(tableQuestions).Where(sq.Eq{"id": id}).ToSql()
}

func buildInsertQuestionQuery(b sq.StatementBuilderType, subjectID int64, position int, document string) (string, []any, error) {
	return b.Insert(tableQuestions).
		Columns("subject_id", "position", "document").
		Values(subjectID, position, document).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateQuestionQuery(b sq.StatementBuilderType, id, subjectID int64, position int, document string) (string, []any, error) {
	return b.Update(tableQuestions).
		SetMap(map[string]any{
			"subject_id": subjectID,
			"position":   position,
			"document":   document,
		}).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// ── templates ─────────────────────────────────────────────────────────────────

func buildListTemplatesQuery(b sq.StatementBuilderType, subjectID int64, page models.PageRequest) (string, []any, error) {
	limit, offset := pageBounds(page)
	return b.Select("t.id", "t.document").
		From(tableTemplates + " t").
		Join(tableTemplateSubjects + " ts ON ts.template_id = t.id").
		Where(sq.Eq{"ts.subject_id": subjectID}).
		OrderBy("t.id").
		Limit(limit).
		Offset(offset).
		ToSql()
}

func buildCountTemplatesQuery(b sq.StatementBuilderType, subjectID int64) (string, []any, error) {
	return b.Select("COUNT(*)").From(tableTemplateSubjects).Where(sq.Eq{"subject_id": subjectID}).ToSql()
}

func buildGetTemplateQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select("id", "document").From(tableTemplates).Where(sq.Eq{"id": id}).ToSql()
}

func buildInsertTemplateQuery(b sq.StatementBuilderType, title, document string) (string, []any, error) {
	return b.Insert(tableTemplates).
		Columns("title", "document").
		Values(title, document).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateTemplateQuery(b sq.StatementBuilderType, id int64, title, document string) (string, []any, error) {
	return b.Update(tableTemplates).
		Set("title", title).
		Set("document", document).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteTemplateSubjectsQuery(b sq.StatementBuilderType, templateID int64) (string, []any, error) {
	return b.Delete(tableTemplateSubjects).Where(sq.Eq{"template_id": templateID}).ToSql()
}

func buildInsertTemplateSubjectsQuery(b sq.StatementBuilderType, templateID int64, subjects []models.TemplateSubject) (string, []any, error) {
	insert := b.Insert(tableTemplateSubjects).Columns("template_id", "subject_id", "role")
	for _, s := range subjects {
		insert = insert.Values(templateID, s.Subject.ID, string(s.Role))
	}
	return insert.ToSql()
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildListUsersQuery(b sq.StatementBuilderType, page models.PageRequest) (string, []any, error) {
	limit, offset := pageBounds(page)
	return b.Select(userColumns...).From(tableUsers).OrderBy("id").Limit(limit).Offset(offset).ToSql()
}

func buildCountUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("COUNT(*)").From(tableUsers).ToSql()
}

func buildGetUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).From(tableUsers).Where(where).ToSql()
}

func buildInsertUserQuery(b sq.StatementBuilderType, u models.UserProfile) (string, []any, error) {
	return b.Insert(tableUsers).
		Columns("full_name", "phone_number", "role").
		Values(u.FullName, u.PhoneNumber, u.Role).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, u models.UserProfile) (string, []any, error) {
	return b.Update(tableUsers).
		SetMap(map[string]any{
			"full_name":    u.FullName,
			"phone_number": u.PhoneNumber,
			"role":         u.Role,
		}).
		Where(sq.Eq{"id": u.ID}).
		ToSql()
}

// ── access grants ─────────────────────────────────────────────────────────────

func buildListAccessQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("user_id", "template_id", "granted_at").
		From(tableAccessGrants).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("template_id").
		ToSql()
}

func buildGrantAccessQuery(b sq.StatementBuilderType, g models.AccessGrant) (string, []any, error) {
	return b.Insert(tableAccessGrants).
		Columns("user_id", "template_id", "granted_at").
		Values(g.UserID, g.TemplateID, g.GrantedAt).
		Suffix("ON CONFLICT (user_id, template_id) DO NOTHING").
		ToSql()
}

func buildGetAccessQuery(b sq.StatementBuilderType, userID, templateID int64) (string, []any, error) {
	return b.Select("user_id", "template_id", "granted_at").
		From(tableAccessGrants).
		Where(sq.Eq{"user_id": userID, "template_id": templateID}).
		ToSql()
}

func buildRevokeAccessQuery(b sq.StatementBuilderType, userID, templateID int64) (string, []any, error) {
	return b.Delete(tableAccessGrants).
		Where(sq.Eq{"user_id": userID, "template_id": templateID}).
		ToSql()
}

// ── auth ──────────────────────────────────────────────────────────────────────

func buildUpsertOTPQuery(b sq.StatementBuilderType, phone, codeHash string, expiresAt time.Time) (string, []any, error) {
	return b.Insert(tableOTPCodes).
		Columns("phone_number", "code_hash", "expires_at").
		Values(phone, codeHash, expiresAt).
		Suffix("ON CONFLICT (phone_number) DO UPDATE SET code_hash = excluded.code_hash, expires_at = excluded.expires_at").
		ToSql()
}

func buildGetOTPQuery(b sq.StatementBuilderType, phone string) (string, []any, error) {
	return b.Select("code_hash", "expires_at").From(tableOTPCodes).Where(sq.Eq{"phone_number": phone}).ToSql()
}

func buildDeleteOTPQuery(b sq.StatementBuilderType, phone string) (string, []any, error) {
	return b.Delete(tableOTPCodes).Where(sq.Eq{"phone_number": phone}).ToSql()
}

func buildInsertRefreshTokenQuery(b sq.StatementBuilderType, tokenHash string, userID int64, expiresAt time.Time) (string, []any, error) {
	return b.Insert(tableRefreshTokens).
		Columns("token_hash", "user_id", "expires_at").
		Values(tokenHash, userID, expiresAt).
		ToSql()
}

func buildGetRefreshTokenQuery(b sq.StatementBuilderType, tokenHash string) (string, []any, error) {
	return b.Select("user_id", "expires_at").From(tableRefreshTokens).Where(sq.Eq{"token_hash": tokenHash}).ToSql()
}

func buildDeleteRefreshTokenQuery(b sq.StatementBuilderType, tokenHash string) (string, []any, error) {
	return b.Delete(tableRefreshTokens).Where(sq.Eq{"token_hash": tokenHash}).ToSql()
}
