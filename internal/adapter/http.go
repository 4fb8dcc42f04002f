package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-exam-admin/internal/config"
	"github.com/MKhiriev/go-exam-admin/internal/logger"
	"github.com/MKhiriev/go-exam-admin/internal/session"
	"github.com/MKhiriev/go-exam-admin/internal/utils"
	"github.com/MKhiriev/go-exam-admin/models"
)

// fanOutPageSize is the page size TestTemplates requests per subject.
const fanOutPageSize = 100

type httpServerAdapter struct {
	client   *utils.HTTPClient
	session  *session.Session
	timeout  time.Duration
	strategy config.FanOutStrategy

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter]
// over sess. The base URL is normalised (a missing scheme defaults to
// http). A positive adapterCfg.RequestTimeout bounds every call, both on its
// context and on the transport.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, sess *session.Session, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	strategy := adapterCfg.TemplatesStrategy
	if strategy == "" {
		strategy = config.FanOutBestEffort
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.
		SetBaseURL(baseURL).
		SetLogger(restyLogger{logger})

	return &httpServerAdapter{
		client:   client,
		session:  sess,
		timeout:  adapterCfg.RequestTimeout,
		strategy: strategy,
		logger:   logger,
	}, nil
}

// restyLogger routes resty's own diagnostics into zerolog.
type restyLogger struct {
	l *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...any)  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...any) { r.l.Debug().Msgf(format, v...) }

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ── request pipeline ──────────────────────────────────────────────────────────

// call describes one backend request.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	file   *fileField

	// noRefresh disables the refresh-and-retry on 401. Set on the auth
	// endpoints themselves.
	noRefresh bool
}

type fileField struct {
	param string
	name  string
	data  []byte
}

// send executes c and decodes the envelope. A 401 on an authenticated call
// triggers one refresh; if it succeeds the request is retried once with the
// new token. When the session token changed while the request was in flight
// the retry goes out with it directly and no refresh is made. A 401 that
// survives the retry clears the session.
func send[T any](ctx context.Context, h *httpServerAdapter, c call) (models.Envelope[T], error) {
	used := h.session.AccessToken()
	resp, err := h.execute(ctx, c, used)
	if err != nil {
		return models.Envelope[T]{}, err
	}

	if resp.StatusCode() == http.StatusUnauthorized && !c.noRefresh {
		var retry bool
		if current := h.session.AccessToken(); current != "" && current != used {
			// a concurrent refresh already replaced the token
			retry = true
		} else {
			retry = h.RefreshTokenIfNeeded(ctx)
		}
		if retry {
			resp, err = h.execute(ctx, c, h.session.AccessToken())
			if err != nil {
				return models.Envelope[T]{}, err
			}
		}
		if resp.StatusCode() == http.StatusUnauthorized && h.session.IsAuthenticated() {
			if clearErr := h.session.Clear(ctx); clearErr != nil {
				h.logger.Err(clearErr).Str("func", "send").Msg("error clearing session")
			}
		}
	}

	return mapResponse[T](c.op, resp)
}

// execute performs a single HTTP exchange under the configured deadline,
// authorized with token when it is not empty.
func (h *httpServerAdapter) execute(ctx context.Context, c call, token string) (*resty.Response, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	traceID := utils.GetTraceIDFromContext(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader(utils.TraceIDHeader, traceID)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if c.query != nil {
		req.SetQueryParamsFromValues(c.query)
	}
	if c.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(c.body)
	}
	if c.file != nil {
		req.SetFileReader(c.file.param, c.file.name, bytes.NewReader(c.file.data))
	}

	start := time.Now()
	resp, err := req.Execute(c.method, c.path)

	event := h.logger.Debug().
		Str("op", c.op).
		Str("method", c.method).
		Str("path", c.path).
		Str("trace_id", traceID).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("request failed")
		return nil, mapTransportError(ctx, c.op, err)
	}
	event.Int("status", resp.StatusCode()).Msg("request done")

	return resp, nil
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func pageQuery(page models.PageRequest) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("size", strconv.Itoa(page.Size))
	return q
}

func toPage[T any](env models.Envelope[[]T]) models.Page[T] {
	p := models.Page[T]{Items: env.Data}
	if p.Items == nil {
		p.Items = []T{}
	}
	if env.PageableResponse != nil {
		p.Pageable = *env.PageableResponse
	}
	return p
}

// ── auth ──────────────────────────────────────────────────────────────────────

// Login implements [ServerAdapter]. POST /api/auth/admin/login.
func (h *httpServerAdapter) Login(ctx context.Context, phone string) (models.Envelope[any], error) {
	return send[any](ctx, h, call{
		op:        "auth.login",
		method:    http.MethodPost,
		path:      "/api/auth/admin/login",
		body:      models.LoginRequest{PhoneNumber: phone},
		noRefresh: true,
	})
}

// VerifyOTP implements [ServerAdapter]. POST /api/auth/verify.
func (h *httpServerAdapter) VerifyOTP(ctx context.Context, phone, code string) (models.VerifyResult, error) {
	env, err := send[models.VerifyResult](ctx, h, call{
		op:        "auth.verify",
		method:    http.MethodPost,
		path:      "/api/auth/verify",
		body:      models.VerifyRequest{PhoneNumber: phone, Code: code},
		noRefresh: true,
	})
	if err != nil {
		return models.VerifyResult{}, err
	}
	return env.Data, nil
}

// RefreshTokenIfNeeded implements [ServerAdapter].
func (h *httpServerAdapter) RefreshTokenIfNeeded(ctx context.Context) bool {
	return h.session.Refresh(ctx, h.refresh)
}

// refresh calls GET /api/auth/refresh-token?token=<refresh>.
func (h *httpServerAdapter) refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	env, err := send[models.TokenPair](ctx, h, call{
		op:        "auth.refresh",
		method:    http.MethodGet,
		path:      "/api/auth/refresh-token",
		query:     url.Values{"token": {refreshToken}},
		noRefresh: true,
	})
	if err != nil {
		return models.TokenPair{}, err
	}
	if env.Data.AccessToken == "" {
		return models.TokenPair{}, &RequestError{Op: "auth.refresh", Status: env.Status, Kind: ErrDecode, Err: errors.New("empty access token")}
	}
	return env.Data, nil
}

// Me implements [ServerAdapter]. GET /api/auth/me.
func (h *httpServerAdapter) Me(ctx context.Context) (models.UserProfile, error) {
	env, err := send[models.UserProfile](ctx, h, call{op: "auth.me", method: http.MethodGet, path: "/api/auth/me"})
	return env.Data, err
}

// ── subjects ──────────────────────────────────────────────────────────────────

func (h *httpServerAdapter) Subjects(ctx context.Context) ([]models.Subject, error) {
	env, err := send[[]models.Subject](ctx, h, call{op: "subjects.list", method: http.MethodGet, path: "/api/subject/all"})
	return env.Data, err
}

func (h *httpServerAdapter) MainSubjects(ctx context.Context) ([]models.Subject, error) {
	env, err := send[[]models.Subject](ctx, h, call{op: "subjects.main", method: http.MethodGet, path: "/api/subject/main"})
	return env.Data, err
}

func (h *httpServerAdapter) Subject(ctx context.Context, id int64) (models.Subject, error) {
	env, err := send[models.Subject](ctx, h, call{op: "subjects.get", method: http.MethodGet, path: idPath("/api/subject", id)})
	return env.Data, err
}

func (h *httpServerAdapter) CreateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	env, err := send[models.Subject](ctx, h, call{op: "subjects.create", method: http.MethodPost, path: "/api/subject", body: subject})
	return env.Data, err
}

func (h *httpServerAdapter) UpdateSubject(ctx context.Context, subject models.Subject) (models.Subject, error) {
	env, err := send[models.Subject](ctx, h, call{op: "subjects.update", method: http.MethodPut, path: idPath("/api/subject", subject.ID), body: subject})
	return env.Data, err
}

func (h *httpServerAdapter) DeleteSubject(ctx context.Context, id int64) error {
	_, err := send[any](ctx, h, call{op: "subjects.delete", method: http.MethodDelete, path: idPath("/api/subject", id)})
	return err
}

// ── questions ─────────────────────────────────────────────────────────────────

func (h *httpServerAdapter) QuestionsBySubject(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.Question], error) {
	env, err := send[[]models.Question](ctx, h, call{
		op:     "questions.list",
		method: http.MethodGet,
		path:   idPath("/api/questions/subject", subjectID),
		query:  pageQuery(page),
	})
	if err != nil {
		return models.Page[models.Question]{}, err
	}
	return toPage(env), nil
}

func (h *httpServerAdapter) Question(ctx context.Context, id int64) (models.Question, error) {
	env, err := send[models.Question](ctx, h, call{op: "questions.get", method: http.MethodGet, path: idPath("/api/questions", id)})
	return env.Data, err
}

func (h *httpServerAdapter) CreateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	env, err := send[models.Question](ctx, h, call{op: "questions.create", method: http.MethodPost, path: "/api/questions", body: question})
	return env.Data, err
}

func (h *httpServerAdapter) UpdateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	env, err := send[models.Question](ctx, h, call{op: "questions.update", method: http.MethodPut, path: idPath("/api/questions", question.ID), body: question})
	return env.Data, err
}

func (h *httpServerAdapter) DeleteQuestion(ctx context.Context, id int64) error {
	_, err := send[any](ctx, h, call{op: "questions.delete", method: http.MethodDelete, path: idPath("/api/questions", id)})
	return err
}

// ── templates ─────────────────────────────────────────────────────────────────

func (h *httpServerAdapter) TemplatesBySubject(ctx context.Context, subjectID int64, page models.PageRequest) (models.Page[models.TestTemplate], error) {
	env, err := send[[]models.TestTemplate](ctx, h, call{
		op:     "templates.list",
		method: http.MethodGet,
		path:   idPath("/api/template/subject", subjectID),
		query:  pageQuery(page),
	})
	if err != nil {
		return models.Page[models.TestTemplate]{}, err
	}
	return toPage(env), nil
}

func (h *httpServerAdapter) Template(ctx context.Context, id int64) (models.TestTemplate, error) {
	env, err := send[models.TestTemplate](ctx, h, call{op: "templates.get", method: http.MethodGet, path: idPath("/api/template", id)})
	return env.Data, err
}

func (h *httpServerAdapter) CreateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error) {
	env, err := send[models.TestTemplate](ctx, h, call{op: "templates.create", method: http.MethodPost, path: "/api/template", body: template})
	return env.Data, err
}

func (h *httpServerAdapter) UpdateTemplate(ctx context.Context, template models.TestTemplate) (models.TestTemplate, error) {
	env, err := send[models.TestTemplate](ctx, h, call{op: "templates.update", method: http.MethodPut, path: idPath("/api/template", template.ID), body: template})
	return env.Data, err
}

func (h *httpServerAdapter) DeleteTemplate(ctx context.Context, id int64) error {
	_, err := send[any](ctx, h, call{op: "templates.delete", method: http.MethodDelete, path: idPath("/api/template", id)})
	return err
}

// TestTemplates implements [ServerAdapter]. Subjects are fetched one at a
// time in the order the backend lists them. With the best-effort strategy a
// failing subject is logged and skipped; with fail-fast the first failure is
// returned. Expiry or cancellation of ctx always ends the fan-out with
// [ErrTimeout], whatever the strategy.
func (h *httpServerAdapter) TestTemplates(ctx context.Context) ([]models.TestTemplate, error) {
	subjects, err := h.MainSubjects(ctx)
	if err != nil {
		return nil, err
	}

	templates := make([]models.TestTemplate, 0)
	for _, subject := range subjects {
		page, err := h.TemplatesBySubject(ctx, subject.ID, models.PageRequest{Page: 0, Size: fanOutPageSize})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, &RequestError{Op: "templates.fanout", Kind: ErrTimeout, Err: ctxErr}
			}
			if h.strategy == config.FanOutFailFast {
				return nil, fmt.Errorf("templates of subject %d: %w", subject.ID, err)
			}
			h.logger.Warn().Err(err).
				Str("func", "*httpServerAdapter.TestTemplates").
				Int64("subject_id", subject.ID).
				Msg("skipping subject")
			continue
		}
		templates = append(templates, page.Items...)
	}

	return templates, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

func (h *httpServerAdapter) Users(ctx context.Context, page models.PageRequest) (models.Page[models.UserProfile], error) {
	env, err := send[[]models.UserProfile](ctx, h, call{op: "users.list", method: http.MethodGet, path: "/api/users", query: pageQuery(page)})
	if err != nil {
		return models.Page[models.UserProfile]{}, err
	}
	return toPage(env), nil
}

func (h *httpServerAdapter) User(ctx context.Context, id int64) (models.UserProfile, error) {
	env, err := send[models.UserProfile](ctx, h, call{op: "users.get", method: http.MethodGet, path: idPath("/api/users", id)})
	return env.Data, err
}

func (h *httpServerAdapter) CreateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error) {
	env, err := send[models.UserProfile](ctx, h, call{op: "users.create", method: http.MethodPost, path: "/api/users", body: user})
	return env.Data, err
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, user models.UserProfile) (models.UserProfile, error) {
	env, err := send[models.UserProfile](ctx, h, call{op: "users.update", method: http.MethodPut, path: idPath("/api/users", user.ID), body: user})
	return env.Data, err
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, id int64) error {
	_, err := send[any](ctx, h, call{op: "users.delete", method: http.MethodDelete, path: idPath("/api/users", id)})
	return err
}

// ── access grants ─────────────────────────────────────────────────────────────

func (h *httpServerAdapter) UserAccess(ctx context.Context, userID int64) ([]models.AccessGrant, error) {
	env, err := send[[]models.AccessGrant](ctx, h, call{op: "access.list", method: http.MethodGet, path: idPath("/api/access/user", userID)})
	return env.Data, err
}

func (h *httpServerAdapter) GrantAccess(ctx context.Context, userID, templateID int64) (models.AccessGrant, error) {
	env, err := send[models.AccessGrant](ctx, h, call{
		op:     "access.grant",
		method: http.MethodPut,
		path:   "/api/access/grant",
		body:   models.AccessRequest{UserID: userID, TemplateID: templateID},
	})
	return env.Data, err
}

func (h *httpServerAdapter) RevokeAccess(ctx context.Context, userID, templateID int64) error {
	_, err := send[any](ctx, h, call{
		op:     "access.revoke",
		method: http.MethodPut,
		path:   "/api/access/revoke",
		body:   models.AccessRequest{UserID: userID, TemplateID: templateID},
	})
	return err
}

// ── files ─────────────────────────────────────────────────────────────────────

// UploadImage implements [ServerAdapter]. POST /api/file/upload, multipart
// field "file". r is read fully up front so the request can be replayed
// after a token refresh.
func (h *httpServerAdapter) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload %q: %w", filename, err)
	}

	env, err := send[models.UploadResult](ctx, h, call{
		op:     "files.upload",
		method: http.MethodPost,
		path:   "/api/file/upload",
		file:   &fileField{param: "file", name: filename, data: data},
	})
	if err != nil {
		return "", err
	}
	return env.Data.URL, nil
}
