package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-exam-admin/internal/service"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Get("/api/version", h.getServerVersion)

	// uploaded files are served as-is, outside the gzip group
	if h.services.FileService != nil {
		files := http.StripPrefix(service.FilesURLPrefix, http.FileServer(http.Dir(h.services.FileService.Dir())))
		router.Handle(service.FilesURLPrefix+"*", files)
	}

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		// routes without authorization
		r.Post("/api/auth/admin/login", h.requestOTP)
		r.Post("/api/auth/verify", h.verifyOTP)
		r.Get("/api/auth/refresh-token", h.refreshToken)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/auth/me", h.me)

			r.Route("/api/subject", func(r chi.Router) {
				r.Get("/all", h.listSubjects)
				r.Get("/main", h.listMainSubjects)
				r.Post("/", h.createSubject)
				r.Get("/{id}", h.getSubject)
				r.Put("/{id}", h.updateSubject)
				r.Delete("/{id}", h.deleteSubject)
			})

			r.Route("/api/questions", func(r chi.Router) {
				r.Get("/subject/{subjectId}", h.listQuestions)
				r.Post("/", h.createQuestion)
				r.Get("/{id}", h.getQuestion)
				r.Put("/{id}", h.updateQuestion)
				r.Delete("/{id}", h.deleteQuestion)
			})

			r.Route("/api/template", func(r chi.Router) {
				r.Get("/subject/{subjectId}", h.listTemplates)
				r.Post("/", h.createTemplate)
				r.Get("/{id}", h.getTemplate)
				r.Put("/{id}", h.updateTemplate)
				r.Delete("/{id}", h.deleteTemplate)
			})

			r.Route("/api/users", func(r chi.Router) {
				r.Get("/", h.listUsers)
				r.Post("/", h.createUser)
				r.Get("/{id}", h.getUser)
				r.Put("/{id}", h.updateUser)
				r.Delete("/{id}", h.deleteUser)
			})

			r.Get("/api/access/user/{userId}", h.listAccess)
			r.Put("/api/access/grant", h.grantAccess)
			r.Put("/api/access/revoke", h.revokeAccess)

			r.Post("/api/file/upload", h.uploadFile)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
