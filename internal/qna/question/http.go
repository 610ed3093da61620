// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package question

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/askora/internal/platform/middleware"
	requestutil "github.com/taibuivan/askora/internal/platform/request"
	"github.com/taibuivan/askora/internal/platform/respond"
	"github.com/taibuivan/askora/internal/platform/sec"
	"github.com/taibuivan/askora/pkg/pagination"
)

// Handler exposes the question endpoints. Nested answer and comment routers
// are mounted below the question detail path.
type Handler struct {
	service  *Service
	answers  http.Handler
	comments http.Handler
}

// NewHandler creates the question HTTP handler. The answers and comments
// routers are mounted under /{questionID}/answers and /{questionID}/comments.
func NewHandler(service *Service, answers, comments http.Handler) *Handler {
	return &Handler{service: service, answers: answers, comments: comments}
}

// Routes returns the router for the /questions mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listQuestions)
	router.Get("/{questionID}", handler.getQuestion)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/", handler.createQuestion)
		authed.Put("/{questionID}", handler.updateQuestion)
		authed.Delete("/{questionID}", handler.deleteQuestion)
	})

	if handler.answers != nil {
		router.Mount("/{questionID}/answers", handler.answers)
	}
	if handler.comments != nil {
		router.Mount("/{questionID}/comments", handler.comments)
	}

	return router
}

func (handler *Handler) listQuestions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := filterFromRequest(request)

	questions, meta, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, questions, meta)
}

func (handler *Handler) getQuestion(writer http.ResponseWriter, request *http.Request) {
	idOrSlug := requestutil.Param(request, "questionID")

	result, err := handler.service.Get(request.Context(), idOrSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) createQuestion(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := CreateInput{}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) updateQuestion(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateInput{}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Update(request.Context(), userID, requestutil.Param(request, "questionID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) deleteQuestion(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	isModerator := sec.UserRole(principal.Role).AtLeast(sec.RoleModerator)
	err = handler.service.Delete(request.Context(), principal.UserID, isModerator, requestutil.Param(request, "questionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Read-only listing surface
//
// CompactList and CompactDetail back the unauthenticated GET /api/questions
// endpoints. They bypass the response envelope and never mutate view counts.

// CompactList serves GET /api/questions.
func (handler *Handler) CompactList(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.service.ListCompact(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Raw(writer, http.StatusOK, views)
}

// CompactDetail serves GET /api/questions/{questionID}.
func (handler *Handler) CompactDetail(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.GetCompact(request.Context(), requestutil.Param(request, "questionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Raw(writer, http.StatusOK, view)
}

// filterFromRequest parses the listing filters from the query string.
func filterFromRequest(request *http.Request) Filter {
	query := request.URL.Query()

	filter := Filter{
		Query:   query.Get("q"),
		TagSlug: query.Get("tag"),
		Sort:    query.Get("sort"),
	}

	switch query.Get("solved") {
	case "true":
		solved := true
		filter.Solved = &solved
	case "false":
		solved := false
		filter.Solved = &solved
	}

	return filter
}
