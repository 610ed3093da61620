// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/askora/internal/platform/middleware"
	requestutil "github.com/taibuivan/askora/internal/platform/request"
	"github.com/taibuivan/askora/internal/platform/respond"
	"github.com/taibuivan/askora/internal/platform/sec"
)

// Handler exposes the comment endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the comment HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// QuestionRoutes returns the router mounted under a question's detail path
// (/questions/{questionID}/comments).
func (handler *Handler) QuestionRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listByQuestion)
	return router
}

// Routes returns the router for the /comments mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/answer/{answerID}", handler.listByAnswer)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/", handler.createComment)
		authed.Delete("/{commentID}", handler.deleteComment)
	})

	return router
}

func (handler *Handler) listByQuestion(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListByQuestion(request.Context(), requestutil.Param(request, "questionID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) listByAnswer(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListByAnswer(request.Context(), requestutil.Param(request, "answerID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
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

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	isModerator := sec.UserRole(principal.Role).AtLeast(sec.RoleModerator)
	err = handler.service.Delete(request.Context(), principal.UserID, isModerator, requestutil.Param(request, "commentID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
