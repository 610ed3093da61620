// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package answer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/askora/internal/platform/middleware"
	requestutil "github.com/taibuivan/askora/internal/platform/request"
	"github.com/taibuivan/askora/internal/platform/respond"
	"github.com/taibuivan/askora/internal/platform/sec"
)

// Handler exposes the answer endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the answer HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// QuestionRoutes returns the router mounted under a question's detail path
// (/questions/{questionID}/answers).
func (handler *Handler) QuestionRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listByQuestion)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/", handler.createAnswer)
	})

	return router
}

// Routes returns the router for the /answers mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{answerID}", handler.getAnswer)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Put("/{answerID}", handler.updateAnswer)
		authed.Delete("/{answerID}", handler.deleteAnswer)
		authed.Post("/{answerID}/accept", handler.acceptAnswer)
	})

	return router
}

func (handler *Handler) listByQuestion(writer http.ResponseWriter, request *http.Request) {
	questionID := requestutil.Param(request, "questionID")

	answers, err := handler.service.ListByQuestion(request.Context(), questionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, answers)
}

func (handler *Handler) createAnswer(writer http.ResponseWriter, request *http.Request) {
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

	result, err := handler.service.Create(request.Context(), userID, requestutil.Param(request, "questionID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) getAnswer(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Get(request.Context(), requestutil.Param(request, "answerID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) updateAnswer(writer http.ResponseWriter, request *http.Request) {
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

	result, err := handler.service.Update(request.Context(), userID, requestutil.Param(request, "answerID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) deleteAnswer(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	isModerator := sec.UserRole(principal.Role).AtLeast(sec.RoleModerator)
	err = handler.service.Delete(request.Context(), principal.UserID, isModerator, requestutil.Param(request, "answerID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) acceptAnswer(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Accept(request.Context(), userID, requestutil.Param(request, "answerID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
