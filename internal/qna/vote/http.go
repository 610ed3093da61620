// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vote

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/askora/internal/platform/middleware"
	requestutil "github.com/taibuivan/askora/internal/platform/request"
	"github.com/taibuivan/askora/internal/platform/respond"
)

// Handler exposes the vote endpoints. All of them require authentication.
type Handler struct {
	service *Service
}

// NewHandler creates the vote HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /votes mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.castVote)
	router.Put("/", handler.changeVote)
	router.Delete("/", handler.retractVote)

	return router
}

func (handler *Handler) castVote(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := CastInput{}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Cast(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) changeVote(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := CastInput{}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Change(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// retractVote reads the target from the query string since DELETE bodies are
// unreliable across proxies.
func (handler *Handler) retractVote(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	var questionID, answerID *string
	if raw := query.Get("question_id"); raw != "" {
		questionID = &raw
	}
	if raw := query.Get("answer_id"); raw != "" {
		answerID = &raw
	}

	if err := handler.service.Retract(request.Context(), userID, questionID, answerID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
