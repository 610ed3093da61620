// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/askora/internal/platform/middleware"
	requestutil "github.com/taibuivan/askora/internal/platform/request"
	"github.com/taibuivan/askora/internal/platform/respond"
)

// Handler exposes the profile endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the profile HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /profiles mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{username}", handler.getProfile)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Put("/me", handler.updateOwnProfile)
		authed.Post("/me/reputation/recalculate", handler.recalculateReputation)
	})

	return router
}

func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	prof, err := handler.service.GetByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, prof)
}

func (handler *Handler) updateOwnProfile(writer http.ResponseWriter, request *http.Request) {
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

	prof, err := handler.service.UpdateOwn(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, prof)
}

func (handler *Handler) recalculateReputation(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reputation, err := handler.service.RecalculateReputation(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"reputation": reputation})
}
