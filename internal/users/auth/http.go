// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/askora/internal/platform/middleware"
	requestutil "github.com/taibuivan/askora/internal/platform/request"
	"github.com/taibuivan/askora/internal/platform/respond"
)

// Handler exposes the authentication endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /auth mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/logout", handler.logout)
	})

	return router
}

// Register handles POST /register.
//
// Token responses are flat `{token, user_id, username}` payloads (no data
// envelope) — the shape existing API clients depend on.
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	handler.register(writer, request)
}

// Login handles POST /login.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	handler.login(writer, request)
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	input := RegisterInput{}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Raw(writer, http.StatusCreated, session)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	input := LoginInput{}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Raw(writer, http.StatusOK, session)
}
