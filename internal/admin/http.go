// Copyright (c) 2026 Askora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/askora/internal/platform/middleware"
	"github.com/taibuivan/askora/internal/platform/respond"
	"github.com/taibuivan/askora/internal/platform/sec"
	"github.com/taibuivan/askora/pkg/pagination"
)

// DefaultRecentVotes caps the recent-vote listing.
const DefaultRecentVotes = 50

// Handler exposes the admin listings. Every route requires the admin role.
type Handler struct {
	repository Repository
}

// NewHandler creates the admin HTTP handler.
func NewHandler(repository Repository) *Handler {
	return &Handler{repository: repository}
}

// Routes returns the router for the /admin mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/users", handler.listUsers)
	router.Get("/questions", handler.listQuestions)
	router.Get("/votes", handler.listRecentVotes)

	return router
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	entries, total, err := handler.repository.ListUsers(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listQuestions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	var solved *bool
	switch query.Get("solved") {
	case "true":
		value := true
		solved = &value
	case "false":
		value := false
		solved = &value
	}

	entries, total, err := handler.repository.ListQuestions(
		request.Context(), solved, query.Get("q"), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) listRecentVotes(writer http.ResponseWriter, request *http.Request) {
	limit := DefaultRecentVotes
	if raw := request.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= pagination.MaxLimit {
			limit = parsed
		}
	}

	entries, err := handler.repository.ListRecentVotes(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}
