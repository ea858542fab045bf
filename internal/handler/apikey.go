package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pingspace-dev/pingspace/internal/api"
	"github.com/pingspace-dev/pingspace/internal/domain"
	internal_errors "github.com/pingspace-dev/pingspace/internal/errors"
	mw "github.com/pingspace-dev/pingspace/internal/middleware"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

func (h *Handler) CreateApiKey(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")

	var body api.CreateApiKeyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	key, token, err := h.apiKey.Issue(r.Context(), spaceId, mw.GetUserIdFromContext(r), body.Name, body.Description)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreateApiKeyResponse{
		Id:          key.Id,
		Name:        key.Name,
		Description: key.Description,
		Key:         token,
		CreatedAt:   key.CreatedAt,
	})
}

func (h *Handler) ListApiKeys(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")

	cursor, limit, err := h.pageParams(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var status *domain.ApiKeyStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed := domain.ApiKeyStatus(s)
		if parsed != domain.ApiKeyActive && parsed != domain.ApiKeyInactive {
			utils.WriteErrorAndStatusCode(w, &internal_errors.ValidationError{Message: "status must be ACTIVE or INACTIVE"})
			return
		}
		status = &parsed
	}

	page, err := h.apiKey.List(r.Context(), spaceId, mw.GetUserIdFromContext(r), status, cursor, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if page.Items == nil {
		page.Items = []domain.ApiKey{}
	}
	utils.WriteJSON(w, http.StatusOK, api.ListApiKeysResponse{
		Items: page.Items,
		Pagination: api.Pagination{
			HasNextPage: page.HasNextPage,
			NextCursor:  page.NextCursor,
			Limit:       limit,
		},
	})
}
