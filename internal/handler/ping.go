package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pingspace-dev/pingspace/internal/api"
	"github.com/pingspace-dev/pingspace/internal/domain"
	mw "github.com/pingspace-dev/pingspace/internal/middleware"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

func (h *Handler) CreatePing(w http.ResponseWriter, r *http.Request) {
	principal := mw.GetApiKeyPrincipalFromContext(r)
	if principal == nil {
		http.Error(w, "Api key required", http.StatusUnauthorized)
		return
	}

	var body api.CreatePingRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	submission := domain.PingSubmission{
		TopicSlug:   body.TopicSlug,
		Title:       body.Title,
		ContentType: domain.PingContentType(body.ContentType),
		Content:     body.Content,
		Tags:        body.Tags,
		Actions:     make([]domain.PingActionData, 0, len(body.Actions)),
	}
	for _, a := range body.Actions {
		submission.Actions = append(submission.Actions, domain.PingActionData{
			Type:    domain.ActionType(a.Type),
			Label:   a.Label,
			Url:     a.Url,
			Method:  a.Method,
			Headers: rawToString(a.Headers),
			Body:    rawToString(a.Body),
		})
	}

	ping, spaceId, err := h.ping.Create(r.Context(), principal.KeyId, submission)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreatePingResponse{Ping: *ping, SpaceId: spaceId})
}

func rawToString(raw []byte) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}

func (h *Handler) ListPings(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")
	topicId := chi.URLParam(r, "topic")

	cursor, limit, err := h.pageParams(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.ping.List(r.Context(), spaceId, topicId, mw.GetUserIdFromContext(r), cursor, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if page.Items == nil {
		page.Items = []domain.Ping{}
	}
	utils.WriteJSON(w, http.StatusOK, api.ListPingsResponse{
		Items: page.Items,
		Pagination: api.Pagination{
			HasNextPage: page.HasNextPage,
			NextCursor:  page.NextCursor,
			Limit:       limit,
		},
	})
}

func (h *Handler) MarkPingsRead(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")
	topicId := chi.URLParam(r, "topic")

	var body api.MarkReadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.ping.MarkRead(r.Context(), spaceId, topicId, mw.GetUserIdFromContext(r), body.Timestamp); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
