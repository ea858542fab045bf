package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pingspace-dev/pingspace/internal/api"
	"github.com/pingspace-dev/pingspace/internal/domain"
	mw "github.com/pingspace-dev/pingspace/internal/middleware"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")

	var body api.CreateTopicRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	data := domain.TopicCreationData{
		SpaceId:          spaceId,
		Name:             body.Name,
		Emoji:            body.Emoji,
		ShortDescription: body.ShortDescription,
		Description:      body.Description,
	}
	if body.Slug != nil {
		data.Slug = *body.Slug
	}

	topicId, err := h.topic.Create(r.Context(), data, mw.GetUserIdFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreateTopicResponse{TopicId: topicId})
}

func (h *Handler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")
	topicId := chi.URLParam(r, "topic")

	if err := h.topic.Delete(r.Context(), spaceId, topicId, mw.GetUserIdFromContext(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")

	topics, err := h.topic.List(r.Context(), spaceId, mw.GetUserIdFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if topics == nil {
		topics = []domain.TopicOverview{}
	}
	utils.WriteJSON(w, http.StatusOK, api.ListTopicsResponse{Topics: topics})
}

func (h *Handler) TogglePinTopic(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")
	topicId := chi.URLParam(r, "topic")

	pinned, err := h.topic.TogglePin(r.Context(), spaceId, topicId, mw.GetUserIdFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.TogglePinResponse{IsPinned: pinned})
}
