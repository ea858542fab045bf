package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pingspace-dev/pingspace/internal/api"
	"github.com/pingspace-dev/pingspace/internal/domain"
	mw "github.com/pingspace-dev/pingspace/internal/middleware"
	"github.com/pingspace-dev/pingspace/internal/utils"
)

func (h *Handler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var body api.CreateSpaceRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	data := domain.SpaceCreationData{
		Name:             body.Name,
		ShortDescription: body.ShortDescription,
		Description:      body.Description,
		OwnerId:          mw.GetUserIdFromContext(r),
	}
	if body.Slug != nil {
		data.Slug = *body.Slug
	}

	spaceId, err := h.space.Create(r.Context(), data)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreateSpaceResponse{SpaceId: spaceId})
}

func (h *Handler) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")

	if err := h.space.Delete(r.Context(), spaceId, mw.GetUserIdFromContext(r)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	cursor, limit, err := h.pageParams(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.space.List(r.Context(), mw.GetUserIdFromContext(r), cursor, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if page.Items == nil {
		page.Items = []domain.SpaceOverview{}
	}
	utils.WriteJSON(w, http.StatusOK, api.ListSpacesResponse{
		Items: page.Items,
		Pagination: api.Pagination{
			HasNextPage: page.HasNextPage,
			NextCursor:  page.NextCursor,
			Limit:       limit,
		},
	})
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")

	var body api.AddMemberRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	memberId, err := h.space.AddMember(r.Context(), spaceId, mw.GetUserIdFromContext(r), body.Email, domain.MemberRole(body.Role))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.AddMemberResponse{MemberId: memberId})
}

func (h *Handler) PinSpace(w http.ResponseWriter, r *http.Request) {
	spaceId := chi.URLParam(r, "space")

	var body api.PinSpaceRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.space.Pin(r.Context(), spaceId, mw.GetUserIdFromContext(r), *body.Pinned); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
