package handler

import (
	"net/http"
	"strconv"

	"github.com/pingspace-dev/pingspace/internal/config"
	"github.com/pingspace-dev/pingspace/internal/service"
)

type Handler struct {
	auth   service.AuthService
	space  service.SpaceService
	topic  service.TopicService
	apiKey service.ApiKeyService
	ping   service.PingService
	cfg    *config.Config
}

func New(auth service.AuthService, space service.SpaceService, topic service.TopicService, apiKey service.ApiKeyService, ping service.PingService, cfg *config.Config) *Handler {
	return &Handler{auth, space, topic, apiKey, ping, cfg}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// pageParams reads the cursor and limit query params, clamping the
// limit to the configured bounds.
func (h *Handler) pageParams(r *http.Request) (*string, int, error) {
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}

	limit := h.cfg.Public.DefaultPageSize
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			return nil, 0, errInvalidLimit
		}
		limit = parsed
	}
	if limit > h.cfg.Public.MaxPageSize {
		limit = h.cfg.Public.MaxPageSize
	}
	return cursor, limit, nil
}
