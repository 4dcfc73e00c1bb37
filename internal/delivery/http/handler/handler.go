package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/user/catalog-crawler/internal/delivery/http/response"
	"github.com/user/catalog-crawler/internal/entity"
	"github.com/user/catalog-crawler/internal/usecase"
)

const defaultItemsLimit = 20

// ItemLister exposes the catalog reads the ops surface needs.
type ItemLister interface {
	Recent(ctx context.Context, limit int) ([]*entity.Item, error)
}

// Handler serves the read-only ops surface of a running crawl.
type Handler struct {
	crawler usecase.Crawler
	items   ItemLister
}

func NewHandler(crawler usecase.Crawler, items ItemLister) *Handler {
	return &Handler{crawler: crawler, items: items}
}

func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	p := h.crawler.Progress()
	resp := response.ProgressResponse{
		PagesFetched: p.PagesFetched,
		ItemsAdded:   p.ItemsAdded,
		LastName:     p.LastName,
		Running:      p.Running,
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleRecentItems(w http.ResponseWriter, r *http.Request) {
	limit := defaultItemsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	items, err := h.items.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list recent items", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]response.ItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, response.ItemResponse{
			ID:           item.ID,
			Name:         item.Name,
			DiscoveredAt: item.DiscoveredAt,
		})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
