package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/kasane/internal/models"
	"github.com/hyperjump/kasane/internal/search"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if query.TopK == 0 {
		query.TopK = s.config.Search.DefaultLimit
	}
	if query.TopK > s.config.Search.MaxLimit {
		query.TopK = s.config.Search.MaxLimit
	}
	if query.Weight == nil {
		weight := s.config.Search.SemanticWeight
		query.Weight = &weight
	}
	s.logger.Debug("search request",
		zap.String("query", query.Query), zap.Int("top_k", query.TopK), zap.String("mode", string(query.Mode)))

	response, err := s.engine.Search(r.Context(), &query)
	if err != nil {
		if errors.Is(err, search.ErrInvalidArgument) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetPaper(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	paper, err := s.storage.GetPaper(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "paper not found")
		return
	}
	s.respondJSON(w, http.StatusOK, paper)
}

// handleListPapers lists papers, or searches by author when ?author= is set.
func (s *Server) handleListPapers(w http.ResponseWriter, r *http.Request) {
	limit := s.config.Search.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > s.config.Search.MaxLimit {
		limit = s.config.Search.MaxLimit
	}

	if author := r.URL.Query().Get("author"); author != "" {
		papers, err := s.engine.SearchByAuthor(r.Context(), author, limit)
		if err != nil {
			if errors.Is(err, search.ErrInvalidArgument) {
				s.respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.logger.Error("author search failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"papers": papers})
		return
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		offset = n
	}
	papers, err := s.storage.ListPapers(r.Context(), offset, limit)
	if err != nil {
		s.logger.Error("list papers failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"papers": papers})
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	n, err := s.indexer.BuildIndex(r.Context())
	if err != nil {
		s.logger.Error("index rebuild failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if path := s.config.Storage.VectorSnapshotPath; path != "" {
		if err := s.indexer.SaveSnapshot(path); err != nil {
			s.logger.Warn("snapshot save failed", zap.String("path", path), zap.Error(err))
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "rebuilt", "indexed": n})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	paperCount, err := s.storage.CountPapers(r.Context())
	if err != nil {
		s.logger.Error("status: count papers failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"papers":            paperCount,
		"vector_index_size": s.engine.IndexSize(),
		"config": map[string]interface{}{
			"embedding_dimensions": s.config.Embedding.Dimensions,
			"semantic_weight":      s.config.Search.SemanticWeight,
			"database_path":        s.config.Storage.DatabasePath,
			"bleve_index_path":     s.config.Storage.BleveIndexPath,
			"vector_snapshot_path": s.config.Storage.VectorSnapshotPath,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encoding failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
