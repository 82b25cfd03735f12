package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/learning-recommender/internal/pipeline"
	"github.com/jonathan/learning-recommender/internal/ranking"
	"github.com/jonathan/learning-recommender/internal/schemas"
	"github.com/jonathan/learning-recommender/internal/server/middleware"
	"github.com/jonathan/learning-recommender/internal/similarity"
	"github.com/jonathan/learning-recommender/internal/types"
)

// defaultSimilarK is the neighbor count when ?k is absent.
const defaultSimilarK = 5

// SimilarityResponse describes a cached similarity snapshot
type SimilarityResponse struct {
	ID       string           `json:"id"`
	Size     int              `json:"size"`
	Stats    similarity.Stats `json:"stats"`
	SkillIDs []string         `json:"skill_ids,omitempty"`
}

// RelevanceResponse is the response for the relevance lookup
type RelevanceResponse struct {
	SnapshotID string   `json:"snapshot_id"`
	SkillID    string   `json:"skill_id"`
	To         []string `json:"to"`
	Relevance  float64  `json:"relevance"`
}

// SimilarSkillsResponse is the response for the neighbor lookup
type SimilarSkillsResponse struct {
	SnapshotID string               `json:"snapshot_id"`
	SkillID    string               `json:"skill_id"`
	K          int                  `json:"k"`
	Similar    []types.SimilarSkill `json:"similar"`
}

// UserRankRequest is the optional body of the stored-data ranking endpoints
type UserRankRequest struct {
	Persona       string             `json:"persona,omitempty"`
	CustomWeights map[string]float64 `json:"custom_weights,omitempty"`
}

// UserRankResponse is the response for a stored-data ranking
type UserRankResponse struct {
	RunID   string                    `json:"run_id"`
	Ranked  *types.RankedResources    `json:"ranked"`
	Targets []types.ImprovementTarget `json:"targets"`
}

// handleBuildSimilarity builds a matrix and caches it as a snapshot
func (s *Server) handleBuildSimilarity(w http.ResponseWriter, r *http.Request) {
	var req types.SimilarityRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorFromErr(w, validationError(err))
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, validationError(err))
		return
	}

	m, err := pipeline.BuildMatrix(r.Context(), req.Skills, req.UserSkillSets, s.metrics)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	id := s.snapshots.Put(m)
	log.Printf("Built similarity snapshot %s over %d skills", id, m.Size())

	s.jsonResponse(w, http.StatusCreated, SimilarityResponse{
		ID:    id.String(),
		Size:  m.Size(),
		Stats: m.Stats(),
	})
}

// snapshot resolves the {id} path value to a cached matrix.
func (s *Server) snapshot(raw string) (uuid.UUID, *similarity.Matrix, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, nil, &ErrSnapshotNotFound{ID: raw}
	}
	m, ok := s.snapshots.Get(id)
	if !ok {
		return uuid.Nil, nil, &ErrSnapshotNotFound{ID: raw}
	}
	return id, m, nil
}

// handleGetSimilarity describes a cached snapshot
func (s *Server) handleGetSimilarity(w http.ResponseWriter, r *http.Request) {
	id, m, err := s.snapshot(r.PathValue("id"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SimilarityResponse{
		ID:       id.String(),
		Size:     m.Size(),
		Stats:    m.Stats(),
		SkillIDs: m.Index().IDs(),
	})
}

// handleDeleteSimilarity drops a cached snapshot
func (s *Server) handleDeleteSimilarity(w http.ResponseWriter, r *http.Request) {
	id, _, err := s.snapshot(r.PathValue("id"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.snapshots.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSimilarSkills returns the nearest neighbors of a skill in a snapshot
func (s *Server) handleSimilarSkills(w http.ResponseWriter, r *http.Request) {
	id, m, err := s.snapshot(r.PathValue("id"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	k := defaultSimilarK
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err = strconv.Atoi(raw)
		if err != nil || k < 1 {
			s.errorFromErr(w, &ErrValidation{Field: "k", Message: "must be a positive integer"})
			return
		}
	}

	skillID := r.PathValue("skill_id")
	s.jsonResponse(w, http.StatusOK, SimilarSkillsResponse{
		SnapshotID: id.String(),
		SkillID:    skillID,
		K:          k,
		Similar:    m.SimilarSkills(skillID, k),
	})
}

// handleSkillRelevance returns the best similarity between a skill and a
// comma-separated set of held skills given in the "to" query parameter.
func (s *Server) handleSkillRelevance(w http.ResponseWriter, r *http.Request) {
	id, m, err := s.snapshot(r.PathValue("id"))
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	held := make([]string, 0)
	for _, skillID := range strings.Split(r.URL.Query().Get("to"), ",") {
		if skillID = strings.TrimSpace(skillID); skillID != "" {
			held = append(held, skillID)
		}
	}

	skillID := r.PathValue("skill_id")
	s.jsonResponse(w, http.StatusOK, RelevanceResponse{
		SnapshotID: id.String(),
		SkillID:    skillID,
		To:         held,
		Relevance:  m.Relevance(skillID, held),
	})
}

// handleRank ranks the resources of a request body
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorFromErr(w, validationError(err))
		return
	}

	var req types.RankRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorFromErr(w, validationError(err))
		return
	}
	if schemaPath := schemas.ResolveSchemaPath(schemas.RankRequestSchema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, body); err != nil {
			var schemaErr *schemas.ValidationError
			if errors.As(err, &schemaErr) {
				s.errorFromErr(w, validationError(err))
				return
			}
			log.Printf("Warning: rank request schema check skipped: %v", err)
		}
	}
	if err := req.Validate(); err != nil {
		s.errorFromErr(w, validationError(err))
		return
	}

	opts := pipeline.RunOptions{
		Request:       &req,
		Ranker:        s.ranker,
		BuildObserver: s.metrics,
	}
	if req.SimilarityID != "" {
		_, m, err := s.snapshot(req.SimilarityID)
		if err != nil {
			s.errorFromErr(w, err)
			return
		}
		opts.Similarity = m
	}

	result, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result.Ranked)
}

// handleListPersonas lists the configured persona names
func (s *Server) handleListPersonas(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"default":  ranking.DefaultPersona,
		"personas": s.ranker.Resolver().Personas(),
	})
}

// userRankOptions validates the path user and decodes the optional body.
func (s *Server) userRankOptions(r *http.Request) (uuid.UUID, UserRankRequest, error) {
	var req UserRankRequest
	if s.store == nil {
		return uuid.Nil, req, &ErrStoreUnavailable{}
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, req, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	if err := middleware.Authorize(r, userID); err != nil {
		return uuid.Nil, req, forbiddenError(err, userID)
	}

	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return uuid.Nil, req, validationError(err)
	}
	return userID, req, nil
}

// handleRankUser ranks resources for a stored user and saves the run
func (s *Server) handleRankUser(w http.ResponseWriter, r *http.Request) {
	userID, req, err := s.userRankOptions(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	result, err := pipeline.RunForUser(r.Context(), s.store, userID, req.Persona, req.CustomWeights, pipeline.RunOptions{
		Ranker:        s.ranker,
		BuildObserver: s.metrics,
	})
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, UserRankResponse{
		RunID:   result.RunID.String(),
		Ranked:  result.Ranked,
		Targets: result.Targets,
	})
}

// handleRankUserStream ranks for a stored user and streams progress via SSE
func (s *Server) handleRankUserStream(w http.ResponseWriter, r *http.Request) {
	userID, req, err := s.userRankOptions(r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := pipeline.RunForUser(r.Context(), s.store, userID, req.Persona, req.CustomWeights, pipeline.RunOptions{
		Ranker:        s.ranker,
		BuildObserver: s.metrics,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("step", event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	})
	if err != nil {
		log.Printf("Ranking run for user %s failed: %v", userID, err)
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("result", result.Ranked); err != nil {
		log.Printf("Error writing SSE event: %v", err)
	}
	sse.WriteComplete(result.RunID.String(), "completed")
}

// handleGetRun returns a stored ranking run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFromErr(w, &ErrStoreUnavailable{})
		return
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	run, err := s.store.GetRankingRun(r.Context(), runID)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	if run == nil {
		s.errorFromErr(w, &ErrRunNotFound{RunID: runID})
		return
	}
	if err := middleware.Authorize(r, run.UserID); err != nil {
		s.errorFromErr(w, forbiddenError(err, run.UserID))
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}
