package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"ecoscore/internal/generate"
	"ecoscore/internal/history"
	"ecoscore/internal/product"
	"ecoscore/internal/score"
	"ecoscore/internal/suggest"
)

// ApiV1Router manages routes for API version 1.
// Handles scoring requests, history queries, aggregate analytics and
// serving static dashboard files. All endpoints follow a REST-like
// structure.
type ApiV1Router struct {
	// calculator — composite-score calculator with the configured ceilings.
	calculator *score.Calculator
	// defaults — process-wide default weights, lowest tier of resolution.
	defaults score.Weights
	// engine — rule-based suggestion engine.
	engine *suggest.Engine
	// generator — external suggestion generator; Noop when disabled.
	generator generate.Generator
	// historyRepo — in-memory history of scored products.
	historyRepo *history.Repository
	// journal — durable JSONL record of scored products.
	journal history.Journal
	// static — path to directory with static files (e.g., the dashboard).
	// If empty, static file serving is disabled.
	static string
}

// scoreResponse is the body returned by POST /api/v1/score.
type scoreResponse struct {
	ProductName string          `json:"product_name"`
	Score       float64         `json:"sustainability_score"`
	Rating      string          `json:"rating"`
	Subscores   score.Subscores `json:"subscores"`
	Weights     score.Weights   `json:"weights"`
	Suggestions []string        `json:"suggestions"`
	AI          []string        `json:"ai_suggestions"`
	Rule        []string        `json:"rule_suggestions"`
}

// validationResponse is returned with status 400 on invalid payloads.
type validationResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// Mux returns a configured *http.ServeMux with registered handlers.
// Registers the following routes:
// - POST /api/v1/score — scores a product and records the result
// - GET /api/v1/history — recent scored products, newest first
// - GET /api/v1/summary — aggregate analytics
// - GET /static/... — serves static files (if enabled)
func (ar *ApiV1Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/score", ar.scoreHandler)
	mux.HandleFunc("GET /api/v1/history", ar.historyHandler)
	mux.HandleFunc("GET /api/v1/summary", ar.summaryHandler)

	if len(ar.static) != 0 {
		fs := http.FileServer(http.Dir(ar.static))
		mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	}

	return mux
}

// scoreHandler handles POST requests with a product payload.
// An unreadable or non-object body is treated as an empty payload and
// rejected by validation, not by the decoder: the engine degrades on
// malformed content, it only rejects invalid payloads (400).
func (ar *ApiV1Router) scoreHandler(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{}
	body, err := io.ReadAll(r.Body)
	if err == nil && len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil {
			slog.Warn("Unable to unmarshal score request body", "error", err)
			raw = map[string]any{}
		}
	}
	defer r.Body.Close()

	payload := product.FromMap(raw)
	if details := payload.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:   "validation_error",
			Details: details,
		})
		return
	}

	overrides := map[string]string{}
	query := r.URL.Query()
	for _, key := range []string{score.OverrideGwp, score.OverrideCircularity, score.OverrideCost} {
		if query.Has(key) {
			overrides[key] = query.Get(key)
		}
	}

	weights := score.ResolveWeights(payload.Weights, overrides, ar.defaults)
	result := ar.calculator.Score(score.Metrics{
		Gwp:         payload.Gwp,
		Circularity: payload.Circularity,
		Cost:        payload.Cost,
	}, weights)

	ruleSuggestions := ar.engine.RuleBased(raw)

	summary := fmt.Sprintf(
		"%s: GWP=%v, Circularity=%v, Cost=%v, Transport=%s, Packaging=%s -> Score=%v (%s)",
		payload.ProductName, payload.Gwp, payload.Circularity, payload.Cost,
		payload.Transport, payload.Packaging, result.Score, result.Rating,
	)
	aiSuggestions, err := ar.generator.Suggest(r.Context(), raw, summary)
	if err != nil {
		// The generator is best-effort: failures degrade to no extra
		// suggestions instead of failing the request.
		slog.Warn("Suggestion generator failed", "error", err)
		aiSuggestions = nil
	}
	if aiSuggestions == nil {
		aiSuggestions = []string{}
	}

	merged := suggest.Merge(ruleSuggestions, aiSuggestions)

	entry := ar.historyRepo.Append(history.Entry{
		ProductName: payload.ProductName,
		Materials:   payload.Materials,
		WeightGrams: payload.WeightGrams,
		Transport:   payload.Transport,
		Packaging:   payload.Packaging,
		Gwp:         payload.Gwp,
		Cost:        payload.Cost,
		Circularity: payload.Circularity,
		Score:       result.Score,
		Rating:      result.Rating,
		Suggestions: merged,
	})
	ar.journal.Append(entry)

	writeJSON(w, http.StatusOK, scoreResponse{
		ProductName: payload.ProductName,
		Score:       result.Score,
		Rating:      result.Rating,
		Subscores:   result.Subscores,
		Weights:     result.Weights,
		Suggestions: merged,
		AI:          aiSuggestions,
		Rule:        ruleSuggestions,
	})
}

// historyHandler returns the most recent scored products, newest first.
// The limit query parameter caps the result; it defaults to 50 when
// absent, unparseable or not positive.
func (ar *ApiV1Router) historyHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	writeJSON(w, http.StatusOK, ar.historyRepo.Recent(limit))
}

// summaryHandler returns aggregate analytics over all scored products.
func (ar *ApiV1Router) summaryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ar.historyRepo.Summary())
}

// writeJSON marshals v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Unable to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// NewApiV1Router creates a new API v1 router.
// Parameters:
// - static: path to static files (can be empty)
// - calculator: composite-score calculator
// - defaults: default weight distribution
// - engine: rule-based suggestion engine
// - generator: external suggestion generator (Noop when disabled)
// - historyRepo: scored-product history
// - journal: durable history journal (NoopJournal when disabled)
//
// Returns pointer to configured ApiV1Router.
func NewApiV1Router(
	static string,
	calculator *score.Calculator,
	defaults score.Weights,
	engine *suggest.Engine,
	generator generate.Generator,
	historyRepo *history.Repository,
	journal history.Journal,
) *ApiV1Router {
	return &ApiV1Router{
		calculator:  calculator,
		defaults:    defaults,
		engine:      engine,
		generator:   generator,
		historyRepo: historyRepo,
		journal:     journal,
		static:      static,
	}
}
