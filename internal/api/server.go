package api

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/ngramlab/internal/corpus"
	"github.com/samcharles93/ngramlab/internal/generate"
	"github.com/samcharles93/ngramlab/internal/logger"
	"github.com/samcharles93/ngramlab/internal/metrics"
	"github.com/samcharles93/ngramlab/internal/ngram"
	"github.com/samcharles93/ngramlab/internal/perplexity"
	"github.com/samcharles93/ngramlab/internal/sampling"
)

const (
	DefaultLength = 350
	MaxLength     = 10000

	// Corpora above this many tokens are counted in parallel shards.
	shardThreshold = 1 << 16
)

type Config struct {
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

type Server struct {
	store   *ModelStore
	log     logger.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
}

func NewServer(store *ModelStore, cfg Config) *Server {
	if store == nil {
		store = NewModelStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	return &Server{
		store:   store,
		log:     cfg.Logger,
		metrics: cfg.Metrics,
		clock:   time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/models", s.handleCreateModel)
	e.GET("/v1/models", s.handleListModels)
	e.GET("/v1/models/:id", s.handleGetModel)
	e.DELETE("/v1/models/:id", s.handleDeleteModel)
	e.POST("/v1/models/:id/generate", s.handleGenerate)
	e.POST("/v1/models/:id/perplexity", s.handlePerplexity)

	e.GET("/metrics", s.handleMetrics)
}

func (s *Server) handleMetrics(c *echo.Context) error {
	s.metrics.Handler().ServeHTTP(c.Response(), c.Request())
	return nil
}

func (s *Server) handleCreateModel(c *echo.Context) error {
	req, err := decodeJSON[CreateModelRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	maxOrder := ngram.MaxOrder
	if req.MaxOrder != nil {
		maxOrder = *req.MaxOrder
	}
	if err := ngram.ValidateOrder(maxOrder); err != nil {
		return writeModelError(c, err)
	}

	opts := corpus.Options{KeepCase: req.KeepCase, KeepPunctuation: req.KeepPunctuation}
	tokens := corpus.Normalize(req.Text, opts)
	if len(tokens) == 0 {
		return writeModelError(c, newInvalidRequest("text", "text: corpus contains no tokens"))
	}

	shards := 1
	if len(tokens) > shardThreshold {
		shards = runtime.GOMAXPROCS(0)
	}
	start := s.clock()
	family, err := ngram.BuildFamilySharded(c.Request().Context(), tokens, maxOrder, shards)
	if err != nil {
		return writeModelError(c, err)
	}

	rec := s.store.Create(family, len(tokens), opts, s.clock())
	s.metrics.ModelBuilt(len(tokens))
	s.log.Info("model built",
		"id", rec.ID,
		"tokens", len(tokens),
		"max_order", maxOrder,
		"shards", shards,
		"elapsed", s.clock().Sub(start),
	)
	return c.JSON(http.StatusOK, rec.response())
}

func (s *Server) handleListModels(c *echo.Context) error {
	recs := s.store.List()
	list := ModelList{Object: "list", Data: make([]ModelResponse, 0, len(recs))}
	for _, rec := range recs {
		list.Data = append(list.Data, rec.response())
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetModel(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "model not found")
	}
	return c.JSON(http.StatusOK, rec.response())
}

func (s *Server) handleDeleteModel(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeNotFound(c, "model not found")
	}
	s.metrics.ModelDeleted()
	s.log.Info("model deleted", "id", id)
	return c.JSON(http.StatusOK, DeleteModelResponse{
		ID:      id,
		Object:  "model",
		Deleted: true,
	})
}

func (s *Server) handleGenerate(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "model not found")
	}
	req, err := decodeJSON[GenerateRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	order := req.Order
	if order == 0 {
		order = rec.Family.MaxOrder()
	}
	length := DefaultLength
	if req.Length != nil {
		length = *req.Length
	}
	if length < 0 || length > MaxLength {
		return writeModelError(c, newInvalidRequest("length", fmt.Sprintf("length must be between 0 and %d", MaxLength)))
	}
	var seed int64 = -1
	if req.Seed != nil {
		seed = *req.Seed
	}
	// Validate before a stream starts so the error still gets a status code.
	if _, err := rec.Family.Table(order); err != nil {
		return writeModelError(c, err)
	}

	sampler := sampling.New(sampling.Config{Seed: seed})
	gen := generate.New(rec.Family, sampler)
	seedTokens := corpus.Normalize(req.SeedText, rec.Options)
	resp := GenerateResponse{
		Object: "generation",
		Model:  rec.ID,
		Order:  order,
		Seed:   sampler.Seed(),
	}

	if req.Stream || streamParam(c) {
		return s.streamGeneration(c, gen, resp, seedTokens, length)
	}

	tokens, err := gen.Generate(order, seedTokens, length)
	if err != nil {
		s.metrics.LookupFailed(err)
		s.log.Warn("generation failed", "id", rec.ID, "order", order, "error", err)
		return writeModelError(c, err)
	}
	s.metrics.Generated(order, len(tokens))
	resp.Tokens = tokens
	resp.Text = strings.Join(tokens, " ")
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) streamGeneration(c *echo.Context, gen *generate.Generator, resp GenerateResponse, seed []string, length int) error {
	w, err := NewSSEStreamWriter(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if err := w.Begin(resp); err != nil {
		return err
	}

	ctx := c.Request().Context()
	tokens := make([]string, 0, length)
	err = gen.Stream(resp.Order, seed, length, func(tok string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.EmitToken(len(tokens), tok); err != nil {
			return err
		}
		tokens = append(tokens, tok)
		return nil
	})
	s.metrics.Generated(resp.Order, len(tokens))
	if err != nil {
		s.metrics.LookupFailed(err)
		s.log.Warn("streamed generation failed", "id", resp.Model, "order", resp.Order, "emitted", len(tokens), "error", err)
		return w.Failed(err)
	}

	resp.Tokens = tokens
	resp.Text = strings.Join(tokens, " ")
	return w.Complete(resp)
}

func (s *Server) handlePerplexity(c *echo.Context) error {
	rec, ok := s.store.Get(c.Param("id"))
	if !ok {
		return writeNotFound(c, "model not found")
	}
	req, err := decodeJSON[PerplexityRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	order := req.Order
	if order == 0 {
		order = rec.Family.MaxOrder()
	}

	// Unsupported orders are rejected before metrics so the order label
	// stays bounded.
	if _, err := rec.Family.Table(order); err != nil {
		return writeModelError(c, err)
	}

	tokens := corpus.Normalize(req.Text, rec.Options)
	result, err := perplexity.Score(rec.Family, order, tokens)
	s.metrics.Scored(order, err)
	if err != nil {
		return writeModelError(c, err)
	}
	return c.JSON(http.StatusOK, PerplexityResponse{
		Object: "perplexity",
		Model:  rec.ID,
		Result: result,
	})
}

func streamParam(c *echo.Context) bool {
	q := c.QueryParam("stream")
	return q == "1" || strings.EqualFold(q, "true")
}
