package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"skillmatch/internal/delivery/http/dto"
	"skillmatch/internal/delivery/http/middleware"
	"skillmatch/internal/domain/matching"
	"skillmatch/internal/pkg/response"
	"skillmatch/internal/usecase"
)

type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/match")
	grp.Post("/score", h.Score)
	grp.Post("/gap", h.Gap)
	r.Get("/strategies", h.Strategies)
}

func (h *MatchHandler) Score(c fiber.Ctx) error {
	var req dto.ScoreRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	scored, err := h.uc.ScoreMatch(c.Context(), usecase.MatchInput{
		Profile:  req.Profile.ToInput(),
		Job:      req.Job.ToInput(),
		Strategy: req.Strategy,
	})
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchResultFrom(scored.Result, scored.Statements))
}

func (h *MatchHandler) Gap(c fiber.Ctx) error {
	var req dto.GapRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	gaps, err := h.uc.AnalyzeGap(c.Context(), usecase.MatchInput{
		Profile: req.Profile.ToInput(),
		Job:     req.Job.ToInput(),
	})
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.GapsFrom(gaps))
}

func (h *MatchHandler) Strategies(c fiber.Ctx) error {
	infos := h.uc.Strategies(c.Context())
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.StrategiesFrom(infos))
}

func mapMatchError(err error) error {
	switch {
	case errors.Is(err, matching.ErrUnknownStrategy):
		return middleware.NewAppError(fiber.StatusBadRequest, "unknown strategy", nil, err)
	case errors.Is(err, matching.ErrEmptyRequirements):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "job has no required skills", nil, err)
	case errors.Is(err, matching.ErrDimensionMismatch):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "embedding dimension mismatch", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
