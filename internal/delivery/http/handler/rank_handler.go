package handler

import (
	"github.com/gofiber/fiber/v3"

	"skillmatch/internal/delivery/http/dto"
	"skillmatch/internal/pkg/response"
	"skillmatch/internal/usecase"
)

type RankHandler struct {
	uc usecase.RankUsecase
}

func NewRankHandler(uc usecase.RankUsecase) *RankHandler {
	return &RankHandler{uc: uc}
}

func (h *RankHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/match/rank")
	grp.Post("/jobs", h.RankJobs)
	grp.Post("/profiles", h.RankProfiles)
}

func (h *RankHandler) RankJobs(c fiber.Ctx) error {
	var req dto.RankJobsRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	in := usecase.RankJobsInput{
		Profile:   req.Profile.ToInput(),
		Jobs:      make([]usecase.JobInput, 0, len(req.Jobs)),
		Strategy:  req.Strategy,
		Diversify: req.Diversify,
	}
	for _, jr := range req.Jobs {
		in.Jobs = append(in.Jobs, jr.ToInput())
	}

	results, err := h.uc.RankJobs(c.Context(), in)
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchResultsFrom(results))
}

func (h *RankHandler) RankProfiles(c fiber.Ctx) error {
	var req dto.RankProfilesRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	in := usecase.RankProfilesInput{
		Job:      req.Job.ToInput(),
		Profiles: make([]usecase.ProfileInput, 0, len(req.Profiles)),
		Strategy: req.Strategy,
	}
	for _, pr := range req.Profiles {
		in.Profiles = append(in.Profiles, pr.ToInput())
	}

	results, err := h.uc.RankProfiles(c.Context(), in)
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchResultsFrom(results))
}
