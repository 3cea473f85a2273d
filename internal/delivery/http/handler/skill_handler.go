package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"skillmatch/internal/delivery/http/dto"
	"skillmatch/internal/delivery/http/middleware"
	"skillmatch/internal/pkg/response"
	"skillmatch/internal/taxonomy"
	"skillmatch/internal/usecase"
)

type SkillHandler struct {
	uc usecase.CatalogUsecase
}

func NewSkillHandler(uc usecase.CatalogUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Post("/relationships", h.CreateRelationship)
	grp.Get("/:skill_id/equivalents", h.Equivalents)
	grp.Get("/:skill_id/prerequisites", h.Prerequisites)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	skills, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapCatalogError(err)
	}
	relationships, err := h.uc.ListRelationships(c.Context())
	if err != nil {
		return mapCatalogError(err)
	}

	out := dto.CatalogResponse{
		Skills:        make([]dto.SkillResponse, 0, len(skills)),
		Relationships: make([]dto.RelationshipResponse, 0, len(relationships)),
	}
	for _, s := range skills {
		out.Skills = append(out.Skills, dto.SkillFrom(s))
	}
	for _, rel := range relationships {
		out.Relationships = append(out.Relationships, dto.RelationshipResponse{
			Source: rel.Source,
			Target: rel.Target,
			Kind:   string(rel.Kind),
			Weight: rel.Weight,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req dto.SkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	created, err := h.uc.AddSkill(c.Context(), req.ToDomain())
	if err != nil {
		return mapCatalogError(err)
	}

	return response.Success(c, fiber.StatusCreated, "skill created", dto.SkillFrom(created))
}

func (h *SkillHandler) CreateRelationship(c fiber.Ctx) error {
	var req dto.RelationshipRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	rel := req.ToDomain()
	if err := h.uc.AddRelationship(c.Context(), rel); err != nil {
		return mapCatalogError(err)
	}

	return response.Success(c, fiber.StatusCreated, "relationship created", dto.RelationshipResponse{
		Source: rel.Source,
		Target: rel.Target,
		Kind:   string(rel.Kind),
		Weight: rel.Weight,
	})
}

func (h *SkillHandler) Equivalents(c fiber.Ctx) error {
	id := c.Params("skill_id")
	skills, err := h.uc.EquivalentsOf(c.Context(), id)
	if err != nil {
		return mapCatalogError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RelatedSkillsResponse{
		SkillID: taxonomy.NormalizeID(id),
		Skills:  skills,
	})
}

func (h *SkillHandler) Prerequisites(c fiber.Ctx) error {
	id := c.Params("skill_id")
	skills, err := h.uc.PrerequisitesOf(c.Context(), id)
	if err != nil {
		return mapCatalogError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RelatedSkillsResponse{
		SkillID: taxonomy.NormalizeID(id),
		Skills:  skills,
	})
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, taxonomy.ErrEmptySkillID), errors.Is(err, taxonomy.ErrSelfLoop),
		errors.Is(err, taxonomy.ErrInvalidKind), errors.Is(err, taxonomy.ErrInvalidWeight),
		errors.Is(err, taxonomy.ErrInvalidDifficulty), errors.Is(err, taxonomy.ErrInvalidDemand):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, taxonomy.ErrDuplicateSkill), errors.Is(err, taxonomy.ErrDuplicateRelationship),
		errors.Is(err, taxonomy.ErrCycle):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case errors.Is(err, taxonomy.ErrUnknownSkill):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "relationship references an uncataloged skill", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
