package routes

import (
	"github.com/gofiber/fiber/v3"

	"skillmatch/internal/delivery/http/handler"
	"skillmatch/internal/ws"
)

// Registry wires constructed handlers onto the fiber app. Construction
// happens in the app container; this package only knows paths.
type Registry struct {
	health    *handler.HealthHandler
	match     *handler.MatchHandler
	rank      *handler.RankHandler
	skill     *handler.SkillHandler
	catalogWS *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	match *handler.MatchHandler,
	rank *handler.RankHandler,
	skill *handler.SkillHandler,
	catalogWS *ws.Handler,
) *Registry {
	return &Registry{
		health:    health,
		match:     match,
		rank:      rank,
		skill:     skill,
		catalogWS: catalogWS,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	v1 := app.Group("/api").Group("/v1")
	r.match.RegisterRoutes(v1)
	r.rank.RegisterRoutes(v1)
	r.skill.RegisterRoutes(v1)

	if r.catalogWS != nil {
		app.Get("/ws/catalog", r.catalogWS.Handle())
	}
}
