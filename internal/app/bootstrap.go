package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"skillmatch/internal/config"
	"skillmatch/internal/delivery/http/handler"
	"skillmatch/internal/delivery/http/middleware"
	"skillmatch/internal/delivery/http/routes"
	"skillmatch/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewMatchHandler(c.Match),
		handler.NewRankHandler(c.Rank),
		handler.NewSkillHandler(c.Catalog),
		ws.NewHandler(c.Hub, c.Logger),
	).Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	return New(container), container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
