package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/velotrace/velotrace/pkg/api/routes"
)

func SetupServer(listen string) error {
	webApp := fiber.New()

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.ReportRouter(group.Group("/report"))
	routes.SpeedingEventsRouter(group.Group("/speeding_events"))

	return webApp.Listen(listen)
}
