package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/velotrace/velotrace/pkg/analyser"
	"github.com/velotrace/velotrace/pkg/btd"
	"golang.org/x/exp/slices"
)

// currentReport is the analysis served by this instance, produced once at
// startup and read-only afterwards.
var currentReport *analyser.Report

func SetCurrentReport(report *analyser.Report) {
	currentReport = report
}

func ReportRouter(router fiber.Router) {
	router.Get("/", getReport)
}

func getReport(c *fiber.Ctx) error {
	if currentReport == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No analysis report has been generated",
		})
	}

	reportReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, currentReport)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Report",
		})
	}

	return c.JSON(reportReduced)
}

func SpeedingEventsRouter(router fiber.Router) {
	router.Get("/", listSpeedingEvents)
}

func listSpeedingEvents(c *fiber.Ctx) error {
	if currentReport == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "No analysis report has been generated",
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	events := currentReport.SpeedingEvents
	if line := c.Query("line"); line != "" {
		var matched []btd.SpeedingEvent
		for _, event := range events {
			if slices.Contains(event.Lines, line) {
				matched = append(matched, event)
			}
		}
		events = matched
	}

	eventsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, events)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Speeding Events",
		})
	}

	return c.JSON(eventsReduced)
}
