package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/lang/:lang", handler.SetLanguage)
	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.DeviceSession)

	period := api.Group("/period")
	period.Get("/settings", handler.GetPeriodSettings)
	period.Put("/settings", handler.SavePeriodSettings)
	period.Delete("/settings", handler.ClearPeriodSettings)
	period.Get("/calendar", handler.PeriodCalendar)
	period.Get("/days/:date", handler.PeriodDay)
	period.Get("/upcoming", handler.UpcomingCycles)

	api.Get("/pregnancy", handler.GetPregnancy)
	api.Put("/pregnancy", handler.SavePregnancy)
	api.Delete("/pregnancy", handler.ClearPregnancy)
	api.Get("/pregnancy/calendar", handler.PregnancyCalendar)

	intimacy := api.Group("/intimacy")
	intimacy.Get("/records", handler.ListIntimacyRecords)
	intimacy.Post("/records/:date/toggle", handler.ToggleIntimacyRecord)
	intimacy.Put("/records/:date/note", handler.SetIntimacyNote)
	intimacy.Delete("/records/:date", handler.DeleteIntimacyRecord)
	intimacy.Get("/calendar", handler.IntimacyCalendar)
	intimacy.Get("/probability/:date", handler.IntimacyProbability)

	export := api.Group("/export")
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/xlsx", handler.ExportXLSX)

	api.Delete("/data", handler.ClearAllData)
}
