package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/symptoms", handler.ListSymptoms)
	api.Post("/diagnose", handler.Diagnose)
	api.Post("/patient-query", handler.PatientQuery)
	api.Post("/add-patient", handler.AddPatient)
	api.Post("/ocr", handler.ExtractDocumentText)

	patients := api.Group("/patients")
	patients.Get("", handler.ListPatients)
	patients.Post("", handler.AddPatient)
	patients.Get("/export.csv", handler.ExportPatientsCSV)
	patients.Get("/:id", handler.GetPatient)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
