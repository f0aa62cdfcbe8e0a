package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"symptoms": handler.resolver.Symptoms()})
}

func (handler *Handler) Diagnose(c *fiber.Ctx) error {
	payload := queryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if handler.diagnosisService.NeedsRemote(payload.Query) && !handler.admitFallback(c) {
		return tooManyFallbacks(c)
	}

	ctx, cancel := handler.assistantContext(c)
	defer cancel()

	answer, err := handler.diagnosisService.Diagnose(ctx, payload.Query)
	if err != nil {
		return handler.serviceError(c, "diagnose", err)
	}
	return c.JSON(answer)
}

func (handler *Handler) PatientQuery(c *fiber.Ctx) error {
	payload := queryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if handler.queryService.NeedsRemote(payload.Query) && !handler.admitFallback(c) {
		return tooManyFallbacks(c)
	}

	ctx, cancel := handler.assistantContext(c)
	defer cancel()

	answer, err := handler.queryService.Answer(ctx, payload.Query)
	if err != nil {
		return handler.serviceError(c, "answer patient query", err)
	}
	return c.JSON(answer)
}
