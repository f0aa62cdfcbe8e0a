package api

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/medboard/internal/services"
)

func (handler *Handler) ListPatients(c *fiber.Ctx) error {
	patients, err := handler.patientService.ListPatients(c.Query("q"))
	if err != nil {
		return handler.serviceError(c, "fetch patients", err)
	}
	return c.JSON(patients)
}

func (handler *Handler) GetPatient(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid patient id")
	}

	patient, err := handler.patientService.FindPatient(uint(id))
	if err != nil {
		return handler.serviceError(c, "fetch patient", err)
	}
	return c.JSON(patient)
}

func (handler *Handler) AddPatient(c *fiber.Ctx) error {
	input := services.PatientInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	patient, err := handler.patientService.AddPatient(input)
	if err != nil {
		return handler.serviceError(c, "create patient", err)
	}
	return c.Status(fiber.StatusCreated).JSON(addPatientResponse{
		Success:   true,
		PatientID: patient.ID,
		Patient:   patient,
	})
}

func (handler *Handler) ExportPatientsCSV(c *fiber.Ctx) error {
	var output bytes.Buffer
	if _, err := handler.exportService.WriteCSV(&output, c.Query("q")); err != nil {
		return handler.serviceError(c, "build export", err)
	}

	filename := services.BuildExportFilename(handler.now(), "csv")
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(output.Bytes())
}
