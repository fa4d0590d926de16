package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"crportal/internal/service"
)

// Services bundles the application services the HTTP layer exposes.
type Services struct {
	Documents  service.DocumentService
	Leads      service.LeadService
	Reviews    service.ReviewService
	FieldNotes service.FieldNoteService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; all business rules live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", ListDocuments(svcs.Documents))
	app.Post("/documents", SaveDocument(svcs.Documents))
	app.Get("/documents/:id", GetDocument(svcs.Documents))
	app.Put("/documents/:id", SaveDocument(svcs.Documents))
	app.Delete("/documents/:id", DeleteDocument(svcs.Documents))
	app.Post("/documents/:id/send", SendDocument(svcs.Documents))
	app.Get("/documents/:id/preview", PreviewDocument(svcs.Documents))
	app.Get("/documents/:id/pdf", DocumentPDF(svcs.Documents))
	app.Post("/documents/:id/signed", UploadSignedDocument(svcs.Documents))
	app.Get("/documents/:id/signed", SignedDocumentLink(svcs.Documents))

	app.Get("/signature/default", DefaultSignature(svcs.Documents))
	app.Put("/signature/default", SaveDefaultSignature(svcs.Documents))

	app.Post("/leads", CaptureLead(svcs.Leads))
	app.Get("/leads", ListLeads(svcs.Leads))
	app.Patch("/leads/:id/status", UpdateLeadStatus(svcs.Leads))

	app.Post("/reviews", SubmitReview(svcs.Reviews))
	app.Get("/reviews", ListReviews(svcs.Reviews))
	app.Patch("/reviews/:id/approval", SetReviewApproval(svcs.Reviews))
	app.Delete("/reviews/:id", DeleteReview(svcs.Reviews))

	app.Get("/field-notes", ListFieldNotes(svcs.FieldNotes))
	app.Put("/field-notes", SaveFieldNote(svcs.FieldNotes))
	app.Delete("/field-notes/:id", DeleteFieldNote(svcs.FieldNotes))
}

// HealthCheck reports readiness: the database must answer a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
