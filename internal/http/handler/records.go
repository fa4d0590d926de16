package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"crportal/internal/model"
	"crportal/internal/service"
)

// CaptureLead stores a lead from the public funnel and returns it with the
// composed notification.
func CaptureLead(svc service.LeadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lead model.Lead
		if err := c.BodyParser(&lead); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse lead")
		}
		res, err := svc.Capture(c.UserContext(), &lead)
		if err != nil {
			return writeRecordError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListLeads lists leads with limit/offset.
func ListLeads(svc service.LeadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return writeParamError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeRecordError(c, err)
		}
		return c.JSON(res)
	}
}

// UpdateLeadStatus moves a lead along the follow-up pipeline.
func UpdateLeadStatus(svc service.LeadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse status")
		}
		if err := svc.UpdateStatus(c.UserContext(), id, body.Status); err != nil {
			return writeRecordError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SubmitReview stores a customer review; it awaits approval before showing
// publicly.
func SubmitReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rev model.Review
		if err := c.BodyParser(&rev); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse review")
		}
		stored, err := svc.Submit(c.UserContext(), &rev)
		if err != nil {
			return writeRecordError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// ListReviews lists reviews; ?approved=true narrows to the public set.
func ListReviews(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		approvedOnly := c.QueryBool("approved", false)
		revs, err := svc.List(c.UserContext(), approvedOnly)
		if err != nil {
			return writeRecordError(c, err)
		}
		return c.JSON(revs)
	}
}

// SetReviewApproval flips a review's approval flag.
func SetReviewApproval(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		var body struct {
			Approved bool `json:"approved"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse approval")
		}
		if err := svc.SetApproved(c.UserContext(), id, body.Approved); err != nil {
			return writeRecordError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteReview removes a review.
func DeleteReview(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeRecordError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListFieldNotes lists all field notes, newest first.
func ListFieldNotes(svc service.FieldNoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := svc.List(c.UserContext())
		if err != nil {
			return writeRecordError(c, err)
		}
		return c.JSON(notes)
	}
}

// SaveFieldNote upserts a field note whole.
func SaveFieldNote(svc service.FieldNoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var note model.FieldNote
		if err := c.BodyParser(&note); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse field note")
		}
		created := note.ID == ""
		stored, err := svc.Save(c.UserContext(), &note)
		if err != nil {
			return writeRecordError(c, err)
		}
		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(stored)
	}
}

// DeleteFieldNote removes a field note.
func DeleteFieldNote(svc service.FieldNoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeRecordError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func writeRecordError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrLeadNameRequired):
		return writeError(c, fiber.StatusBadRequest, "LEAD_NAME_REQUIRED", "lead name is required")
	case errors.Is(err, service.ErrLeadEmailRequired):
		return writeError(c, fiber.StatusBadRequest, "LEAD_EMAIL_REQUIRED", "lead email is required")
	case errors.Is(err, service.ErrInvalidLeadStatus):
		return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "invalid lead status")
	case errors.Is(err, service.ErrInvalidRating):
		return writeError(c, fiber.StatusBadRequest, "INVALID_RATING", "rating must be between 1 and 5")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
