package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"crportal/internal/model"
	"crportal/internal/service"
)

// ListDocuments lists documents with limit/offset; ?type= narrows to one
// document type.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c)
		if err != nil {
			return writeParamError(c, err)
		}

		var res *service.DocumentListResult
		if typ := c.Query("type"); typ != "" {
			res, err = svc.ListByType(c.UserContext(), model.Type(typ), limit, offset)
		} else {
			res, err = svc.List(c.UserContext(), limit, offset)
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// SaveDocument creates or updates a document. The status on the payload is
// the status the save should land in.
func SaveDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var doc model.Document
		if err := c.BodyParser(&doc); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse document")
		}
		if id := c.Params("id"); id != "" {
			if _, err := uuid.Parse(id); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
			}
			doc.ID = id
		}
		created := doc.ID == ""

		saved, err := svc.Save(c.UserContext(), &doc, doc.Status)
		if err != nil {
			return writeServiceError(c, err)
		}
		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(saved)
	}
}

// GetDocument returns a document by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document by ID.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SendDocument saves the document in the sent status and returns the
// composed client message alongside it.
func SendDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		var doc model.Document
		if err := c.BodyParser(&doc); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse document")
		}
		doc.ID = id

		res, err := svc.Send(c.UserContext(), &doc)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// PreviewDocument returns the document with its computed display figures.
func PreviewDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		p, err := svc.Preview(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// DocumentPDF streams the rendered print artifact.
func DocumentPDF(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		out, filename, err := svc.GeneratePDF(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(out)
	}
}

// UploadSignedDocument accepts the client-signed file (multipart field
// "file") and moves the document to the signed status.
func UploadSignedDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.UploadSigned(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// SignedDocumentLink returns a time-limited download URL for the uploaded
// signed file.
func SignedDocumentLink(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return writeParamError(c, err)
		}
		url, err := svc.SignedFileLink(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DefaultSignature returns a download URL for the operator's saved
// signature image.
func DefaultSignature(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.DefaultSignatureURL(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// SaveDefaultSignature stores a new signature image (multipart field
// "file"), replacing the previous one.
func SaveDefaultSignature(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "image/png"
		}

		url, err := svc.SaveDefaultSignature(c.UserContext(), f, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// Request validation sentinels. The helpers below only report; the response
// is written once at the call site via writeParamError.
var (
	errInvalidID     = errors.New("invalid id format")
	errInvalidLimit  = errors.New("invalid limit")
	errInvalidOffset = errors.New("invalid offset")
)

func idParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", errInvalidID
	}
	return id, nil
}

func pageParams(c *fiber.Ctx) (int, int, error) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, errInvalidLimit
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, errInvalidOffset
	}
	return limit, offset, nil
}

// writeParamError maps request validation errors onto 400 responses.
func writeParamError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, errInvalidLimit):
		return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	case errors.Is(err, errInvalidOffset):
		return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	default:
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "bad request")
	}
}

// writeServiceError maps service errors onto stable HTTP error codes.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrInvalidType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "invalid document type")
	case errors.Is(err, service.ErrInvalidTransition):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", "status transition not allowed")
	case errors.Is(err, service.ErrClientEmailRequired):
		return writeError(c, fiber.StatusBadRequest, "CLIENT_EMAIL_REQUIRED", "client email is required")
	case errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
