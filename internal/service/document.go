package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"crportal/internal/compute"
	"crportal/internal/mail"
	"crportal/internal/model"
	"crportal/internal/repository"
	"crportal/internal/storage"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNotFound            = errors.New("document not found")
	ErrReaderNil           = errors.New("reader is nil")
	ErrInvalidType         = errors.New("invalid document type")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrClientEmailRequired = errors.New("client email is required")
)

// Key of the operator's saved signature image. Saving a new signature
// overwrites the previous one; there is exactly one.
const defaultSignatureKey = "admin/signature/carlos-default.png"

const presignExpiry = 24 * time.Hour

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentPreview pairs a document with the figures the print artifact
// will show, computed by the same engine the renderer uses.
type DocumentPreview struct {
	Document      *model.Document `json:"document"`
	DisplayNumber string          `json:"display_number"`
	Subtotal      string          `json:"subtotal"`
	Tax           string          `json:"tax"`
	Total         string          `json:"total"`
	PaymentBlock  string          `json:"payment_block,omitempty"`
}

// SendResult is what a send produces: the saved document and the composed
// message the operator's mail client opens.
type SendResult struct {
	Document *model.Document `json:"document"`
	Mail     mail.Message    `json:"mail"`
}

// Renderer produces the print artifact for a document.
type Renderer interface {
	Render(doc *model.Document) ([]byte, error)
}

// DocumentService defines the use cases for handling business documents.
type DocumentService interface {
	// Save recomputes derived figures and writes the document under its ID,
	// creating it when the ID is empty. target is the status the write lands
	// in; the transition is checked against the persisted status, not the
	// one the caller sends.
	Save(ctx context.Context, doc *model.Document, target model.Status) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns documents of all types using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// ListByType returns documents of one type using limit/offset and a total count.
	ListByType(ctx context.Context, t model.Type, limit, offset int) (*DocumentListResult, error)

	// Delete removes a document record. Any uploaded signed file is removed
	// from storage first.
	Delete(ctx context.Context, id string) error

	// Send saves the document in the sent status, then composes the client
	// message. "Sent" means the record was marked and a composition was
	// produced, not that a mail was delivered; a send that stops at the
	// operator's mail client is not rolled back.
	Send(ctx context.Context, doc *model.Document) (*SendResult, error)

	// Preview returns the document with its computed display figures.
	Preview(ctx context.Context, id string) (*DocumentPreview, error)

	// GeneratePDF renders the print artifact and returns it with a suggested
	// filename. Rendering never changes the document's status.
	GeneratePDF(ctx context.Context, id string) ([]byte, string, error)

	// UploadSigned stores the client-signed file under a key derived from
	// the document and moves the record to the signed status.
	// originalFilename is used only to extract the extension.
	UploadSigned(ctx context.Context, id string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error)

	// SignedFileLink returns a time-limited download URL for the uploaded
	// signed file.
	SignedFileLink(ctx context.Context, id string) (string, error)

	// SaveDefaultSignature stores the operator's signature image, replacing
	// any previous one, and returns a download URL for it.
	SaveDefaultSignature(ctx context.Context, r io.Reader, contentType string, size int64) (string, error)

	// DefaultSignatureURL returns a download URL for the saved signature,
	// or ErrNotFound when none has been saved.
	DefaultSignatureURL(ctx context.Context) (string, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	repo     repository.DocumentRepository
	renderer Renderer
	composer *mail.Composer
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, renderer Renderer, composer *mail.Composer) DocumentService {
	return &documentService{store: store, repo: repo, renderer: renderer, composer: composer}
}

func (s *documentService) Save(ctx context.Context, doc *model.Document, target model.Status) (*model.Document, error) {
	if !doc.Type.Valid() {
		return nil, ErrInvalidType
	}

	// The persisted status is the authority for the transition check; the
	// status field on the payload may be stale.
	current := model.StatusDraft
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	} else {
		existing, err := s.repo.FindByID(ctx, doc.ID)
		switch {
		case err == nil:
			current = existing.Status
			doc.CreatedAt = existing.CreatedAt
		case errors.Is(err, sql.ErrNoRows):
			// New record with a caller-assigned ID.
		default:
			return nil, err
		}
	}
	if target == "" {
		target = current
	}
	if !current.CanTransition(target) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, target)
	}

	compute.FillPaymentStructure(doc.Contract)
	compute.Apply(doc)
	doc.Status = target

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if err := s.repo.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return doc, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) ListByType(ctx context.Context, t model.Type, limit, offset int) (*DocumentListResult, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	res, err := s.repo.ListByType(ctx, t, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Delete removes the signed file from storage (when present), then the record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if doc.SignedFileURL != "" {
		if err := s.store.Delete(ctx, doc.SignedFileURL); err != nil {
			return fmt.Errorf("delete signed file: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) Send(ctx context.Context, doc *model.Document) (*SendResult, error) {
	if doc.ClientEmail == "" {
		return nil, ErrClientEmailRequired
	}
	saved, err := s.Save(ctx, doc, model.StatusSent)
	if err != nil {
		return nil, err
	}
	return &SendResult{Document: saved, Mail: s.composer.ForDocument(saved)}, nil
}

func (s *documentService) Preview(ctx context.Context, id string) (*DocumentPreview, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t := compute.Compute(doc)
	return &DocumentPreview{
		Document:      doc,
		DisplayNumber: doc.DisplayNumber(),
		Subtotal:      compute.FormatUSD(t.Subtotal),
		Tax:           compute.FormatUSD(t.Tax),
		Total:         compute.FormatUSD(t.Total),
		PaymentBlock:  paymentBlock(doc),
	}, nil
}

func (s *documentService) GeneratePDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, "", fmt.Errorf("generate pdf for %s: %w", id, err)
	}
	return out, fmt.Sprintf("%s-%s.pdf", doc.Type, doc.DisplayNumber()), nil
}

func (s *documentService) UploadSigned(ctx context.Context, id string, r io.Reader, originalFilename, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".pdf"
	}
	key := fmt.Sprintf("signed-documents/%s/%s%s", doc.Type, doc.ID, ext)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload signed file: %w", err)
	}

	if err := s.repo.MarkSigned(ctx, id, objInfo.Key, originalFilename); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mark signed: %w", err)
	}

	doc.SignedFileURL = objInfo.Key
	doc.SignedFileName = originalFilename
	doc.Status = model.StatusSigned
	return doc, nil
}

func (s *documentService) SignedFileLink(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.SignedFileURL == "" {
		return "", ErrNotFound
	}
	return s.store.PresignGet(ctx, doc.SignedFileURL, presignExpiry)
}

func (s *documentService) SaveDefaultSignature(ctx context.Context, r io.Reader, contentType string, size int64) (string, error) {
	if r == nil {
		return "", ErrReaderNil
	}
	if _, err := s.store.Put(ctx, defaultSignatureKey, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("save signature: %w", err)
	}
	return s.store.PresignGet(ctx, defaultSignatureKey, presignExpiry)
}

func (s *documentService) DefaultSignatureURL(ctx context.Context) (string, error) {
	// Presigning is local, so existence is checked first.
	rc, _, err := s.store.Get(ctx, defaultSignatureKey)
	if err != nil {
		return "", ErrNotFound
	}
	rc.Close()
	return s.store.PresignGet(ctx, defaultSignatureKey, presignExpiry)
}

// paymentBlock is the payment text the artifact prints: the change-order
// breakdown, or the contract structure with the sum line appended.
func paymentBlock(doc *model.Document) string {
	switch doc.Type {
	case model.TypeChangeOrder:
		return compute.ChangeOrderSummary(doc)
	case model.TypeContract:
		if doc.Contract == nil || doc.Contract.PaymentStructure == "" {
			return ""
		}
		return doc.Contract.PaymentStructure +
			"\n\nSum estimated to complete job: " +
			compute.FormatUSD(doc.Contract.TotalAmount) + " USD"
	}
	return ""
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}
