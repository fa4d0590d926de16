package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"crportal/internal/config"
	"crportal/internal/mail"
	"crportal/internal/model"
	"crportal/internal/repository"
	repoMocks "crportal/internal/repository/mocks"
	"crportal/internal/storage"
	storeMocks "crportal/internal/storage/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubRenderer struct {
	out []byte
	err error
}

func (r *stubRenderer) Render(doc *model.Document) ([]byte, error) { return r.out, r.err }

func newTestService(store storage.Storage, repo repository.DocumentRepository, r Renderer) DocumentService {
	composer := mail.NewComposer(config.CompanyConfig{
		Brand: "CR Home Pros",
		Owner: "Carlos Hernandez",
		Phone: "(571) 237-7164",
		Email: "crhomepros@gmail.com",
	})
	return NewDocumentService(store, repo, r, composer)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDocumentService_Save(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		doc        *model.Document
		target     model.Status
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		checkDoc   func(t *testing.T, doc *model.Document)
	}{
		{
			name: "create computes totals and assigns id",
			doc: &model.Document{
				Type:   model.TypeInvoice,
				Number: "INV-1",
				Items: []model.LineItem{
					{Description: "Labor", Quantity: 2, UnitPrice: d("100")},
					{Description: "Haul", Quantity: 1, UnitPrice: d("50")},
				},
				TaxRate: d("8"),
			},
			target: model.StatusDraft,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Upsert", ctx, mock.Anything).Return(nil)
			},
			checkDoc: func(t *testing.T, doc *model.Document) {
				assert.NotEmpty(t, doc.ID)
				assert.True(t, doc.Subtotal.Equal(d("250")))
				assert.True(t, doc.Tax.Equal(d("20")))
				assert.True(t, doc.Total.Equal(d("270")))
				assert.Equal(t, model.StatusDraft, doc.Status)
				assert.False(t, doc.CreatedAt.IsZero())
			},
		},
		{
			name: "contract autofills payment structure",
			doc: &model.Document{
				Type: model.TypeContract,
				Contract: &model.ContractDetails{
					TotalAmount: d("9000"),
				},
			},
			target: model.StatusDraft,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Upsert", ctx, mock.Anything).Return(nil)
			},
			checkDoc: func(t *testing.T, doc *model.Document) {
				assert.Contains(t, doc.Contract.PaymentStructure, "$3,000.00 USD when client authorizes work agreement.")
				assert.True(t, doc.Total.Equal(d("9000")))
			},
		},
		{
			name: "update checks transition against persisted status",
			doc: &model.Document{
				ID:   "doc-1",
				Type: model.TypeInvoice,
			},
			target: model.StatusDraft,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "doc-1").
					Return(&model.Document{ID: "doc-1", Status: model.StatusSigned}, nil)
			},
			wantErr: ErrInvalidTransition,
		},
		{
			name: "sent to signed allowed",
			doc: &model.Document{
				ID:   "doc-2",
				Type: model.TypeInvoice,
			},
			target: model.StatusSigned,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "doc-2").
					Return(&model.Document{ID: "doc-2", Status: model.StatusSent}, nil)
				mRepo.On("Upsert", ctx, mock.Anything).Return(nil)
			},
			checkDoc: func(t *testing.T, doc *model.Document) {
				assert.Equal(t, model.StatusSigned, doc.Status)
			},
		},
		{
			name: "paid is never reachable",
			doc: &model.Document{
				ID:   "doc-3",
				Type: model.TypeInvoice,
			},
			target: model.StatusPaid,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "doc-3").
					Return(&model.Document{ID: "doc-3", Status: model.StatusSigned}, nil)
			},
			wantErr: ErrInvalidTransition,
		},
		{
			name: "caller-assigned id not yet persisted is a create",
			doc: &model.Document{
				ID:   "fresh-id",
				Type: model.TypeInvoice,
			},
			target: model.StatusDraft,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "fresh-id").Return(nil, sql.ErrNoRows)
				mRepo.On("Upsert", ctx, mock.Anything).Return(nil)
			},
		},
		{
			name:       "invalid type",
			doc:        &model.Document{Type: model.Type("receipt")},
			target:     model.StatusDraft,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := newTestService(nil, mRepo, nil)

			tt.setupMocks(mRepo)

			doc, err := svc.Save(ctx, tt.doc, tt.target)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				if tt.checkDoc != nil {
					tt.checkDoc(t, doc)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_SaveIdempotent(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := newTestService(nil, mRepo, nil)

	doc := &model.Document{
		Type:  model.TypeInvoice,
		Items: []model.LineItem{{Quantity: 3, UnitPrice: d("19.99")}},
	}
	mRepo.On("Upsert", ctx, mock.Anything).Return(nil)
	saved, err := svc.Save(ctx, doc, model.StatusDraft)
	assert.NoError(t, err)

	mRepo.On("FindByID", ctx, saved.ID).Return(saved, nil)
	again, err := svc.Save(ctx, saved, model.StatusDraft)

	assert.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.True(t, saved.Total.Equal(again.Total))
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Document{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := newTestService(nil, mRepo, nil)

			tt.setupMocks(mRepo)

			doc, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, doc.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := newTestService(nil, mRepo, nil)

	// Zero limit and negative offset fall back to defaults.
	mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Document]{
			Items: []model.Document{{ID: "1"}, {ID: "2"}},
			Total: 2,
		}, nil)

	res, err := svc.List(ctx, 0, -1)

	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Total)
	mRepo.AssertExpectations(t)
}

func TestDocumentService_ListByType(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := newTestService(nil, mRepo, nil)

	mRepo.On("ListByType", ctx, model.TypeContract, repository.PageQuery{Limit: 20, Offset: 0}).
		Return(&repository.PageResult[model.Document]{
			Items: []model.Document{{ID: "c1", Type: model.TypeContract}},
			Total: 1,
		}, nil)

	res, err := svc.ListByType(ctx, model.TypeContract, 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = svc.ListByType(ctx, model.Type("receipt"), 20, 0)
	assert.ErrorIs(t, err, ErrInvalidType)
	mRepo.AssertExpectations(t)
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "deletes signed file first",
			id:   "signed-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "signed-id").
					Return(&model.Document{ID: "signed-id", SignedFileURL: "signed-documents/invoice/signed-id.pdf"}, nil)
				mStore.On("Delete", ctx, "signed-documents/invoice/signed-id.pdf").Return(nil)
				mRepo.On("Delete", ctx, "signed-id").Return(nil)
			},
		},
		{
			name: "no signed file skips storage",
			id:   "plain-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "plain-id").Return(&model.Document{ID: "plain-id"}, nil)
				mRepo.On("Delete", ctx, "plain-id").Return(nil)
			},
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := newTestService(mStore, mRepo, nil)

			tt.setupMocks(mStore, mRepo)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("requires client email", func(t *testing.T) {
		svc := newTestService(nil, new(repoMocks.MockDocumentRepository), nil)

		_, err := svc.Send(ctx, &model.Document{Type: model.TypeInvoice})

		assert.ErrorIs(t, err, ErrClientEmailRequired)
	})

	t.Run("saves as sent then composes", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(nil, mRepo, nil)

		mRepo.On("Upsert", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.Status == model.StatusSent
		})).Return(nil)

		res, err := svc.Send(ctx, &model.Document{
			Type:        model.TypeInvoice,
			Number:      "INV-9",
			ClientName:  "Jordan Blake",
			ClientEmail: "jordan@example.com",
			Items:       []model.LineItem{{Quantity: 1, UnitPrice: d("500")}},
		})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSent, res.Document.Status)
		assert.Equal(t, "jordan@example.com", res.Mail.To)
		assert.Contains(t, res.Mail.Body, "$500.00")
		mRepo.AssertExpectations(t)
	})

	t.Run("send from signed is rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(nil, mRepo, nil)

		mRepo.On("FindByID", ctx, "signed-id").
			Return(&model.Document{ID: "signed-id", Status: model.StatusSigned}, nil)

		_, err := svc.Send(ctx, &model.Document{
			ID:          "signed-id",
			Type:        model.TypeInvoice,
			ClientEmail: "jordan@example.com",
		})

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestDocumentService_Preview(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := newTestService(nil, mRepo, nil)

	mRepo.On("FindByID", ctx, "co-1").Return(&model.Document{
		ID:           "co-1",
		Type:         model.TypeChangeOrder,
		Number:       "CO-7",
		IsCorrection: true,
		Items:        []model.LineItem{{Quantity: 1, UnitPrice: d("1200")}},
		ChangeOrder: &model.ChangeOrderDetails{
			PreviousContractAmount: d("10000"),
			DepositAmount:          d("500"),
		},
	}, nil)

	p, err := svc.Preview(ctx, "co-1")

	assert.NoError(t, err)
	assert.Equal(t, "CO-7-CORRECTED", p.DisplayNumber)
	assert.Equal(t, "$1,200.00", p.Subtotal)
	assert.Equal(t, "$0.00", p.Tax)
	assert.Equal(t, "$10,700.00", p.Total)
	assert.Contains(t, p.PaymentBlock, "TOTAL AFTER CHANGE ORDER: $10,700.00")
	mRepo.AssertExpectations(t)
}

func TestDocumentService_GeneratePDF(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path leaves status untouched", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(nil, mRepo, &stubRenderer{out: []byte("%PDF-1.4")})

		mRepo.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Type: model.TypeInvoice, Number: "INV-3", Status: model.StatusDraft}, nil)

		out, name, err := svc.GeneratePDF(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), out)
		assert.Equal(t, "invoice-INV-3.pdf", name)
		// No Upsert expectation: rendering must not write.
		mRepo.AssertExpectations(t)
	})

	t.Run("render error is wrapped", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(nil, mRepo, &stubRenderer{err: errors.New("font missing")})

		mRepo.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Type: model.TypeInvoice}, nil)

		_, _, err := svc.GeneratePDF(ctx, "doc-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "generate pdf for doc-1: font missing")
	})
}

func TestDocumentService_UploadSigned(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mStore, mRepo, nil)

		r := strings.NewReader("signed pdf bytes")
		mRepo.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Type: model.TypeContract, Status: model.StatusSent}, nil)
		mStore.On("Put", ctx, "signed-documents/contract/doc-1.pdf", r, storage.PutObjectOptions{
			Size:        16,
			ContentType: "application/pdf",
			Metadata:    map[string]string{"original-filename": "signed.pdf"},
		}).Return(storage.ObjectInfo{Key: "signed-documents/contract/doc-1.pdf"}, nil)
		mRepo.On("MarkSigned", ctx, "doc-1", "signed-documents/contract/doc-1.pdf", "signed.pdf").Return(nil)

		doc, err := svc.UploadSigned(ctx, "doc-1", r, "signed.pdf", "application/pdf", 16)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSigned, doc.Status)
		assert.Equal(t, "signed-documents/contract/doc-1.pdf", doc.SignedFileURL)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc := newTestService(nil, new(repoMocks.MockDocumentRepository), nil)

		_, err := svc.UploadSigned(ctx, "doc-1", nil, "signed.pdf", "application/pdf", 0)

		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("re-upload overwrites same key", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := newTestService(mStore, mRepo, nil)

		r := strings.NewReader("v2")
		mRepo.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Type: model.TypeContract, Status: model.StatusSigned}, nil)
		mStore.On("Put", ctx, "signed-documents/contract/doc-1.pdf", r, mock.Anything).
			Return(storage.ObjectInfo{Key: "signed-documents/contract/doc-1.pdf"}, nil)
		mRepo.On("MarkSigned", ctx, "doc-1", "signed-documents/contract/doc-1.pdf", "signed-v2.pdf").Return(nil)

		_, err := svc.UploadSigned(ctx, "doc-1", r, "signed-v2.pdf", "application/pdf", 2)

		assert.NoError(t, err)
		mStore.AssertExpectations(t)
	})
}

func TestDocumentService_DefaultSignature(t *testing.T) {
	ctx := context.Background()

	t.Run("missing signature maps to not found", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := newTestService(mStore, new(repoMocks.MockDocumentRepository), nil)

		mStore.On("Get", ctx, defaultSignatureKey).
			Return(nil, storage.ObjectInfo{}, errors.New("no such key"))

		_, err := svc.DefaultSignatureURL(ctx)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("existing signature presigns", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := newTestService(mStore, new(repoMocks.MockDocumentRepository), nil)

		mStore.On("Get", ctx, defaultSignatureKey).
			Return(io.NopCloser(strings.NewReader("png")), storage.ObjectInfo{Key: defaultSignatureKey}, nil)
		mStore.On("PresignGet", ctx, defaultSignatureKey, presignExpiry).
			Return("https://minio.local/sig", nil)

		url, err := svc.DefaultSignatureURL(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "https://minio.local/sig", url)
	})

	t.Run("save replaces and returns url", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := newTestService(mStore, new(repoMocks.MockDocumentRepository), nil)

		r := strings.NewReader("png bytes")
		mStore.On("Put", ctx, defaultSignatureKey, r, storage.PutObjectOptions{
			Size:        9,
			ContentType: "image/png",
		}).Return(storage.ObjectInfo{Key: defaultSignatureKey}, nil)
		mStore.On("PresignGet", ctx, defaultSignatureKey, presignExpiry).
			Return("https://minio.local/sig", nil)

		url, err := svc.SaveDefaultSignature(ctx, r, "image/png", 9)

		assert.NoError(t, err)
		assert.Equal(t, "https://minio.local/sig", url)
		mStore.AssertExpectations(t)
	})
}
