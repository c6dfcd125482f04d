package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"saraban/internal/model"
	repoMocks "saraban/internal/repository/mocks"
	"saraban/internal/storage"
	storeMocks "saraban/internal/storage/mocks"
)

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		category   string
		attrs      model.Attributes
		attachment *Attachment
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecordRepository)
		wantErrMsg string
		checkRec   func(t *testing.T, rec *model.Record)
	}{
		{
			name:     "happy path without attachment",
			category: "incoming-general",
			attrs:    model.Attributes{"subject": "budget circular"},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecordRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.Record) bool {
					return rec.Category == "incoming-general" && rec.FilePath == nil
				})).Return(&model.Record{ID: 1, Category: "incoming-general"}, nil)
			},
			checkRec: func(t *testing.T, rec *model.Record) {
				assert.Equal(t, int64(1), rec.ID)
			},
		},
		{
			name:     "attachment uploaded before insert",
			category: "orders",
			attrs:    model.Attributes{"subject": "order 12/2567"},
			attachment: &Attachment{
				Reader:      strings.NewReader("pdf bytes"),
				Filename:    "order.pdf",
				ContentType: "application/pdf",
				Size:        9,
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecordRepository) {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "uploads/") && strings.HasSuffix(key, "-order.pdf")
				}), mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.Record) bool {
					return rec.FilePath != nil && strings.HasPrefix(*rec.FilePath, "/uploads/")
				})).Return(&model.Record{ID: 2}, nil)
			},
		},
		{
			name:     "stamp record defaults kind to USE",
			category: "stamp",
			attrs:    model.Attributes{"amount": 30.0},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecordRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.Record) bool {
					return rec.Attributes.Str("transactionKind") == model.TxnUse
				})).Return(&model.Record{ID: 3}, nil)
			},
		},
		{
			name:     "stamp record keeps explicit ADD",
			category: "stamp",
			attrs:    model.Attributes{"transactionKind": "ADD", "amount": 500.0},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecordRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.Record) bool {
					return rec.Attributes.Str("transactionKind") == model.TxnAdd
				})).Return(&model.Record{ID: 4}, nil)
			},
		},
		{
			name:     "storage error",
			category: "orders",
			attrs:    model.Attributes{},
			attachment: &Attachment{
				Reader:   strings.NewReader("x"),
				Filename: "scan.pdf",
				Size:     1,
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecordRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:     "insert failure rolls the upload back",
			category: "orders",
			attrs:    model.Attributes{},
			attachment: &Attachment{
				Reader:   strings.NewReader("x"),
				Filename: "scan.pdf",
				Size:     1,
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRecordRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "uploads/")
				})).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockRecordRepository)
			svc := NewDocumentService(mStore, mRepo)

			tt.setupMocks(mStore, mRepo)

			rec, err := svc.Create(ctx, tt.category, tt.attrs, tt.attachment)

			if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rec)
				if tt.checkRec != nil {
					tt.checkRec(t, rec)
				}
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()
	oldPath := "/uploads/1700000000000-scan.pdf"

	t.Run("attribute-only update preserves the attachment pointer", func(t *testing.T) {
		mRepo := new(repoMocks.MockRecordRepository)
		svc := NewDocumentService(nil, mRepo)

		mRepo.On("FindByID", ctx, "orders", int64(5)).Return(&model.Record{
			ID:       5,
			Category: "orders",
			FilePath: &oldPath,
		}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(rec *model.Record) bool {
			return rec.FilePath != nil && *rec.FilePath == oldPath &&
				rec.Attributes.Str("subject") == "amended"
		})).Return(int64(1), nil)

		rec, err := svc.Update(ctx, "orders", 5, model.Attributes{"subject": "amended"}, nil)

		assert.NoError(t, err)
		assert.Equal(t, oldPath, *rec.FilePath)
		mRepo.AssertExpectations(t)
	})

	t.Run("new attachment replaces the pointer", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockRecordRepository)
		svc := NewDocumentService(mStore, mRepo)

		mRepo.On("FindByID", ctx, "orders", int64(5)).Return(&model.Record{
			ID:       5,
			Category: "orders",
			FilePath: &oldPath,
		}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(rec *model.Record) bool {
			return rec.FilePath != nil && *rec.FilePath != oldPath &&
				strings.HasSuffix(*rec.FilePath, "-new.pdf")
		})).Return(int64(1), nil)

		rec, err := svc.Update(ctx, "orders", 5, model.Attributes{}, &Attachment{
			Reader:   strings.NewReader("x"),
			Filename: "new.pdf",
			Size:     1,
		})

		assert.NoError(t, err)
		assert.NotEqual(t, oldPath, *rec.FilePath)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing record maps to ErrNotFound", func(t *testing.T) {
		mRepo := new(repoMocks.MockRecordRepository)
		svc := NewDocumentService(nil, mRepo)

		mRepo.On("FindByID", ctx, "orders", int64(404)).Return(nil, sql.ErrNoRows)

		rec, err := svc.Update(ctx, "orders", 404, model.Attributes{}, nil)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, rec)
	})

	t.Run("row vanishing between read and write maps to ErrNotFound", func(t *testing.T) {
		mRepo := new(repoMocks.MockRecordRepository)
		svc := NewDocumentService(nil, mRepo)

		mRepo.On("FindByID", ctx, "orders", int64(6)).Return(&model.Record{ID: 6, Category: "orders"}, nil)
		mRepo.On("Update", ctx, mock.Anything).Return(int64(0), nil)

		_, err := svc.Update(ctx, "orders", 6, model.Attributes{}, nil)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockRecordRepository)
	svc := NewDocumentService(nil, mRepo)

	mRepo.On("Delete", ctx, "meeting", int64(9)).Return(nil)

	assert.NoError(t, svc.Delete(ctx, "meeting", 9))
	mRepo.AssertExpectations(t)
}

func TestDocumentService_OpenAttachment(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	svc := NewDocumentService(mStore, nil)

	body := io.NopCloser(strings.NewReader("pdf"))
	mStore.On("Get", ctx, "uploads/1700000000000-scan.pdf").
		Return(body, storage.ObjectInfo{ContentType: "application/pdf"}, nil)

	rc, info, err := svc.OpenAttachment(ctx, "/uploads/1700000000000-scan.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "application/pdf", info.ContentType)
	assert.NotNil(t, rc)
	mStore.AssertExpectations(t)
}

func TestDocumentService_OpenAttachment_StripsTraversal(t *testing.T) {
	ctx := context.Background()
	mStore := new(storeMocks.MockStorage)
	svc := NewDocumentService(mStore, nil)

	mStore.On("Get", ctx, "uploads/passwd").
		Return(nil, storage.ObjectInfo{}, errors.New("not found"))

	_, _, err := svc.OpenAttachment(ctx, "/uploads/../../etc/passwd")
	assert.Error(t, err)
	mStore.AssertExpectations(t)
}

type trackedCloser struct {
	io.Reader
	closed bool
}

func (t *trackedCloser) Close() error {
	t.closed = true
	return nil
}

func TestAttachment_Close(t *testing.T) {
	t.Run("closes a closer-backed reader", func(t *testing.T) {
		tc := &trackedCloser{Reader: strings.NewReader("x")}
		att := &Attachment{Reader: tc}
		assert.NoError(t, att.Close())
		assert.True(t, tc.closed)
	})

	t.Run("plain reader is a no-op", func(t *testing.T) {
		att := &Attachment{Reader: strings.NewReader("x")}
		assert.NoError(t, att.Close())
	})
}

func TestDecodeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii passes through", "report.pdf", "report.pdf"},
		// UTF-8 bytes mis-decoded as Latin-1 recover the original name.
		{"latin1 mangled utf8", "cafÃ©.pdf", "café.pdf"},
		{"already valid utf8 kept", "สัญญา.pdf", "สัญญา.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeFilename(tt.in))
		})
	}
}
