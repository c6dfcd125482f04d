package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"saraban/internal/model"
	"saraban/internal/service"
	"saraban/internal/storage"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) List(ctx context.Context, category string) ([]model.Record, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Record), args.Error(1)
}

func (m *MockDocumentService) Create(ctx context.Context, category string, attrs model.Attributes, att *service.Attachment) (*model.Record, error) {
	args := m.Called(ctx, category, attrs, att)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, category string, id int64, attrs model.Attributes, att *service.Attachment) (*model.Record, error) {
	args := m.Called(ctx, category, id, attrs, att)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Record), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, category string, id int64) error {
	args := m.Called(ctx, category, id)
	return args.Error(0)
}

func (m *MockDocumentService) OpenAttachment(ctx context.Context, filePath string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, filePath)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
