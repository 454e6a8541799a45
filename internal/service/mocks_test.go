package service

import (
	"context"
	"time"

	"github.com/quantive/kb-catalog/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository mocks the DocumentRepository interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Put(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, workspaceID, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, workspaceID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, workspaceID, documentID string) (bool, error) {
	args := m.Called(ctx, workspaceID, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) Query(ctx context.Context, q domain.DocumentQuery) (*domain.DocumentPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentPage), args.Error(1)
}

func (m *MockDocumentRepository) ListIDs(ctx context.Context, workspaceID string) ([]string, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDocumentRepository) BatchDelete(ctx context.Context, workspaceID string, documentIDs []string) error {
	args := m.Called(ctx, workspaceID, documentIDs)
	return args.Error(0)
}

func (m *MockDocumentRepository) SetStatus(ctx context.Context, workspaceID, documentID, status string, now time.Time) error {
	args := m.Called(ctx, workspaceID, documentID, status, now)
	return args.Error(0)
}

func (m *MockDocumentRepository) SetCrawlerProperties(ctx context.Context, workspaceID, documentID string, props *domain.CrawlerProperties, now time.Time) error {
	args := m.Called(ctx, workspaceID, documentID, props, now)
	return args.Error(0)
}

// MockWorkspaceRepository mocks the WorkspaceRepository interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Get(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) Put(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) ApplyCounterDelta(ctx context.Context, workspaceID string, delta domain.CounterDelta, now time.Time) error {
	args := m.Called(ctx, workspaceID, delta, now)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) Delete(ctx context.Context, workspaceID string) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

// MockObjectStore mocks the ObjectStore interface
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockObjectStore) DeletePrefix(ctx context.Context, bucket, prefix string) error {
	args := m.Called(ctx, bucket, prefix)
	return args.Error(0)
}

func (m *MockObjectStore) PresignedUploadPost(ctx context.Context, bucket, key string, expiry time.Duration) (*domain.UploadDescriptor, error) {
	args := m.Called(ctx, bucket, key, expiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadDescriptor), args.Error(1)
}

// MockSearchIndex mocks the SearchIndex interface
type MockSearchIndex struct {
	mock.Mock
}

func (m *MockSearchIndex) DeleteDocument(ctx context.Context, workspaceID, documentID string, docType domain.DocumentType) error {
	args := m.Called(ctx, workspaceID, documentID, docType)
	return args.Error(0)
}

func (m *MockSearchIndex) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

// MockDocumentCache mocks the DocumentCache interface
type MockDocumentCache struct {
	mock.Mock
}

func (m *MockDocumentCache) Get(ctx context.Context, workspaceID, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, workspaceID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentCache) Set(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentCache) Invalidate(ctx context.Context, workspaceID, documentID string) error {
	args := m.Called(ctx, workspaceID, documentID)
	return args.Error(0)
}

func (m *MockDocumentCache) InvalidateWorkspace(ctx context.Context, workspaceID string) (int64, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).(int64), args.Error(1)
}
