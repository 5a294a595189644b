package service

import (
	"context"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"github.com/rs/zerolog"
)

// DocumentService is the business logic for one open-document collection.
// Projects and blogs each get their own instance.
type DocumentService struct {
	repo DocumentStore
	list *cachedList[model.Document]
}

func NewDocumentService(logger *zerolog.Logger, repo DocumentStore, cache ListCache, warm WarmScheduler) *DocumentService {
	return &DocumentService{
		repo: repo,
		list: &cachedList[model.Document]{
			collection: repo.Collection(),
			cache:      cache,
			warm:       warm,
			logger:     logger,
			load:       repo.FindAll,
		},
	}
}

// Collection returns the backing collection name.
func (s *DocumentService) Collection() string {
	return s.repo.Collection()
}

// Create stores doc and returns it with its new _id.
func (s *DocumentService) Create(ctx context.Context, doc model.Document) (model.Document, error) {
	if doc == nil {
		doc = model.Document{}
	}

	stored, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.list.invalidate(ctx)
	return stored, nil
}

// List returns every document. Never nil on success.
func (s *DocumentService) List(ctx context.Context) ([]model.Document, error) {
	return s.list.get(ctx)
}

// Get returns the document with the given id, or nil when none matches.
// Single reads always hit the database.
func (s *DocumentService) Get(ctx context.Context, id string) (model.Document, error) {
	return s.repo.FindByID(ctx, id)
}

// Update sets fields on the document with the given id.
func (s *DocumentService) Update(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error) {
	res, err := s.repo.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if res.ModifiedCount > 0 {
		s.list.invalidate(ctx)
	}
	return res, nil
}

// Delete removes the document with the given id.
func (s *DocumentService) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	res, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount > 0 {
		s.list.invalidate(ctx)
	}
	return res, nil
}

// WarmCache reloads the cached list.
func (s *DocumentService) WarmCache(ctx context.Context) error {
	return s.list.WarmCache(ctx)
}
