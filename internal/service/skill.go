package service

import (
	"context"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"github.com/rs/zerolog"
)

// SkillService creates and lists skills.
type SkillService struct {
	repo SkillStore
	list *cachedList[model.Skill]
}

func NewSkillService(logger *zerolog.Logger, repo SkillStore, cache ListCache, warm WarmScheduler) *SkillService {
	return &SkillService{
		repo: repo,
		list: &cachedList[model.Skill]{
			collection: repo.Collection(),
			cache:      cache,
			warm:       warm,
			logger:     logger,
			load:       repo.FindAll,
		},
	}
}

// Collection returns the backing collection name.
func (s *SkillService) Collection() string {
	return s.repo.Collection()
}

// Create stores a skill built from title and icon only.
func (s *SkillService) Create(ctx context.Context, title, icon string) (*model.Skill, error) {
	skill, err := s.repo.Insert(ctx, model.Skill{Title: title, Icon: icon})
	if err != nil {
		return nil, err
	}
	s.list.invalidate(ctx)
	return skill, nil
}

// List returns every skill. Never nil on success.
func (s *SkillService) List(ctx context.Context) ([]model.Skill, error) {
	return s.list.get(ctx)
}

// WarmCache reloads the cached skill list.
func (s *SkillService) WarmCache(ctx context.Context) error {
	return s.list.WarmCache(ctx)
}
