package repository

import (
	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
)

// Repositories is a container for all repository instances.
//
// Services receive this container and pick the repositories they need.
type Repositories struct {
	Skills   *SkillRepository
	Projects *DocumentRepository
	Blogs    *DocumentRepository
}

// NewRepositories constructs the repository container.
//
// Parameter:
// - s: application container (the MongoDB client lives on s.DB, the
// per-operation timeout on s.Config.Database)
func NewRepositories(s *server.Server) *Repositories {
	timeout := s.Config.Database.OperationTimeout

	return &Repositories{
		Skills:   NewSkillRepository(s.DB.Collection(model.CollectionSkills), timeout),
		Projects: NewDocumentRepository(s.DB.Collection(model.CollectionProjects), timeout),
		Blogs:    NewDocumentRepository(s.DB.Collection(model.CollectionBlogs), timeout),
	}
}
