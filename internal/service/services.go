package service

import (
	"github.com/Sakibahmed2/portfolio-backend/internal/lib/cache"
	"github.com/Sakibahmed2/portfolio-backend/internal/lib/job"
	"github.com/Sakibahmed2/portfolio-backend/internal/repository"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
)

// Services is a container for the business layer.
type Services struct {
	Skills   *SkillService
	Projects *DocumentService
	Blogs    *DocumentService
	Job      *job.JobService
}

// NewService builds every service on top of the repositories.
//
// Without Redis there is no cache and no job queue: the services then
// read straight from MongoDB.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var listCache ListCache
	if s.Redis != nil {
		listCache = cache.NewListCache(s.Redis, s.Config.Cache.ListTTL)
	}

	var warm WarmScheduler
	if s.Job != nil {
		warm = s.Job
	}

	return &Services{
		Skills:   NewSkillService(s.Logger, repos.Skills, listCache, warm),
		Projects: NewDocumentService(s.Logger, repos.Projects, listCache, warm),
		Blogs:    NewDocumentService(s.Logger, repos.Blogs, listCache, warm),
		Job:      s.Job,
	}, nil
}

// Warmers maps each collection to the service that reloads its cached list.
func (s *Services) Warmers() map[string]job.CacheWarmer {
	return map[string]job.CacheWarmer{
		s.Skills.Collection():   s.Skills,
		s.Projects.Collection(): s.Projects,
		s.Blogs.Collection():    s.Blogs,
	}
}
