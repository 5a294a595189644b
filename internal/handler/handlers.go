package handler

import (
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
	"github.com/Sakibahmed2/portfolio-backend/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
//
// Like Middlewares and Services, one struct keeps router setup clean:
// the router receives a single object instead of many.
type Handlers struct {
	Health   *HealthHandler   // Liveness (/) and dependency checks (/status).
	OpenAPI  *OpenAPIHandler  // API documentation page.
	Skills   *SkillHandler    // /api/v1/skills
	Projects *DocumentHandler // /api/v1/projects
	Blogs    *DocumentHandler // /api/v1/blogs
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Skills:   NewSkillHandler(s, services.Skills),
		Projects: NewDocumentHandler(s, services.Projects),
		Blogs:    NewDocumentHandler(s, services.Blogs),
	}
}
