package handler

import (
	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
	"github.com/Sakibahmed2/portfolio-backend/internal/service"
	"github.com/Sakibahmed2/portfolio-backend/internal/storeerr"
	"github.com/Sakibahmed2/portfolio-backend/internal/validation"
	"github.com/labstack/echo/v4"
)

// CreateSkillRequest is the body of POST /skills. Any other field is dropped.
type CreateSkillRequest struct {
	Title string `json:"title" validate:"max=256"`
	Icon  string `json:"icon" validate:"max=2048"`
}

func (r *CreateSkillRequest) Validate() error {
	return validation.Struct(r)
}

// ListRequest carries nothing; list routes take no input.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}

// SkillHandler serves /skills.
type SkillHandler struct {
	Handler
	skills *service.SkillService
}

func NewSkillHandler(s *server.Server, skills *service.SkillService) *SkillHandler {
	return &SkillHandler{
		Handler: NewHandler(s),
		skills:  skills,
	}
}

func (h *SkillHandler) CreateSkill(c echo.Context, req *CreateSkillRequest) (*model.Skill, error) {
	skill, err := h.skills.Create(c.Request().Context(), req.Title, req.Icon)
	if err != nil {
		return nil, storeerr.HandleError(err, h.skills.Collection(), "Failed to create skills")
	}
	return skill, nil
}

func (h *SkillHandler) ListSkills(c echo.Context, _ *ListRequest) ([]model.Skill, error) {
	skills, err := h.skills.List(c.Request().Context())
	if err != nil {
		return nil, storeerr.HandleError(err, h.skills.Collection(), "Failed to retrieve skills")
	}
	return skills, nil
}
