package handler

import (
	"fmt"
	"strings"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
	"github.com/Sakibahmed2/portfolio-backend/internal/service"
	"github.com/Sakibahmed2/portfolio-backend/internal/storeerr"
	"github.com/Sakibahmed2/portfolio-backend/internal/validation"
	"github.com/labstack/echo/v4"
)

// CreateDocumentRequest is a project or blog body: any JSON object.
type CreateDocumentRequest struct {
	Fields model.Document
}

// UnmarshalJSON hands the whole body to model.Document.
func (r *CreateDocumentRequest) UnmarshalJSON(b []byte) error {
	return r.Fields.UnmarshalJSON(b)
}

func (r *CreateDocumentRequest) Validate() error {
	return nil
}

// IDRequest carries the :id path parameter.
//
// Only presence is checked here. A malformed id goes on to the store and
// fails there, like any other store error.
type IDRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *IDRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateDocumentRequest is the :id path parameter plus the fields to $set.
// An empty body is allowed.
type UpdateDocumentRequest struct {
	ID     string `param:"id" validate:"required"`
	Fields model.Document
}

// UnmarshalJSON fills Fields only; ID comes from the path.
func (r *UpdateDocumentRequest) UnmarshalJSON(b []byte) error {
	return r.Fields.UnmarshalJSON(b)
}

func (r *UpdateDocumentRequest) Validate() error {
	return validation.Struct(r)
}

// DocumentMessages are the fixed response messages of one collection.
type DocumentMessages struct {
	Created   string
	Listed    string
	Retrieved string
	Updated   string
	Deleted   string

	CreateFailed   string
	ListFailed     string
	RetrieveFailed string
	UpdateFailed   string
	DeleteFailed   string
}

// NewDocumentMessages derives the messages from a collection name:
//
//	"projects" -> "Project created successfully", "Failed to retrieve projects", ...
func NewDocumentMessages(collection string) DocumentMessages {
	one := storeerr.EntityName(collection)
	many := one + "s"
	lowerOne := strings.ToLower(one)
	lowerMany := strings.ToLower(many)

	return DocumentMessages{
		Created:   fmt.Sprintf("%s created successfully", one),
		Listed:    fmt.Sprintf("%s retrieved successfully", many),
		Retrieved: fmt.Sprintf("%s retrieved successfully", one),
		Updated:   fmt.Sprintf("%s updated successfully", one),
		Deleted:   fmt.Sprintf("%s deleted successfully", one),

		CreateFailed:   "Failed to create " + lowerOne,
		ListFailed:     "Failed to retrieve " + lowerMany,
		RetrieveFailed: "Failed to retrieve " + lowerOne,
		UpdateFailed:   "Failed to update " + lowerOne,
		DeleteFailed:   "Failed to delete " + lowerOne,
	}
}

// DocumentHandler serves the open-document collections (/projects, /blogs).
type DocumentHandler struct {
	Handler
	documents *service.DocumentService
	Messages  DocumentMessages
}

func NewDocumentHandler(s *server.Server, documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		Handler:   NewHandler(s),
		documents: documents,
		Messages:  NewDocumentMessages(documents.Collection()),
	}
}

func (h *DocumentHandler) fail(err error, message string) error {
	return storeerr.HandleError(err, h.documents.Collection(), message)
}

func (h *DocumentHandler) Create(c echo.Context, req *CreateDocumentRequest) (model.Document, error) {
	doc, err := h.documents.Create(c.Request().Context(), req.Fields)
	if err != nil {
		return nil, h.fail(err, h.Messages.CreateFailed)
	}
	return doc, nil
}

func (h *DocumentHandler) List(c echo.Context, _ *ListRequest) ([]model.Document, error) {
	docs, err := h.documents.List(c.Request().Context())
	if err != nil {
		return nil, h.fail(err, h.Messages.ListFailed)
	}
	return docs, nil
}

// Get answers 200 with a nil document (data: null) when no record has the id.
func (h *DocumentHandler) Get(c echo.Context, req *IDRequest) (model.Document, error) {
	doc, err := h.documents.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, h.fail(err, h.Messages.RetrieveFailed)
	}
	return doc, nil
}

func (h *DocumentHandler) Update(c echo.Context, req *UpdateDocumentRequest) (*model.UpdateResult, error) {
	res, err := h.documents.Update(c.Request().Context(), req.ID, req.Fields)
	if err != nil {
		return nil, h.fail(err, h.Messages.UpdateFailed)
	}
	return res, nil
}

func (h *DocumentHandler) Delete(c echo.Context, req *IDRequest) (*model.DeleteResult, error) {
	res, err := h.documents.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return nil, h.fail(err, h.Messages.DeleteFailed)
	}
	return res, nil
}
