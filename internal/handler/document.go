package handler

import (
	"errors"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/logic"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/response"

	"github.com/gofiber/fiber/v2"
)

// CreateDocument handles POST /api/document.
func CreateDocument(c *fiber.Ctx) error {
	var req logic.SaveDocumentReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	doc, err := logic.NewDocumentLogic(c.UserContext()).Create(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, doc)
}

// UpdateDocument handles PUT /api/document/:id.
func UpdateDocument(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	var req logic.SaveDocumentReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	doc, err := logic.NewDocumentLogic(c.UserContext()).Update(id, &req)
	if errors.Is(err, logic.ErrDocumentNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, doc)
}

// GetDocument handles GET /api/document/:id. The reply carries the stored
// flat content plus its decorated editor form and extracted variables.
func GetDocument(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	content, err := logic.NewDocumentLogic(c.UserContext()).Get(id)
	if errors.Is(err, logic.ErrDocumentNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, content)
}

// ListDocuments handles GET /api/document.
func ListDocuments(c *fiber.Ctx) error {
	var req logic.DocumentListReq
	if err := c.QueryParser(&req); err != nil {
		return response.Error(c, "invalid query parameters")
	}

	list, total, err := logic.NewDocumentLogic(c.UserContext()).List(&req)
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Page(c, list, total, req.Page, req.PageSize)
}

// DeleteDocument handles DELETE /api/document/:id.
func DeleteDocument(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	err = logic.NewDocumentLogic(c.UserContext()).Delete(id)
	if errors.Is(err, logic.ErrDocumentNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, nil)
}

// GetDocumentVariables handles GET /api/document/:id/variables.
func GetDocumentVariables(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err.Error())
	}

	vars, err := logic.NewDocumentLogic(c.UserContext()).Variables(id)
	if errors.Is(err, logic.ErrDocumentNotFound) {
		return response.NotFound(c, err.Error())
	}
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, vars)
}

// ImportDocument handles POST /api/document/import.
func ImportDocument(c *fiber.Ctx) error {
	var req logic.ImportReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	result, err := logic.NewDocumentLogic(c.UserContext()).Import(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, result)
}
