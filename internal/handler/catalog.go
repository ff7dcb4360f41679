package handler

import (
	"github.com/helderandre/infinity-erp-v2-sub000/internal/logic"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/response"

	"github.com/gofiber/fiber/v2"
)

// ListDocTypes handles GET /api/doc-type.
func ListDocTypes(c *fiber.Ctx) error {
	list, err := logic.NewCatalogLogic(c.UserContext()).ListDocTypes()
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, list)
}

// CreateDocType handles POST /api/doc-type.
func CreateDocType(c *fiber.Ctx) error {
	var req logic.CreateDocTypeReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	dt, err := logic.NewCatalogLogic(c.UserContext()).CreateDocType(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, dt)
}

// ListEmailTemplates handles GET /api/email-template.
func ListEmailTemplates(c *fiber.Ctx) error {
	list, err := logic.NewCatalogLogic(c.UserContext()).ListEmailTemplates()
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, list)
}

// CreateEmailTemplate handles POST /api/email-template.
func CreateEmailTemplate(c *fiber.Ctx) error {
	var req logic.CreateEmailTemplateReq
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "invalid request body")
	}

	et, err := logic.NewCatalogLogic(c.UserContext()).CreateEmailTemplate(&req)
	if err != nil {
		return response.Error(c, err.Error())
	}
	return response.Success(c, et)
}
