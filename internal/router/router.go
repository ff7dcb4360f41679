// Package router registers the HTTP routes.
package router

import (
	"github.com/helderandre/infinity-erp-v2-sub000/internal/handler"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/middleware"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/svc"

	"github.com/gofiber/fiber/v2"
)

// Setup installs the middleware stack and the API routes.
func Setup(app *fiber.App) {
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.CORS(svc.Ctx.Config.Server.CORSOrigins))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    svc.Ctx.Config.App.Name,
		})
	})

	api := app.Group("/api")

	template := api.Group("/template")
	template.Get("/", handler.ListTemplates)
	template.Post("/", handler.CreateTemplate)
	template.Post("/validate", handler.ValidateTemplateStructure)
	template.Get("/:id", handler.GetTemplate)
	template.Delete("/:id", handler.DeleteTemplate)
	template.Get("/:id/structure", handler.GetTemplateStructure)
	template.Post("/:id/structure", handler.SaveTemplateStructure)

	document := api.Group("/document")
	document.Get("/", handler.ListDocuments)
	document.Post("/", handler.CreateDocument)
	document.Post("/import", handler.ImportDocument)
	document.Get("/:id", handler.GetDocument)
	document.Put("/:id", handler.UpdateDocument)
	document.Delete("/:id", handler.DeleteDocument)
	document.Get("/:id/variables", handler.GetDocumentVariables)

	variable := api.Group("/variable")
	variable.Get("/", handler.ListVariables)
	variable.Post("/", handler.CreateVariable)
	variable.Put("/:id", handler.UpdateVariable)
	variable.Delete("/:id", handler.DeleteVariable)

	instance := api.Group("/instance")
	instance.Get("/", handler.ListInstances)
	instance.Post("/", handler.CreateInstance)
	instance.Get("/:id", handler.GetInstance)
	instance.Put("/:id/status", handler.UpdateInstanceStatus)

	docType := api.Group("/doc-type")
	docType.Get("/", handler.ListDocTypes)
	docType.Post("/", handler.CreateDocType)

	emailTemplate := api.Group("/email-template")
	emailTemplate.Get("/", handler.ListEmailTemplates)
	emailTemplate.Post("/", handler.CreateEmailTemplate)
}
