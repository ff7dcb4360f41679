package logic

import (
	"context"
	"errors"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/model"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/svc"
	"github.com/helderandre/infinity-erp-v2-sub000/pkg/docvar"
)

// CatalogLogic serves the reference lists the template editor's subtask
// config pickers draw from: document types for upload subtasks, email
// templates for email subtasks.
type CatalogLogic struct {
	ctx context.Context
}

// NewCatalogLogic creates a CatalogLogic bound to the request context.
func NewCatalogLogic(ctx context.Context) *CatalogLogic {
	return &CatalogLogic{ctx: ctx}
}

// CreateDocTypeReq registers a document type.
type CreateDocTypeReq struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CreateEmailTemplateReq registers a library email. Subject and Content may
// carry `{{key}}` placeholders.
type CreateEmailTemplateReq struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// ListDocTypes returns all active document types ordered by name.
func (l *CatalogLogic) ListDocTypes() ([]*model.DocType, error) {
	var list []*model.DocType
	err := svc.Ctx.DB.WithContext(l.ctx).Where("status = ?", 1).Order("name").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CreateDocType registers a new document type.
func (l *CatalogLogic) CreateDocType(req *CreateDocTypeReq) (*model.DocType, error) {
	if req.Name == "" {
		return nil, errors.New("doc type name must not be empty")
	}
	dt := &model.DocType{Name: req.Name, Code: req.Code, Status: 1}
	if err := svc.Ctx.DB.WithContext(l.ctx).Create(dt).Error; err != nil {
		return nil, err
	}
	return dt, nil
}

// ListEmailTemplates returns all active email templates ordered by name.
func (l *CatalogLogic) ListEmailTemplates() ([]*model.EmailTemplate, error) {
	var list []*model.EmailTemplate
	err := svc.Ctx.DB.WithContext(l.ctx).Where("status = ?", 1).Order("name").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CreateEmailTemplate registers a new email template. Content passes through
// the same canonicalization as documents so stored placeholders are always
// the literal flat form.
func (l *CatalogLogic) CreateEmailTemplate(req *CreateEmailTemplateReq) (*model.EmailTemplate, error) {
	if req.Name == "" {
		return nil, errors.New("email template name must not be empty")
	}

	provider := NewVariableLogic(l.ctx)
	tree, err := docvar.NormalizeContent([]byte(req.Content), provider)
	if err != nil {
		return nil, err
	}

	et := &model.EmailTemplate{
		Name:    req.Name,
		Subject: req.Subject,
		Content: docvar.Render(tree),
		Status:  1,
	}
	if err := svc.Ctx.DB.WithContext(l.ctx).Create(et).Error; err != nil {
		return nil, err
	}
	return et, nil
}
