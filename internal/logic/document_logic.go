package logic

import (
	"context"
	"errors"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/logger"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/model"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/svc"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/utils"
	"github.com/helderandre/infinity-erp-v2-sub000/pkg/docvar"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrDocumentNotFound is returned when the target document does not exist.
var ErrDocumentNotFound = errors.New("document template not found")

// DocumentLogic implements document template operations. Content always
// passes through docvar on the way in so the stored form is canonical flat
// HTML with literal placeholders, whatever shape the editor sent.
type DocumentLogic struct {
	ctx      context.Context
	provider docvar.KeyProvider
}

// NewDocumentLogic creates a DocumentLogic bound to the request context,
// resolving system keys against the live registry.
func NewDocumentLogic(ctx context.Context) *DocumentLogic {
	return &DocumentLogic{ctx: ctx, provider: NewVariableLogic(ctx)}
}

// SaveDocumentReq creates or updates a document. Content accepts either the
// editor's JSON node tree or an HTML string.
type SaveDocumentReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// DocumentListReq filters the document list.
type DocumentListReq struct {
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
	Category string `query:"category"`
	Name     string `query:"name"`
}

// DocumentContent is a document prepared for the editor: the stored flat
// content plus its decorated form and the variables it references.
type DocumentContent struct {
	Document  *model.DocumentTemplate `json:"document"`
	Decorated string                  `json:"decorated"`
	Variables []docvar.Variable       `json:"variables"`
}

// ImportReq imports externally converted HTML (e.g. the output of a docx
// conversion) as a new document.
type ImportReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	HTML     string `json:"html"`
}

// ImportResult is the outcome of an import: the stored document, the
// placeholder keys discovered in it, and the subset not present in the
// system variable registry. The caller surfaces the latter so someone can
// register them or fix typos in the source document.
type ImportResult struct {
	Document         *model.DocumentTemplate `json:"document"`
	Keys             []string                `json:"keys"`
	UnregisteredKeys []string                `json:"unregisteredKeys,omitempty"`
}

// Create stores a new document with canonicalized content.
func (l *DocumentLogic) Create(req *SaveDocumentReq) (*model.DocumentTemplate, error) {
	if req.Name == "" {
		return nil, errors.New("document name must not be empty")
	}
	content, err := l.canonicalize(req.Content)
	if err != nil {
		return nil, err
	}

	doc := &model.DocumentTemplate{Name: req.Name, Category: req.Category, Content: content}
	if err := svc.Ctx.DB.WithContext(l.ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Update replaces a document's metadata and content.
func (l *DocumentLogic) Update(id uint, req *SaveDocumentReq) (*model.DocumentTemplate, error) {
	doc, err := l.load(id)
	if err != nil {
		return nil, err
	}
	content, err := l.canonicalize(req.Content)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"name": req.Name, "category": req.Category, "content": content}
	if err := svc.Ctx.DB.WithContext(l.ctx).Model(doc).Updates(updates).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Get loads one document in its editor form: stored flat content, the
// decorated rendition with live system flags, and the extracted variables.
func (l *DocumentLogic) Get(id uint) (*DocumentContent, error) {
	doc, err := l.load(id)
	if err != nil {
		return nil, err
	}
	tree, err := docvar.NormalizeContent([]byte(doc.Content), l.provider)
	if err != nil {
		return nil, err
	}
	return &DocumentContent{
		Document:  doc,
		Decorated: docvar.Decorate(doc.Content, l.provider),
		Variables: docvar.ExtractVariables(tree, l.provider),
	}, nil
}

// List returns documents page by page.
func (l *DocumentLogic) List(req *DocumentListReq) ([]*model.DocumentTemplate, int64, error) {
	qry := svc.Ctx.DB.WithContext(l.ctx).Model(&model.DocumentTemplate{})
	if req.Category != "" {
		qry = qry.Where("category = ?", req.Category)
	}
	if req.Name != "" {
		qry = qry.Where("name LIKE ?", "%"+req.Name+"%")
	}

	var total int64
	if err := qry.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	var list []*model.DocumentTemplate
	err := qry.Order("id DESC").Offset((req.Page - 1) * req.PageSize).Limit(req.PageSize).Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Delete removes a document.
func (l *DocumentLogic) Delete(id uint) error {
	res := svc.Ctx.DB.WithContext(l.ctx).Delete(&model.DocumentTemplate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// Variables extracts the distinct variables of one document with live system
// flags.
func (l *DocumentLogic) Variables(id uint) ([]docvar.Variable, error) {
	doc, err := l.load(id)
	if err != nil {
		return nil, err
	}
	tree, err := docvar.NormalizeContent([]byte(doc.Content), l.provider)
	if err != nil {
		return nil, err
	}
	return docvar.ExtractVariables(tree, l.provider), nil
}

// Import stores converted HTML as a new document and reports the placeholder
// keys it carries, so the caller can surface unregistered ones.
func (l *DocumentLogic) Import(req *ImportReq) (*ImportResult, error) {
	if req.Name == "" {
		return nil, errors.New("document name must not be empty")
	}

	tree := docvar.ParseHTML(req.HTML, l.provider)
	doc := &model.DocumentTemplate{
		Name:     req.Name,
		Category: req.Category,
		Content:  docvar.Render(tree),
	}
	if !docvar.HasPlaceholders(doc.Content) {
		// Converted documents normally carry placeholders; none at all
		// usually means the conversion mangled them.
		logger.Warn("imported document carries no placeholders", zap.String("name", req.Name))
	}
	if err := svc.Ctx.DB.WithContext(l.ctx).Create(doc).Error; err != nil {
		return nil, err
	}

	keys := docvar.ExtractKeys(doc.Content)
	return &ImportResult{
		Document: doc,
		Keys:     keys,
		UnregisteredKeys: utils.SliceFilter(keys, func(_ int, key string) bool {
			return !l.provider.IsSystem(key)
		}),
	}, nil
}

func (l *DocumentLogic) load(id uint) (*model.DocumentTemplate, error) {
	var doc model.DocumentTemplate
	if err := svc.Ctx.DB.WithContext(l.ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// canonicalize runs incoming content through the content contract: tree or
// HTML in, flat placeholder HTML out.
func (l *DocumentLogic) canonicalize(raw string) (string, error) {
	tree, err := docvar.NormalizeContent([]byte(raw), l.provider)
	if err != nil {
		return "", err
	}
	return docvar.Render(tree), nil
}
