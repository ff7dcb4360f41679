package logic

import (
	"context"
	"errors"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/logger"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/model"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/svc"
	"github.com/helderandre/infinity-erp-v2-sub000/pkg/docvar"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrVariableNotFound is returned when the target system variable does not
// exist.
var ErrVariableNotFound = errors.New("system variable not found")

// VariableLogic manages the system variable registry. It doubles as the
// docvar.KeyProvider for every document operation, so the system/user
// distinction is always resolved against the live table.
type VariableLogic struct {
	ctx context.Context
}

// NewVariableLogic creates a VariableLogic bound to the request context.
func NewVariableLogic(ctx context.Context) *VariableLogic {
	return &VariableLogic{ctx: ctx}
}

// SaveVariableReq creates or updates a registry entry. The key is normalized
// before it is stored.
type SaveVariableReq struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Entity string `json:"entity"`
}

// Create registers a new system variable.
func (l *VariableLogic) Create(req *SaveVariableReq) (*model.SystemVariable, error) {
	key := docvar.NormalizeKey(req.Key)
	if key == "" {
		return nil, errors.New("variable key must not be empty after normalization")
	}

	v := &model.SystemVariable{Key: key, Label: req.Label, Entity: req.Entity, Status: 1}
	if err := svc.Ctx.DB.WithContext(l.ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// Update changes the label or entity of an entry. The key is immutable:
// documents reference variables by key, so renaming one would silently
// orphan every placeholder using it.
func (l *VariableLogic) Update(id uint, req *SaveVariableReq) (*model.SystemVariable, error) {
	var v model.SystemVariable
	if err := svc.Ctx.DB.WithContext(l.ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariableNotFound
		}
		return nil, err
	}

	updates := map[string]any{"label": req.Label, "entity": req.Entity}
	if err := svc.Ctx.DB.WithContext(l.ctx).Model(&v).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes a registry entry. Documents that still reference the key
// keep working; the variable simply degrades to user-defined on the next
// extraction pass.
func (l *VariableLogic) Delete(id uint) error {
	res := svc.Ctx.DB.WithContext(l.ctx).Delete(&model.SystemVariable{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVariableNotFound
	}
	return nil
}

// List returns all active registry entries ordered by key.
func (l *VariableLogic) List() ([]*model.SystemVariable, error) {
	var list []*model.SystemVariable
	err := svc.Ctx.DB.WithContext(l.ctx).
		Where("status = ?", 1).
		Order("var_key").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// IsSystem implements docvar.KeyProvider against the live registry. A lookup
// failure is logged and treated as "not system": a transient read error must
// not promote unknown keys.
func (l *VariableLogic) IsSystem(key string) bool {
	var count int64
	err := svc.Ctx.DB.WithContext(l.ctx).
		Model(&model.SystemVariable{}).
		Where("var_key = ? AND status = ?", key, 1).
		Count(&count).Error
	if err != nil {
		logger.Error("system variable lookup failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return count > 0
}

// SystemKeys implements docvar.KeyProvider.
func (l *VariableLogic) SystemKeys() []string {
	var keys []string
	err := svc.Ctx.DB.WithContext(l.ctx).
		Model(&model.SystemVariable{}).
		Where("status = ?", 1).
		Pluck("var_key", &keys).Error
	if err != nil {
		logger.Error("system variable listing failed", zap.Error(err))
		return nil
	}
	return keys
}
