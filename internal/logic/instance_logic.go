package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/logger"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/model"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/svc"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/utils"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInstanceNotFound is returned when the target process instance does not
// exist.
var ErrInstanceNotFound = errors.New("process instance not found")

// InstanceLogic implements process instance operations.
type InstanceLogic struct {
	ctx context.Context
}

// NewInstanceLogic creates an InstanceLogic bound to the request context.
func NewInstanceLogic(ctx context.Context) *InstanceLogic {
	return &InstanceLogic{ctx: ctx}
}

// CreateInstanceReq starts a process from a template.
type CreateInstanceReq struct {
	TemplateID uint   `json:"templateId"`
	Name       string `json:"name"`
}

// InstanceListReq filters the instance list.
type InstanceListReq struct {
	Page       int    `query:"page"`
	PageSize   int    `query:"pageSize"`
	TemplateID uint   `query:"templateId"`
	Status     string `query:"status"`
}

// UpdateStatusReq transitions an instance to a new status.
type UpdateStatusReq struct {
	Status string `json:"status"`
}

// Create snapshots a template into a new running instance. Stage and task
// rows are copied forward, so later template edits never touch this instance.
func (l *InstanceLogic) Create(req *CreateInstanceReq) (*model.ProcessInstance, error) {
	if req.Name == "" {
		return nil, errors.New("instance name must not be empty")
	}

	tpl, err := NewTemplateLogic(l.ctx).Get(req.TemplateID)
	if err != nil {
		return nil, err
	}
	if len(tpl.Stages) == 0 {
		return nil, fmt.Errorf("template %q has no structure to instantiate", tpl.Name)
	}

	inst := &model.ProcessInstance{
		TemplateID: tpl.ID,
		Name:       req.Name,
		Status:     model.InstanceStatusInProgress,
	}
	err = svc.Ctx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inst).Error; err != nil {
			return err
		}
		for _, st := range tpl.Stages {
			stage := model.InstanceStage{
				InstanceID: inst.ID,
				Name:       st.Name,
				OrderIndex: st.OrderIndex,
			}
			if err := tx.Create(&stage).Error; err != nil {
				return fmt.Errorf("instantiate stage %q: %w", st.Name, err)
			}
			for _, tk := range st.Tasks {
				var task model.InstanceTask
				if err := copier.Copy(&task, &tk); err != nil {
					return fmt.Errorf("instantiate task %q: %w", tk.Title, err)
				}
				task.BaseModel = model.BaseModel{}
				task.StageID = stage.ID
				task.TemplateTaskID = tk.ID
				task.Status = "pending"
				if err := tx.Create(&task).Error; err != nil {
					return fmt.Errorf("instantiate task %q in stage %q: %w", tk.Title, st.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l.Get(inst.ID)
}

// Get loads one instance with its stage/task fan-out, ordered.
func (l *InstanceLogic) Get(id uint) (*model.ProcessInstance, error) {
	byOrder := func(db *gorm.DB) *gorm.DB { return db.Order("order_index") }

	var inst model.ProcessInstance
	err := svc.Ctx.DB.WithContext(l.ctx).
		Preload("Stages", byOrder).
		Preload("Stages.Tasks", byOrder).
		First(&inst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInstanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// List returns instances page by page, newest first.
func (l *InstanceLogic) List(req *InstanceListReq) ([]*model.ProcessInstance, int64, error) {
	qry := svc.Ctx.DB.WithContext(l.ctx).Model(&model.ProcessInstance{})
	if req.TemplateID != 0 {
		qry = qry.Where("template_id = ?", req.TemplateID)
	}
	if req.Status != "" {
		if !model.ValidInstanceStatus(req.Status) {
			return nil, 0, fmt.Errorf("unknown instance status %q", req.Status)
		}
		qry = qry.Where("status = ?", req.Status)
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

	var list []*model.ProcessInstance
	err := qry.Order("id DESC").Offset((req.Page - 1) * req.PageSize).Limit(req.PageSize).Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateStatus transitions an instance. Moving an instance into a terminal
// status is what releases its template for structural edits again.
func (l *InstanceLogic) UpdateStatus(id uint, req *UpdateStatusReq) error {
	if !model.ValidInstanceStatus(req.Status) {
		return fmt.Errorf("unknown instance status %q", req.Status)
	}
	res := svc.Ctx.DB.WithContext(l.ctx).
		Model(&model.ProcessInstance{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInstanceNotFound
	}

	if utils.SliceContains(model.TerminalInstanceStatuses, req.Status) {
		logger.Info("instance reached terminal status",
			zap.Uint("instance_id", id),
			zap.String("status", req.Status))
	}
	return nil
}
