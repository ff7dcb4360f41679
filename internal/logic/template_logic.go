// Package logic implements the service operations behind the HTTP handlers.
package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/logger"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/model"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/svc"
	"github.com/helderandre/infinity-erp-v2-sub000/internal/utils"
	"github.com/helderandre/infinity-erp-v2-sub000/pkg/templatetree"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrTemplateNotFound is returned when the target template does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateLogic implements process template operations.
type TemplateLogic struct {
	ctx context.Context
}

// NewTemplateLogic creates a TemplateLogic bound to the request context.
func NewTemplateLogic(ctx context.Context) *TemplateLogic {
	return &TemplateLogic{ctx: ctx}
}

// CreateTemplateReq creates an empty template shell; structure is added
// through SaveStructure.
type CreateTemplateReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TemplateListReq filters the template list.
type TemplateListReq struct {
	Page     int    `query:"page"`
	PageSize int    `query:"pageSize"`
	Name     string `query:"name"`
}

// SaveStructureResult is the outcome of a structural save. Warning is set
// when active process instances forced the save down to a metadata-only
// update.
type SaveStructureResult struct {
	ID      uint   `json:"id"`
	Warning string `json:"warning,omitempty"`
}

// Create inserts an empty template.
func (l *TemplateLogic) Create(req *CreateTemplateReq) (*model.ProcessTemplate, error) {
	if req.Name == "" {
		return nil, errors.New("template name must not be empty")
	}
	tpl := &model.ProcessTemplate{Name: req.Name, Description: req.Description, Status: 1}
	if err := svc.Ctx.DB.WithContext(l.ctx).Create(tpl).Error; err != nil {
		return nil, err
	}
	return tpl, nil
}

// Get loads one template with its full stage/task/subtask fan-out, each
// sibling list ordered by its order index.
func (l *TemplateLogic) Get(id uint) (*model.ProcessTemplate, error) {
	byOrder := func(db *gorm.DB) *gorm.DB { return db.Order("order_index") }

	var tpl model.ProcessTemplate
	err := svc.Ctx.DB.WithContext(l.ctx).
		Preload("Stages", byOrder).
		Preload("Stages.Tasks", byOrder).
		Preload("Stages.Tasks.Subtasks", byOrder).
		First(&tpl, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Structure returns a template in the editor's payload shape, ready to
// hydrate a fresh builder on the client.
func (l *TemplateLogic) Structure(id uint) (*templatetree.SavePayload, error) {
	tpl, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	return toSavePayload(tpl), nil
}

// toSavePayload flattens a loaded template into the wire payload.
func toSavePayload(tpl *model.ProcessTemplate) *templatetree.SavePayload {
	return &templatetree.SavePayload{
		Name:        tpl.Name,
		Description: tpl.Description,
		Stages: utils.SliceMap(tpl.Stages, func(_ int, st model.TemplateStage) templatetree.StagePayload {
			return templatetree.StagePayload{
				Name:        st.Name,
				Description: st.Description,
				OrderIndex:  st.OrderIndex,
				Tasks: utils.SliceMap(st.Tasks, func(_ int, tk model.TemplateTask) templatetree.TaskPayload {
					return templatetree.TaskPayload{
						Title:        tk.Title,
						Description:  tk.Description,
						IsMandatory:  tk.IsMandatory,
						Priority:     templatetree.Priority(tk.Priority),
						SLADays:      tk.SLADays,
						AssignedRole: tk.AssignedRole,
						OrderIndex:   tk.OrderIndex,
						Config:       tk.Config,
						Subtasks: utils.SliceMap(tk.Subtasks, func(_ int, su model.TemplateSubtask) templatetree.SubtaskPayload {
							return templatetree.SubtaskPayload{
								Title:       su.Title,
								Description: su.Description,
								IsMandatory: su.IsMandatory,
								OrderIndex:  su.OrderIndex,
								Type:        templatetree.SubtaskType(su.Type),
								Config:      su.Config,
							}
						}),
					}
				}),
			}
		}),
	}
}

// List returns templates page by page, newest first.
func (l *TemplateLogic) List(req *TemplateListReq) ([]*model.ProcessTemplate, int64, error) {
	qry := svc.Ctx.DB.WithContext(l.ctx).Model(&model.ProcessTemplate{})
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

	var list []*model.ProcessTemplate
	err := qry.Order("id DESC").Offset((req.Page - 1) * req.PageSize).Limit(req.PageSize).Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Delete removes a template and its subtree. Templates referenced by any
// process instance, terminal or not, are archived instead of deleted so the
// instances keep their informational link.
func (l *TemplateLogic) Delete(id uint) error {
	return svc.Ctx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
		var tpl model.ProcessTemplate
		if err := tx.First(&tpl, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&model.ProcessInstance{}).Where("template_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return tx.Model(&tpl).Update("status", 0).Error
		}

		if err := deleteSubtree(tx, id); err != nil {
			return err
		}
		return tx.Delete(&tpl).Error
	})
}

// SaveStructure atomically replaces a template's stage/task/subtask subtree
// with the payload:
//
//  1. The payload is validated before anything is touched.
//  2. Inside one transaction the template is loaded and the count of
//     non-terminal process instances referencing it is read. The guard read
//     happens here, not earlier, because instances move in and out of the
//     active set while the template is being edited.
//  3. With active instances the save degrades to a name/description update
//     and reports a warning; the structural rows are left untouched.
//  4. Otherwise the old subtree is deleted child-before-parent and the new
//     one inserted parent-before-child, each row receiving its parent's
//     freshly assigned ID.
//
// Any failure rolls the whole transaction back; the error names the entity
// that failed.
func (l *TemplateLogic) SaveStructure(id uint, payload *templatetree.SavePayload) (*SaveStructureResult, error) {
	if result := templatetree.ValidatePayload(payload); !result.Valid {
		return nil, result.Error()
	}

	var res *SaveStructureResult
	err := svc.Ctx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
		var tpl model.ProcessTemplate
		if err := tx.First(&tpl, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&model.ProcessInstance{}).
			Where("template_id = ? AND status NOT IN ?", id, model.TerminalInstanceStatuses).
			Count(&active).Error; err != nil {
			return err
		}

		updates := map[string]any{"name": payload.Name, "description": payload.Description}
		if err := tx.Model(&tpl).Updates(updates).Error; err != nil {
			return err
		}

		if active > 0 {
			logger.Warn("structural template save suppressed",
				zap.Uint("template_id", id),
				zap.Int64("active_instances", active))
			res = &SaveStructureResult{
				ID: tpl.ID,
				Warning: fmt.Sprintf("%d process(es) based on this template are still running: "+
					"only name and description were updated", active),
			}
			return nil
		}

		if err := deleteSubtree(tx, id); err != nil {
			return err
		}
		if err := insertSubtree(tx, id, payload); err != nil {
			return err
		}
		res = &SaveStructureResult{ID: tpl.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// deleteSubtree removes every stage, task and subtask under a template,
// children before parents. Rows are removed for real: a replaced subtree
// must not linger behind the soft-delete filter.
func deleteSubtree(tx *gorm.DB, templateID uint) error {
	var stageIDs []uint
	if err := tx.Model(&model.TemplateStage{}).Where("template_id = ?", templateID).Pluck("id", &stageIDs).Error; err != nil {
		return err
	}
	if len(stageIDs) == 0 {
		return nil
	}

	var taskIDs []uint
	if err := tx.Model(&model.TemplateTask{}).Where("stage_id IN ?", stageIDs).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}

	if len(taskIDs) > 0 {
		if err := tx.Unscoped().Where("task_id IN ?", taskIDs).Delete(&model.TemplateSubtask{}).Error; err != nil {
			return fmt.Errorf("delete subtasks: %w", err)
		}
	}
	if err := tx.Unscoped().Where("stage_id IN ?", stageIDs).Delete(&model.TemplateTask{}).Error; err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	if err := tx.Unscoped().Where("template_id = ?", templateID).Delete(&model.TemplateStage{}).Error; err != nil {
		return fmt.Errorf("delete stages: %w", err)
	}
	return nil
}

// insertSubtree writes the payload top-down. A subtask insert needs its
// parent task's persisted ID, which needs the parent stage's, so the order
// is fixed: stage, its tasks, their subtasks.
func insertSubtree(tx *gorm.DB, templateID uint, payload *templatetree.SavePayload) error {
	for _, sp := range payload.Stages {
		stage := model.TemplateStage{
			TemplateID:  templateID,
			Name:        sp.Name,
			Description: sp.Description,
			OrderIndex:  sp.OrderIndex,
		}
		if err := tx.Create(&stage).Error; err != nil {
			return fmt.Errorf("insert stage %q: %w", sp.Name, err)
		}

		for _, tp := range sp.Tasks {
			task := model.TemplateTask{
				StageID:      stage.ID,
				Title:        tp.Title,
				Description:  tp.Description,
				IsMandatory:  tp.IsMandatory,
				Priority:     string(tp.Priority),
				SLADays:      tp.SLADays,
				AssignedRole: tp.AssignedRole,
				OrderIndex:   tp.OrderIndex,
				Config:       datatypes.JSONMap(tp.Config),
			}
			if err := tx.Create(&task).Error; err != nil {
				return fmt.Errorf("insert task %q in stage %q: %w", tp.Title, sp.Name, err)
			}

			for _, up := range tp.Subtasks {
				subtask := model.TemplateSubtask{
					TaskID:      task.ID,
					Title:       up.Title,
					Description: up.Description,
					IsMandatory: up.IsMandatory,
					OrderIndex:  up.OrderIndex,
					Type:        string(up.Type),
					Config:      datatypes.JSONMap(up.Config),
				}
				if err := tx.Create(&subtask).Error; err != nil {
					return fmt.Errorf("insert subtask %q in task %q: %w", up.Title, tp.Title, err)
				}
			}
		}
	}
	return nil
}
