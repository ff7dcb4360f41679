package model

import "gorm.io/datatypes"

// ProcessTemplate is the definition of a repeatable business process. Its
// Stage/Task/Subtask fan-out is replaced wholesale on every structural save;
// the rows are never patched in place.
type ProcessTemplate struct {
	BaseModel
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	Status      int8   `gorm:"default:1" json:"status"` // 0: archived, 1: active

	Stages []TemplateStage `gorm:"foreignKey:TemplateID" json:"stages,omitempty"`
}

// TableName maps the model to its table.
func (ProcessTemplate) TableName() string {
	return "erp_process_template"
}

// TemplateStage is one ordered stage under a template.
type TemplateStage struct {
	BaseModel
	TemplateID  uint   `gorm:"index;not null" json:"templateId"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	OrderIndex  int    `gorm:"not null" json:"orderIndex"`

	Tasks []TemplateTask `gorm:"foreignKey:StageID" json:"tasks,omitempty"`
}

// TableName maps the model to its table.
func (TemplateStage) TableName() string {
	return "erp_template_stage"
}

// TemplateTask is one ordered task under a stage. Config carries the
// action-type-specific payload as JSON.
type TemplateTask struct {
	BaseModel
	StageID      uint              `gorm:"index;not null" json:"stageId"`
	Title        string            `gorm:"size:200;not null" json:"title"`
	Description  string            `gorm:"size:1000" json:"description"`
	IsMandatory  bool              `gorm:"default:false" json:"isMandatory"`
	Priority     string            `gorm:"size:20;default:normal" json:"priority"` // urgent, normal, low
	SLADays      *int              `json:"slaDays,omitempty"`
	AssignedRole string            `gorm:"size:100" json:"assignedRole"`
	OrderIndex   int               `gorm:"not null" json:"orderIndex"`
	Config       datatypes.JSONMap `json:"config,omitempty"`

	Subtasks []TemplateSubtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
}

// TableName maps the model to its table.
func (TemplateTask) TableName() string {
	return "erp_template_task"
}

// TemplateSubtask is one ordered subtask under a task. Type selects the
// behavior (upload, checklist, email, generate_doc); Config carries the
// type-specific references such as doc_type_id or email_template_id.
type TemplateSubtask struct {
	BaseModel
	TaskID      uint              `gorm:"index;not null" json:"taskId"`
	Title       string            `gorm:"size:200;not null" json:"title"`
	Description string            `gorm:"size:1000" json:"description"`
	IsMandatory bool              `gorm:"default:false" json:"isMandatory"`
	OrderIndex  int               `gorm:"not null" json:"orderIndex"`
	Type        string            `gorm:"size:30;not null" json:"type"`
	Config      datatypes.JSONMap `json:"config,omitempty"`
}

// TableName maps the model to its table.
func (TemplateSubtask) TableName() string {
	return "erp_template_subtask"
}
