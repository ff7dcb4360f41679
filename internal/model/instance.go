package model

// Process instance statuses. A template with at least one instance outside
// the terminal set only accepts metadata edits; its stage/task rows are
// frozen.
const (
	InstanceStatusInProgress = "in_progress"
	InstanceStatusOnHold     = "on_hold"
	InstanceStatusCompleted  = "completed"
	InstanceStatusCancelled  = "cancelled"
)

// TerminalInstanceStatuses are the statuses that release a template for
// structural edits.
var TerminalInstanceStatuses = []string{InstanceStatusCompleted, InstanceStatusCancelled}

// ValidInstanceStatus reports whether s is a known instance status.
func ValidInstanceStatus(s string) bool {
	switch s {
	case InstanceStatusInProgress, InstanceStatusOnHold, InstanceStatusCompleted, InstanceStatusCancelled:
		return true
	}
	return false
}

// ProcessInstance is one running process started from a template. Stage and
// task titles are copied forward at instantiation; the template rows are
// only linked informationally.
type ProcessInstance struct {
	BaseModel
	TemplateID uint   `gorm:"index;not null" json:"templateId"`
	Name       string `gorm:"size:200;not null" json:"name"`
	Status     string `gorm:"size:30;default:in_progress;index" json:"status"`

	Stages []InstanceStage `gorm:"foreignKey:InstanceID" json:"stages,omitempty"`
}

// TableName maps the model to its table.
func (ProcessInstance) TableName() string {
	return "erp_process_instance"
}

// InstanceStage is a stage snapshot owned by one instance.
type InstanceStage struct {
	BaseModel
	InstanceID uint   `gorm:"index;not null" json:"instanceId"`
	Name       string `gorm:"size:200;not null" json:"name"`
	OrderIndex int    `gorm:"not null" json:"orderIndex"`

	Tasks []InstanceTask `gorm:"foreignKey:StageID" json:"tasks,omitempty"`
}

// TableName maps the model to its table.
func (InstanceStage) TableName() string {
	return "erp_instance_stage"
}

// InstanceTask is a task snapshot owned by one instance. TemplateTaskID is
// an informational link only: the referenced template row may be replaced
// or deleted without touching this record.
type InstanceTask struct {
	BaseModel
	StageID        uint   `gorm:"index;not null" json:"stageId"`
	TemplateTaskID uint   `json:"templateTaskId,omitempty"`
	Title          string `gorm:"size:200;not null" json:"title"`
	IsMandatory    bool   `gorm:"default:false" json:"isMandatory"`
	Priority       string `gorm:"size:20;default:normal" json:"priority"`
	OrderIndex     int    `gorm:"not null" json:"orderIndex"`
	Status         string `gorm:"size:30;default:pending" json:"status"` // pending, done, skipped
}

// TableName maps the model to its table.
func (InstanceTask) TableName() string {
	return "erp_instance_task"
}
