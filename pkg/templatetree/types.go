// Package templatetree maintains the in-memory Stage -> Task -> Subtask tree
// behind the process template editor: ordered containers, drag-and-drop
// reordering, structural validation, and flattening into the persistence
// payload. It is pure state: no I/O, no clock, no globals.
package templatetree

// Priority of a task within a stage.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// SubtaskType selects the action-specific behavior of a subtask.
type SubtaskType string

const (
	SubtaskUpload      SubtaskType = "upload"
	SubtaskChecklist   SubtaskType = "checklist"
	SubtaskEmail       SubtaskType = "email"
	SubtaskGenerateDoc SubtaskType = "generate_doc"
)

// Valid reports whether t is a known subtask type.
func (t SubtaskType) Valid() bool {
	switch t {
	case SubtaskUpload, SubtaskChecklist, SubtaskEmail, SubtaskGenerateDoc:
		return true
	}
	return false
}

// Config keys required by type-specific subtask configs.
const (
	ConfigDocTypeID       = "doc_type_id"
	ConfigEmailTemplateID = "email_template_id"
)

// Stage metadata as edited. Order is not stored here; it is derived from the
// builder's container list at payload time.
type Stage struct {
	Name        string
	Description string
}

// Subtask as edited. Subtasks live embedded in their task and never
// participate in cross-task drag-and-drop, so they carry no identity of
// their own.
type Subtask struct {
	Title       string
	Description string
	IsMandatory bool
	Type        SubtaskType
	Config      map[string]any
}

// Task metadata as edited. The parent stage is not stored on the task; it is
// derived from which container list holds the task's ID.
type Task struct {
	Title        string
	Description  string
	IsMandatory  bool
	Priority     Priority
	SLADays      *int
	AssignedRole string
	Config       map[string]any
	Subtasks     []Subtask
}

// SavePayload is the persistence shape of one template: the only form that
// crosses the network boundary on save. OrderIndex values are recomputed
// from array positions when the payload is produced, never trusted from
// stale stored values.
type SavePayload struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Stages      []StagePayload `json:"stages"`
}

// StagePayload is one stage in the save payload.
type StagePayload struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	OrderIndex  int           `json:"order_index"`
	Tasks       []TaskPayload `json:"tasks"`
}

// TaskPayload is one task in the save payload.
type TaskPayload struct {
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	IsMandatory  bool             `json:"is_mandatory"`
	Priority     Priority         `json:"priority"`
	SLADays      *int             `json:"sla_days,omitempty"`
	AssignedRole string           `json:"assigned_role,omitempty"`
	OrderIndex   int              `json:"order_index"`
	Config       map[string]any   `json:"config,omitempty"`
	Subtasks     []SubtaskPayload `json:"subtasks"`
}

// SubtaskPayload is one subtask in the save payload.
type SubtaskPayload struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	IsMandatory bool           `json:"is_mandatory"`
	OrderIndex  int            `json:"order_index"`
	Type        SubtaskType    `json:"type"`
	Config      map[string]any `json:"config,omitempty"`
}
