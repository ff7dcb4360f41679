package templatetree

import "fmt"

// ValidationError identifies one failed check, with a path-style field name
// the UI can attach to the offending input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult aggregates all failed checks of one validation pass.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Error renders the result as a single error message, or returns nil when
// valid.
func (r *ValidationResult) Error() error {
	if r.Valid {
		return nil
	}
	first := r.Errors[0]
	if len(r.Errors) == 1 {
		return fmt.Errorf("%s: %s", first.Field, first.Message)
	}
	return fmt.Errorf("%s: %s (and %d more)", first.Field, first.Message, len(r.Errors)-1)
}

// ValidatePayload checks a save payload against the structural gate: a
// template must have a name and at least one stage, every stage at least one
// task, and typed subtasks must carry their required config. OrderIndex
// values must be contiguous from 0 within each sibling list — payloads built
// by the Builder always are, but payloads arriving over the wire are not
// trusted.
func ValidatePayload(p *SavePayload) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if p == nil {
		result.add("payload", "payload must not be empty")
		return result
	}

	if p.Name == "" {
		result.add("name", "template name must not be empty")
	}
	if len(p.Stages) == 0 {
		result.add("stages", "template must contain at least one stage")
	}

	for si, stage := range p.Stages {
		prefix := fmt.Sprintf("stages[%d]", si)
		if stage.Name == "" {
			result.add(prefix+".name", "stage name must not be empty")
		}
		if stage.OrderIndex != si {
			result.add(prefix+".order_index", fmt.Sprintf("expected %d, got %d", si, stage.OrderIndex))
		}
		if len(stage.Tasks) == 0 {
			result.add(prefix+".tasks", fmt.Sprintf("stage %q must contain at least one task", stage.Name))
		}
		for ti, task := range stage.Tasks {
			validateTask(result, fmt.Sprintf("%s.tasks[%d]", prefix, ti), ti, &task)
		}
	}
	return result
}

func validateTask(result *ValidationResult, prefix string, index int, task *TaskPayload) {
	if task.Title == "" {
		result.add(prefix+".title", "task title must not be empty")
	}
	if !task.Priority.Valid() {
		result.add(prefix+".priority", fmt.Sprintf("unknown priority %q", task.Priority))
	}
	if task.OrderIndex != index {
		result.add(prefix+".order_index", fmt.Sprintf("expected %d, got %d", index, task.OrderIndex))
	}
	if task.SLADays != nil && *task.SLADays <= 0 {
		result.add(prefix+".sla_days", "SLA days must be positive")
	}
	for ui, sub := range task.Subtasks {
		validateSubtask(result, fmt.Sprintf("%s.subtasks[%d]", prefix, ui), ui, &sub)
	}
}

func validateSubtask(result *ValidationResult, prefix string, index int, sub *SubtaskPayload) {
	if sub.Title == "" {
		result.add(prefix+".title", "subtask title must not be empty")
	}
	if sub.OrderIndex != index {
		result.add(prefix+".order_index", fmt.Sprintf("expected %d, got %d", index, sub.OrderIndex))
	}
	if !sub.Type.Valid() {
		result.add(prefix+".type", fmt.Sprintf("unknown subtask type %q", sub.Type))
		return
	}
	switch sub.Type {
	case SubtaskUpload:
		if !hasConfigValue(sub.Config, ConfigDocTypeID) {
			result.add(prefix+".config.doc_type_id", "upload subtask requires a document type")
		}
	case SubtaskEmail:
		if !hasConfigValue(sub.Config, ConfigEmailTemplateID) {
			result.add(prefix+".config.email_template_id", "email subtask requires an email template")
		}
	}
}

func hasConfigValue(config map[string]any, key string) bool {
	v, ok := config[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}
