package templatetree

import (
	"errors"

	"github.com/google/uuid"
)

// Builder is the editor-side state machine for one template's tree. Three
// parallel structures are kept consistent by every operation: the ordered
// container list (stage IDs), the per-container ordered item lists (task
// IDs), and the flat metadata maps.
//
// IDs handed out by the builder are client-generated and temporary: they
// exist only for the lifetime of an editing session and are discarded on
// save. The server's persisted IDs never flow back into a Builder; callers
// rehydrate from the saved template instead.
type Builder struct {
	Name        string
	Description string

	containers []string
	items      map[string][]string
	stages     map[string]*Stage
	tasks      map[string]*Task
}

var (
	ErrStageNotFound = errors.New("stage not found")
	ErrTaskNotFound  = errors.New("task not found")
)

// NewBuilder returns an empty builder for a template with the given name.
func NewBuilder(name, description string) *Builder {
	return &Builder{
		Name:        name,
		Description: description,
		items:       make(map[string][]string),
		stages:      make(map[string]*Stage),
		tasks:       make(map[string]*Task),
	}
}

func newTempID() string {
	return uuid.NewString()
}

// StageIDs returns the container order. The returned slice is a copy.
func (b *Builder) StageIDs() []string {
	out := make([]string, len(b.containers))
	copy(out, b.containers)
	return out
}

// TaskIDs returns the ordered task IDs of one stage. The returned slice is a
// copy; unknown stages yield nil.
func (b *Builder) TaskIDs(stageID string) []string {
	ids, ok := b.items[stageID]
	if !ok {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Stage returns the metadata of one stage.
func (b *Builder) Stage(id string) (*Stage, bool) {
	s, ok := b.stages[id]
	return s, ok
}

// Task returns the metadata of one task.
func (b *Builder) Task(id string) (*Task, bool) {
	t, ok := b.tasks[id]
	return t, ok
}

// AddStage appends a stage to the container order and registers its empty
// task list. Returns the stage's temporary ID.
func (b *Builder) AddStage(s Stage) string {
	id := newTempID()
	b.stages[id] = &s
	b.items[id] = []string{}
	b.containers = append(b.containers, id)
	return id
}

// EditStage replaces a stage's metadata.
func (b *Builder) EditStage(id string, s Stage) error {
	if _, ok := b.stages[id]; !ok {
		return ErrStageNotFound
	}
	b.stages[id] = &s
	return nil
}

// RemoveStage deletes a stage and cascades over its tasks: no orphaned task
// may remain in the metadata map afterwards.
func (b *Builder) RemoveStage(id string) error {
	taskIDs, ok := b.items[id]
	if !ok {
		return ErrStageNotFound
	}
	for _, taskID := range taskIDs {
		delete(b.tasks, taskID)
	}
	delete(b.items, id)
	delete(b.stages, id)
	for i, cid := range b.containers {
		if cid == id {
			b.containers = append(b.containers[:i], b.containers[i+1:]...)
			break
		}
	}
	return nil
}

// AddTask appends a task to a stage's item list. Priority defaults to
// normal. Returns the task's temporary ID.
func (b *Builder) AddTask(stageID string, t Task) (string, error) {
	if _, ok := b.items[stageID]; !ok {
		return "", ErrStageNotFound
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	id := newTempID()
	b.tasks[id] = &t
	b.items[stageID] = append(b.items[stageID], id)
	return id, nil
}

// EditTask replaces a task's metadata, including its embedded subtasks.
func (b *Builder) EditTask(id string, t Task) error {
	if _, ok := b.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	b.tasks[id] = &t
	return nil
}

// RemoveTask deletes a task. The parent stage is found by reverse lookup:
// tasks do not store a parent pointer, the adjacency lists are the single
// source of containment truth.
func (b *Builder) RemoveTask(id string) error {
	stageID, idx, ok := b.locateTask(id)
	if !ok {
		return ErrTaskNotFound
	}
	b.items[stageID] = append(b.items[stageID][:idx], b.items[stageID][idx+1:]...)
	delete(b.tasks, id)
	return nil
}

// locateTask returns the containing stage and position of a task ID.
func (b *Builder) locateTask(id string) (stageID string, idx int, ok bool) {
	for _, sid := range b.containers {
		for i, tid := range b.items[sid] {
			if tid == id {
				return sid, i, true
			}
		}
	}
	return "", 0, false
}

// ReorderStages moves the stage at from to position to, shifting the stages
// in between by one (array-move semantics, not a swap).
func (b *Builder) ReorderStages(from, to int) error {
	return arrayMove(b.containers, from, to)
}

// ReorderTasks moves a task within its stage, array-move semantics.
func (b *Builder) ReorderTasks(stageID string, from, to int) error {
	ids, ok := b.items[stageID]
	if !ok {
		return ErrStageNotFound
	}
	return arrayMove(ids, from, to)
}

// MoveBetweenContainers removes a task from one stage's list and inserts it
// into another's at index. It is called repeatedly while a drag is in
// flight, once per pointer move that crosses a boundary; index comes from
// ComputeDropTarget. Out-of-range indexes clamp to the destination's end.
func (b *Builder) MoveBetweenContainers(taskID, fromStage, toStage string, index int) error {
	src, ok := b.items[fromStage]
	if !ok {
		return ErrStageNotFound
	}
	dst, ok := b.items[toStage]
	if !ok {
		return ErrStageNotFound
	}
	pos := -1
	for i, id := range src {
		if id == taskID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return ErrTaskNotFound
	}

	src = append(src[:pos], src[pos+1:]...)
	b.items[fromStage] = src
	if fromStage == toStage {
		dst = src
	}

	if index < 0 || index > len(dst) {
		index = len(dst)
	}
	dst = append(dst, "")
	copy(dst[index+1:], dst[index:])
	dst[index] = taskID
	b.items[toStage] = dst
	return nil
}

// arrayMove reorders in place: the element at from is removed and reinserted
// at to.
func arrayMove(ids []string, from, to int) error {
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) {
		return errors.New("reorder index out of range")
	}
	id := ids[from]
	copy(ids[from:], ids[from+1:])
	copy(ids[to+1:], ids[to:len(ids)-1])
	ids[to] = id
	return nil
}

// SavePayload flattens the tree into the persistence shape, recomputing
// every OrderIndex from current array position.
func (b *Builder) SavePayload() *SavePayload {
	p := &SavePayload{Name: b.Name, Description: b.Description, Stages: make([]StagePayload, 0, len(b.containers))}
	for si, sid := range b.containers {
		stage := b.stages[sid]
		sp := StagePayload{Name: stage.Name, Description: stage.Description, OrderIndex: si}
		taskIDs := b.items[sid]
		sp.Tasks = make([]TaskPayload, 0, len(taskIDs))
		for ti, tid := range taskIDs {
			task := b.tasks[tid]
			tp := TaskPayload{
				Title:        task.Title,
				Description:  task.Description,
				IsMandatory:  task.IsMandatory,
				Priority:     task.Priority,
				SLADays:      task.SLADays,
				AssignedRole: task.AssignedRole,
				OrderIndex:   ti,
				Config:       task.Config,
			}
			tp.Subtasks = make([]SubtaskPayload, 0, len(task.Subtasks))
			for ui, sub := range task.Subtasks {
				tp.Subtasks = append(tp.Subtasks, SubtaskPayload{
					Title:       sub.Title,
					Description: sub.Description,
					IsMandatory: sub.IsMandatory,
					OrderIndex:  ui,
					Type:        sub.Type,
					Config:      sub.Config,
				})
			}
			sp.Tasks = append(sp.Tasks, tp)
		}
		p.Stages = append(p.Stages, sp)
	}
	return p
}

// Validate checks the current tree against the save gate. It must be called
// (and must pass) before any network call is issued.
func (b *Builder) Validate() *ValidationResult {
	return ValidatePayload(b.SavePayload())
}

// Hydrate rebuilds a builder from a persisted template's fan-out, assigning
// fresh temporary IDs throughout. Stage and task order follows payload
// order; stored OrderIndex values are ignored.
func Hydrate(p *SavePayload) *Builder {
	b := NewBuilder(p.Name, p.Description)
	for _, sp := range p.Stages {
		sid := b.AddStage(Stage{Name: sp.Name, Description: sp.Description})
		for _, tp := range sp.Tasks {
			task := Task{
				Title:        tp.Title,
				Description:  tp.Description,
				IsMandatory:  tp.IsMandatory,
				Priority:     tp.Priority,
				SLADays:      tp.SLADays,
				AssignedRole: tp.AssignedRole,
				Config:       tp.Config,
			}
			for _, up := range tp.Subtasks {
				task.Subtasks = append(task.Subtasks, Subtask{
					Title:       up.Title,
					Description: up.Description,
					IsMandatory: up.IsMandatory,
					Type:        up.Type,
					Config:      up.Config,
				})
			}
			// AddTask cannot fail here: the stage was just created.
			_, _ = b.AddTask(sid, task)
		}
	}
	return b
}
