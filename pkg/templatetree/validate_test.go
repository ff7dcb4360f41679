package templatetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() *SavePayload {
	return &SavePayload{
		Name: "Sale",
		Stages: []StagePayload{{
			Name:       "Intake",
			OrderIndex: 0,
			Tasks: []TaskPayload{{
				Title:      "Collect ID",
				Priority:   PriorityNormal,
				OrderIndex: 0,
			}},
		}},
	}
}

func TestValidatePayload(t *testing.T) {
	t.Run("one stage one task zero subtasks is valid", func(t *testing.T) {
		result := ValidatePayload(validPayload())
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
		assert.NoError(t, result.Error())
	})

	t.Run("nil payload", func(t *testing.T) {
		assert.False(t, ValidatePayload(nil).Valid)
	})

	t.Run("empty name", func(t *testing.T) {
		p := validPayload()
		p.Name = ""
		result := ValidatePayload(p)
		require.False(t, result.Valid)
		assert.Equal(t, "name", result.Errors[0].Field)
	})

	t.Run("zero stages rejected", func(t *testing.T) {
		p := validPayload()
		p.Stages = nil
		result := ValidatePayload(p)
		require.False(t, result.Valid)
		assert.Equal(t, "stages", result.Errors[0].Field)
	})

	t.Run("stage with zero tasks rejected", func(t *testing.T) {
		p := validPayload()
		p.Stages[0].Tasks = nil
		result := ValidatePayload(p)
		require.False(t, result.Valid)
		assert.Equal(t, "stages[0].tasks", result.Errors[0].Field)
		assert.Contains(t, result.Errors[0].Message, "Intake")
	})

	t.Run("wire payload order indexes are not trusted", func(t *testing.T) {
		p := validPayload()
		p.Stages[0].Tasks[0].OrderIndex = 3
		result := ValidatePayload(p)
		require.False(t, result.Valid)
		assert.Equal(t, "stages[0].tasks[0].order_index", result.Errors[0].Field)
	})

	t.Run("unknown priority", func(t *testing.T) {
		p := validPayload()
		p.Stages[0].Tasks[0].Priority = "asap"
		assert.False(t, ValidatePayload(p).Valid)
	})

	t.Run("non-positive sla", func(t *testing.T) {
		p := validPayload()
		zero := 0
		p.Stages[0].Tasks[0].SLADays = &zero
		assert.False(t, ValidatePayload(p).Valid)
	})

	t.Run("upload subtask requires doc type", func(t *testing.T) {
		p := validPayload()
		p.Stages[0].Tasks[0].Subtasks = []SubtaskPayload{
			{Title: "Upload ID scan", Type: SubtaskUpload, OrderIndex: 0},
		}
		result := ValidatePayload(p)
		require.False(t, result.Valid)
		assert.Equal(t, "stages[0].tasks[0].subtasks[0].config.doc_type_id", result.Errors[0].Field)

		p.Stages[0].Tasks[0].Subtasks[0].Config = map[string]any{ConfigDocTypeID: "X"}
		assert.True(t, ValidatePayload(p).Valid)
	})

	t.Run("email subtask requires template", func(t *testing.T) {
		p := validPayload()
		p.Stages[0].Tasks[0].Subtasks = []SubtaskPayload{
			{Title: "Send welcome", Type: SubtaskEmail, OrderIndex: 0, Config: map[string]any{ConfigEmailTemplateID: ""}},
		}
		assert.False(t, ValidatePayload(p).Valid)
	})

	t.Run("unknown subtask type reported once", func(t *testing.T) {
		p := validPayload()
		p.Stages[0].Tasks[0].Subtasks = []SubtaskPayload{
			{Title: "x", Type: "phone_call", OrderIndex: 0},
		}
		result := ValidatePayload(p)
		require.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Message, "phone_call")
	})

	t.Run("builder payloads always pass order checks", func(t *testing.T) {
		b := NewBuilder("Sale", "")
		s1 := b.AddStage(Stage{Name: "A"})
		s2 := b.AddStage(Stage{Name: "B"})
		_, _ = b.AddTask(s1, Task{Title: "t1"})
		_, _ = b.AddTask(s2, Task{Title: "t2"})
		_, _ = b.AddTask(s2, Task{Title: "t3"})
		require.NoError(t, b.ReorderStages(1, 0))

		assert.True(t, b.Validate().Valid)
	})

	t.Run("builder with empty stage fails gate", func(t *testing.T) {
		b := NewBuilder("Sale", "")
		b.AddStage(Stage{Name: "empty"})
		result := b.Validate()
		require.False(t, result.Valid)
		assert.Error(t, result.Error())
	})
}
