package logic

import (
	"testing"

	"github.com/helderandre/infinity-erp-v2-sub000/internal/model"
	"github.com/helderandre/infinity-erp-v2-sub000/pkg/templatetree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sampleTemplate() *model.ProcessTemplate {
	sla := 5
	return &model.ProcessTemplate{
		Name:        "Sale mandate",
		Description: "Standard sale process",
		Stages: []model.TemplateStage{
			{
				Name:       "Intake",
				OrderIndex: 0,
				Tasks: []model.TemplateTask{
					{
						Title:       "Collect documents",
						IsMandatory: true,
						Priority:    "urgent",
						SLADays:     &sla,
						OrderIndex:  0,
						Subtasks: []model.TemplateSubtask{
							{
								Title:      "Upload ID",
								OrderIndex: 0,
								Type:       "upload",
								Config:     datatypes.JSONMap{"doc_type_id": float64(3)},
							},
						},
					},
					{Title: "Sign mandate", Priority: "normal", OrderIndex: 1},
				},
			},
			{
				Name:       "Marketing",
				OrderIndex: 1,
				Tasks: []model.TemplateTask{
					{Title: "Publish listing", Priority: "low", OrderIndex: 0},
				},
			},
		},
	}
}

func TestToSavePayloadPreservesStructure(t *testing.T) {
	payload := toSavePayload(sampleTemplate())

	require.Equal(t, "Sale mandate", payload.Name)
	require.Len(t, payload.Stages, 2)

	intake := payload.Stages[0]
	assert.Equal(t, "Intake", intake.Name)
	assert.Equal(t, 0, intake.OrderIndex)
	require.Len(t, intake.Tasks, 2)

	collect := intake.Tasks[0]
	assert.Equal(t, "Collect documents", collect.Title)
	assert.True(t, collect.IsMandatory)
	assert.Equal(t, templatetree.PriorityUrgent, collect.Priority)
	require.NotNil(t, collect.SLADays)
	assert.Equal(t, 5, *collect.SLADays)
	require.Len(t, collect.Subtasks, 1)
	assert.Equal(t, templatetree.SubtaskUpload, collect.Subtasks[0].Type)
	assert.Equal(t, float64(3), collect.Subtasks[0].Config["doc_type_id"])

	assert.Equal(t, 1, intake.Tasks[1].OrderIndex)
	assert.Equal(t, "Publish listing", payload.Stages[1].Tasks[0].Title)
}

func TestToSavePayloadPassesValidation(t *testing.T) {
	payload := toSavePayload(sampleTemplate())
	result := templatetree.ValidatePayload(payload)
	assert.True(t, result.Valid, "stored structure must round-trip through the save gate: %v", result.Errors)
}

func TestToSavePayloadEmptyTemplate(t *testing.T) {
	payload := toSavePayload(&model.ProcessTemplate{Name: "Empty"})
	assert.Empty(t, payload.Stages)

	result := templatetree.ValidatePayload(payload)
	assert.False(t, result.Valid, "a template with no stages must not pass the save gate")
}
