package service

import (
	"testing"

	"github.com/MaxKochergin/NNGP-sub002/internal/common"
	"github.com/MaxKochergin/NNGP-sub002/internal/dto"
	"github.com/MaxKochergin/NNGP-sub002/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opts(correct ...bool) []dto.AnswerOptionCreateDTO {
	out := make([]dto.AnswerOptionCreateDTO, 0, len(correct))
	for i, c := range correct {
		out = append(out, dto.AnswerOptionCreateDTO{Content: string(rune('A' + i)), IsCorrect: c})
	}
	return out
}

func TestBuildQuestion_Rules(t *testing.T) {
	cases := []struct {
		name    string
		req     dto.QuestionCreateDTO
		wantErr bool
	}{
		{"single ok", dto.QuestionCreateDTO{Content: "q", Type: "SINGLE_CHOICE", Score: 1, OrderInTest: 1, Options: opts(true, false)}, false},
		{"single two correct", dto.QuestionCreateDTO{Content: "q", Type: "SINGLE_CHOICE", OrderInTest: 1, Options: opts(true, true)}, true},
		{"single no correct", dto.QuestionCreateDTO{Content: "q", Type: "SINGLE_CHOICE", OrderInTest: 1, Options: opts(false, false)}, true},
		{"single one option", dto.QuestionCreateDTO{Content: "q", Type: "SINGLE_CHOICE", OrderInTest: 1, Options: opts(true)}, true},
		{"multiple ok", dto.QuestionCreateDTO{Content: "q", Type: "MULTIPLE_CHOICE", OrderInTest: 1, Options: opts(true, true, false)}, false},
		{"multiple no correct", dto.QuestionCreateDTO{Content: "q", Type: "MULTIPLE_CHOICE", OrderInTest: 1, Options: opts(false, false)}, true},
		{"text ok", dto.QuestionCreateDTO{Content: "q", Type: "TEXT", Score: 5, OrderInTest: 1}, false},
		{"text with options", dto.QuestionCreateDTO{Content: "q", Type: "TEXT", OrderInTest: 1, Options: opts(false)}, true},
		{"unknown type", dto.QuestionCreateDTO{Content: "q", Type: "ESSAY", OrderInTest: 1}, true},
		{"negative score", dto.QuestionCreateDTO{Content: "q", Type: "TEXT", Score: -1, OrderInTest: 1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildQuestion(tc.req)
			if tc.wantErr {
				assert.ErrorIs(t, err, common.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuildQuestion_MapsOptions(t *testing.T) {
	q, err := buildQuestion(dto.QuestionCreateDTO{Content: "Pick", Type: "MULTIPLE_CHOICE", Score: 3, OrderInTest: 2, Options: opts(true, false, true)})
	require.NoError(t, err)
	assert.Equal(t, model.QuestionMultipleChoice, q.Type)
	assert.Equal(t, 3, q.Score)
	assert.Equal(t, 2, q.OrderInTest)
	require.Len(t, q.Options, 3)
	assert.True(t, q.Options[0].IsCorrect)
	assert.False(t, q.Options[1].IsCorrect)
}

func TestBuildQuestions_DuplicateOrder(t *testing.T) {
	_, err := buildQuestions([]dto.QuestionCreateDTO{
		{Content: "a", Type: "TEXT", OrderInTest: 1},
		{Content: "b", Type: "TEXT", OrderInTest: 1},
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	qs, err := buildQuestions([]dto.QuestionCreateDTO{
		{Content: "a", Type: "TEXT", OrderInTest: 1},
		{Content: "b", Type: "TEXT", OrderInTest: 2},
	})
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}
