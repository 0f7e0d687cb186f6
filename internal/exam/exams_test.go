package exam

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func validQuestions() []QuestionInput {
	return []QuestionInput{
		{
			ID:   1,
			Text: "¿Capital de Francia?",
			Options: []OptionInput{
				{ID: 1, Text: "Madrid"},
				{ID: 2, Text: "París"},
			},
			CorrectOptionID: 2,
		},
	}
}

func TestCreateExamAssignsNextID(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	e, err := s.CreateExam(ctx, CreateExamRequest{Name: "Geografía", Questions: validQuestions()})
	require.NoError(t, err)
	require.Equal(t, 2, e.ID) // seed exam has ID 1

	e2, err := s.CreateExam(ctx, CreateExamRequest{Name: "Historia", Questions: validQuestions()})
	require.NoError(t, err)
	require.Equal(t, 3, e2.ID)
}

func TestCreateExamValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateExamRequest
	}{
		{
			name: "empty name",
			req:  CreateExamRequest{Name: "   ", Questions: validQuestions()},
		},
		{
			name: "no questions",
			req:  CreateExamRequest{Name: "X"},
		},
		{
			name: "question without text",
			req: CreateExamRequest{Name: "X", Questions: []QuestionInput{{
				ID: 1, Text: " ",
				Options:         []OptionInput{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}},
				CorrectOptionID: 1,
			}}},
		},
		{
			name: "single option",
			req: CreateExamRequest{Name: "X", Questions: []QuestionInput{{
				ID: 1, Text: "q",
				Options:         []OptionInput{{ID: 1, Text: "a"}},
				CorrectOptionID: 1,
			}}},
		},
		{
			name: "option without text",
			req: CreateExamRequest{Name: "X", Questions: []QuestionInput{{
				ID: 1, Text: "q",
				Options:         []OptionInput{{ID: 1, Text: "a"}, {ID: 2, Text: ""}},
				CorrectOptionID: 1,
			}}},
		},
		{
			name: "correct option not among options",
			req: CreateExamRequest{Name: "X", Questions: []QuestionInput{{
				ID: 1, Text: "q",
				Options:         []OptionInput{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}},
				CorrectOptionID: 3,
			}}},
		},
		{
			name: "duplicate question ids",
			req: CreateExamRequest{Name: "X", Questions: []QuestionInput{
				{ID: 1, Text: "q1", Options: []OptionInput{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}, CorrectOptionID: 1},
				{ID: 1, Text: "q2", Options: []OptionInput{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}, CorrectOptionID: 1},
			}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestService(t)
			_, err := s.CreateExam(ctx, tc.req)
			require.Error(t, err)
			require.True(t, IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestCreateExamDefaultsZeroIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	e, err := s.CreateExam(ctx, CreateExamRequest{Name: "X", Questions: []QuestionInput{
		{ID: 2, Text: "q1", Options: []OptionInput{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}, CorrectOptionID: 1},
		{Text: "q2", Options: []OptionInput{{Text: "a"}, {Text: "b"}}, CorrectOptionID: 2},
	}})
	require.NoError(t, err)
	require.Equal(t, 2, e.Questions[0].ID)
	require.Equal(t, 1, e.Questions[1].ID) // smallest unused
	require.Equal(t, 1, e.Questions[1].Options[0].ID)
	require.Equal(t, 2, e.Questions[1].Options[1].ID)
	require.Equal(t, 2, e.Questions[1].CorrectOptionID)
}

func TestUpdateExam(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	e, err := s.UpdateExam(ctx, UpdateExamRequest{ID: 1, Name: "Renombrado", Questions: validQuestions()})
	require.NoError(t, err)
	require.Equal(t, "Renombrado", e.Name)
	require.Len(t, e.Questions, 1)

	_, err = s.UpdateExam(ctx, UpdateExamRequest{ID: 42, Name: "X", Questions: validQuestions()})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteExamCascades(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	require.NoError(t, s.DeleteExam(ctx, 1))

	ds := s.Snapshot()
	require.Empty(t, ds.Exams)
	for _, h := range ds.Habilitations {
		require.NotEqual(t, 1, h.ExamID)
	}
	for _, r := range ds.Results {
		require.NotEqual(t, 1, r.ExamID)
	}
}
