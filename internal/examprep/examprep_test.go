package examprep

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvu/studyglass/internal/llm"
	"github.com/anvu/studyglass/internal/state"
)

func examJSON(t *testing.T, questions []map[string]any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"questions": questions})
	require.NoError(t, err)
	return raw
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: examJSON(t, []map[string]any{
			{
				"text":        "Tính đạo hàm của y = x^2",
				"choices":     []string{"2x", "x", "x^2", "2"},
				"answer":      0,
				"explanation": "Áp dụng công thức đạo hàm lũy thừa.",
			},
		}),
	})

	svc := NewService(mock)
	exam, err := svc.Generate(context.Background(), Input{
		Subject: state.SubjectMath,
		Count:   1,
		Profile: state.StudentProfile{TargetScore: "9+", Weaknesses: "hình không gian"},
	})
	require.NoError(t, err)

	require.Len(t, exam.Questions, 1)
	assert.Equal(t, state.SubjectMath, exam.Subject)
	assert.Equal(t, "2x", exam.Questions[0].Choices[exam.Questions[0].Answer])

	require.Len(t, mock.Calls, 1)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, string(state.SubjectMath))
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "9+")
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "hình không gian")
	require.NotNil(t, mock.Calls[0].Schema)
	assert.Equal(t, "practice-exam", mock.Calls[0].Schema.Name)
}

func TestGenerateSkipsMalformedQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: examJSON(t, []map[string]any{
			{
				"text":        "Câu hỏng",
				"choices":     []string{"a", "b"},
				"answer":      5,
				"explanation": "",
			},
			{
				"text":        "Câu tốt",
				"choices":     []string{"a", "b", "c", "d"},
				"answer":      2,
				"explanation": "ok",
			},
		}),
	})

	svc := NewService(mock)
	exam, err := svc.Generate(context.Background(), Input{Subject: state.SubjectLiterature})
	require.NoError(t, err)

	require.Len(t, exam.Questions, 1)
	assert.Equal(t, "Câu tốt", exam.Questions[0].Text)
}

func TestGenerateAllMalformedFails(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: examJSON(t, []map[string]any{
			{"text": "x", "choices": []string{}, "answer": 0, "explanation": ""},
		}),
	})

	svc := NewService(mock)
	_, err := svc.Generate(context.Background(), Input{Subject: state.SubjectMath})
	assert.ErrorContains(t, err, "no usable questions")
}

func TestGenerateDefaultCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: examJSON(t, []map[string]any{
			{"text": "q", "choices": []string{"a", "b", "c", "d"}, "answer": 1, "explanation": "e"},
		}),
	})

	svc := NewService(mock)
	_, err := svc.Generate(context.Background(), Input{Subject: state.SubjectMath})
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Number of questions: 10")
}

func TestGenerateProviderError(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue means unavailable

	svc := NewService(mock)
	_, err := svc.Generate(context.Background(), Input{Subject: state.SubjectMath})

	var unavailable *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
}
