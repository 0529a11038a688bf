package lessons

import "github.com/anvu/studyglass/internal/llm"

// LessonSchema defines the JSON schema for subject lesson generation.
var LessonSchema = &llm.Schema{
	Name:        "subject-lesson",
	Description: "A personalized lesson on one topic with sections, key points, and a practice prompt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short lesson title (3-8 words)",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentence overview of the lesson",
			},
			"sections": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"heading": map[string]any{
							"type": "string",
						},
						"body": map[string]any{
							"type":        "string",
							"description": "Several sentences of explanation, plain text",
						},
					},
					"required":             []any{"heading", "body"},
					"additionalProperties": false,
				},
			},
			"key_points": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "3-5 takeaways worth memorizing",
			},
			"practice": map[string]any{
				"type":        "string",
				"description": "One exercise the student should try on their own",
			},
		},
		"required":             []any{"title", "summary", "sections", "key_points", "practice"},
		"additionalProperties": false,
	},
}

// DeckSchema defines the JSON schema for flashcard deck generation.
var DeckSchema = &llm.Schema{
	Name:        "flashcard-deck",
	Description: "A deck of question/answer flashcards for one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{
							"type":        "string",
							"description": "The prompt side: a term or question",
						},
						"back": map[string]any{
							"type":        "string",
							"description": "The answer side: definition or solution",
						},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}
