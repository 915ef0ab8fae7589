package generation

import (
	"context"
	"fmt"

	"github.com/msoledad/aula-api/internal/agents"
	"github.com/msoledad/aula-api/internal/task"
)

// NewTaskHandler adapts the ContentGenerator to the queue's handler
// signature, branching on the task type. Task payloads come from JSON
// request bodies, so numeric fields arrive as float64.
func NewTaskHandler(generator *ContentGenerator) task.Handler {
	return func(ctx context.Context, t task.Task) (any, error) {
		switch t.Type {
		case task.TypeLessonGeneration:
			return generator.GenerateLesson(ctx, LessonRequest{
				Subject:       stringField(t.Data, "subject"),
				Topic:         stringField(t.Data, "topic"),
				Level:         levelField(t.Data),
				LearningStyle: stringField(t.Data, "learning_style"),
			})

		case task.TypeExerciseGeneration:
			return generator.GenerateExercises(ctx, ExerciseRequest{
				Subject:      stringField(t.Data, "subject"),
				Topic:        stringField(t.Data, "topic"),
				Level:        levelField(t.Data),
				NumExercises: intField(t.Data, "num_exercises"),
			})

		case task.TypeEvaluationGeneration:
			topics := stringsField(t.Data, "topics")
			if len(topics) == 0 {
				if topic := stringField(t.Data, "topic"); topic != "" {
					topics = []string{topic}
				}
			}
			return generator.GenerateEvaluation(ctx, EvaluationRequest{
				Subject:      stringField(t.Data, "subject"),
				Topics:       topics,
				Level:        levelField(t.Data),
				NumQuestions: intField(t.Data, "num_questions"),
			})

		case task.TypeResourceRecommendation:
			return generator.RecommendResources(ctx, ResourceRequest{
				Subject: stringField(t.Data, "subject"),
				Topic:   stringField(t.Data, "topic"),
				Level:   levelField(t.Data),
			})

		case task.TypeProgressAnalysis:
			sc := &agents.StudentContext{
				FirstName:      stringField(t.Data, "first_name"),
				LearningStyle:  stringField(t.Data, "learning_style"),
				EducationLevel: stringField(t.Data, "education_level"),
				Subject:        stringField(t.Data, "subject"),
			}
			return generator.AnalyzeProgress(ctx, AnalysisRequest{
				Subject:           stringField(t.Data, "subject"),
				EvaluationSummary: stringField(t.Data, "evaluation_summary"),
			}, sc)

		default:
			return nil, fmt.Errorf("%w: unknown task type %q", ErrGenerationFailed, t.Type)
		}
	}
}

func stringField(data map[string]any, key string) string {
	if value, ok := data[key].(string); ok {
		return value
	}
	return ""
}

// levelField returns the task's difficulty level, defaulting to
// "intermediate" when absent.
func levelField(data map[string]any) string {
	if level := stringField(data, "level"); level != "" {
		return level
	}
	return "intermediate"
}

func intField(data map[string]any, key string) int {
	switch value := data[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return 0
	}
}

func stringsField(data map[string]any, key string) []string {
	switch value := data[key].(type) {
	case []string:
		return value
	case []any:
		var out []string
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
