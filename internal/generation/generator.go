package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msoledad/aula-api/internal/agents"
)

// ContentGenerator produces educational content through the platform's
// agents: the content recommender writes lessons and resource lists,
// subject specialists write exercises, and the progress analyst writes
// evaluations and feedback.
type ContentGenerator struct {
	registry *agents.Registry
	logger   *slog.Logger
}

// NewContentGenerator creates a ContentGenerator over the agent registry.
func NewContentGenerator(registry *agents.Registry, logger *slog.Logger) (*ContentGenerator, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: agent registry cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ContentGenerator{
		registry: registry,
		logger:   logger.With(slog.String("component", "content_generator")),
	}, nil
}

// LessonRequest describes the lesson to generate.
type LessonRequest struct {
	Subject       string
	Topic         string
	Level         string
	LearningStyle string
}

// GenerateLesson produces a complete lesson on the topic, adapted to the
// student's level and learning style.
func (g *ContentGenerator) GenerateLesson(ctx context.Context, req LessonRequest) (*Lesson, error) {
	if req.Subject == "" || req.Topic == "" {
		return nil, fmt.Errorf("%w: subject and topic are required", ErrGenerationFailed)
	}

	agent, err := g.registry.Agent(agents.TypeContent)
	if err != nil {
		return nil, err
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Crea una lección completa sobre el tema '%s' en la materia de %s.\n\n",
		req.Topic, req.Subject)
	fmt.Fprintf(&prompt, "Nivel de dificultad: %s\n", req.Level)
	if req.LearningStyle != "" {
		fmt.Fprintf(&prompt, "Estilo de aprendizaje: %s\n", req.LearningStyle)
	}
	prompt.WriteString(`
La lección debe incluir:
1. Introducción y objetivos de aprendizaje
2. Explicación clara de los conceptos clave
3. Ejemplos ilustrativos
4. Ejercicios prácticos con soluciones
5. Resumen de los puntos principales
6. Recursos adicionales recomendados

Estructura el contenido en secciones claras y utiliza un lenguaje adecuado para el nivel indicado.`)

	sc := &agents.StudentContext{
		Subject:        req.Subject,
		LearningStyle:  req.LearningStyle,
		EducationLevel: req.Level,
	}

	content, err := agent.ProcessMessage(ctx, prompt.String(), sc)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "lesson generated",
		slog.String("subject", req.Subject),
		slog.String("topic", req.Topic),
		slog.Int("content_length", len(content)))

	return &Lesson{
		Subject:       req.Subject,
		Topic:         req.Topic,
		Level:         req.Level,
		LearningStyle: req.LearningStyle,
		Content:       content,
		Sections:      ParseLessonSections(content),
	}, nil
}

// ExerciseRequest describes the exercise batch to generate.
type ExerciseRequest struct {
	Subject      string
	Topic        string
	Level        string
	NumExercises int
}

// GenerateExercises produces practice exercises with worked solutions,
// written by the subject's specialist agent.
func (g *ContentGenerator) GenerateExercises(ctx context.Context, req ExerciseRequest) (*ExerciseSet, error) {
	if req.Subject == "" || req.Topic == "" {
		return nil, fmt.Errorf("%w: subject and topic are required", ErrGenerationFailed)
	}
	if req.NumExercises <= 0 {
		req.NumExercises = 5
	}

	agent, err := g.registry.Agent(agents.ForSubject(req.Subject))
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Crea %d ejercicios prácticos sobre '%s' en la materia de %s.

Nivel de dificultad: %s

Para cada ejercicio, proporciona:
1. El enunciado claro del problema
2. La solución completa paso a paso

Enumera los ejercicios claramente y separa cada uno con un título.`,
		req.NumExercises, req.Topic, req.Subject, req.Level)

	content, err := agent.ProcessMessage(ctx, prompt, &agents.StudentContext{Subject: req.Subject, EducationLevel: req.Level})
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "exercises generated",
		slog.String("subject", req.Subject),
		slog.String("topic", req.Topic),
		slog.Int("requested", req.NumExercises))

	return &ExerciseSet{
		Subject:    req.Subject,
		Topic:      req.Topic,
		Level:      req.Level,
		Exercises:  ParseExercises(content),
		RawContent: content,
	}, nil
}

// EvaluationRequest describes the evaluation to generate.
type EvaluationRequest struct {
	Subject      string
	Topics       []string
	Level        string
	NumQuestions int
}

// GenerateEvaluation produces a graded assessment covering the given topics.
func (g *ContentGenerator) GenerateEvaluation(ctx context.Context, req EvaluationRequest) (*Evaluation, error) {
	if req.Subject == "" || len(req.Topics) == 0 {
		return nil, fmt.Errorf("%w: subject and topics are required", ErrGenerationFailed)
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 10
	}

	agent, err := g.registry.Agent(agents.TypeFeedback)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Crea una evaluación sobre %s, enfocada en los siguientes temas: %s.

Nivel de dificultad: %s
Número de preguntas: %d

Incluye una mezcla de tipos de preguntas (selección múltiple, respuesta corta, problemas).

Para cada pregunta, proporciona:
1. El enunciado claro
2. Opciones de respuesta (si aplica)
3. La respuesta correcta
4. Una breve explicación de la respuesta

Enumera las preguntas claramente.`,
		req.Subject, strings.Join(req.Topics, ", "), req.Level, req.NumQuestions)

	content, err := agent.ProcessMessage(ctx, prompt, &agents.StudentContext{Subject: req.Subject, EducationLevel: req.Level})
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "evaluation generated",
		slog.String("subject", req.Subject),
		slog.Int("topics", len(req.Topics)),
		slog.Int("requested_questions", req.NumQuestions))

	return &Evaluation{
		Subject:    req.Subject,
		Topics:     req.Topics,
		Level:      req.Level,
		Questions:  ParseQuestions(content),
		RawContent: content,
	}, nil
}

// ResourceRequest describes the resource recommendation to generate.
type ResourceRequest struct {
	Subject string
	Topic   string
	Level   string
}

// RecommendResources produces a list of recommended study materials.
func (g *ContentGenerator) RecommendResources(ctx context.Context, req ResourceRequest) (*ResourceList, error) {
	if req.Subject == "" || req.Topic == "" {
		return nil, fmt.Errorf("%w: subject and topic are required", ErrGenerationFailed)
	}

	agent, err := g.registry.Agent(agents.TypeContent)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Recomienda recursos educativos para estudiar el tema '%s' en la materia de %s.

Nivel del estudiante: %s

Para cada recurso, proporciona:
1. Título/nombre
2. Tipo de recurso (libro, video, artículo, aplicación, etc.)
3. Breve descripción
4. Por qué es útil para este tema

Incluye una variedad de tipos de recursos para diferentes estilos de aprendizaje.`,
		req.Topic, req.Subject, req.Level)

	content, err := agent.ProcessMessage(ctx, prompt, &agents.StudentContext{Subject: req.Subject, EducationLevel: req.Level})
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "resources recommended",
		slog.String("subject", req.Subject),
		slog.String("topic", req.Topic))

	return &ResourceList{
		Subject:    req.Subject,
		Topic:      req.Topic,
		Level:      req.Level,
		Resources:  ParseResources(content),
		RawContent: content,
	}, nil
}

// AnalysisRequest describes the progress analysis to generate.
// EvaluationSummary is a pre-rendered description of the student's recent
// evaluations and progress records.
type AnalysisRequest struct {
	Subject           string
	EvaluationSummary string
}

// AnalyzeProgress asks the progress analyst for structured feedback on the
// student's performance.
func (g *ContentGenerator) AnalyzeProgress(ctx context.Context, req AnalysisRequest, sc *agents.StudentContext) (*ProgressAnalysis, error) {
	if req.EvaluationSummary == "" {
		return nil, fmt.Errorf("%w: evaluation summary is required", ErrGenerationFailed)
	}

	agent, err := g.registry.Agent(agents.TypeFeedback)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Analiza los resultados de esta evaluación y proporciona retroalimentación personalizada.
Identifica:
1. Fortalezas demostradas
2. Áreas específicas que necesitan mejora
3. Recomendaciones concretas para mejorar
4. Siguiente paso recomendado en el camino de aprendizaje

Datos de la evaluación:
%s`, req.EvaluationSummary)

	content, err := agent.ProcessMessage(ctx, prompt, sc)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "progress analyzed",
		slog.String("subject", req.Subject))

	analysis := ParseProgressAnalysis(content)
	return &analysis, nil
}
