package generation

import "strings"

// The model responds with free-form structured text. These parsers split it
// into sections and items by line heuristics: numbered or labelled headers
// open a new item, marker lines ("Solución:", "Respuesta:", ...) switch the
// section content is accumulated into.

// numberedHeader reports whether the line starts with a number followed by
// '.', ')' or ':' ("1. ...", "2) ...").
func numberedHeader(line string) bool {
	if len(line) < 2 {
		return false
	}
	if line[0] < '0' || line[0] > '9' {
		return false
	}
	return line[1] == '.' || line[1] == ')' || line[1] == ':'
}

// containsAny reports whether s contains at least one of the terms.
func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// ParseLessonSections splits lesson text into its canonical sections by
// recognizing headers in Spanish or English. Lines before the first
// recognized header are dropped.
func ParseLessonSections(text string) LessonSections {
	type sectionRef struct {
		target *strings.Builder
		terms  []string
	}

	var intro, concepts, examples, exercises, summary, resources strings.Builder
	refs := []sectionRef{
		{&intro, []string{"introducción", "objetivos", "introduction"}},
		{&concepts, []string{"conceptos", "explicación", "teoría", "concepts"}},
		{&examples, []string{"ejemplo", "muestra", "examples"}},
		{&exercises, []string{"ejercicio", "práctica", "exercise"}},
		{&summary, []string{"resumen", "conclusión", "summary"}},
		{&resources, []string{"recursos", "recomendaciones", "resources"}},
	}

	var current *strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		matched := false
		for _, ref := range refs {
			if containsAny(lower, ref.terms...) {
				current = ref.target
				matched = true
				break
			}
		}

		if matched || current != nil {
			current.WriteString(line)
			current.WriteString("\n")
		}
	}

	return LessonSections{
		Introduction: strings.TrimSpace(intro.String()),
		Concepts:     strings.TrimSpace(concepts.String()),
		Examples:     strings.TrimSpace(examples.String()),
		Exercises:    strings.TrimSpace(exercises.String()),
		Summary:      strings.TrimSpace(summary.String()),
		Resources:    strings.TrimSpace(resources.String()),
	}
}

// ParseExercises splits exercise text into question/solution pairs. A new
// exercise opens at an "Ejercicio"/"Exercise" prefix or a numbered header;
// a "Solución"/"Respuesta" marker switches accumulation to the solution.
func ParseExercises(text string) []Exercise {
	var exercises []Exercise
	var current *Exercise
	inSolution := false

	flush := func() {
		if current != nil {
			current.Question = strings.TrimSpace(current.Question)
			current.Solution = strings.TrimSpace(current.Solution)
			exercises = append(exercises, *current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "Ejercicio") || strings.HasPrefix(line, "Exercise") || numberedHeader(line) {
			flush()
			current = &Exercise{Question: line}
			inSolution = false
			continue
		}
		if current == nil {
			continue
		}

		lower := strings.ToLower(line)
		if containsAny(lower, "solución", "solution", "respuesta") {
			inSolution = true
			continue
		}

		if inSolution {
			current.Solution += "\n" + line
		} else {
			current.Question += "\n" + line
		}
	}
	flush()

	return exercises
}

// ParseQuestions splits evaluation text into questions with options, correct
// answer and explanation.
func ParseQuestions(text string) []Question {
	var questions []Question
	var current *Question
	section := ""

	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(current.Text)
			current.CorrectAnswer = strings.TrimSpace(current.CorrectAnswer)
			current.Explanation = strings.TrimSpace(current.Explanation)
			questions = append(questions, *current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "Pregunta") || strings.HasPrefix(line, "Question") || numberedHeader(line) {
			flush()
			current = &Question{Text: line}
			section = "text"
			continue
		}
		if current == nil {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case optionLine(line):
			current.Options = append(current.Options, line)
			section = "options"
		case containsAny(lower, "respuesta", "answer"):
			section = "answer"
		case containsAny(lower, "explicación", "explanation"):
			section = "explanation"
		case section == "text" && len(current.Options) == 0:
			current.Text += "\n" + line
		case section == "answer":
			current.CorrectAnswer += line + " "
		case section == "explanation":
			current.Explanation += line + " "
		}
	}
	flush()

	return questions
}

// optionLine reports whether the line looks like a multiple-choice option:
// a letter followed by '.', ')' or ':'.
func optionLine(line string) bool {
	if len(line) < 2 {
		return false
	}
	c := line[0]
	isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	if !isLetter {
		return false
	}
	return line[1] == '.' || line[1] == ')' || line[1] == ':'
}

// ParseResources splits recommendation text into resources. A new resource
// opens at a bullet or numbered header; "Tipo:"/"Descripción:" markers fill
// the corresponding fields, other lines extend the description.
func ParseResources(text string) []RecommendedResource {
	var resources []RecommendedResource
	var current *RecommendedResource

	flush := func() {
		if current != nil {
			resources = append(resources, *current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		bullet := strings.HasPrefix(line, "- ") ||
			strings.HasPrefix(line, "* ") ||
			strings.HasPrefix(line, "• ")
		if bullet || numberedHeader(line) {
			flush()
			current = &RecommendedResource{
				Title: strings.TrimLeft(line, "- *•0123456789.): "),
			}
			continue
		}
		if current == nil {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "tipo:") || strings.Contains(lower, "type:"):
			current.Kind = strings.TrimSpace(splitAfterColon(line))
		case strings.Contains(lower, "descripción:") || strings.Contains(lower, "description:"):
			current.Description = strings.TrimSpace(splitAfterColon(line))
		case current.Kind == "":
			current.Kind = line
		default:
			current.Description = strings.TrimSpace(current.Description + " " + line)
		}
	}
	flush()

	return resources
}

func splitAfterColon(line string) string {
	if idx := strings.IndexByte(line, ':'); idx >= 0 {
		return line[idx+1:]
	}
	return line
}

// ParseProgressAnalysis extracts the labelled lines of a feedback response
// into strengths, improvement areas and recommendations.
func ParseProgressAnalysis(text string) ProgressAnalysis {
	analysis := ProgressAnalysis{FullFeedback: text}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Fortaleza") || strings.HasPrefix(line, "Punto fuerte"):
			analysis.Strengths = append(analysis.Strengths, line)
		case strings.HasPrefix(line, "Área") || strings.HasPrefix(line, "Areas") ||
			strings.HasPrefix(line, "Aspecto a mejorar"):
			analysis.AreasToImprove = append(analysis.AreasToImprove, line)
		case strings.HasPrefix(line, "Recomendación") || strings.HasPrefix(line, "Recomendamos") ||
			strings.HasPrefix(line, "Sugerencia"):
			analysis.Recommendations = append(analysis.Recommendations, line)
		}
	}

	return analysis
}
