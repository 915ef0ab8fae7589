package generation

// LessonSections is a lesson split into its canonical parts. Sections the
// model did not produce are left empty.
type LessonSections struct {
	Introduction string `json:"introduction"`
	Concepts     string `json:"concepts"`
	Examples     string `json:"examples"`
	Exercises    string `json:"exercises"`
	Summary      string `json:"summary"`
	Resources    string `json:"resources"`
}

// Lesson is a complete generated lesson.
type Lesson struct {
	Subject       string         `json:"subject"`
	Topic         string         `json:"topic"`
	Level         string         `json:"level"`
	LearningStyle string         `json:"learning_style,omitempty"`
	Content       string         `json:"content"`
	Sections      LessonSections `json:"sections"`
}

// Exercise is one practice problem with its worked solution.
type Exercise struct {
	Question string `json:"question"`
	Solution string `json:"solution"`
}

// ExerciseSet is a batch of generated practice exercises.
type ExerciseSet struct {
	Subject    string     `json:"subject"`
	Topic      string     `json:"topic"`
	Level      string     `json:"level"`
	Exercises  []Exercise `json:"exercises"`
	RawContent string     `json:"raw_content"`
}

// Question is one evaluation question. Options is empty for open questions.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Evaluation is a generated graded assessment.
type Evaluation struct {
	Subject    string     `json:"subject"`
	Topics     []string   `json:"topics"`
	Level      string     `json:"level"`
	Questions  []Question `json:"questions"`
	RawContent string     `json:"raw_content"`
}

// RecommendedResource is one suggested study material.
type RecommendedResource struct {
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// ResourceList is a batch of recommended study materials.
type ResourceList struct {
	Subject    string                `json:"subject"`
	Topic      string                `json:"topic"`
	Level      string                `json:"level"`
	Resources  []RecommendedResource `json:"resources"`
	RawContent string                `json:"raw_content"`
}

// ProgressAnalysis is structured feedback on a student's performance.
type ProgressAnalysis struct {
	FullFeedback    string   `json:"full_feedback"`
	Strengths       []string `json:"strengths"`
	AreasToImprove  []string `json:"areas_improvement"`
	Recommendations []string `json:"recommendations"`
}
