// Package generation produces educational content (lessons, exercises,
// evaluations, resource recommendations, progress analyses) through the
// platform's agents, and parses the model's free-form text into structured
// results. It also provides the task handler that the queue worker runs.
package generation
