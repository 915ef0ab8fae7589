// Package agents implements the specialized teaching agents of the platform.
//
// Each agent is a persona over the shared language model: a coordinator that
// routes queries, subject specialists (mathematics, science, language,
// history), a progress analyst and a content recommender. Queries are routed
// to a specialist by keyword heuristics over the coordinator's assessment.
package agents
