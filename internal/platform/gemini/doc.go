// Package gemini implements the agents.ModelClient interface on top of
// Google's Gemini API, adding retry with exponential backoff for transient
// failures.
package gemini
