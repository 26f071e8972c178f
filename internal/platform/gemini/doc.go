// Package gemini implements generation.Generator on top of Google's Gemini
// API via the genai client.
package gemini
