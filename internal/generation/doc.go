// Package generation defines the boundary between the application core and
// the external LLM used to turn uploaded text into flashcards. The Generator
// interface abstracts the Gemini integration so the task pipeline never
// couples to a specific provider.
package generation
