package generation

import "strings"

// DefaultMaxChunkChars bounds the size of a single chunk sent to the LLM.
const DefaultMaxChunkChars = 2000

// ChunkText splits text into chunks of at most maxChars characters, packing
// whole sentences greedily. Sentences are delimited by ". "; a sentence longer
// than maxChars becomes a chunk of its own rather than being split mid-way.
// Passing maxChars <= 0 uses DefaultMaxChunkChars.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := strings.Split(text, ". ")

	var chunks []string
	var current strings.Builder
	for _, sentence := range sentences {
		if current.Len()+len(sentence) < maxChars {
			current.WriteString(sentence)
			current.WriteString(". ")
			continue
		}
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
		current.WriteString(". ")
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}
