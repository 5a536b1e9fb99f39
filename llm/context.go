package llm

// EstimateTokens gives a rough token count for logging.
func EstimateTokens(text string) int {
	// Rough estimation: ~4 characters per token
	return len(text) / 4
}
