package docchunk

// EstimateTokens approximates the token count of text as one token per
// four bytes, with a minimum of one. This is deliberately not a real
// tokenizer: the estimate only bounds passage size and must stay stable
// across runs so that output remains comparable.
func EstimateTokens(s string) int {
	n := len(s) / 4
	if n < 1 {
		return 1
	}
	return n
}
