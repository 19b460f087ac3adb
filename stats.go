package mailclean

import "math"

// bytesPerToken is the fixed divisor for approximate token estimates.
// Conservative for mixed CJK/English content, where a token is roughly two
// bytes of UTF-8.
const bytesPerToken = 2

// BatchStats accumulates cleaning statistics across a batch of messages.
type BatchStats struct {
	Messages      int   `json:"messages"`
	OriginalBytes int64 `json:"original_bytes"`
	CleanBytes    int64 `json:"clean_bytes"`
}

// Add folds a single message's stats into the batch.
func (b *BatchStats) Add(s Stats) {
	b.Messages++
	b.OriginalBytes += int64(s.OriginalBytes)
	b.CleanBytes += int64(s.CleanBytes)
}

// ReductionPercent returns the overall byte reduction, rounded to two
// decimals. Zero when nothing was processed.
func (b *BatchStats) ReductionPercent() float64 {
	if b.OriginalBytes == 0 {
		return 0
	}
	r := float64(b.OriginalBytes-b.CleanBytes) / float64(b.OriginalBytes) * 100
	return math.Round(r*100) / 100
}

// EstimatedTokensSaved returns the approximate number of tokens saved by
// cleaning, using the fixed bytes-per-token divisor.
func (b *BatchStats) EstimatedTokensSaved() int64 {
	return b.OriginalBytes/bytesPerToken - b.CleanBytes/bytesPerToken
}

// EstimatedOriginalTokens returns the approximate token count of the raw batch.
func (b *BatchStats) EstimatedOriginalTokens() int64 {
	return b.OriginalBytes / bytesPerToken
}

// EstimatedCleanTokens returns the approximate token count of the cleaned batch.
func (b *BatchStats) EstimatedCleanTokens() int64 {
	return b.CleanBytes / bytesPerToken
}
