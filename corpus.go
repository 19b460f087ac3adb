package mailclean

// SignatureCorpus is an immutable set of footer texts that recur across a
// message corpus often enough to be considered boilerplate. It is built once
// by a batch analysis pass and threaded explicitly into callers that want to
// consult it; nothing in the per-message pipeline reads it implicitly.
type SignatureCorpus struct {
	footers []string
	index   map[string]struct{}
}

// NewSignatureCorpus creates a corpus from representative footer texts.
func NewSignatureCorpus(footers []string) SignatureCorpus {
	index := make(map[string]struct{}, len(footers))
	kept := make([]string, 0, len(footers))
	for _, f := range footers {
		if _, ok := index[f]; ok {
			continue
		}
		index[f] = struct{}{}
		kept = append(kept, f)
	}
	return SignatureCorpus{footers: kept, index: index}
}

// Size returns the number of distinct footers in the corpus.
func (c SignatureCorpus) Size() int {
	return len(c.footers)
}

// Contains reports whether footer is in the corpus.
func (c SignatureCorpus) Contains(footer string) bool {
	_, ok := c.index[footer]
	return ok
}

// Footers returns a copy of the corpus contents.
func (c SignatureCorpus) Footers() []string {
	out := make([]string, len(c.footers))
	copy(out, c.footers)
	return out
}
