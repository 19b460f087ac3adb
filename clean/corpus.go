package clean

import (
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mailclean"
	"golang.org/x/sync/errgroup"
)

const (
	// footerLines is how many trailing lines form a footer candidate.
	footerLines = 10

	// minFooterLen filters out short closings ("Best regards, X") that
	// would otherwise dominate the frequency counts.
	minFooterLen = 50
)

var footerWhitespaceRe = regexp.MustCompile(`\s+`)

// AnalyzeCorpus scans a corpus of raw payloads and returns the footers that
// recur in at least minOccurrences messages. Candidates are the last ten
// lines of each payload, whitespace-normalized before hashing; the
// lexicographically smallest raw footer per hash is kept as the
// representative.
//
// The per-payload extraction is a parallel map over a commutative reduce
// (count sum, min representative), so worker scheduling cannot change the
// result.
func AnalyzeCorpus(payloads []string, minOccurrences int) mailclean.SignatureCorpus {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(payloads) {
		workers = len(payloads)
	}
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	counts := make(map[uint64]int)
	reps := make(map[uint64]string)

	var g errgroup.Group
	chunk := (len(payloads) + workers - 1) / workers
	for start := 0; start < len(payloads); start += chunk {
		end := start + chunk
		if end > len(payloads) {
			end = len(payloads)
		}
		batch := payloads[start:end]

		g.Go(func() error {
			localCounts := make(map[uint64]int)
			localReps := make(map[uint64]string)
			for _, payload := range batch {
				footer, ok := extractFooter(payload)
				if !ok {
					continue
				}
				normalized := normalizeFooter(footer)
				if len(normalized) <= minFooterLen {
					continue
				}
				h := xxhash.Sum64String(normalized)
				localCounts[h]++
				if cur, ok := localReps[h]; !ok || footer < cur {
					localReps[h] = footer
				}
			}

			mu.Lock()
			defer mu.Unlock()
			for h, n := range localCounts {
				counts[h] += n
			}
			for h, f := range localReps {
				if cur, ok := reps[h]; !ok || f < cur {
					reps[h] = f
				}
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	var footers []string
	for h, n := range counts {
		if n >= minOccurrences {
			footers = append(footers, reps[h])
		}
	}
	sort.Strings(footers)

	return mailclean.NewSignatureCorpus(footers)
}

// extractFooter returns the last footerLines lines of a payload. Payloads
// with too few lines yield no candidate.
func extractFooter(payload string) (string, bool) {
	lines := strings.Split(payload, "\n")
	if len(lines) <= footerLines {
		return "", false
	}
	return strings.Join(lines[len(lines)-footerLines:], "\n"), true
}

// normalizeFooter collapses whitespace runs so formatting differences don't
// split the counts for the same footer text.
func normalizeFooter(footer string) string {
	return strings.TrimSpace(footerWhitespaceRe.ReplaceAllString(footer, " "))
}
