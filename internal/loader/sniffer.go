package loader

import (
	"strings"
)

// sniffBytes is the size of the file prefix inspected for delimiter detection.
const sniffBytes = 2048

// delimiterCandidates lists the separators considered during sniffing, in
// preference order for ties.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// DetectDelimiter inspects a sample of the file and returns the most likely
// field delimiter. A candidate qualifies when it appears at least once on
// every sampled line with the same per-line count; among qualifying
// candidates the one with the highest count wins. When nothing qualifies the
// comma fallback is returned.
func DetectDelimiter(sample string) rune {
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return ','
	}

	best := ','
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		count, consistent := consistentCount(lines, candidate)
		if consistent && count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// sampleLines splits the sniffed prefix into complete, non-empty lines. The
// final line is dropped when the prefix was truncated mid-line, so a cut-off
// row cannot skew the counts.
func sampleLines(sample string) []string {
	truncated := len(sample) >= sniffBytes && !strings.HasSuffix(sample, "\n")
	raw := strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n")
	if truncated && len(raw) > 1 {
		raw = raw[:len(raw)-1]
	}

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// consistentCount reports the per-line occurrence count of the candidate and
// whether that count is identical and non-zero across all lines.
func consistentCount(lines []string, candidate rune) (int, bool) {
	count := strings.Count(lines[0], string(candidate))
	if count == 0 {
		return 0, false
	}
	for _, line := range lines[1:] {
		if strings.Count(line, string(candidate)) != count {
			return 0, false
		}
	}
	return count, true
}
