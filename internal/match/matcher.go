package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

// numberRegex extracts sequence numbers ("Part 2", "Season 3") from cleaned titles.
var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence is the confidence level of a title match.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ParseConfidence parses "none", "low", "medium" or "high".
func ParseConfidence(s string) (Confidence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ConfidenceNone, nil
	case "low":
		return ConfidenceLow, nil
	case "medium", "":
		return ConfidenceMedium, nil
	case "high":
		return ConfidenceHigh, nil
	}
	return ConfidenceNone, fmt.Errorf("unknown confidence %q", s)
}

// Result is the outcome of matching a title against candidates.
type Result struct {
	Title      string  // best candidate; empty when Confidence is none
	Score      float64 // Jaro-Winkler similarity (0.0-1.0) after number adjustment
	Confidence Confidence
}

// Title finds the best match for title among candidates.
// Jaro-Winkler favors shared prefixes, which suits series titles that differ
// only in a trailing subtitle. Matching sequence numbers earn a bonus and
// mismatched ones a penalty, so "Part 2" does not link to "Part 3".
func Title(title string, candidates []string) Result {
	if len(candidates) == 0 {
		return Result{Confidence: ConfidenceNone}
	}

	cleaned := CleanTitle(title)
	numbers := numberRegex.FindAllString(cleaned, -1)

	var best Result
	for _, candidate := range candidates {
		other := CleanTitle(candidate)
		if cleaned == "" || other == "" {
			continue
		}
		score := float64(edlib.JaroWinklerSimilarity(cleaned, other))
		score = adjustForNumbers(score, numbers, numberRegex.FindAllString(other, -1))
		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	best.Confidence = confidenceFor(best.Score)
	if best.Confidence == ConfidenceNone {
		best.Title = ""
	}
	return best
}

// Best matches every title in titles against candidates and keeps the
// strongest result.
func Best(titles, candidates []string) Result {
	var best Result
	for _, t := range titles {
		if r := Title(t, candidates); r.Score > best.Score {
			best = r
		}
	}
	return best
}

func confidenceFor(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

func adjustForNumbers(score float64, titleNums, candidateNums []string) float64 {
	if len(titleNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range titleNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
