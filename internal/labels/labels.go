// Package labels holds the closed label sets the differential pass chooses
// from, and maps free-form model output back onto them.
package labels

import (
	"strings"
	"unicode"

	"github.com/arbovm/levenshtein"
	"github.com/codycollier/wer"
)

const (
	Healthy = "healthy skin"
	Unknown = "unknown"
)

// CosmeticSigns are the recognised cosmetic findings
var CosmeticSigns = []string{
	"dark circles",
	"puffiness",
	"under-eye wrinkles",
	"dark spots",
	"age spots",
	"hyperpigmentation",
	"acne",
	"blackheads",
	"whiteheads",
	"pustules",
	"papules",
	"cysts",
	"comedones",
	"fungal acne",
	"keratosis pilaris",
	"milia",
	"moles",
	"dermatosis papulosa nigra",
	"skin tags",
	"enlarged pores",
}

// SkinDiseases are the recognised clinical conditions
var SkinDiseases = []string{
	"impetigo",
	"cellulitis",
	"herpes simplex",
	"herpes zoster",
	"tinea corporis",
	"scabies",
	"molluscum contagiosum",
	"psoriasis",
	"atopic dermatitis",
	"seborrheic dermatitis",
	"lichen planus",
	"systemic lupus erythematosus",
	"dermatitis herpetiformis",
	"vitiligo",
	"melanoma",
	"basal cell carcinoma",
	"squamous cell carcinoma",
	"seborrheic keratosis",
	"acne vulgaris",
	"rosacea",
	"alopecia areata",
	"actinic keratosis",
	"keratosis pilaris",
	"urticaria",
}

var healthyPhrases = map[string]struct{}{
	"clear skin": {},
	"none":       {},
}

// healthyWords mark a description of unremarkable skin when no listed
// label is named alongside them
var healthyWords = map[string]struct{}{
	"healthy":       {},
	"normal":        {},
	"unremarkable":  {},
	"abnormality":   {},
	"abnormalities": {},
	"findings":      {},
	"finding":       {},
}

// negations disqualify an otherwise healthy-sounding name
var negations = map[string]struct{}{
	"not":       {},
	"abnormal":  {},
	"unhealthy": {},
}

// maxWordErrorRate is the word error rate below which a shortened
// multi-word name is taken to refer to a label
const maxWordErrorRate = 0.5

// Normalize maps a model-produced condition name onto a known label,
// Healthy, or Unknown.
func Normalize(name string) string {
	clean := clean(name)
	if clean == "" {
		return Unknown
	}
	if IsKnown(clean) {
		return clean
	}

	all := allLabels()
	if isHealthy(clean, all) {
		return Healthy
	}
	if label, ok := closestSpelling(clean, all); ok {
		return label
	}
	if label, ok := closestWords(clean, all); ok {
		return label
	}
	return Unknown
}

// IsKnown reports whether label is one of the recognised labels or Healthy
func IsKnown(label string) bool {
	if label == Healthy {
		return true
	}
	for _, l := range allLabels() {
		if l == label {
			return true
		}
	}
	return false
}

// isHealthy reports whether name describes skin without abnormality.
// "abnormality" and "findings" only count with "no" up to two words before.
func isHealthy(name string, labels []string) bool {
	if _, ok := healthyPhrases[name]; ok {
		return true
	}

	padded := " " + name + " "
	for _, label := range labels {
		if strings.Contains(padded, " "+label+" ") {
			return false
		}
	}

	words := strings.Fields(name)
	healthy := false
	for i, w := range words {
		if _, ok := negations[w]; ok {
			return false
		}
		if _, ok := healthyWords[w]; !ok {
			continue
		}
		switch w {
		case "healthy", "normal", "unremarkable":
			healthy = true
		default:
			if precededByNo(words, i) {
				healthy = true
			}
		}
	}
	return healthy
}

// precededByNo reports whether one of the two words before i is "no",
// as in "no abnormality" or "no significant findings"
func precededByNo(words []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		if words[j] == "no" {
			return true
		}
	}
	return false
}

func allLabels() []string {
	out := make([]string, 0, len(SkinDiseases)+len(CosmeticSigns))
	out = append(out, SkinDiseases...)
	return append(out, CosmeticSigns...)
}

// clean lowercases, drops punctuation other than hyphens and collapses
// whitespace
func clean(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// spellingTolerance scales the accepted edit distance with label length
func spellingTolerance(label string) int {
	switch n := len(label); {
	case n >= 10:
		return 2
	case n >= 5:
		return 1
	default:
		return 0
	}
}

func closestSpelling(name string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	for _, label := range candidates {
		d := levenshtein.Distance(name, label)
		if d > spellingTolerance(label) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = label, d
		}
	}
	return best, bestDist >= 0
}

// closestWords matches a shortened multi-word name, such as "systemic
// lupus", to the label it abbreviates. The name's words must appear in the
// label in order with none substituted, and the match must be unique.
func closestWords(name string, candidates []string) (string, bool) {
	words := strings.Fields(name)
	if len(words) < 2 {
		return "", false
	}
	best, bestRate, tied := "", maxWordErrorRate, false
	for _, label := range candidates {
		ref := strings.Fields(label)
		if len(ref) <= len(words) || !isSubsequence(words, ref) {
			continue
		}
		rate, _ := wer.WER(ref, words)
		switch {
		case rate < bestRate:
			best, bestRate, tied = label, rate, false
		case rate == bestRate && best != "":
			tied = true
		}
	}
	if tied {
		return "", false
	}
	return best, best != ""
}

// isSubsequence reports whether every word of sub occurs in words in order
func isSubsequence(sub, words []string) bool {
	i := 0
	for _, w := range words {
		if i < len(sub) && sub[i] == w {
			i++
		}
	}
	return i == len(sub)
}
