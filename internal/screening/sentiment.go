package screening

import "strings"

// Small fixed lexicon. The estimate is only reported alongside the closing
// summary and never drives a transition.
var (
	positiveWords = map[string]struct{}{
		"good": {}, "great": {}, "awesome": {}, "excellent": {}, "nice": {},
		"happy": {}, "love": {}, "thanks": {}, "thank": {}, "wonderful": {},
		"perfect": {}, "excited": {}, "glad": {}, "cool": {}, "amazing": {},
	}
	negativeWords = map[string]struct{}{
		"bad": {}, "terrible": {}, "awful": {}, "sad": {}, "angry": {},
		"hate": {}, "annoyed": {}, "frustrated": {}, "boring": {}, "worst": {},
		"poor": {}, "disappointed": {}, "upset": {},
	}
)

// Sentiment returns a polarity in [-1, 1] and a coarse mood label for the
// provided text.
func Sentiment(text string) (float64, string) {
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:'\"")
		if _, ok := positiveWords[word]; ok {
			pos++
		}
		if _, ok := negativeWords[word]; ok {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return 0, "neutral"
	}

	polarity := float64(pos-neg) / float64(total)
	switch {
	case polarity > 0.2:
		return polarity, "positive"
	case polarity < -0.2:
		return polarity, "negative"
	default:
		return polarity, "neutral"
	}
}
