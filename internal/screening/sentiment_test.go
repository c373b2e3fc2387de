package screening

import "testing"

func TestSentiment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		mood string
	}{
		{
			name: "positive words",
			text: "this was great, thanks!",
			mood: "positive",
		},
		{
			name: "negative words",
			text: "that was a terrible and boring process",
			mood: "negative",
		},
		{
			name: "no lexicon hits",
			text: "my name is John",
			mood: "neutral",
		},
		{
			name: "mixed words cancel out",
			text: "good parts and bad parts",
			mood: "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			polarity, mood := Sentiment(tt.text)
			if mood != tt.mood {
				t.Fatalf("expected mood %q, got %q (polarity %.2f)", tt.mood, mood, polarity)
			}
			if polarity < -1 || polarity > 1 {
				t.Fatalf("polarity out of range: %f", polarity)
			}
		})
	}
}
