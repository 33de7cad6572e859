package analyze

import (
	"reflect"
	"testing"

	"github.com/outlinehq/pagesum/internal/segment"
)

func mkSentence(idx, words int, text string) segment.Sentence {
	return segment.Sentence{Text: text, Index: idx, WordCount: words}
}

func scoreOf(t *testing.T, ranked []segment.Sentence, idx int) float64 {
	t.Helper()
	for _, s := range ranked {
		if s.Index == idx {
			return s.Score
		}
	}
	t.Fatalf("no sentence with Index %d in %+v", idx, ranked)
	return 0
}

func TestRank_PositionBonus(t *testing.T) {
	// Ten filler sentences, identical except for position. The first and last
	// land in the positional bands and must outrank the middle.
	sentences := make([]segment.Sentence, 10)
	for i := range sentences {
		sentences[i] = mkSentence(i, 12, "Filler text without signals of any other kind whatsoever here today.")
	}
	ranked := Rank(sentences, "")

	if ranked[0].Index != 0 {
		t.Errorf("top sentence has Index %d, want 0", ranked[0].Index)
	}
	if edge, mid := scoreOf(t, ranked, 0), scoreOf(t, ranked, 5); edge <= mid {
		t.Errorf("edge score %.1f not above middle score %.1f", edge, mid)
	}
}

func TestRank_ImportanceAndNumbers(t *testing.T) {
	sentences := []segment.Sentence{
		mkSentence(0, 12, "Plain opening sentence with nothing special about it at all."),
		{Text: "The key result was a 40 percent drop in latency.", Index: 1, WordCount: 11, HasNumbers: true, HasImportantWords: true},
		mkSentence(2, 12, "Another plain sentence with nothing special about it either."),
	}
	ranked := Rank(sentences, "")
	// +3 length, +4 importance, +2 numbers; middle position adds nothing.
	if got := scoreOf(t, ranked, 1); got != 9 {
		t.Errorf("importance sentence Score = %.1f, want 9", got)
	}
	if got := scoreOf(t, ranked, 2); got != 3 {
		t.Errorf("plain middle sentence Score = %.1f, want 3", got)
	}
}

func TestRank_TitleOverlap(t *testing.T) {
	sentences := []segment.Sentence{
		mkSentence(0, 12, "Unrelated filler prose without a single heading word inside."),
		mkSentence(1, 12, "The compaction strategy changed between releases for several stated reasons."),
		mkSentence(2, 12, "More unrelated filler prose without a single heading word."),
	}
	withTitle := Rank(sentences, "Compaction Strategy Notes")
	withoutTitle := Rank(sentences, "")
	// "compaction" and "strategy" each add 2 on top of the length bonus.
	if got := scoreOf(t, withTitle, 1); got != 7 {
		t.Errorf("Score with title = %.1f, want 7", got)
	}
	if got := scoreOf(t, withoutTitle, 1); got != 3 {
		t.Errorf("Score without title = %.1f, want 3", got)
	}
}

func TestRank_TransitionBonus(t *testing.T) {
	sentences := []segment.Sentence{
		mkSentence(0, 12, "The cache rebuild finished ahead of schedule this quarter somehow."),
		mkSentence(1, 12, "However, the cache rebuild finished ahead of schedule this quarter."),
	}
	ranked := Rank(sentences, "")
	if got := scoreOf(t, ranked, 1); got != 5 {
		t.Errorf("transition sentence Score = %.1f, want 5", got)
	}
}

func TestRank_NearTiesKeepDocumentOrder(t *testing.T) {
	// The four interior sentences score identically, so they must come back
	// in document order behind the opening sentence.
	sentences := make([]segment.Sentence, 5)
	for i := range sentences {
		sentences[i] = mkSentence(i, 12, "Interior filler text without signals of any other kind whatsoever.")
	}
	ranked := Rank(sentences, "")
	got := make([]int, len(ranked))
	for i, s := range ranked {
		got[i] = s.Index
	}
	if !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v, want [0 1 2 3 4]", got)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	sentences := []segment.Sentence{
		mkSentence(0, 12, "Opening sentence that would collect the positional bonuses."),
		mkSentence(1, 12, "Closing sentence left exactly where the document put it."),
	}
	_ = Rank(sentences, "")
	if sentences[0].Score != 0 || sentences[1].Score != 0 {
		t.Error("Rank wrote scores into the caller's slice")
	}
	if sentences[1].Index != 1 {
		t.Error("Rank reordered the caller's slice")
	}
}
