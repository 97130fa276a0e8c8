package quiz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"

	"wordbank-backend/internal/models"
)

func card(word, meaning string) models.Flashcard {
	return models.Flashcard{ID: uuid.New(), Word: word, Meaning: meaning}
}

func TestBuildTypedSourceToTarget(t *testing.T) {
	c := card("cat", "con mèo")
	q := Build(c, nil, ModeTypedSourceToTarget, rand.New(rand.NewSource(1)))

	if q.Type != models.QuestionTypeTyped {
		t.Errorf("type = %q, want typed", q.Type)
	}
	if q.Prompt != "con mèo" {
		t.Errorf("prompt = %q, want meaning", q.Prompt)
	}
	if q.Answer != "cat" {
		t.Errorf("answer = %q, want word", q.Answer)
	}
	if q.Options != nil {
		t.Errorf("typed question should carry no options")
	}
}

func TestBuildTypedTargetToSource(t *testing.T) {
	c := card("cat", "con mèo")
	q := Build(c, nil, ModeTypedTargetToSource, rand.New(rand.NewSource(1)))

	if q.Prompt != "cat" || q.Answer != "con mèo" {
		t.Errorf("got prompt=%q answer=%q, want word prompt / meaning answer", q.Prompt, q.Answer)
	}
}

func TestBuildMultipleChoice(t *testing.T) {
	c := card("cat", "con mèo")
	pool := []models.Flashcard{
		c,
		card("dog", "con chó"),
		card("fish", "con cá"),
		card("bird", "con chim"),
		card("horse", "con ngựa"),
	}

	for seed := int64(0); seed < 20; seed++ {
		q := Build(c, pool, ModeMultipleChoice, rand.New(rand.NewSource(seed)))

		if q.Answer != "" {
			t.Fatalf("mc question must not expose the answer, got %q", q.Answer)
		}
		if len(q.Options) != OptionCount {
			t.Fatalf("got %d options, want %d", len(q.Options), OptionCount)
		}

		correct := 0
		seen := map[string]bool{}
		for _, o := range q.Options {
			if o == "cat" {
				correct++
			}
			if seen[o] {
				t.Fatalf("duplicate option %q in %v", o, q.Options)
			}
			seen[o] = true
		}
		if correct != 1 {
			t.Fatalf("correct word appears %d times in %v, want exactly once", correct, q.Options)
		}
	}
}

func TestBuildMultipleChoiceSmallPool(t *testing.T) {
	c := card("cat", "con mèo")
	pool := []models.Flashcard{c, card("dog", "con chó")}

	q := Build(c, pool, ModeMultipleChoice, rand.New(rand.NewSource(7)))
	if len(q.Options) != 2 {
		t.Errorf("got %d options, want 2 when only one distractor exists", len(q.Options))
	}
}

func TestBuildMultipleChoiceCaseInsensitiveDistractors(t *testing.T) {
	c := card("cat", "con mèo")
	pool := []models.Flashcard{c, card("CAT", "con mèo (hoa)"), card("dog", "con chó")}

	q := Build(c, pool, ModeMultipleChoice, rand.New(rand.NewSource(3)))
	for _, o := range q.Options {
		if o != "cat" && strings.EqualFold(o, "cat") {
			t.Errorf("distractor %q equals the correct word case-insensitively", o)
		}
	}
}

func TestGradeTyped(t *testing.T) {
	c := card("cat", "con mèo")

	tests := []struct {
		name      string
		mode      Mode
		submitted string
		want      bool
	}{
		{"exact", ModeTypedSourceToTarget, "cat", true},
		{"case insensitive", ModeTypedSourceToTarget, "CaT", true},
		{"surrounding whitespace", ModeTypedSourceToTarget, "  cat \n", true},
		{"wrong word", ModeTypedSourceToTarget, "dog", false},
		{"empty", ModeTypedSourceToTarget, "", false},
		{"reverse direction", ModeTypedTargetToSource, "con mèo", true},
		{"reverse wrong", ModeTypedTargetToSource, "con chó", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Grade(c, tc.mode, tc.submitted); got != tc.want {
				t.Errorf("Grade(%q) = %v, want %v", tc.submitted, got, tc.want)
			}
		})
	}
}

func TestGradeMultipleChoiceIsExact(t *testing.T) {
	c := card("cat", "con mèo")

	if !Grade(c, ModeMultipleChoice, "cat") {
		t.Errorf("verbatim option should grade correct")
	}
	// Options are rendered verbatim, so a case mismatch is another option.
	if Grade(c, ModeMultipleChoice, "CAT") {
		t.Errorf("mc grading must be case-sensitive")
	}
}

func TestParseMode(t *testing.T) {
	if _, ok := ParseMode("multiple_choice"); !ok {
		t.Errorf("multiple_choice should parse")
	}
	if _, ok := ParseMode("freestyle"); ok {
		t.Errorf("unknown mode should not parse")
	}
}
