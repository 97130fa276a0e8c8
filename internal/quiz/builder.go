package quiz

import (
	"math/rand"
	"strings"

	"wordbank-backend/internal/models"
)

// Mode selects how a card is quizzed.
type Mode string

const (
	ModeTypedSourceToTarget Mode = "typed_source_to_target" // prompt = meaning, answer = word
	ModeTypedTargetToSource Mode = "typed_target_to_source" // prompt = word, answer = meaning
	ModeMultipleChoice      Mode = "multiple_choice"
)

// OptionCount is the multiple-choice option count: the correct word plus up to
// three distractors. The distractor pool is the rest of the session queue;
// smaller pools just yield fewer options.
const OptionCount = 4

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeTypedSourceToTarget, ModeTypedTargetToSource, ModeMultipleChoice:
		return Mode(s), true
	}
	return "", false
}

// Build renders one card as a client-facing question. pool supplies distractor
// candidates for multiple choice; the card itself is skipped. The answer field
// is only populated for typed modes.
func Build(card models.Flashcard, pool []models.Flashcard, mode Mode, rng *rand.Rand) models.Question {
	q := models.Question{
		ID:          card.ID,
		Definitions: card.Definitions,
		ImageURL:    card.ImageURL,
		AudioURL:    card.AudioURL,
		Phonetic:    card.Phonetic,
	}

	switch mode {
	case ModeTypedTargetToSource:
		q.Type = models.QuestionTypeTyped
		q.Prompt = card.Word
		q.Answer = card.Meaning
	case ModeMultipleChoice:
		q.Type = models.QuestionTypeMC
		q.Prompt = card.Meaning
		q.Options = buildOptions(card, pool, rng)
	default: // ModeTypedSourceToTarget
		q.Type = models.QuestionTypeTyped
		q.Prompt = card.Meaning
		q.Answer = card.Word
	}

	return q
}

func buildOptions(card models.Flashcard, pool []models.Flashcard, rng *rand.Rand) []string {
	options := []string{card.Word}
	seen := map[string]bool{strings.ToLower(card.Word): true}

	candidates := make([]string, 0, len(pool))
	for _, other := range pool {
		if other.ID == card.ID {
			continue
		}
		key := strings.ToLower(other.Word)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, other.Word)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, w := range candidates {
		if len(options) == OptionCount {
			break
		}
		options = append(options, w)
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}

// ExpectedAnswer returns the canonical correct answer for a card in a mode.
func ExpectedAnswer(card models.Flashcard, mode Mode) string {
	if mode == ModeTypedTargetToSource {
		return card.Meaning
	}
	return card.Word
}

// Grade compares a submitted value against the card. Typed answers are trimmed
// and compared case-insensitively; multiple-choice options are rendered
// verbatim, so the selected option must match the word exactly.
func Grade(card models.Flashcard, mode Mode, submitted string) bool {
	if mode == ModeMultipleChoice {
		return submitted == card.Word
	}
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(ExpectedAnswer(card, mode)))
}
