package attempt

import "strings"

// answerEval is one recorded answer joined against the question relation.
// CorrectOption is nil when the referenced question no longer exists.
type answerEval struct {
	QuestionID     int64
	SelectedOption string
	CorrectOption  *string
}

// scoreAnswers counts case-insensitive matches between the stored selection
// and the ground-truth option. Answers whose question could not be joined are
// excluded from both the score and the total, not counted as wrong.
func scoreAnswers(evals []answerEval) (score, total int) {
	for _, ev := range evals {
		if ev.CorrectOption == nil {
			continue
		}
		total++
		if strings.EqualFold(strings.TrimSpace(ev.SelectedOption), strings.TrimSpace(*ev.CorrectOption)) {
			score++
		}
	}
	return score, total
}

// firstChar truncates a selection to its leading character; only a single
// letter is meaningful in storage.
func firstChar(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
