package attempt

import "testing"

func strPtr(s string) *string { return &s }

func TestScoreAnswers(t *testing.T) {
	tests := []struct {
		name      string
		evals     []answerEval
		wantScore int
		wantTotal int
	}{
		{
			name:      "no answers",
			evals:     nil,
			wantScore: 0,
			wantTotal: 0,
		},
		{
			name: "one right one wrong",
			evals: []answerEval{
				{QuestionID: 1, SelectedOption: "A", CorrectOption: strPtr("A")},
				{QuestionID: 2, SelectedOption: "B", CorrectOption: strPtr("C")},
			},
			wantScore: 1,
			wantTotal: 2,
		},
		{
			name: "case insensitive match",
			evals: []answerEval{
				{QuestionID: 1, SelectedOption: "b", CorrectOption: strPtr("B")},
				{QuestionID: 2, SelectedOption: "D", CorrectOption: strPtr("d")},
			},
			wantScore: 2,
			wantTotal: 2,
		},
		{
			name: "missing question excluded from score and total",
			evals: []answerEval{
				{QuestionID: 1, SelectedOption: "A", CorrectOption: strPtr("A")},
				{QuestionID: 99, SelectedOption: "A", CorrectOption: nil},
			},
			wantScore: 1,
			wantTotal: 1,
		},
		{
			name: "garbage option letter is just wrong",
			evals: []answerEval{
				{QuestionID: 1, SelectedOption: "z", CorrectOption: strPtr("A")},
			},
			wantScore: 0,
			wantTotal: 1,
		},
		{
			name: "padded storage char column still matches",
			evals: []answerEval{
				{QuestionID: 1, SelectedOption: "a ", CorrectOption: strPtr("A")},
			},
			wantScore: 1,
			wantTotal: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, total := scoreAnswers(tc.evals)
			if score != tc.wantScore || total != tc.wantTotal {
				t.Fatalf("scoreAnswers = (%d, %d), want (%d, %d)", score, total, tc.wantScore, tc.wantTotal)
			}
		})
	}
}

func TestFirstChar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"D", "D"},
		{"BC", "B"},
		{"b", "b"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := firstChar(tc.in); got != tc.want {
			t.Fatalf("firstChar(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
