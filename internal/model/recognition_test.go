package model_test

import (
	"testing"

	"dispatch-bot/internal/model"
)

func TestTopIntent(t *testing.T) {
	tests := []struct {
		name    string
		intents []model.IntentScore
		want    model.IntentScore
	}{
		{
			name:    "empty result",
			intents: nil,
			want:    model.IntentScore{Intent: model.NoneIntent},
		},
		{
			name: "unique maximum",
			intents: []model.IntentScore{
				{Intent: "l_Weather", Score: 0.2},
				{Intent: "q_food-qna", Score: 0.91},
				{Intent: "None", Score: 0.05},
			},
			want: model.IntentScore{Intent: "q_food-qna", Score: 0.91},
		},
		{
			name: "tie goes to first declared",
			intents: []model.IntentScore{
				{Intent: "l_HomeAutomation", Score: 0.5},
				{Intent: "l_Weather", Score: 0.7},
				{Intent: "q_food-qna", Score: 0.7},
			},
			want: model.IntentScore{Intent: "l_Weather", Score: 0.7},
		},
		{
			name: "all zero keeps first",
			intents: []model.IntentScore{
				{Intent: "a", Score: 0},
				{Intent: "b", Score: 0},
			},
			want: model.IntentScore{Intent: "a", Score: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.RecognitionResult{Intents: tt.intents}.TopIntent()
			if got != tt.want {
				t.Errorf("TopIntent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScores(t *testing.T) {
	r := model.RecognitionResult{Intents: []model.IntentScore{
		{Intent: "l_Weather", Score: 0.4},
		{Intent: "l_Weather", Score: 0.9},
		{Intent: "None", Score: 0.1},
	}}

	scores := r.Scores()
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if scores["l_Weather"] != 0.4 {
		t.Errorf("duplicate intent should keep first score, got %v", scores["l_Weather"])
	}
}
