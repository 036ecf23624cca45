package knowledge

import (
	"context"
	"sort"

	"dispatch-bot/internal/model"
	"dispatch-bot/pkg/qnamaker"
)

const (
	DefaultTop            = 1
	DefaultScoreThreshold = 0.3
)

// Options tune how candidates are requested and filtered.
type Options struct {
	Top            int
	ScoreThreshold float64 // 0..1
}

type qnaMakerAnswerer struct {
	client qnamaker.IQnAMaker
	opts   Options
}

// NewQnAMakerAnswerer adapts a QnA Maker client. Scores are normalized to
// 0..1, candidates below the threshold are dropped and the rest are sorted
// by descending score.
func NewQnAMakerAnswerer(client qnamaker.IQnAMaker, opts Options) Answerer {
	if opts.Top <= 0 {
		opts.Top = DefaultTop
	}
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = DefaultScoreThreshold
	}
	return &qnaMakerAnswerer{client: client, opts: opts}
}

func (a *qnaMakerAnswerer) GetAnswers(ctx context.Context, question string) ([]model.Answer, error) {
	resp, err := a.client.GenerateAnswer(ctx, qnamaker.GenerateAnswerRequest{
		Question:       question,
		Top:            a.opts.Top,
		ScoreThreshold: a.opts.ScoreThreshold * 100,
	})
	if err != nil {
		return nil, err
	}

	answers := make([]model.Answer, 0, len(resp.Answers))
	for _, qr := range resp.Answers {
		score := qr.Score / 100
		if score < a.opts.ScoreThreshold {
			continue
		}
		answers = append(answers, model.Answer{
			ID:       qr.ID,
			Text:     qr.Answer,
			Score:    score,
			Source:   qr.Source,
			Metadata: metadataMap(qr.Metadata),
		})
	}

	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].Score > answers[j].Score
	})

	return answers, nil
}

func metadataMap(md []qnamaker.Metadata) map[string]string {
	if len(md) == 0 {
		return nil
	}
	m := make(map[string]string, len(md))
	for _, kv := range md {
		m[kv.Name] = kv.Value
	}
	return m
}
