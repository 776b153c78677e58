package textops

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samestrin/text-ops/pkg/nlapi"
)

// SentimentAnalyzer reports document-level sentiment.
type SentimentAnalyzer struct {
	client *nlapi.Client
	logger zerolog.Logger
}

// NewSentimentAnalyzer builds an analyzer; opts.Param is ignored.
func NewSentimentAnalyzer(opts Options) *SentimentAnalyzer {
	logIgnoredParam(opts, KindSentiment)
	return &SentimentAnalyzer{client: opts.Service.Client(), logger: opts.Logger}
}

// Produce formats the document score and label of input.
func (s *SentimentAnalyzer) Produce(ctx context.Context, input string) (*Result, error) {
	s.logger.Debug().Str("endpoint", s.client.BaseURL).Msg("analyzing sentiment")

	var sentiment *nlapi.DocumentSentiment
	err := remoteCall(KindSentiment, s.logger, func() error {
		var err error
		sentiment, err = s.client.Sentiment(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	score := sentiment.Score
	return &Result{
		Operation: KindSentiment,
		Text:      FormatSentiment(score, sentiment.Label),
		Score:     &score,
		Label:     sentiment.Label,
	}, nil
}

// FormatSentiment renders a score with exactly five decimals next to its label.
func FormatSentiment(score float64, label string) string {
	return fmt.Sprintf("score: %.5f | label: %s", score, label)
}

// logIgnoredParam notes a parameter given to an operation that takes none.
func logIgnoredParam(opts Options, kind Kind) {
	if opts.Param != "" {
		opts.Logger.Debug().Str("operation", string(kind)).Str("param", opts.Param).Msg("ignoring operation parameter")
	}
}
