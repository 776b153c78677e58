// Package textops dispatches text to one of the hosted natural-language
// operations: translation, sentiment analysis and entity extraction.
package textops

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/samestrin/text-ops/pkg/nlapi"
)

// Kind names an operation.
type Kind string

const (
	KindTranslate Kind = "translate"
	KindSentiment Kind = "sentiment_analysis"
	KindEntities  Kind = "entity_extraction"
)

// Kinds returns the supported operation kinds in display order.
func Kinds() []Kind {
	return []Kind{KindTranslate, KindSentiment, KindEntities}
}

// KindNames returns Kinds as strings.
func KindNames() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// ParseKind matches raw exactly against the supported kinds.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(raw)
	if _, ok := constructors[kind]; !ok {
		return "", ErrUnsupportedKind(raw)
	}
	return kind, nil
}

// Operation produces output from input text with a single remote call.
type Operation interface {
	Produce(ctx context.Context, input string) (*Result, error)
}

// Result is the outcome of one operation. Text is what gets printed in the
// default output mode; the other fields back structured output.
type Result struct {
	Operation   Kind            `json:"operation"`
	Text        string          `json:"-"`
	ModelID     string          `json:"model_id,omitempty"`
	Translation string          `json:"translation,omitempty"`
	Score       *float64        `json:"score,omitempty"`
	Label       string          `json:"label,omitempty"`
	Entities    json.RawMessage `json:"entities,omitempty"`
}

// String returns the display text.
func (r *Result) String() string {
	return r.Text
}

// ServiceConfig is the credential and endpoint for one hosted service.
type ServiceConfig struct {
	APIKey  string
	URL     string
	Version string
	Timeout time.Duration
}

// Client builds an API client for the service.
func (s ServiceConfig) Client() *nlapi.Client {
	return nlapi.NewClient(s.APIKey, s.URL, s.Version, s.Timeout)
}

// Options carries what every operation constructor receives.
type Options struct {
	Service ServiceConfig
	Param   string
	Logger  zerolog.Logger
}

type constructor func(Options) Operation

var constructors = map[Kind]constructor{
	KindTranslate: func(o Options) Operation { return NewTranslator(o) },
	KindSentiment: func(o Options) Operation { return NewSentimentAnalyzer(o) },
	KindEntities:  func(o Options) Operation { return NewEntityExtractor(o) },
}

// New constructs the operation for kind.
func New(kind Kind, opts Options) (Operation, error) {
	build, ok := constructors[kind]
	if !ok {
		return nil, ErrUnsupportedKind(string(kind))
	}
	return build(opts), nil
}

// remoteCall runs fn, logging its duration and wrapping failures.
func remoteCall(kind Kind, logger zerolog.Logger, fn func() error) error {
	started := time.Now()
	err := fn()
	event := logger.Debug()
	if err != nil {
		event = event.Err(err)
	}
	event.Str("operation", string(kind)).
		Dur("elapsed", time.Since(started)).
		Msg("remote call finished")
	if err != nil {
		return ErrRemoteCall(kind, err)
	}
	return nil
}
