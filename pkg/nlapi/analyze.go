package nlapi

import (
	"context"
	"encoding/json"
)

// AnalyzePath is the language-understanding endpoint relative to the service URL.
const AnalyzePath = "/v1/analyze"

// SentimentOptions enables document-level sentiment.
type SentimentOptions struct{}

// EntitiesOptions enables entity recognition.
type EntitiesOptions struct{}

// Features selects what the analyze call computes.
type Features struct {
	Sentiment *SentimentOptions `json:"sentiment,omitempty"`
	Entities  *EntitiesOptions  `json:"entities,omitempty"`
}

// AnalyzeRequest is the body of an analyze call.
type AnalyzeRequest struct {
	Text     string   `json:"text"`
	Features Features `json:"features"`
}

// DocumentSentiment is the document-level sentiment of a text.
type DocumentSentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// Sentiment requests document-level sentiment for text.
func (c *Client) Sentiment(ctx context.Context, text string) (*DocumentSentiment, error) {
	doc, err := c.Post(ctx, AnalyzePath, AnalyzeRequest{
		Text:     text,
		Features: Features{Sentiment: &SentimentOptions{}},
	})
	if err != nil {
		return nil, err
	}

	score, err := Field(doc, "sentiment.document.score")
	if err != nil {
		return nil, err
	}
	label, err := Field(doc, "sentiment.document.label")
	if err != nil {
		return nil, err
	}
	return &DocumentSentiment{Score: score.Float(), Label: label.String()}, nil
}

// Entities requests entity recognition for text and returns the entity list
// exactly as the service sent it.
func (c *Client) Entities(ctx context.Context, text string) (json.RawMessage, error) {
	doc, err := c.Post(ctx, AnalyzePath, AnalyzeRequest{
		Text:     text,
		Features: Features{Entities: &EntitiesOptions{}},
	})
	if err != nil {
		return nil, err
	}

	entities, err := Field(doc, "entities")
	if err != nil {
		return nil, err
	}
	if !entities.IsArray() {
		return nil, &MissingFieldError{Path: "entities"}
	}
	return json.RawMessage(entities.Raw), nil
}
