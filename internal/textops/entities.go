package textops

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/samestrin/text-ops/pkg/nlapi"
)

// Entity list renderings.
const (
	EntityFormatJSON = "json"
	EntityFormatYAML = "yaml"
)

// EntityFormats lists the accepted entity renderings.
func EntityFormats() []string {
	return []string{EntityFormatJSON, EntityFormatYAML}
}

// ErrUnsupportedEntityFormat is returned for an unknown entity rendering.
func ErrUnsupportedEntityFormat(format string) *Error {
	return &Error{
		Type:    ErrTypeConfiguration,
		Message: fmt.Sprintf("unsupported entity format: %s", format),
		Hint:    fmt.Sprintf("Use one of: %s.", strings.Join(EntityFormats(), ", ")),
	}
}

// EntityExtractor returns the entities the service recognizes in the input.
type EntityExtractor struct {
	client *nlapi.Client
	logger zerolog.Logger
	format string
}

// NewEntityExtractor renders entities as indented JSON. Use WithFormat for YAML.
func NewEntityExtractor(opts Options) *EntityExtractor {
	logIgnoredParam(opts, KindEntities)
	return &EntityExtractor{
		client: opts.Service.Client(),
		logger: opts.Logger,
		format: EntityFormatJSON,
	}
}

// WithFormat selects the rendering of the entity list.
func (e *EntityExtractor) WithFormat(format string) (*EntityExtractor, error) {
	switch format {
	case "", EntityFormatJSON:
		e.format = EntityFormatJSON
	case EntityFormatYAML:
		e.format = EntityFormatYAML
	default:
		return nil, ErrUnsupportedEntityFormat(format)
	}
	return e, nil
}

// Produce renders the entities recognized in input.
func (e *EntityExtractor) Produce(ctx context.Context, input string) (*Result, error) {
	e.logger.Debug().Str("endpoint", e.client.BaseURL).Str("format", e.format).Msg("extracting entities")

	var entities json.RawMessage
	err := remoteCall(KindEntities, e.logger, func() error {
		var err error
		entities, err = e.client.Entities(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	text, err := RenderEntities(entities, e.format)
	if err != nil {
		return nil, err
	}
	return &Result{
		Operation: KindEntities,
		Text:      text,
		Entities:  entities,
	}, nil
}

// RenderEntities serializes an entity list as indented, human-readable text.
func RenderEntities(entities json.RawMessage, format string) (string, error) {
	switch format {
	case "", EntityFormatJSON:
		text, err := nlapi.IndentJSON(entities)
		if err != nil {
			return "", fmt.Errorf("failed to render entities: %w", err)
		}
		return text, nil
	case EntityFormatYAML:
		out, err := yaml.JSONToYAML(entities)
		if err != nil {
			return "", fmt.Errorf("failed to render entities: %w", err)
		}
		return strings.TrimRight(string(out), "\n"), nil
	default:
		return "", ErrUnsupportedEntityFormat(format)
	}
}
