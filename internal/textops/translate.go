package textops

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samestrin/text-ops/internal/language"
	"github.com/samestrin/text-ops/pkg/nlapi"
)

// SourceLanguage is the fixed language of translated input.
const SourceLanguage = "en"

// Translator translates input from English into a destination language.
type Translator struct {
	client  *nlapi.Client
	modelID string
	logger  zerolog.Logger
}

// NewTranslator builds a translator whose destination language is opts.Param.
// An empty or malformed destination is sent as-is and left to the service to reject.
func NewTranslator(opts Options) *Translator {
	return &Translator{
		client:  opts.Service.Client(),
		modelID: nlapi.ModelID(SourceLanguage, language.TargetCode(opts.Param)),
		logger:  opts.Logger,
	}
}

// ModelID returns the model pairing the translator requests.
func (t *Translator) ModelID() string {
	return t.modelID
}

// Produce returns the first translation candidate verbatim.
func (t *Translator) Produce(ctx context.Context, input string) (*Result, error) {
	t.logger.Debug().Str("model_id", t.modelID).Str("endpoint", t.client.BaseURL).Msg("translating")

	var translation string
	err := remoteCall(KindTranslate, t.logger, func() error {
		var err error
		translation, err = t.client.Translate(ctx, input, t.modelID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Operation:   KindTranslate,
		Text:        translation,
		ModelID:     t.modelID,
		Translation: translation,
	}, nil
}
