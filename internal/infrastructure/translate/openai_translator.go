package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"setu/internal/bootstrap/config"
	"setu/internal/bootstrap/logging"
	"setu/internal/domain/commerce"
	"setu/internal/errs"
	"setu/internal/ports"
)

const systemPrompt = `You turn a farmer's spoken product description into a JSON listing.
Reply with a single JSON object and nothing else, using exactly these keys:
descriptor (string), crop (string), quantity (number), unit (string),
price (number, per unit), currency (ISO code string), tags (array of strings).
The transcript may be in Hindi, Marathi, Tamil, Kannada or English; always
answer with English field values. Use "INR" when the price is in rupees.`

// OpenAITranslator maps transcripts to listings through a hosted chat
// completion. It reports ports.ErrTranslatorUnavailable for every failure
// mode so the caller can drop to the fallback parser.
type OpenAITranslator struct {
	client openai.Client
	model  string
}

var _ ports.Translator = (*OpenAITranslator)(nil)

func NewOpenAITranslator(cfg config.TranslatorConfig) (*OpenAITranslator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: api key is not configured", ports.ErrTranslatorUnavailable)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}

	return &OpenAITranslator{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (t *OpenAITranslator) Translate(ctx context.Context, req ports.TranslationRequest) (commerce.Listing, error) {
	if ctx == nil {
		return commerce.Listing{}, errors.New("context is required")
	}

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		return commerce.Listing{}, errors.New("transcript is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "translate.openai"), slog.String("model", t.model))

	completion, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(transcript, req.Language)),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		logging.Warn(logCtx, "chat completion failed", slog.Any("err", errs.Loggable(err)))
		return commerce.Listing{}, fmt.Errorf("%w: %w", ports.ErrTranslatorUnavailable, errs.WithStack(err))
	}
	if len(completion.Choices) == 0 {
		return commerce.Listing{}, fmt.Errorf("%w: empty completion", ports.ErrTranslatorUnavailable)
	}

	listing, err := DecodeListingReply(completion.Choices[0].Message.Content)
	if err != nil {
		logging.Warn(logCtx, "completion did not decode to a listing", slog.Any("err", errs.Loggable(err)))
		return commerce.Listing{}, fmt.Errorf("%w: %w", ports.ErrTranslatorUnavailable, err)
	}

	listing.Transcript = transcript
	listing.Language = strings.TrimSpace(req.Language)
	listing.Engine = commerce.EngineLLM
	return listing, nil
}

func userPrompt(transcript string, language string) string {
	if language = strings.TrimSpace(language); language != "" {
		return fmt.Sprintf("Language hint: %s\nTranscript: %s", language, transcript)
	}
	return "Transcript: " + transcript
}

// DecodeListingReply extracts and validates the JSON object in a model
// reply. Models occasionally wrap the object in prose or a code fence.
func DecodeListingReply(reply string) (commerce.Listing, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return commerce.Listing{}, errors.New("no JSON object in reply")
	}

	var listing commerce.Listing
	if err := json.Unmarshal([]byte(reply[start:end+1]), &listing); err != nil {
		return commerce.Listing{}, errs.Wrap(err, "decode listing reply")
	}
	if listing.Currency == "" {
		listing.Currency = "INR"
	}
	if err := listing.Validate(); err != nil {
		return commerce.Listing{}, err
	}
	return listing, nil
}
