package lesson

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/jeanpaul/wortschatz/internal/cache"
	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/ledger"
	"github.com/jeanpaul/wortschatz/internal/provider"
)

// ConvParams identifies a generated conversation.
type ConvParams struct {
	Level    string
	Topic    string
	Length   ConvLength
	Austrian bool
}

// Fingerprint is the cache key of the conversation in locale. It is also the
// id of its ledger record.
func (p ConvParams) Fingerprint(locale string) string {
	return cache.NewFingerprint("conv", p.Level, locale).
		With(p.Topic, string(p.Length)).
		Flag(p.Austrian).
		String()
}

// Conversation returns the dialogue for p, generating it on first use. The
// conversation is recorded in the ledger whether it came from the cache or
// the model.
func (s *Service) Conversation(ctx context.Context, p ConvParams) ([]Turn, error) {
	if strings.TrimSpace(p.Topic) == "" {
		return nil, ErrEmptyInput
	}
	loc := s.locale()
	fp := p.Fingerprint(loc)
	turns, _, err := fetch[[]Turn](ctx, s, call{
		op:        "conversation",
		fp:        fp,
		readCache: true,
		field:     "conversation",
		req: provider.Request{
			Prompt: render(conversationPrompt, loc,
				"{level}", p.Level, "{topic}", p.Topic, "{turns}", turnsFor(p.Length), "{dialect}", dialect(p.Austrian)),
			Schema:      conversationSchema,
			Temperature: tempConversation,
		},
	})
	if err != nil {
		return nil, err
	}
	s.ledger.Record(ledger.Record{
		ID:        fp,
		Topic:     p.Topic,
		Level:     p.Level,
		Length:    string(p.Length),
		Timestamp: s.now().UnixMilli(),
		Austrian:  p.Austrian,
	})
	return turns, nil
}

// ExtendConversation asks for the learner's next line (as Person A) and the
// partner's reply, appends them to existing and overwrites the cached
// conversation with the result.
func (s *Service) ExtendConversation(ctx context.Context, p ConvParams, existing []Turn, userInput string) ([]Turn, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return nil, ErrEmptyInput
	}
	if s.settings.APIKey() == "" {
		return nil, ErrMissingKey
	}
	loc := s.locale()
	req := provider.Request{
		Prompt: render(extendPrompt, loc,
			"{level}", p.Level, "{topic}", p.Topic, "{userInput}", userInput, "{dialect}", dialect(p.Austrian)),
		Schema:      conversationSchema,
		Temperature: tempExtend,
	}
	raw, err := s.generate(ctx, "extend conversation", req, "conversation")
	if err != nil {
		return nil, err
	}
	var added []Turn
	if err := json.Unmarshal(raw, &added); err != nil {
		return nil, &FetchError{Op: "extend conversation", Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated := make([]Turn, 0, len(existing)+len(added))
	updated = append(updated, existing...)
	updated = append(updated, added...)
	s.cache.Put(p.Fingerprint(loc), updated)
	return updated, nil
}

// Keywords extracts vocabulary from a German text. Results are not cached.
func (s *Service) Keywords(ctx context.Context, text string) ([]Keyword, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if s.settings.APIKey() == "" {
		return nil, ErrMissingKey
	}
	req := provider.Request{
		Prompt:      render(keywordsPrompt, s.locale()),
		Parts:       []string{text},
		Schema:      keywordsSchema,
		Temperature: tempKeywords,
	}
	raw, err := s.generate(ctx, "keywords", req, "keywords")
	if err != nil {
		return nil, err
	}
	var kw []Keyword
	if err := json.Unmarshal(raw, &kw); err != nil {
		return nil, &FetchError{Op: "keywords", Err: err}
	}
	return kw, nil
}

// ConversationText joins the German lines for keyword extraction.
func ConversationText(turns []Turn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = t.TextDe
	}
	return strings.Join(parts, " ")
}

// Chat sends msg to the tutor with the studied sentence as context. An empty
// answer is replaced by a localised apology.
func (s *Service) Chat(ctx context.Context, contextDe, contextTr string, history []ChatMessage, msg string) (string, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return "", ErrEmptyInput
	}
	if s.settings.APIKey() == "" {
		return "", ErrMissingKey
	}
	loc := s.locale()
	req := provider.ChatRequest{
		System:  render(chatSystemPrompt, loc, "{contextDe}", contextDe, "{contextTr}", contextTr),
		Message: msg,
	}
	for _, m := range history {
		role := provider.RoleUser
		if m.Role == string(provider.RoleModel) {
			role = provider.RoleModel
		}
		req.History = append(req.History, provider.Message{Role: role, Text: m.Text})
	}

	reply, err := s.gen.Chat(ctx, req)
	if err != nil {
		if isCancellation(err) && ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.log.Warn("lesson: chat failed", zap.String("reason", provider.Describe(err)), zap.Error(err))
		return "", &FetchError{Op: "chat", Err: err}
	}
	if reply == "" {
		return i18n.For(loc).ChatFallback, nil
	}
	return reply, nil
}

// generate is the uncached path: one Generator call, validated, with field
// picked out of the answer.
func (s *Service) generate(ctx context.Context, op string, req provider.Request, field string) (json.RawMessage, error) {
	raw, err := s.gen.Generate(ctx, req)
	if err != nil {
		if isCancellation(err) && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("lesson: generate failed", zap.String("op", op), zap.String("reason", provider.Describe(err)), zap.Error(err))
		return nil, &FetchError{Op: op, Err: err}
	}
	if err := s.validator.Validate(req.Schema, raw); err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	payload, err := pick(raw, field)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	return payload, nil
}
