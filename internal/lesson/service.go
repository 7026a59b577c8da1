// Package lesson fetches the content of every learning screen. Each
// operation owns its cache fingerprint, serves cached payloads when allowed,
// and otherwise asks the Generator, validates the answer and writes it back.
package lesson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jeanpaul/wortschatz/internal/cache"
	"github.com/jeanpaul/wortschatz/internal/ledger"
	"github.com/jeanpaul/wortschatz/internal/provider"
	"github.com/jeanpaul/wortschatz/internal/schema"
	"github.com/jeanpaul/wortschatz/internal/settings"
)

var (
	// ErrMissingKey means no credential is configured. Nothing was fetched.
	ErrMissingKey = errors.New("lesson: API key is missing")
	// ErrEmptyInput is returned for blank words, topics and messages.
	ErrEmptyInput = errors.New("lesson: input is empty")
)

// FetchError wraps a failure of the model collaborator: network, quota,
// malformed or schema-violating output.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("lesson %s: %v", e.Op, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// Sampling temperatures per operation.
const (
	tempNoun         = 0.1
	tempNounCases    = 0.2
	tempVerb         = 0.2
	tempMeanings     = 0.3
	tempTopics       = 0.2
	tempExplanation  = 0.3
	tempToolsList    = 0.2
	tempToolDetail   = 0.3
	tempConversation = 0.3
	tempExtend       = 0.4
	tempKeywords     = 0.2
)

// Service is shared by all screens. It is safe for concurrent use.
type Service struct {
	gen       provider.Generator
	cache     *cache.Store
	ledger    *ledger.Ledger
	settings  *settings.Settings
	nouns     *NounHistory
	validator *schema.Validator
	group     singleflight.Group
	log       *zap.Logger
	now       func() time.Time
}

// Deps are the collaborators of a Service.
type Deps struct {
	Generator provider.Generator
	Cache     *cache.Store
	Ledger    *ledger.Ledger
	Settings  *settings.Settings
	Nouns     *NounHistory
	Log       *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewService(d Deps) *Service {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		gen:       d.Generator,
		cache:     d.Cache,
		ledger:    d.Ledger,
		settings:  d.Settings,
		nouns:     d.Nouns,
		validator: schema.NewValidator(),
		log:       d.Log,
		now:       d.Now,
	}
}

// call describes one cacheable fetch.
type call struct {
	op string
	fp string
	// readCache is false when the screen always wants a fresh answer.
	readCache bool
	req       provider.Request
	// field selects the member of the model's JSON object that is cached
	// and returned. Empty keeps the whole object.
	field string
}

// fetch serves c from the cache when allowed, otherwise generates it.
// Concurrent generations for the same fingerprint share one Generator call.
func fetch[T any](ctx context.Context, s *Service, c call) (T, bool, error) {
	var out T
	if c.readCache && s.cache.GetInto(c.fp, &out) {
		return out, true, nil
	}
	if s.settings.APIKey() == "" {
		return out, false, ErrMissingKey
	}

	raw, err := s.shared(ctx, c)
	if err != nil {
		return out, false, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, &FetchError{Op: c.op, Err: err}
	}
	return out, false, nil
}

func (s *Service) shared(ctx context.Context, c call) (json.RawMessage, error) {
	for {
		ch := s.group.DoChan(c.fp, func() (any, error) {
			return s.produce(ctx, c)
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				var fe *FetchError
				if errors.As(res.Err, &fe) {
					return nil, res.Err
				}
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				// The caller that started the shared call went away; try
				// again under our own context.
				if res.Shared {
					continue
				}
				return nil, res.Err
			}
			return res.Val.(json.RawMessage), nil
		}
	}
}

// produce runs the Generator and writes the answer back. A cancelled
// context means the screen is gone and nothing is written.
func (s *Service) produce(ctx context.Context, c call) (json.RawMessage, error) {
	start := time.Now()
	payload, err := s.generate(ctx, c.op, c.req, c.field)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.log.Debug("lesson: fetch cancelled, not caching", zap.String("fingerprint", c.fp))
		return nil, err
	}
	s.cache.Put(c.fp, payload)
	s.log.Debug("lesson: fetched", zap.String("op", c.op), zap.String("fingerprint", c.fp),
		zap.Duration("took", time.Since(start)))
	return payload, nil
}

func pick(raw json.RawMessage, field string) (json.RawMessage, error) {
	if field == "" {
		return raw, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	v, ok := obj[field]
	if !ok {
		return nil, fmt.Errorf("answer has no %q field", field)
	}
	return v, nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *Service) locale() string { return s.settings.Locale() }

// bypass reports whether smart storage asks for fresh answers.
func (s *Service) bypass() bool { return s.settings.SmartStorage() }

// Noun looks up a noun. The noun history is consulted before the cache, and
// every result is added to it.
func (s *Service) Noun(ctx context.Context, word string) (Noun, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return Noun{}, ErrEmptyInput
	}
	if n, ok := s.nouns.Find(word); ok {
		return n, nil
	}
	loc := s.locale()
	n, _, err := fetch[Noun](ctx, s, call{
		op:        "noun",
		fp:        cache.NewFingerprint("noun_result", strings.ToLower(word), loc).String(),
		readCache: !s.bypass(),
		req: provider.Request{
			Prompt:      render(nounPrompt, loc, "{noun}", word),
			Schema:      nounSchema,
			Temperature: tempNoun,
		},
	})
	if err != nil {
		return Noun{}, err
	}
	s.nouns.Save(n)
	return n, nil
}

// NounHistory lists previously looked-up nouns.
func (s *Service) NounHistory() []Noun { return s.nouns.List() }

func (s *Service) NounCases(ctx context.Context, noun, article string) ([]NounCase, error) {
	loc := s.locale()
	cases, _, err := fetch[[]NounCase](ctx, s, call{
		op:        "noun cases",
		fp:        cache.NewFingerprint("noun_ex", noun, loc).With(article).String(),
		readCache: !s.bypass(),
		field:     "cases",
		req: provider.Request{
			Prompt:      render(nounCasesPrompt, loc, "{noun}", noun, "{article}", article),
			Schema:      nounCasesSchema,
			Temperature: tempNounCases,
		},
	})
	return cases, err
}

func (s *Service) VerbConjugation(ctx context.Context, verb, category, subcategory string) (VerbResult, error) {
	loc := s.locale()
	res, _, err := fetch[VerbResult](ctx, s, call{
		op:        "verb conjugation",
		fp:        cache.NewFingerprint("verb_det", verb, loc).With(category, subcategory).String(),
		readCache: !s.bypass(),
		req: provider.Request{
			Prompt:      render(verbPrompt, loc, "{verb}", verb, "{category}", category, "{subcategory}", subcategory),
			Schema:      verbSchema,
			Temperature: tempVerb,
		},
	})
	if err != nil {
		return VerbResult{}, err
	}
	res.TenseName = subcategory
	return res, nil
}

func (s *Service) VerbMeanings(ctx context.Context, verb string) ([]Meaning, error) {
	loc := s.locale()
	m, _, err := fetch[[]Meaning](ctx, s, call{
		op:        "verb meanings",
		fp:        cache.NewFingerprint("verb_mean", verb, loc).String(),
		readCache: !s.bypass(),
		field:     "meanings",
		req: provider.Request{
			Prompt:      render(meaningsPrompt, loc, "{verb}", verb),
			Schema:      meaningsSchema,
			Temperature: tempMeanings,
		},
	})
	return m, err
}

// GrammarTopics always reads through the cache.
func (s *Service) GrammarTopics(ctx context.Context, level string) ([]GrammarTopic, error) {
	loc := s.locale()
	topics, _, err := fetch[[]GrammarTopic](ctx, s, call{
		op:        "grammar topics",
		fp:        cache.NewFingerprint("topics", level, loc).String(),
		readCache: true,
		field:     "topics",
		req: provider.Request{
			Prompt:      render(grammarTopicsPrompt, loc, "{level}", level),
			Schema:      grammarTopicsSchema,
			Temperature: tempTopics,
		},
	})
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if topics[i].ID == "" {
			topics[i].ID = topicID(topics[i].TitleDe, i)
		}
	}
	return topics, nil
}

// topicID derives a fingerprint-safe id for topics the model left without
// one.
func topicID(titleDe string, i int) string {
	id := strings.ToLower(strings.Join(strings.Fields(titleDe), "-"))
	if id == "" {
		return fmt.Sprintf("topic-%d", i+1)
	}
	return id
}

func (s *Service) GrammarExplanation(ctx context.Context, level string, topic GrammarTopic) (GrammarExplanation, error) {
	loc := s.locale()
	e, _, err := fetch[GrammarExplanation](ctx, s, call{
		op:        "grammar explanation",
		fp:        cache.NewFingerprint("grammar_det", level, loc).With(topic.ID).String(),
		readCache: true,
		req: provider.Request{
			Prompt: render(grammarExplanationPrompt, loc,
				"{titleDe}", topic.TitleDe, "{titleTr}", topic.TitleTr, "{level}", level),
			Schema:      grammarExplanationSchema,
			Temperature: tempExplanation,
		},
	})
	return e, err
}

func (s *Service) ToolsList(ctx context.Context, categoryID, categoryName string) ([]ToolItem, error) {
	loc := s.locale()
	tools, _, err := fetch[[]ToolItem](ctx, s, call{
		op:        "tools list",
		fp:        cache.NewFingerprint("tools_list", categoryID, loc).String(),
		readCache: true,
		field:     "tools",
		req: provider.Request{
			Prompt:      render(toolsListPrompt, loc, "{categoryName}", categoryName, "{categoryId}", categoryID),
			Schema:      toolsListSchema,
			Temperature: tempToolsList,
		},
	})
	return tools, err
}

func (s *Service) ToolDetail(ctx context.Context, tool ToolItem, categoryName string) (ToolDetail, error) {
	loc := s.locale()
	d, _, err := fetch[ToolDetail](ctx, s, call{
		op:        "tool detail",
		fp:        cache.NewFingerprint("tool_detail", tool.Word, loc).With(categoryName).String(),
		readCache: !s.bypass(),
		req: provider.Request{
			Prompt:      render(toolDetailPrompt, loc, "{word}", tool.Word, "{categoryName}", categoryName, "{level}", tool.Level),
			Schema:      toolDetailSchema,
			Temperature: tempToolDetail,
		},
	})
	return d, err
}
