// Package app assembles the long-lived collaborators shared by the TUI and
// the CLI commands.
package app

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jeanpaul/wortschatz/internal/cache"
	"github.com/jeanpaul/wortschatz/internal/config"
	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/ledger"
	"github.com/jeanpaul/wortschatz/internal/lesson"
	"github.com/jeanpaul/wortschatz/internal/provider"
	"github.com/jeanpaul/wortschatz/internal/settings"
	"github.com/jeanpaul/wortschatz/internal/speech"
	"github.com/jeanpaul/wortschatz/internal/storage"
)

// Context is created once at startup and passed to every screen.
type Context struct {
	Config   *config.Config
	Log      *zap.Logger
	KV       storage.KV
	Settings *settings.Settings
	Cache    *cache.Store
	Ledger   *ledger.Ledger
	Lessons  *lesson.Service
	Speaker  speech.Speaker
}

// Option overrides a collaborator, mostly for tests.
type Option func(*options)

type options struct {
	kv        storage.KV
	generator provider.Generator
	speaker   speech.Speaker
	getenv    func(string) string
}

func WithKV(kv storage.KV) Option { return func(o *options) { o.kv = kv } }

func WithGenerator(g provider.Generator) Option { return func(o *options) { o.generator = g } }

func WithSpeaker(s speech.Speaker) Option { return func(o *options) { o.speaker = s } }

func WithGetenv(f func(string) string) Option { return func(o *options) { o.getenv = f } }

// New opens storage and loads every persisted record.
func New(cfg *config.Config, log *zap.Logger, opts ...Option) (*Context, error) {
	if log == nil {
		log = zap.NewNop()
	}
	o := options{getenv: os.Getenv}
	for _, opt := range opts {
		opt(&o)
	}

	kv := o.kv
	if kv == nil {
		var err error
		kv, err = storage.Open(cfg.Storage.Backend, cfg.DataDir)
		if err != nil {
			return nil, err
		}
	}

	st := settings.Load(kv, log.Named("settings"), settings.Defaults{
		APIKey: cfg.Provider.APIKey,
		Getenv: o.getenv,
	})

	gen := o.generator
	if gen == nil {
		gen = provider.WithRetry(provider.NewGemini(st.APIKey, provider.GeminiOptions{
			Model:   cfg.Provider.Model,
			BaseURL: cfg.Provider.BaseURL,
			Timeout: cfg.Provider.Timeout,
		}), cfg.Provider.MaxRetries)
	}

	speaker := o.speaker
	if speaker == nil {
		speaker = speech.NewCommand(cfg.Speech.Command, cfg.Speech.Voice, log.Named("speech"))
	}

	c := &Context{
		Config:   cfg,
		Log:      log,
		KV:       kv,
		Settings: st,
		Cache:    cache.Load(kv, log.Named("cache"), cache.WithMaxEntries(cfg.Cache.MaxEntries)),
		Ledger:   ledger.Load(kv, log.Named("ledger")),
		Speaker:  speaker,
	}
	c.Lessons = lesson.NewService(lesson.Deps{
		Generator: gen,
		Cache:     c.Cache,
		Ledger:    c.Ledger,
		Settings:  st,
		Nouns:     lesson.LoadNounHistory(kv, log.Named("nouns")),
		Log:       log.Named("lesson"),
	})
	log.Info("app: ready",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("locale", st.Locale()),
		zap.Int("cached", c.Cache.Len()),
		zap.Int("conversations", c.Ledger.Len()))
	return c, nil
}

// Strings returns the interface text for the active locale.
func (c *Context) Strings() i18n.Strings { return i18n.For(c.Settings.Locale()) }

// Speak reads text aloud unless audio is disabled.
func (c *Context) Speak(text string, rate, pitch float64) {
	if !c.Settings.AudioEnabled() {
		return
	}
	c.Speaker.Speak(text, rate, pitch)
}

// Close releases the storage backend.
func (c *Context) Close() error {
	var errs []error
	if s, ok := c.Speaker.(interface{ Stop() }); ok {
		s.Stop()
	}
	if cl, ok := c.KV.(io.Closer); ok {
		errs = append(errs, cl.Close())
	}
	_ = c.Log.Sync()
	return errors.Join(errs...)
}
