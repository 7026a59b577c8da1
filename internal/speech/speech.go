// Package speech reads German text aloud through an external synthesizer.
package speech

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Speaker starts reading text and returns immediately. rate is relative to
// normal speed (1.0) and pitch relative to the default voice (1.0).
type Speaker interface {
	Speak(text string, rate, pitch float64)
}

var (
	erSieEs   = regexp.MustCompile(`(?i)er/sie/es`)
	sieFormal = regexp.MustCompile(`sie/Sie`)
)

// Normalize turns pronoun tables into something a synthesizer can read:
// "er/sie/es" becomes "er", "sie/Sie" becomes "sie" and any other slash
// becomes a space.
func Normalize(text string) string {
	text = erSieEs.ReplaceAllString(text, "er")
	text = sieFormal.ReplaceAllString(text, "sie")
	return strings.ReplaceAll(text, "/", " ")
}

// Nop discards everything.
type Nop struct{}

func (Nop) Speak(string, float64, float64) {}

const (
	baseWPM   = 170
	basePitch = 50
)

// Command speaks with an espeak-compatible program. A new utterance stops the
// one still playing.
type Command struct {
	name  string
	voice string
	log   *zap.Logger
	run   func(ctx context.Context, name string, args ...string) error

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommand returns a Command for name, or Nop when name is not on PATH.
func NewCommand(name, voice string, log *zap.Logger) Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	path, err := exec.LookPath(name)
	if err != nil {
		log.Info("speech: synthesizer not found, audio is silent", zap.String("command", name))
		return Nop{}
	}
	return &Command{name: path, voice: voice, log: log, run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (c *Command) Speak(text string, rate, pitch float64) {
	text = strings.TrimSpace(Normalize(text))
	if text == "" {
		return
	}
	args := c.args(text, rate, pitch)

	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	go func() {
		defer cancel()
		if err := c.run(ctx, c.name, args...); err != nil && ctx.Err() == nil {
			c.log.Warn("speech: synthesizer failed", zap.Error(err))
		}
	}()
}

// Stop interrupts the current utterance.
func (c *Command) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Command) args(text string, rate, pitch float64) []string {
	if rate <= 0 {
		rate = 1
	}
	if pitch <= 0 {
		pitch = 1
	}
	p := int(math.Round(basePitch * pitch))
	if p > 99 {
		p = 99
	}
	return []string{
		"-v", c.voice,
		"-s", fmt.Sprint(int(math.Round(baseWPM * rate))),
		"-p", fmt.Sprint(p),
		"--", text,
	}
}

// Conversation turn playback settings.
const (
	SlowRate   = 0.6
	NormalRate = 1.0
	PitchA     = 1.0
	PitchB     = 0.8
)

// TurnVoice returns rate and pitch for a conversation speaker.
func TurnVoice(speaker string, slow bool) (rate, pitch float64) {
	rate = NormalRate
	if slow {
		rate = SlowRate
	}
	pitch = PitchA
	if speaker == "B" {
		pitch = PitchB
	}
	return rate, pitch
}
