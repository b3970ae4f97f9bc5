// Package reading produces fortune text for a computed star result. Text
// comes from an OpenAI chat completion when configured, otherwise from a
// fixed template.
package reading

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/cache"
)

// Categories a reading can be requested for.
var Categories = []string{"love", "work", "health", "money", "general"}

// UnknownRegion is recorded when a profile has no location.
const UnknownRegion = "Unknown"

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Region joins prefecture and municipality, or returns UnknownRegion.
func Region(prefecture, municipality string) string {
	region := strings.TrimSpace(prefecture + " " + municipality)
	if region == "" {
		return UnknownRegion
	}
	return region
}

// Request carries everything the text depends on. Star fields hold names,
// not numbers.
type Request struct {
	Category string
	Message  string
	Honmei   string
	Getsumei string
	Region   string
	Language string
}

// cacheKey is the hex digest of the request. Namespacing is left to the
// cache.
func (r Request) cacheKey() string {
	h := sha256.New()
	for _, part := range []string{r.Language, r.Category, r.Message, r.Honmei, r.Getsumei, r.Region} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Generator turns a request into reading text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Service generates reading text with caching and a template fallback.
// Generate never fails.
type Service struct {
	primary  Generator
	fallback Template
	cache    cache.Cache
	ttl      time.Duration
	logger   *slog.Logger
}

// NewService wires a Service. primary and c may be nil.
func NewService(primary Generator, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		primary: primary,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
	}
}

// Generate returns reading text for req. Template text is not cached so a
// later call can still reach the primary generator.
func (s *Service) Generate(ctx context.Context, req Request) string {
	key := req.cacheKey()
	if s.cache != nil {
		if text, ok := s.cache.Get(ctx, key); ok {
			s.logger.Debug("reading cache hit", slog.String("category", req.Category))
			return text
		}
	}

	if s.primary != nil {
		text, err := s.primary.Generate(ctx, req)
		if err == nil && text != "" {
			if s.cache != nil {
				if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
					s.logger.Warn("failed to cache reading", slog.Any("error", err))
				}
			}
			return text
		}
		level := slog.LevelWarn
		if errors.Is(err, ErrNotConfigured) {
			level = slog.LevelDebug
		}
		s.logger.Log(ctx, level, "reading generation failed, using template",
			slog.String("category", req.Category),
			slog.Any("error", err),
		)
	}

	text, _ := s.fallback.Generate(ctx, req)
	return text
}

// Template renders a fixed, localized reading.
type Template struct{}

// Generate fills the template for req's language. It never fails.
func (Template) Generate(_ context.Context, req Request) (string, error) {
	msgs := messagesFor(req.Language)
	return fill(msgs.template, req, msgs), nil
}

func fill(tmpl string, req Request, msgs messages) string {
	return strings.NewReplacer(
		"{category}", msgs.category(req.Category),
		"{message}", req.Message,
		"{honmei}", req.Honmei,
		"{getsumei}", req.Getsumei,
		"{region}", req.Region,
	).Replace(tmpl)
}

// Prompt renders the text sent to the language model.
func Prompt(req Request) string {
	msgs := messagesFor(req.Language)
	return fill(msgs.prompt, req, msgs)
}

func (r Request) String() string {
	return fmt.Sprintf("%s/%s (%s, %s)", r.Language, r.Category, r.Honmei, r.Getsumei)
}
