package kigaku

import (
	"log/slog"
	"sync"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/calendar"
	"github.com/zapponejosh/kigaku-api/internal/sekki"
)

// Result holds the stars for one birth instant. It is a plain value and is
// safe to copy.
type Result struct {
	KigakuYear        int    `json:"kigaku_year"`
	AstrologicalMonth int    `json:"astrological_month"`
	Honmei            int    `json:"honmei"`
	HonmeiName        string `json:"honmei_name"`
	Getsumei          int    `json:"getsumei"`
	GetsumeiName      string `json:"getsumei_name"`
	Nichimei          int    `json:"nichimei"`
	NichimeiName      string `json:"nichimei_name"`
	YearFallback      bool   `json:"year_fallback"`
	MonthFallback     bool   `json:"month_fallback"`
}

// WithLanguage returns a copy of r with star names in lang.
func (r Result) WithLanguage(lang string) Result {
	r.HonmeiName = NameIn(lang, r.Honmei)
	r.GetsumeiName = NameIn(lang, r.Getsumei)
	r.NichimeiName = NameIn(lang, r.Nichimei)
	return r
}

// DefaultResult is returned when no zone is available to evaluate the
// boundaries in. Every star is 1.
func DefaultResult() Result {
	return Result{
		Honmei:   DefaultStar,
		Getsumei: DefaultStar,
		Nichimei: DefaultStar,
	}.WithLanguage(LangJapanese)
}

// Calculator turns birth instants into star results.
type Calculator struct {
	years  *calendar.YearResolver
	months *calendar.MonthResolver
	// loc is always calendar.Zone; nil only when no zone is available.
	loc    *time.Location
	lang   string
	logger *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLanguage sets the language of star names in results.
func WithLanguage(lang string) Option {
	return func(c *Calculator) { c.lang = lang }
}

// WithLogger sets the logger for fallback notices.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Calculator over table. A nil table behaves as an empty one.
func New(table *sekki.Table, opts ...Option) *Calculator {
	c := &Calculator{
		years:  calendar.NewYearResolver(table),
		months: calendar.NewMonthResolver(table),
		loc:    calendar.Zone,
		lang:   LangJapanese,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute returns the stars for birth. It never fails: missing table data
// falls back to approximate boundaries and a missing zone yields
// DefaultResult.
func (c *Calculator) Compute(birth time.Time) Result {
	if c.loc == nil {
		c.logger.Warn("no zone configured, returning default stars")
		return DefaultResult().WithLanguage(c.lang)
	}

	year := c.years.Resolve(birth)
	month := c.months.Resolve(birth)

	if year.Fallback || month.Fallback {
		c.logger.Debug("approximate boundaries used",
			slog.Time("birth", birth),
			slog.Int("kigaku_year", year.Year),
			slog.Bool("year_fallback", year.Fallback),
			slog.Bool("month_fallback", month.Fallback),
		)
	}

	honmei := Honmei(year.Year)
	getsumei := Getsumei(honmei, month.Month)

	return Result{
		KigakuYear:        year.Year,
		AstrologicalMonth: month.Month,
		Honmei:            honmei,
		Getsumei:          getsumei,
		Nichimei:          dayStarIn(birth, c.loc),
		YearFallback:      year.Fallback,
		MonthFallback:     month.Fallback,
	}.WithLanguage(c.lang)
}

// Years exposes the year resolver.
func (c *Calculator) Years() *calendar.YearResolver {
	return c.years
}

// Months exposes the month resolver.
func (c *Calculator) Months() *calendar.MonthResolver {
	return c.months
}

var (
	defaultOnce sync.Once
	defaultCalc *Calculator
)

// Default returns a Calculator over sekki.Default, built once.
func Default() *Calculator {
	defaultOnce.Do(func() {
		defaultCalc = New(sekki.Default())
	})
	return defaultCalc
}

// Compute uses the default Calculator.
func Compute(birth time.Time) Result {
	return Default().Compute(birth)
}
