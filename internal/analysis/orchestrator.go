package analysis

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"nyaya/internal/domain"
	"nyaya/internal/port"
)

// StageObserver receives the latency and outcome of every external call.
type StageObserver interface {
	ObserveStage(stage Stage, elapsed time.Duration, fellBack bool)
}

// Config holds the pipeline settings.
type Config struct {
	// CanonicalLanguage is the language every description is normalized to.
	CanonicalLanguage string
	// CallTimeout bounds each external call. Zero disables the bound.
	CallTimeout time.Duration
	// CandidateLabels are offered to the classifier. Defaults to the six known categories.
	CandidateLabels []string
}

// Orchestrator runs the case analysis pipeline. It keeps no per-call state and
// is safe for concurrent use once constructed.
type Orchestrator struct {
	language   port.LanguageService
	classifier port.Classifier
	sentiment  port.SentimentService
	cfg        Config
	log        *zap.Logger
	observer   StageObserver
	now        func() time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithObserver reports stage latencies and fallbacks to obs.
func WithObserver(obs StageObserver) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator wires the pipeline to its providers.
func NewOrchestrator(
	language port.LanguageService,
	classifier port.Classifier,
	sentiment port.SentimentService,
	cfg Config,
	logger *zap.Logger,
	opts ...Option,
) *Orchestrator {
	cfg.CanonicalLanguage = NormalizeLanguage(cfg.CanonicalLanguage)
	if cfg.CanonicalLanguage == "" {
		cfg.CanonicalLanguage = domain.LanguageEnglish
	}
	if len(cfg.CandidateLabels) == 0 {
		cfg.CandidateLabels = DefaultCandidateLabels()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		language:   language,
		classifier: classifier,
		sentiment:  sentiment,
		cfg:        cfg,
		log:        logger.Named("analysis"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Analyze turns a free-text description into a case analysis. It always
// completes: every provider failure is replaced by a documented default and
// recorded in CaseAnalysis.Fallbacks.
func (o *Orchestrator) Analyze(ctx context.Context, rawText string) domain.CaseAnalysis {
	fallbacks := []string{}
	note := func(stage Stage, fellBack bool) {
		if fellBack {
			fallbacks = append(fallbacks, string(stage))
		}
	}

	detected := o.detectLanguage(ctx, rawText)
	note(StageLanguageDetection, detected.IsFallback())

	translated := o.translate(ctx, rawText, detected.Value())
	note(StageTranslation, translated.IsFallback())
	text := translated.Value()

	info := Extract(text)

	category := o.classify(ctx, text)
	note(StageClassification, category.IsFallback())

	sentiment := o.scoreSentiment(ctx, text)
	note(StageSentiment, sentiment.IsFallback())

	advice := Advise(category.Value().Category, text, info)
	summary := ComposeSummary(rawText, text, category.Value(), info, sentiment.Value())

	return domain.CaseAnalysis{
		OriginalText:     rawText,
		TranslatedText:   text,
		DetectedLanguage: detected.Value(),
		ExtractedInfo:    info,
		CategoryResult:   category.Value(),
		Sentiment:        sentiment.Value(),
		Advice:           advice,
		Summary:          summary,
		Fallbacks:        fallbacks,
		CreatedAt:        o.now().UTC(),
	}
}

// MaxLanguageCodeLen is the longest language code kept from a provider.
// It matches the width of cases.detected_language.
const MaxLanguageCodeLen = 10

// NormalizeLanguage trims and lower-cases a language code.
func NormalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func truncateCode(code string) string {
	if len(code) <= MaxLanguageCodeLen*2 {
		return code
	}
	n := MaxLanguageCodeLen * 2
	for n > 0 && !utf8.RuneStart(code[n]) {
		n--
	}
	return code[:n] + "..."
}

func (o *Orchestrator) detectLanguage(ctx context.Context, text string) Outcome[string] {
	start := time.Now()
	lang, err := callWithDeadline(ctx, o.cfg.CallTimeout, func(ctx context.Context) (string, error) {
		return o.language.Detect(ctx, text)
	})
	lang = NormalizeLanguage(lang)

	var out Outcome[string]
	switch {
	case err != nil:
		out = FellBack(o.cfg.CanonicalLanguage, err.Error())
	case lang == "":
		out = FellBack(o.cfg.CanonicalLanguage, "empty language code")
	case len(lang) > MaxLanguageCodeLen:
		out = FellBack(o.cfg.CanonicalLanguage, "language code too long: "+truncateCode(lang))
	default:
		out = Succeeded(lang)
	}
	o.finish(StageLanguageDetection, start, out.IsFallback(), out.Reason())
	return out
}

// translate passes canonical-language text through without calling the provider.
func (o *Orchestrator) translate(ctx context.Context, text, detected string) Outcome[string] {
	if detected == o.cfg.CanonicalLanguage {
		return Succeeded(text)
	}

	start := time.Now()
	translated, err := callWithDeadline(ctx, o.cfg.CallTimeout, func(ctx context.Context) (string, error) {
		return o.language.Translate(ctx, text, o.cfg.CanonicalLanguage)
	})

	var out Outcome[string]
	switch {
	case err != nil:
		out = FellBack(text, err.Error())
	case strings.TrimSpace(translated) == "":
		out = FellBack(text, "empty translation")
	default:
		out = Succeeded(translated)
	}
	o.finish(StageTranslation, start, out.IsFallback(), out.Reason())
	return out
}

func (o *Orchestrator) classify(ctx context.Context, text string) Outcome[domain.CategoryResult] {
	start := time.Now()
	resp, err := callWithDeadline(ctx, o.cfg.CallTimeout, func(ctx context.Context) (*port.ClassificationOutput, error) {
		return o.classifier.Classify(ctx, text, o.cfg.CandidateLabels)
	})
	if err == nil {
		var result domain.CategoryResult
		if result, err = toCategoryResult(resp); err == nil {
			o.finish(StageClassification, start, false, "")
			return Succeeded(result)
		}
	}
	o.finish(StageClassification, start, true, err.Error())
	return FellBack(defaultCategoryResult(), err.Error())
}

func (o *Orchestrator) scoreSentiment(ctx context.Context, text string) Outcome[domain.SentimentResult] {
	start := time.Now()
	resp, err := callWithDeadline(ctx, o.cfg.CallTimeout, func(ctx context.Context) (*port.SentimentOutput, error) {
		return o.sentiment.Analyze(ctx, text)
	})
	if err == nil {
		var result domain.SentimentResult
		if result, err = toSentimentResult(resp); err == nil {
			o.finish(StageSentiment, start, false, "")
			return Succeeded(result)
		}
	}
	o.finish(StageSentiment, start, true, err.Error())
	return FellBack(defaultSentimentResult(), err.Error())
}

func (o *Orchestrator) finish(stage Stage, start time.Time, fellBack bool, reason string) {
	elapsed := time.Since(start)
	if o.observer != nil {
		o.observer.ObserveStage(stage, elapsed, fellBack)
	}
	if fellBack {
		o.log.Warn("provider call fell back to default",
			zap.String("stage", string(stage)),
			zap.String("reason", reason),
			zap.Duration("elapsed", elapsed),
		)
	}
}
