package dialog

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avtoline/showroom-bot/internal/catalog"
	"github.com/avtoline/showroom-bot/internal/model"
	"github.com/avtoline/showroom-bot/internal/nlp"
	"github.com/avtoline/showroom-bot/internal/observability/metrics"
	"github.com/avtoline/showroom-bot/internal/session"
	"github.com/avtoline/showroom-bot/pkg/logging"
)

const (
	upsellProbability          = 0.2
	retrievalUpsellProbability = 0.3
)

// Config carries the engine's collaborators. Catalog is required; the model
// artifacts are optional only for tests, production wiring supplies all of
// them. A nil Rand gets a seeded concurrent source, a nil Logger the default
// logger, nil Metrics disables instrumentation.
type Config struct {
	Catalog             *catalog.Catalog
	Classifier          model.Classifier
	IntentVectorizer    model.Vectorizer
	RetrievalVectorizer model.Vectorizer
	Corpus              *model.Corpus
	Rand                RandomSource
	Logger              *logging.Logger
	Metrics             *metrics.DialogMetrics
}

// Engine resolves utterances into replies. Stateless and safe for
// concurrent use; all per-conversation state lives in the session.Context
// passed to Process, which the caller serializes per participant.
type Engine struct {
	catalog             *catalog.Catalog
	classifier          model.Classifier
	intentVectorizer    model.Vectorizer
	retrievalVectorizer model.Vectorizer
	corpus              *model.Corpus
	exampleLemmas       map[string][]string
	rng                 RandomSource
	logger              *logging.Logger
	metrics             *metrics.DialogMetrics
	tracer              trace.Tracer

	upsellProb          float64
	retrievalUpsellProb float64
}

func New(cfg Config) (*Engine, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("dialog: catalog is required")
	}
	if cfg.Rand == nil {
		cfg.Rand = newLockedRand()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	e := &Engine{
		catalog:             cfg.Catalog,
		classifier:          cfg.Classifier,
		intentVectorizer:    cfg.IntentVectorizer,
		retrievalVectorizer: cfg.RetrievalVectorizer,
		corpus:              cfg.Corpus,
		rng:                 cfg.Rand,
		logger:              cfg.Logger,
		metrics:             cfg.Metrics,
		tracer:              otel.Tracer("showroom.internal.dialog"),
		upsellProb:          upsellProbability,
		retrievalUpsellProb: retrievalUpsellProbability,
	}
	e.exampleLemmas = buildExampleLemmas(e)
	return e, nil
}

// Process resolves one turn. It mutates sc in place and always returns a
// non-empty reply; every error path collapses into a failure phrase.
func (e *Engine) Process(ctx context.Context, utterance string, sc *session.Context) string {
	ctx, span := e.tracer.Start(ctx, "Engine.Process")
	defer span.End()
	start := time.Now()

	reply, outcome, intent := e.resolveTurn(utterance, sc)
	if reply == "" {
		reply = e.failurePhrase(utterance)
		outcome = OutcomeFailure
		intent = ""
	}

	sc.PushHistory(utterance, e.catalog.HistoryLimit())
	sc.LastReply = reply
	if intent != "" {
		sc.LastIntent = intent
	}
	switch outcome {
	case OutcomeIntent:
		sc.Stats.Intent++
	case OutcomeRetrieved:
		sc.Stats.Retrieved++
	default:
		sc.Stats.Failure++
	}

	e.metrics.ObserveResolution(outcome.String())
	e.metrics.ObserveTurnLatency(outcome.String(), time.Since(start).Seconds())
	span.SetAttributes(
		attribute.String("dialog.outcome", outcome.String()),
		attribute.String("dialog.state", sc.State.String()),
	)
	e.logger.DebugContext(ctx, "turn resolved",
		"outcome", outcome.String(),
		"state", sc.State.String(),
		"intent", sc.LastIntent,
	)
	return reply
}

// Stats returns the running per-session resolution totals.
func (e *Engine) Stats(sc *session.Context) session.Stats {
	return sc.Stats
}

// resolveTurn runs the dispatch order: meaningfulness gate, price
// preemption, then the state machine. It returns the reply, the outcome tag
// and the intent to record on the context ("" records nothing).
func (e *Engine) resolveTurn(utterance string, sc *session.Context) (string, Outcome, string) {
	if !nlp.IsMeaningful(utterance) {
		return e.failurePhrase(utterance), OutcomeFailure, ""
	}

	// A price anywhere in the utterance is an implicit filter request,
	// whatever state the session is in.
	if price, ok := extractPrice(utterance); ok {
		category, _ := e.extractCategory(utterance)
		return e.filterVehicles(price, category, sc), OutcomeIntent, IntentFilterCars
	}

	switch sc.State {
	case session.StateWaitingForCar:
		return e.processWaitingForCar(utterance, sc)
	case session.StateWaitingForIntent:
		return e.processWaitingForIntent(utterance, sc)
	default:
		return e.processNone(utterance, sc)
	}
}

// offerVehicle moves the session onto a concrete vehicle and asks what about
// it. Shared by the NONE and WAITING_FOR_CAR handlers.
func (e *Engine) offerVehicle(name, utterance string, sc *session.Context) string {
	sc.CurrentVehicle = name
	sc.State = session.StateWaitingForIntent
	suffix := sentimentSuffix(nlp.AnalyzeSentiment(utterance))
	return fmt.Sprintf("Вы имеете в виду %s? Хотите узнать цену, характеристики или тест-драйв?%s", name, suffix)
}

func (e *Engine) offerFromCategory(cat, utterance string, sc *session.Context) (string, Outcome) {
	suffix := sentimentSuffix(nlp.AnalyzeSentiment(utterance))
	names := e.catalog.VehiclesInCategory(cat)
	if len(names) == 0 {
		return fmt.Sprintf("У нас нет машин в категории %s. Попробуйте другую категорию!%s", cat, suffix), OutcomeFailure
	}
	name := pick(e.rng, names)
	sc.CurrentVehicle = name
	sc.State = session.StateWaitingForIntent
	return fmt.Sprintf("Из %s есть %s. Хотите узнать цену, характеристики или тест-драйв?%s", cat, name, suffix), OutcomeIntent
}

func (e *Engine) processNone(utterance string, sc *session.Context) (string, Outcome, string) {
	if name, ok := e.extractVehicleName(utterance); ok {
		return e.offerVehicle(name, utterance, sc), OutcomeIntent, ""
	}
	if cat, ok := e.extractCategory(utterance); ok {
		reply, outcome := e.offerFromCategory(cat, utterance, sc)
		return reply, outcome, ""
	}
	if intent, ok := e.classifyIntent(utterance); ok {
		if reply, answered := e.answerForIntent(intent, utterance, sc); answered {
			return reply, OutcomeIntent, intent
		}
	}
	if reply, ok := e.retrieve(utterance); ok {
		return reply, OutcomeRetrieved, session.IntentOfftopic
	}
	return e.failurePhrase(utterance), OutcomeFailure, ""
}

func (e *Engine) processWaitingForCar(utterance string, sc *session.Context) (string, Outcome, string) {
	if name, ok := e.extractVehicleName(utterance); ok {
		return e.offerVehicle(name, utterance, sc), OutcomeIntent, ""
	}
	if cat, ok := e.extractCategory(utterance); ok {
		reply, outcome := e.offerFromCategory(cat, utterance, sc)
		return reply, outcome, ""
	}
	suffix := sentimentSuffix(nlp.AnalyzeSentiment(utterance))
	return "Пожалуйста, уточните название машины или категорию." + suffix, OutcomeFailure, ""
}

func (e *Engine) processWaitingForIntent(utterance string, sc *session.Context) (string, Outcome, string) {
	if name, ok := e.extractVehicleName(utterance); ok {
		sc.CurrentVehicle = name
	}

	intent, ok := e.classifyIntent(utterance)
	switch {
	case ok && vehicleIntents[intent]:
		return e.vehicleIntentReply(intent, utterance, sc), OutcomeIntent, intent
	case ok && intent == IntentYes:
		return e.affirmativeReply(utterance, sc), OutcomeIntent, intent
	case ok && intent == IntentNo:
		return e.negativeReply(utterance, sc), OutcomeIntent, intent
	}

	subject := sc.CurrentVehicle
	if subject == "" {
		subject = "машину"
	}
	suffix := sentimentSuffix(nlp.AnalyzeSentiment(utterance))
	return fmt.Sprintf("Что хотите узнать про %s: цену, характеристики или тест-драйв?%s", subject, suffix), OutcomeFailure, ""
}
