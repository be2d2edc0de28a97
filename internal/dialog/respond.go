package dialog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/avtoline/showroom-bot/internal/nlp"
	"github.com/avtoline/showroom-bot/internal/session"
)

// upsellMarker prefixes every injected upsell mention. The context resolver
// looks for it in the previous reply.
const upsellMarker = "Кстати, у нас есть"

func sentimentSuffix(s nlp.Sentiment) string {
	switch s {
	case nlp.SentimentPositive:
		return " Рад, что вы в хорошем настроении! 😊"
	case nlp.SentimentNegative:
		return " Кажется, вы сомневаетесь. Давайте подберём авто! 😊"
	default:
		return ""
	}
}

// maybeUpsell appends a mention of a random other vehicle with probability
// prob. exclude keeps the pitched vehicle distinct from the one already
// under discussion.
func (e *Engine) maybeUpsell(answer, exclude string, prob float64) string {
	if e.rng.Float64() >= prob {
		return answer
	}
	var candidates []string
	for _, name := range e.catalog.Names() {
		if name != exclude {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return answer
	}
	return fmt.Sprintf("%s %s %s — отличный выбор!", answer, upsellMarker, pick(e.rng, candidates))
}

// failurePhrase is the last-resort reply: a random failure template with a
// random vehicle substituted and a sentiment suffix.
func (e *Engine) failurePhrase(utterance string) string {
	phrase := pick(e.rng, e.catalog.FailurePhrases())
	phrase = strings.ReplaceAll(phrase, "[car_name]", pick(e.rng, e.catalog.Names()))
	return phrase + sentimentSuffix(nlp.AnalyzeSentiment(utterance))
}

// vehicleReply fills a random template for a vehicle-specific intent.
func (e *Engine) vehicleReply(intent, name, utterance string) string {
	v, ok := e.catalog.Vehicle(name)
	if !ok {
		return "Извините, такой машины нет в наличии."
	}
	desc := v.Description
	if desc == "" {
		desc = "отличный автомобиль"
	}

	cfg, _ := e.catalog.Intent(intent)
	answer := pick(e.rng, cfg.Responses)
	if answer == "" {
		answer = fmt.Sprintf("%s — %s. Цена: %d рублей.", name, desc, v.Price)
	}
	answer = strings.ReplaceAll(answer, "[car_name]", name)
	answer = strings.ReplaceAll(answer, "[price]", strconv.Itoa(v.Price))
	answer = strings.ReplaceAll(answer, "[description]", desc)
	return answer + sentimentSuffix(nlp.AnalyzeSentiment(utterance)) + " Что ещё интересует?"
}

// filterVehicles answers a filter or recommendation request. Vehicles named
// in the recent history window are excluded so repeated filtering keeps
// surfacing new options. A single survivor, or an open-ended request, turns
// into a recommendation and moves the session to WAITING_FOR_INTENT.
func (e *Engine) filterVehicles(price int, category string, sc *session.Context) string {
	recent := make(map[string]bool)
	for _, h := range sc.History {
		if n, ok := e.extractVehicleName(h); ok {
			recent[n] = true
		}
	}

	var matches []string
	for _, name := range e.catalog.Names() {
		v, _ := e.catalog.Vehicle(name)
		if price > 0 && v.Price > price {
			continue
		}
		if category != "" && !slices.Contains(v.Categories, category) {
			continue
		}
		if recent[name] {
			continue
		}
		matches = append(matches, name)
	}

	if len(matches) == 0 {
		var conditions []string
		if price > 0 {
			conditions = append(conditions, fmt.Sprintf("до %d рублей", price))
		}
		if category != "" {
			conditions = append(conditions, "в категории "+category)
		}
		if len(conditions) == 0 {
			conditions = append(conditions, "по вашему запросу")
		}
		return "Извините, нет машин для " + strings.Join(conditions, ", ") + "."
	}

	if len(matches) == 1 || (price == 0 && category == "") {
		name := pick(e.rng, matches)
		sc.CurrentVehicle = name
		sc.State = session.StateWaitingForIntent
		return fmt.Sprintf("Советую %s! Хотите узнать цену или характеристики?", name)
	}
	return "Вот что нашлось: " + strings.Join(matches, ", ") + "."
}

// vehicleIntentReply answers intents that need a concrete vehicle. With no
// vehicle on hand it falls back to context resolution, and failing that asks
// for clarification and waits for a vehicle name.
func (e *Engine) vehicleIntentReply(intent, utterance string, sc *session.Context) string {
	name := sc.CurrentVehicle
	if name == "" {
		suffix := sentimentSuffix(nlp.AnalyzeSentiment(utterance))
		name = e.resolveVehicleFromContext(utterance, sc)
		if name == "" {
			sc.State = session.StateWaitingForCar
			return "Какую машину или категорию вы имеете в виду?" + suffix
		}
		sc.CurrentVehicle = name
		sc.State = session.StateWaitingForIntent
		subject := "авто"
		if cat, ok := e.extractCategory(utterance); ok {
			subject = cat
		}
		return fmt.Sprintf("Из %s есть %s. Хотите узнать цену, характеристики или записаться на тест?%s", subject, name, suffix)
	}
	sc.State = session.StateNone
	return e.vehicleReply(intent, name, utterance)
}

// affirmativeReply continues the prior topic after a "yes".
func (e *Engine) affirmativeReply(utterance string, sc *session.Context) string {
	suffix := sentimentSuffix(nlp.AnalyzeSentiment(utterance))
	switch {
	case sc.LastIntent == IntentHello:
		cats := sample(e.rng, e.catalog.Categories(), 3)
		return fmt.Sprintf("Отлично! У нас есть %s. Что хотите узнать?%s", strings.Join(cats, ", "), suffix)
	case vehicleIntents[sc.LastIntent]:
		name := sc.CurrentVehicle
		if name == "" {
			name = e.resolveVehicleFromContext(utterance, sc)
		}
		if v, ok := e.catalog.Vehicle(name); ok {
			sc.State = session.StateNone
			return fmt.Sprintf("Цена на %s — %d рублей. Что ещё интересует?%s", name, v.Price, suffix)
		}
		return "Назовите машину, чтобы я рассказал подробнее!" + suffix
	case sc.LastIntent == IntentCarTypes:
		names := sample(e.rng, e.catalog.Names(), 2)
		return fmt.Sprintf("У нас есть %s. Назовите одну, чтобы узнать больше!%s", strings.Join(names, ", "), suffix)
	case sc.LastIntent == session.IntentOfftopic:
		return "Хорошо, давайте продолжим! Хотите узнать про авто?" + suffix
	default:
		return "Хорошо, что интересует? Модели, цены или тест-драйв?" + suffix
	}
}

// negativeReply drops the current topic and starts over.
func (e *Engine) negativeReply(utterance string, sc *session.Context) string {
	sc.CurrentVehicle = ""
	sc.State = session.StateNone
	return "Хорошо, какую машину обсудим теперь?" + sentimentSuffix(nlp.AnalyzeSentiment(utterance))
}

// answerForIntent produces the reply for a classified intent, or false when
// the catalog has no configuration for it and the caller should fall through
// to retrieval.
func (e *Engine) answerForIntent(intent, utterance string, sc *session.Context) (string, bool) {
	cfg, ok := e.catalog.Intent(intent)
	if !ok || len(cfg.Responses) == 0 {
		return "", false
	}
	suffix := sentimentSuffix(nlp.AnalyzeSentiment(utterance))
	answer := pick(e.rng, cfg.Responses)

	switch {
	case vehicleIntents[intent]:
		return e.answerUpsold(intent, e.vehicleIntentReply(intent, utterance, sc), sc), true
	case intent == IntentCarRecommendation:
		category, _ := e.extractCategory(utterance)
		answer = e.filterVehicles(0, category, sc)
	case intent == IntentFilterCars:
		price, _ := extractPrice(utterance)
		category, hasCat := e.extractCategory(utterance)
		if price == 0 && !hasCat {
			return "Укажите цену или категорию для фильтрации." + suffix, true
		}
		answer = e.filterVehicles(price, category, sc)
	case intent == IntentCarTypes:
		cats := sample(e.rng, e.catalog.Categories(), 3)
		names := sample(e.rng, e.catalog.Names(), 2)
		answer = fmt.Sprintf("У нас есть %s и модели вроде %s. Что интересно?%s",
			strings.Join(cats, ", "), strings.Join(names, ", "), suffix)
		sc.CurrentVehicle = ""
	case intent == IntentCompareCars:
		first := pick(e.rng, e.catalog.Names())
		second := pickOther(e.rng, e.catalog.Names(), first)
		answer = strings.ReplaceAll(answer, "[car1]", first)
		answer = strings.ReplaceAll(answer, "[car2]", second)
		sc.CurrentVehicle = first
		answer += fmt.Sprintf(" Что интересует: %s или %s?%s", first, second, suffix)
	case intent == IntentYes:
		answer = e.affirmativeReply(utterance, sc)
	case intent == IntentNo:
		answer = e.negativeReply(utterance, sc)
	default:
		answer += suffix
	}

	return e.answerUpsold(intent, answer, sc), true
}

// Upsell mentions are injected only on the browsing intents.
func (e *Engine) answerUpsold(intent, answer string, sc *session.Context) string {
	if intent != IntentHello && intent != IntentCarTypes {
		return answer
	}
	return e.maybeUpsell(answer, sc.CurrentVehicle, e.upsellProb)
}

func pickOther(rng RandomSource, items []string, taken string) string {
	var rest []string
	for _, it := range items {
		if it != taken {
			rest = append(rest, it)
		}
	}
	if len(rest) == 0 {
		return taken
	}
	return pick(rng, rest)
}
