package dialog

import (
	"strings"

	"github.com/avtoline/showroom-bot/internal/session"
)

// vehicleResolver attempts to recover which vehicle the participant means
// when the utterance itself names none. Resolvers run in order; the first
// non-empty result wins.
type vehicleResolver func(e *Engine, utterance string, sc *session.Context) string

var vehicleResolvers = []vehicleResolver{
	vehicleFromUpsell,
	vehicleFromCategory,
	vehicleFromHistory,
}

func (e *Engine) resolveVehicleFromContext(utterance string, sc *session.Context) string {
	for _, resolve := range vehicleResolvers {
		if name := resolve(e, utterance, sc); name != "" {
			return name
		}
	}
	return ""
}

// vehicleFromUpsell: if the previous reply pitched a vehicle, a bare
// follow-up question most likely refers to the pitched one.
func vehicleFromUpsell(e *Engine, _ string, sc *session.Context) string {
	if !strings.Contains(sc.LastReply, upsellMarker) {
		return ""
	}
	name, _ := e.extractVehicleName(sc.LastReply)
	return name
}

// vehicleFromCategory: an utterance naming a category but no concrete
// vehicle resolves to a random vehicle of that category.
func vehicleFromCategory(e *Engine, utterance string, _ *session.Context) string {
	cat, ok := e.extractCategory(utterance)
	if !ok {
		return ""
	}
	names := e.catalog.VehiclesInCategory(cat)
	if len(names) == 0 {
		return ""
	}
	return pick(e.rng, names)
}

// vehicleFromHistory: right after the catalog listing, scan recent
// utterances newest-first for a vehicle name or category mention.
func vehicleFromHistory(e *Engine, _ string, sc *session.Context) string {
	if sc.LastIntent != IntentCarTypes {
		return ""
	}
	for i := len(sc.History) - 1; i >= 0; i-- {
		if name, ok := e.extractVehicleName(sc.History[i]); ok {
			return name
		}
		if cat, ok := e.extractCategory(sc.History[i]); ok {
			if names := e.catalog.VehiclesInCategory(cat); len(names) > 0 {
				return pick(e.rng, names)
			}
		}
	}
	return ""
}
