// Package dialog is the dialogue resolution engine: it turns one utterance
// plus the participant's session state into a reply about the vehicle
// catalog. Resolution is layered: slot extraction and the state machine
// first, then intent-templated answers, then corpus retrieval, with a
// generic failure phrase last. The engine itself is stateless; all mutable
// conversation state lives in the session.Context passed into Process.
package dialog

// Intent ids the state machine branches on. The catalog's intent section is
// keyed by these.
const (
	IntentHello             = "hello"
	IntentBye               = "bye"
	IntentYes               = "yes"
	IntentNo                = "no"
	IntentCarTypes          = "car_types"
	IntentCarPrice          = "car_price"
	IntentCarAvailability   = "car_availability"
	IntentCarRecommendation = "car_recommendation"
	IntentFilterCars        = "filter_cars"
	IntentCarInfo           = "car_info"
	IntentBookTestDrive     = "book_test_drive"
	IntentCompareCars       = "compare_cars"
)

// vehicleIntents require a concrete vehicle to answer about.
var vehicleIntents = map[string]bool{
	IntentCarPrice:        true,
	IntentCarAvailability: true,
	IntentCarInfo:         true,
	IntentBookTestDrive:   true,
}

// Outcome tags how a turn was resolved.
type Outcome int

const (
	// OutcomeIntent: the turn was answered by the state machine or an
	// intent template.
	OutcomeIntent Outcome = iota
	// OutcomeRetrieved: the corpus retrieval fallback produced the reply.
	OutcomeRetrieved
	// OutcomeFailure: the turn could not be resolved; the reply is a
	// failure phrase or a clarification prompt.
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIntent:
		return "intent"
	case OutcomeRetrieved:
		return "retrieved"
	default:
		return "failure"
	}
}
