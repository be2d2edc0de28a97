// Package catalog holds the static showroom data the dialogue engine answers
// from: vehicles, per-intent example phrases and response templates, failure
// phrases and matching thresholds. A Catalog is loaded once at startup and is
// read-only afterwards, so it is safe to share across sessions.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Vehicle is a single catalog entry. Immutable.
type Vehicle struct {
	Name        string   `json:"-"`
	Price       int      `json:"price"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// Intent groups the example phrases and reply templates for one intent id.
// Templates may reference [car_name], [price], [description], [car1], [car2].
type Intent struct {
	Examples  []string `json:"examples"`
	Responses []string `json:"responses"`
}

// Thresholds are the acceptance scores for the three matchers, all on a 0..1
// scale.
type Thresholds struct {
	IntentScore         float64 `json:"intent_score"`
	RetrievalSimilarity float64 `json:"retrieval_similarity"`
	VehicleMatch        float64 `json:"vehicle_match"`
}

// Document is the on-disk shape of a catalog file.
type Document struct {
	Vehicles       map[string]Vehicle `json:"vehicles"`
	Intents        map[string]Intent  `json:"intents"`
	FailurePhrases []string           `json:"failure_phrases"`
	Thresholds     Thresholds         `json:"thresholds"`
	HistoryLimit   int                `json:"history_limit"`
}

const (
	defaultHistoryLimit        = 5
	defaultIntentScore         = 0.6
	defaultRetrievalSimilarity = 0.4
	defaultVehicleMatch        = 0.7
)

// Catalog is the validated, immutable view over a Document.
type Catalog struct {
	vehicles       map[string]Vehicle
	names          []string // sorted; the documented deterministic iteration order
	categories     []string // sorted, unique
	byCategory     map[string][]string
	intents        map[string]Intent
	failurePhrases []string
	thresholds     Thresholds
	historyLimit   int
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode %s: %w", path, err)
	}
	return New(doc)
}

// New validates a Document and builds the immutable Catalog.
func New(doc Document) (*Catalog, error) {
	if len(doc.Vehicles) == 0 {
		return nil, fmt.Errorf("catalog: no vehicles defined")
	}
	if len(doc.FailurePhrases) == 0 {
		return nil, fmt.Errorf("catalog: no failure phrases defined")
	}

	c := &Catalog{
		vehicles:       make(map[string]Vehicle, len(doc.Vehicles)),
		byCategory:     make(map[string][]string),
		intents:        make(map[string]Intent, len(doc.Intents)),
		failurePhrases: append([]string(nil), doc.FailurePhrases...),
		thresholds:     doc.Thresholds,
		historyLimit:   doc.HistoryLimit,
	}

	for name, v := range doc.Vehicles {
		if name == "" {
			return nil, fmt.Errorf("catalog: vehicle with empty name")
		}
		if v.Price <= 0 {
			return nil, fmt.Errorf("catalog: vehicle %q has non-positive price %d", name, v.Price)
		}
		v.Name = name
		c.vehicles[name] = v
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)

	seen := make(map[string]bool)
	for _, name := range c.names {
		for _, cat := range c.vehicles[name].Categories {
			if cat == "" {
				return nil, fmt.Errorf("catalog: vehicle %q has an empty category", name)
			}
			c.byCategory[cat] = append(c.byCategory[cat], name)
			if !seen[cat] {
				seen[cat] = true
				c.categories = append(c.categories, cat)
			}
		}
	}
	sort.Strings(c.categories)

	for id, intent := range doc.Intents {
		if id == "" {
			return nil, fmt.Errorf("catalog: intent with empty id")
		}
		c.intents[id] = intent
	}

	if c.historyLimit <= 0 {
		c.historyLimit = defaultHistoryLimit
	}
	if c.thresholds.IntentScore <= 0 || c.thresholds.IntentScore > 1 {
		c.thresholds.IntentScore = defaultIntentScore
	}
	if c.thresholds.RetrievalSimilarity <= 0 || c.thresholds.RetrievalSimilarity > 1 {
		c.thresholds.RetrievalSimilarity = defaultRetrievalSimilarity
	}
	if c.thresholds.VehicleMatch <= 0 || c.thresholds.VehicleMatch > 1 {
		c.thresholds.VehicleMatch = defaultVehicleMatch
	}

	return c, nil
}

// Vehicle returns the entry for name.
func (c *Catalog) Vehicle(name string) (Vehicle, bool) {
	v, ok := c.vehicles[name]
	return v, ok
}

// Names returns all vehicle names in sorted order. The slice is shared; do
// not mutate.
func (c *Catalog) Names() []string {
	return c.names
}

// Categories returns all category tags present in the catalog, sorted.
func (c *Catalog) Categories() []string {
	return c.categories
}

// VehiclesInCategory returns the names of all vehicles tagged with cat, in
// name order.
func (c *Catalog) VehiclesInCategory(cat string) []string {
	return c.byCategory[cat]
}

// Intent returns the configuration for an intent id.
func (c *Catalog) Intent(id string) (Intent, bool) {
	in, ok := c.intents[id]
	return in, ok
}

// IntentIDs returns all configured intent ids, sorted.
func (c *Catalog) IntentIDs() []string {
	ids := make([]string, 0, len(c.intents))
	for id := range c.intents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FailurePhrases returns the generic failure templates.
func (c *Catalog) FailurePhrases() []string {
	return c.failurePhrases
}

// Thresholds returns the matcher acceptance scores.
func (c *Catalog) Thresholds() Thresholds {
	return c.thresholds
}

// HistoryLimit bounds the per-session utterance history.
func (c *Catalog) HistoryLimit() int {
	return c.historyLimit
}
