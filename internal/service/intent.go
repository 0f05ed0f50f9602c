package service

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smartcity/gateway/internal/domain"
)

// defaultZones maps Grand Tunis neighbourhoods to their main road. Order matters:
// areas are reported in table order.
var defaultZones = []domain.AreaOfInterest{
	// Banlieue Nord
	{Keyword: "marsa", RoadID: "GP9"},
	{Keyword: "carthage", RoadID: "GP9"},
	{Keyword: "goulette", RoadID: "GP9"},
	{Keyword: "aouina", RoadID: "GP9"},
	{Keyword: "sidi bou", RoadID: "GP9"},
	// Lac
	{Keyword: "lac", RoadID: "Lac"},
	{Keyword: "kram", RoadID: "Lac"},
	// Ariana / Menzah / Ennasr
	{Keyword: "ariana", RoadID: "X20"},
	{Keyword: "ennasr", RoadID: "X20"},
	{Keyword: "menzah", RoadID: "X20"},
	{Keyword: "ghazela", RoadID: "X20"},
	// Bardo / Manouba
	{Keyword: "bardo", RoadID: "Route X"},
	{Keyword: "manouba", RoadID: "Route X"},
	{Keyword: "campus", RoadID: "Route X"},
	{Keyword: "manar", RoadID: "Route X"},
	// Banlieue Sud
	{Keyword: "mourouj", RoadID: "GP1"},
	{Keyword: "rades", RoadID: "GP1"},
	{Keyword: "ezzahra", RoadID: "GP1"},
	{Keyword: "hammam lif", RoadID: "GP1"},
	{Keyword: "ben arous", RoadID: "GP1"},
	// Centre
	{Keyword: "centre", RoadID: "Z4"},
	{Keyword: "tunis", RoadID: "Z4"},
	{Keyword: "passage", RoadID: "Z4"},
}

// DefaultZones returns a copy of the built-in zone table
func DefaultZones() []domain.AreaOfInterest {
	out := make([]domain.AreaOfInterest, len(defaultZones))
	copy(out, defaultZones)
	return out
}

type zoneFile struct {
	Zones []domain.AreaOfInterest `yaml:"zones"`
}

// LoadZones reads an ordered zone table from a YAML file of the form
//
//	zones:
//	  - keyword: marsa
//	    road: GP9
func LoadZones(path string) ([]domain.AreaOfInterest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intent: read zone table: %w", err)
	}

	var f zoneFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("intent: parse zone table: %w", err)
	}
	if len(f.Zones) == 0 {
		return nil, fmt.Errorf("intent: zone table %s is empty", path)
	}

	for i, z := range f.Zones {
		if strings.TrimSpace(z.Keyword) == "" || strings.TrimSpace(z.RoadID) == "" {
			return nil, fmt.Errorf("intent: zone %d: keyword and road are required", i)
		}
		f.Zones[i].Keyword = strings.ToLower(strings.TrimSpace(z.Keyword))
	}
	return f.Zones, nil
}

// IntentResolver detects areas of interest in free text. It is built once and
// never mutated, so concurrent Resolve calls need no locking.
//
// Matching is plain case-insensitive substring containment by default. That
// inherits a known false-positive quirk ("lac" matches inside "place");
// NewWordIntentResolver matches on word boundaries instead.
type IntentResolver struct {
	zones    []domain.AreaOfInterest
	patterns []*regexp.Regexp // nil in substring mode
}

// NewIntentResolver creates a substring resolver over zones
func NewIntentResolver(zones []domain.AreaOfInterest) *IntentResolver {
	owned := make([]domain.AreaOfInterest, len(zones))
	copy(owned, zones)
	for i := range owned {
		owned[i].Keyword = strings.ToLower(owned[i].Keyword)
	}
	return &IntentResolver{zones: owned}
}

// NewWordIntentResolver creates a resolver that only matches whole words
func NewWordIntentResolver(zones []domain.AreaOfInterest) *IntentResolver {
	r := NewIntentResolver(zones)
	r.patterns = make([]*regexp.Regexp, len(r.zones))
	for i, z := range r.zones {
		r.patterns[i] = regexp.MustCompile(`(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(z.Keyword) + `($|[^\p{L}\p{N}])`)
	}
	return r
}

// Resolve returns every zone whose keyword occurs in text, in table order.
// No match yields an empty slice, not an error.
func (r *IntentResolver) Resolve(text string) []domain.AreaOfInterest {
	lowered := strings.ToLower(text)

	var found []domain.AreaOfInterest
	for i, z := range r.zones {
		if r.matches(i, z.Keyword, lowered) {
			found = append(found, z)
		}
	}
	return found
}

func (r *IntentResolver) matches(i int, keyword, text string) bool {
	if r.patterns != nil {
		return r.patterns[i].MatchString(text)
	}
	return strings.Contains(text, keyword)
}

// ZoneNames returns the keywords in table order, used to hint supported zones
func (r *IntentResolver) ZoneNames() []string {
	names := make([]string, 0, len(r.zones))
	for _, z := range r.zones {
		names = append(names, z.Keyword)
	}
	return names
}
