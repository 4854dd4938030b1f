package models

import (
	"bytes"
	"encoding/json"
)

// NotAvailable is the placeholder used for absent upstream attributes.
const NotAvailable = "Not Available"

// GeoPoint is a geographic coordinate pair in WGS84 (EPSG:4326).
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParcelLocateResult is the outcome of a reverse-geocode parcel lookup.
// ParcelID is nil when no parcel could be matched; ParcelData always carries
// the upstream response body or an {"error": ...} object.
type ParcelLocateResult struct {
	ParcelID   *string         `json:"parcel_id"`
	ParcelData json.RawMessage `json:"parcel_data"`
}

// ReverseGeocodeResponse is the shape returned by the reverse-geocoding API.
type ReverseGeocodeResponse struct {
	Features []ReverseGeocodeFeature `json:"features"`
}

type ReverseGeocodeFeature struct {
	Properties ReverseGeocodeProperties `json:"properties"`
}

type ReverseGeocodeProperties struct {
	ID       string   `json:"id"`
	Distance *float64 `json:"distance"`
}

// FootprintQueryResponse is the envelope returned by the footprints service.
type FootprintQueryResponse struct {
	Features []FootprintFeature `json:"features"`
}

type FootprintFeature struct {
	Attributes FootprintAttributes `json:"attributes"`
	Geometry   json.RawMessage     `json:"geometry"`
}

// FootprintAttributes carries the building attributes this API consumes.
// Pointers distinguish absent attributes from zero values.
type FootprintAttributes struct {
	NSqPc       *int64   `json:"n_sq_pc"`
	AnConst     *int     `json:"an_const"`
	CPerconst   *int     `json:"c_perconst"`
	ShapeArea   *float64 `json:"Shape_Area"`
	ShapeLength *float64 `json:"Shape_Length"`
	BTerrasse   *string  `json:"b_terrasse"`
}

// EsriRings is the ring-based polygon geometry used by the footprints service,
// expressed in Lambert-93 projected coordinates.
type EsriRings struct {
	Rings [][][]float64 `json:"rings"`
}

// BuildingSummary is one building entry inside a construction-era group.
// Fields hold either the upstream value or the literal "Not Available".
type BuildingSummary struct {
	CadastralParcelID any `json:"cadastral_parcel_id"`
	Area              any `json:"area"`
	Perimeter         any `json:"perimeter"`
	HasTerrace        any `json:"has_terrace"`
	Geometry          any `json:"geometry"`
}

// EraGroups maps construction-era labels to building summaries while
// preserving first-encounter insertion order, which a plain map cannot do.
type EraGroups struct {
	labels []string
	groups map[string][]BuildingSummary
}

func NewEraGroups() *EraGroups {
	return &EraGroups{groups: make(map[string][]BuildingSummary)}
}

// Add appends a building under the given era label, registering the label on
// first use.
func (g *EraGroups) Add(label string, b BuildingSummary) {
	if _, ok := g.groups[label]; !ok {
		g.labels = append(g.labels, label)
	}
	g.groups[label] = append(g.groups[label], b)
}

// Labels returns the era labels in insertion order.
func (g *EraGroups) Labels() []string {
	return g.labels
}

// Buildings returns the summaries recorded under a label.
func (g *EraGroups) Buildings(label string) []BuildingSummary {
	return g.groups[label]
}

// Len returns the number of distinct era labels.
func (g *EraGroups) Len() int {
	return len(g.labels)
}

// MarshalJSON emits the groups as a JSON object keyed by era label, in
// insertion order.
func (g *EraGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range g.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(g.groups[label])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
