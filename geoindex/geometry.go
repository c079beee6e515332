// Package geoindex is the boundary adapter between loosely-typed external
// geometry documents and the rtree package's envelopes: geometry extraction,
// per-session tree ownership, and structural dump/broadcast for observers.
package geoindex

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/nullisland/omtree/rtree"
)

// ErrUnknownGeometryKind is returned when a document's "type" field is not
// one of Point, Polygon or GeometryCollection.
var ErrUnknownGeometryKind = errors.New("geoindex: unknown geometry kind")

// ErrMalformedCoordinates is returned when a geometry's coordinates are
// missing, have the wrong arity for their kind, or contain a null or
// non-finite value.
var ErrMalformedCoordinates = errors.New("geoindex: malformed coordinates")

// Kind tags a Geometry's shape.
type Kind string

const (
	KindPoint              Kind = "Point"
	KindPolygon            Kind = "Polygon"
	KindGeometryCollection Kind = "GeometryCollection"
)

// Geometry is a tagged variant over the geometry kinds this adapter accepts.
// Exactly one of the kind-specific fields is populated, matching Kind.
type Geometry struct {
	Kind Kind

	// Point coordinates, [lon, lat].
	Point [2]float64

	// Polygon rings: each ring is a closed sequence of [lon, lat] pairs.
	// Only the outer ring (index 0) contributes to the bounding envelope.
	Polygon [][][2]float64

	// Geometries holds the members of a GeometryCollection.
	Geometries []Geometry
}

// document mirrors the on-wire shape this adapter decodes from.
type document struct {
	Type        string            `json:"type"`
	Coordinates json.RawMessage   `json:"coordinates,omitempty"`
	Geometries  []json.RawMessage `json:"geometries,omitempty"`
}

// ParseGeometry decodes a GeoJSON-like geometry document into a Geometry.
// The core tree never sees this document; only the envelope computed from
// it ever reaches Insert.
func ParseGeometry(data []byte) (Geometry, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Geometry{}, ErrMalformedCoordinates
	}
	return parseDocument(doc)
}

func parseDocument(doc document) (Geometry, error) {
	switch Kind(doc.Type) {
	case KindPoint:
		var coords []*float64
		if err := json.Unmarshal(doc.Coordinates, &coords); err != nil || len(coords) != 2 {
			return Geometry{}, ErrMalformedCoordinates
		}
		if coords[0] == nil || coords[1] == nil || !finite(*coords[0]) || !finite(*coords[1]) {
			return Geometry{}, ErrMalformedCoordinates
		}
		return Geometry{Kind: KindPoint, Point: [2]float64{*coords[0], *coords[1]}}, nil

	case KindPolygon:
		var raw [][][]*float64
		if err := json.Unmarshal(doc.Coordinates, &raw); err != nil {
			return Geometry{}, ErrMalformedCoordinates
		}
		if len(raw) == 0 || len(raw[0]) == 0 {
			return Geometry{}, ErrMalformedCoordinates
		}
		rings := make([][][2]float64, len(raw))
		for i, ring := range raw {
			for _, c := range ring {
				if len(c) != 2 || c[0] == nil || c[1] == nil || !finite(*c[0]) || !finite(*c[1]) {
					return Geometry{}, ErrMalformedCoordinates
				}
				rings[i] = append(rings[i], [2]float64{*c[0], *c[1]})
			}
		}
		return Geometry{Kind: KindPolygon, Polygon: rings}, nil

	case KindGeometryCollection:
		members := make([]Geometry, 0, len(doc.Geometries))
		for _, raw := range doc.Geometries {
			var member document
			if err := json.Unmarshal(raw, &member); err != nil {
				return Geometry{}, ErrMalformedCoordinates
			}
			g, err := parseDocument(member)
			if err != nil {
				return Geometry{}, err
			}
			members = append(members, g)
		}
		if len(members) == 0 {
			return Geometry{}, ErrMalformedCoordinates
		}
		return Geometry{Kind: KindGeometryCollection, Geometries: members}, nil

	default:
		return Geometry{}, ErrUnknownGeometryKind
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BoundingEnvelope computes g's bounding envelope in projected [0,1]^2
// space. Panics are never used; a geometry that failed ParseGeometry never
// reaches here.
func (g Geometry) BoundingEnvelope() rtree.Envelope {
	env := rtree.Envelope{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	extendWithGeometry(&env, g)
	return env
}

func extendWithGeometry(env *rtree.Envelope, g Geometry) {
	switch g.Kind {
	case KindPoint:
		extendPoint(env, g.Point)
	case KindPolygon:
		if len(g.Polygon) > 0 {
			for _, c := range g.Polygon[0] {
				extendPoint(env, c)
			}
		}
	case KindGeometryCollection:
		for _, member := range g.Geometries {
			extendWithGeometry(env, member)
		}
	}
}

func extendPoint(env *rtree.Envelope, lonLat [2]float64) {
	u, v := project(lonLat[0], lonLat[1])
	if u < env.MinX {
		env.MinX = u
	}
	if v < env.MinY {
		env.MinY = v
	}
	if u > env.MaxX {
		env.MaxX = u
	}
	if v > env.MaxY {
		env.MaxY = v
	}
}

// project maps (longitude, latitude) to the fixed [0,1]^2 space the index
// stores envelopes in.
func project(lon, lat float64) (u, v float64) {
	return lon/360 + 0.5, lat/180 + 0.5
}

// unproject is project's inverse, used when serializing tree envelopes
// back out to observers in Dump.
func unproject(u, v float64) (lon, lat float64) {
	return (u - 0.5) * 360, (v - 0.5) * 180
}
