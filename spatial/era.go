package spatial

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lalit-insnapsys/address-details-api/models"
	"github.com/lalit-insnapsys/address-details-api/utils"
)

// envelopeDelta is the half-width in degrees of the adjacency bounding box
// built around the query point.
const envelopeDelta = 0.0001

const yearUnknown = "Year Unknown"

// constructionPeriods maps the c_perconst period codes to their labels.
var constructionPeriods = map[int]string{
	1:  "Before 1850",
	2:  "from 1801 to 1850",
	3:  "from 1851 to 1914",
	5:  "from 1915 to 1939",
	6:  "from 1940 to 1967",
	7:  "from 1968 to 1975",
	8:  "from 1976 to 1981",
	9:  "from 1982 to 1989",
	10: "from 1990 to 1999",
	11: "2000 and up",
	12: "2008 and up",
	99: yearUnknown,
}

// ConstructionEra labels a building by its exact construction year when known,
// otherwise by its period code, otherwise "Year Unknown".
func ConstructionEra(attrs models.FootprintAttributes) string {
	if attrs.AnConst != nil && *attrs.AnConst != 0 {
		return strconv.Itoa(*attrs.AnConst)
	}
	if attrs.CPerconst != nil {
		if label, ok := constructionPeriods[*attrs.CPerconst]; ok {
			return label
		}
	}
	return yearUnknown
}

// GroupByEra finds the cadastral parcel groups around a point and collects
// their building footprints keyed by construction era. Per-parcel query
// failures are logged and skipped so that partial results still come back;
// only the initial bounding-box query is fatal.
func GroupByEra(ctx context.Context, client *http.Client, baseURL string, point models.GeoPoint) (*models.EraGroups, error) {
	ids, err := cadastralParcelIDs(ctx, client, baseURL, point)
	if err != nil {
		return nil, err
	}

	groups := models.NewEraGroups()
	for _, id := range ids {
		features, err := footprintsByParcel(ctx, client, baseURL, id)
		if err != nil {
			log.Printf("GroupByEra: footprint query failed for n_sq_pc %d: %v", id, err)
			continue
		}
		for _, feature := range features {
			groups.Add(ConstructionEra(feature.Attributes), buildingSummary(feature))
		}
	}
	return groups, nil
}

// cadastralParcelIDs queries the footprints service for everything
// intersecting a small envelope around the point and returns the distinct
// n_sq_pc values in first-encounter order.
func cadastralParcelIDs(ctx context.Context, client *http.Client, baseURL string, point models.GeoPoint) ([]int64, error) {
	params := url.Values{}
	params.Set("geometry", fmt.Sprintf("%g,%g,%g,%g",
		point.Longitude-envelopeDelta, point.Latitude-envelopeDelta,
		point.Longitude+envelopeDelta, point.Latitude+envelopeDelta))
	params.Set("geometryType", "esriGeometryEnvelope")
	params.Set("inSR", "4326")
	params.Set("spatialRel", "esriSpatialRelIntersects")
	params.Set("outFields", "n_sq_pc")
	params.Set("returnGeometry", "false")
	params.Set("f", "json")

	body, err := fetchBytes(ctx, client, queryURL(baseURL, params))
	if err != nil {
		return nil, &models.TransportError{Op: "footprints envelope query", Err: err}
	}
	var parsed models.FootprintQueryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &models.TransportError{Op: "footprints envelope query", Err: err}
	}
	if len(parsed.Features) == 0 {
		return nil, &models.NotFoundError{Msg: "No buildings found at this location."}
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, feature := range parsed.Features {
		if feature.Attributes.NSqPc == nil {
			continue
		}
		id := *feature.Attributes.NSqPc
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func footprintsByParcel(ctx context.Context, client *http.Client, baseURL string, id int64) ([]models.FootprintFeature, error) {
	params := url.Values{}
	params.Set("where", fmt.Sprintf("n_sq_pc = %d", id))
	params.Set("outFields", "*")
	params.Set("f", "json")

	body, err := fetchBytes(ctx, client, queryURL(baseURL, params))
	if err != nil {
		return nil, err
	}
	var parsed models.FootprintQueryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	return parsed.Features, nil
}

func buildingSummary(feature models.FootprintFeature) models.BuildingSummary {
	summary := models.BuildingSummary{
		CadastralParcelID: orInt64(feature.Attributes.NSqPc),
		Area:              orFloat(feature.Attributes.ShapeArea),
		Perimeter:         orFloat(feature.Attributes.ShapeLength),
		HasTerrace:        orString(feature.Attributes.BTerrasse),
	}

	var rings models.EsriRings
	if len(feature.Geometry) > 0 {
		if err := json.Unmarshal(feature.Geometry, &rings); err != nil {
			rings.Rings = nil
		}
	}
	if len(rings.Rings) > 0 {
		geometry, err := reprojectRings(rings.Rings)
		if err != nil {
			log.Printf("GroupByEra: ring reprojection failed: %v", err)
			summary.Geometry = feature.Geometry
		} else {
			summary.Geometry = geometry
		}
	} else if len(feature.Geometry) > 0 {
		summary.Geometry = feature.Geometry
	}
	return summary
}

// reprojectRings converts Lambert-93 esri rings into a WGS84 GeoJSON Polygon.
func reprojectRings(rings [][][]float64) (*geojson.Geometry, error) {
	polygon := make(orb.Polygon, 0, len(rings))
	for _, ring := range rings {
		converted := make(orb.Ring, 0, len(ring))
		for _, vertex := range ring {
			if len(vertex) < 2 {
				continue
			}
			lat, lon, err := utils.ToWGS84(vertex[0], vertex[1])
			if err != nil {
				return nil, err
			}
			converted = append(converted, orb.Point{lon, lat})
		}
		polygon = append(polygon, converted)
	}
	return geojson.NewGeometry(polygon), nil
}

func queryURL(baseURL string, params url.Values) string {
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + params.Encode()
}

func orInt64(v *int64) any {
	if v != nil {
		return *v
	}
	return models.NotAvailable
}

func orFloat(v *float64) any {
	if v != nil {
		return *v
	}
	return models.NotAvailable
}

func orString(v *string) any {
	if v != nil {
		return *v
	}
	return models.NotAvailable
}
