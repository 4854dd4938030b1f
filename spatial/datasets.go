package spatial

import (
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
)

// Static dataset file names, resolved against the configured data directory.
const (
	ParcelsFile   = "cadastre-75-parcelles.json"
	BuildingsFile = "cadastre-75-batiments.json"
)

// Datasets holds the two static GeoJSON collections. They are loaded once at
// startup and shared read-only across requests; a nil collection means the
// file was missing or unreadable and lookups against it report the dataset as
// unavailable instead of failing the whole process.
type Datasets struct {
	Parcels   *geojson.FeatureCollection
	Buildings *geojson.FeatureCollection
}

// LoadDatasets reads the cadastral parcel and building footprint collections
// from dir.
func LoadDatasets(dir string) *Datasets {
	return &Datasets{
		Parcels:   loadCollection(filepath.Join(dir, ParcelsFile), "cadastral parcel"),
		Buildings: loadCollection(filepath.Join(dir, BuildingsFile), "building footprint"),
	}
}

func loadCollection(path, label string) *geojson.FeatureCollection {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("LoadDatasets: %s dataset unavailable at %s: %v", label, path, err)
		return nil
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		log.Printf("LoadDatasets: failed to parse %s dataset at %s: %v", label, path, err)
		return nil
	}
	log.Printf("LoadDatasets: loaded %d %s features from %s", len(fc.Features), label, path)
	return fc
}
