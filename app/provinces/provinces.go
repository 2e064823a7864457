// Package provinces loads the province feature collection shown on the map and
// assigns each province a fill color by population bucket.
//
// The collection is GeoJSON: a FeatureCollection whose features carry name, name_th,
// population and region properties. Geometry is passed through untouched, the browser
// renders it.
package provinces

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	log "github.com/go-pkgz/lgr"
)

//go:embed data/thailand-provinces.json
var dataFS embed.FS

const embeddedFile = "data/thailand-provinces.json"

// ErrNotFound is returned when a province is not in the collection.
var ErrNotFound = errors.New("province not found")

// Province holds the properties of a single province feature.
type Province struct {
	Name       string `json:"name"`
	NameTH     string `json:"name_th"`
	Population int64  `json:"population"`
	Region     string `json:"region"`
}

// Properties are feature properties as served to the browser, with the computed fill color.
type Properties struct {
	Province
	Color string `json:"color,omitempty"`
}

// Geometry is a GeoJSON geometry, coordinates are kept raw.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature is a GeoJSON feature for one province.
type Feature struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Collection is a GeoJSON feature collection.
type Collection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Summary is a province with its fill color and URL-friendly slug, used by the JSON API.
type Summary struct {
	Province
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// Atlas is an immutable, validated province collection. Safe for concurrent use.
type Atlas struct {
	payload   []byte    // encoded collection with colors, served as-is
	summaries []Summary // sorted by population descending
	bySlug    map[string]Summary
}

// Embedded loads the collection compiled into the binary.
func Embedded() (*Atlas, error) {
	data, err := dataFS.ReadFile(embeddedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded provinces: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// LoadFile loads the collection from a GeoJSON file.
func LoadFile(path string) (*Atlas, error) {
	fh, err := os.Open(path) //nolint:gosec // path is from CLI flag, controlled by admin
	if err != nil {
		return nil, fmt.Errorf("failed to open provinces file: %w", err)
	}
	defer fh.Close()

	atlas, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("failed to load provinces from %s: %w", path, err)
	}
	return atlas, nil
}

// Load decodes and validates a GeoJSON feature collection and computes fill colors.
// Every feature must be a Polygon or MultiPolygon with a unique non-empty name and
// a non-negative population.
func Load(r io.Reader) (*Atlas, error) {
	var coll Collection
	if err := json.NewDecoder(r).Decode(&coll); err != nil {
		return nil, fmt.Errorf("failed to decode provinces: %w", err)
	}
	if coll.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected collection type %q", coll.Type)
	}
	if len(coll.Features) == 0 {
		return nil, errors.New("no provinces in collection")
	}

	atlas := &Atlas{bySlug: make(map[string]Summary, len(coll.Features))}
	for i := range coll.Features {
		f := &coll.Features[i]
		if err := validateFeature(*f); err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		f.Properties.Color = ColorFor(f.Properties.Population)

		sum := Summary{Province: f.Properties.Province, Slug: Slug(f.Properties.Name), Color: f.Properties.Color}
		if _, dup := atlas.bySlug[sum.Slug]; dup {
			return nil, fmt.Errorf("feature %d: duplicate province %q", i, f.Properties.Name)
		}
		atlas.bySlug[sum.Slug] = sum
		atlas.summaries = append(atlas.summaries, sum)
	}

	sort.SliceStable(atlas.summaries, func(i, j int) bool {
		return atlas.summaries[i].Population > atlas.summaries[j].Population
	})

	payload, err := json.Marshal(coll)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provinces: %w", err)
	}
	atlas.payload = payload

	log.Printf("[DEBUG] loaded %d provinces", len(atlas.summaries))
	return atlas, nil
}

// validateFeature checks a single feature.
func validateFeature(f Feature) error {
	if f.Type != "Feature" {
		return fmt.Errorf("unexpected feature type %q", f.Type)
	}
	if strings.TrimSpace(f.Properties.Name) == "" {
		return errors.New("province name is empty")
	}
	if f.Properties.Population < 0 {
		return fmt.Errorf("negative population for %q", f.Properties.Name)
	}
	switch f.Geometry.Type {
	case "Polygon", "MultiPolygon":
	default:
		return fmt.Errorf("unsupported geometry %q for %q", f.Geometry.Type, f.Properties.Name)
	}
	if len(f.Geometry.Coordinates) == 0 {
		return fmt.Errorf("no coordinates for %q", f.Properties.Name)
	}
	return nil
}

// GeoJSON returns the encoded collection with computed colors.
// The returned slice is shared and must not be modified.
func (a *Atlas) GeoJSON() []byte {
	return a.payload
}

// Provinces returns all provinces sorted by population descending.
func (a *Atlas) Provinces() []Summary {
	res := make([]Summary, len(a.summaries))
	copy(res, a.summaries)
	return res
}

// Find looks up a province by name or slug, case-insensitive.
func (a *Atlas) Find(name string) (Summary, error) {
	if sum, ok := a.bySlug[Slug(name)]; ok {
		return sum, nil
	}
	return Summary{}, ErrNotFound
}

// Slug lowercases the name and joins words with dashes, "Chiang Mai" -> "chiang-mai".
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
