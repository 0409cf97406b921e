package domain

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ErrNoLocation is returned when an investigation has no parsed XY fix.
var ErrNoLocation = errors.New("investigation has no parsed coordinates")

var epsgCodes = map[CoordinateSystem]int{
	WGS84: 4326,
	KKJ0:  3386,
	KKJ1:  2391,
	KKJ2:  2392,
	KKJ3:  2393,
	KKJ4:  2394,
	KKJ5:  3387,
	YKJ:   2393,
	TM34:  25834,
	TM35:  3067,
	TM36:  25836,
}

func init() {
	for c := GK19; c <= GK31; c++ {
		epsgCodes[c] = 3873 + int(c-GK19)
	}
}

// EPSG returns the EPSG code of c, or 0 for city grids (HKI, VANTAA, ESPOO)
// and unknown systems.
func (c CoordinateSystem) EPSG() int {
	return epsgCodes[c]
}

// Point returns the XY fix as a point in the file's coordinate system.
// The format stores northing in X and easting in Y, so the point is
// (Y, X), with the start elevation as Z when it parsed.
func (inv *Investigation) Point() (*geom.Point, error) {
	north, okX := inv.Coordinates.X.Get()
	east, okY := inv.Coordinates.Y.Get()
	if !okX || !okY {
		return nil, ErrNoLocation
	}

	var p *geom.Point
	if z, ok := inv.Coordinates.StartElevation.Get(); ok {
		p = geom.NewPointFlat(geom.XYZ, []float64{east, north, z})
	} else {
		p = geom.NewPointFlat(geom.XY, []float64{east, north})
	}
	if cs, ok := inv.Spatial.CoordinateSystem.Get(); ok {
		p.SetSRID(cs.EPSG())
	}
	return p, nil
}

// GeoJSON encodes the investigation's point.
func (inv *Investigation) GeoJSON() (*geojson.Geometry, error) {
	p, err := inv.Point()
	if err != nil {
		return nil, err
	}
	g, err := geojson.Encode(p)
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return g, nil
}

// EWKB encodes the investigation's point with its SRID.
func (inv *Investigation) EWKB() ([]byte, error) {
	p, err := inv.Point()
	if err != nil {
		return nil, err
	}
	data, err := ewkb.Marshal(p, ewkb.NDR)
	if err != nil {
		return nil, fmt.Errorf("encode ewkb: %w", err)
	}
	return data, nil
}
