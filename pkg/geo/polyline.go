package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. encode path coordinates with the google polyline algorithm (precision 5).
func PolylineFromCoords(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}
	pl := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pl = append(pl, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pl))
}

func CoordsFromPolyline(encoded string) ([]Coordinate, error) {
	pl, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	coords := make([]Coordinate, 0, len(pl))
	for _, p := range pl {
		coords = append(coords, NewCoordinate(p[0], p[1]))
	}
	return coords, nil
}
