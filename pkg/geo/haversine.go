package geo

import "math"

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two points
// given in degrees. NaN inputs propagate to the result.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// MinBoxDist returns a lower bound in kilometers on the great-circle distance
// from a point to any point of the lat/lon box. It is exact when the box is a
// single point.
func MinBoxDist(lat, lon, minLat, minLon, maxLat, maxLon float64) float64 {
	var dLat float64
	switch {
	case lat < minLat:
		dLat = minLat - lat
	case lat > maxLat:
		dLat = lat - maxLat
	}
	var dLon float64
	switch {
	case lon < minLon:
		dLon = math.Min(minLon-lon, lon+360-maxLon)
	case lon > maxLon:
		dLon = math.Min(lon-maxLon, minLon+360-lon)
	}

	// cos(lat) is smallest at whichever box edge is nearer a pole.
	cosBox := math.Min(math.Cos(minLat*math.Pi/180), math.Cos(maxLat*math.Pi/180))
	sLat := math.Sin(dLat * math.Pi / 360)
	sLon := math.Sin(dLon * math.Pi / 360)
	a := sLat*sLat + math.Cos(lat*math.Pi/180)*cosBox*sLon*sLon
	a = math.Min(math.Max(a, 0), 1)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
