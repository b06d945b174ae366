package simulator

import (
	"math"
	"time"
)

// zoneProfile calibrates how hard the diurnal peaks hit a zone. The table
// cycles when there are more zones than entries, so arbitrary zone counts
// still get a mix of congested and quiet areas.
type zoneProfile struct {
	BaseSpeedKmh float64
	BaseVolume   float64
	PeakStrength float64
}

var zoneProfiles = []zoneProfile{
	{BaseSpeedKmh: 52, BaseVolume: 140, PeakStrength: 0.55},
	{BaseSpeedKmh: 56, BaseVolume: 120, PeakStrength: 0.40},
	{BaseSpeedKmh: 58, BaseVolume: 110, PeakStrength: 0.30},
	{BaseSpeedKmh: 54, BaseVolume: 130, PeakStrength: 0.35},
	{BaseSpeedKmh: 60, BaseVolume: 90, PeakStrength: 0.20},
	{BaseSpeedKmh: 50, BaseVolume: 150, PeakStrength: 0.60},
	{BaseSpeedKmh: 62, BaseVolume: 75, PeakStrength: 0.10},
	{BaseSpeedKmh: 55, BaseVolume: 115, PeakStrength: 0.33},
}

func profileFor(zoneIndex int) zoneProfile {
	return zoneProfiles[zoneIndex%len(zoneProfiles)]
}

const (
	morningPeakMinute = 8*60 + 20 // 08:20
	morningPeakSigma  = 50.0
	eveningPeakMinute = 17*60 + 45 // 17:45
	eveningPeakSigma  = 60.0
	offPeakBaseline   = 0.08
)

// congestionLevel maps a wall-clock instant to [0,1]: two raised Gaussian
// bumps (morning and evening rush) over a low off-peak baseline, scaled by
// the zone's peak strength. The evening bump is slightly weaker.
func congestionLevel(ts time.Time, prof zoneProfile) float64 {
	minute := float64(ts.Hour()*60 + ts.Minute())

	morning := gaussianBump(minute, morningPeakMinute, morningPeakSigma)
	evening := gaussianBump(minute, eveningPeakMinute, eveningPeakSigma)

	return clamp(offPeakBaseline+prof.PeakStrength*(morning+0.8*evening), 0, 1)
}

func gaussianBump(minute, center, sigma float64) float64 {
	d := minute - center
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}
