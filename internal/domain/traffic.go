package domain

// Traffic represents a congestion snapshot for a road segment
type Traffic struct {
	RoadID          string  `json:"roadId"`
	CongestionLevel string  `json:"congestionLevel"`
	AverageSpeed    float64 `json:"averageSpeed"` // km/h
}

// UnknownLabel is the status the traffic and energy backends use for missing records
const UnknownLabel = "Inconnu"

// UnknownTraffic is returned when the traffic backend has no record for a road
func UnknownTraffic(roadID string) Traffic {
	return Traffic{
		RoadID:          roadID,
		CongestionLevel: UnknownLabel,
		AverageSpeed:    0,
	}
}

// Known reports whether the backend produced data for the road
func (t Traffic) Known() bool {
	return t.CongestionLevel != "" && t.CongestionLevel != UnknownLabel
}
