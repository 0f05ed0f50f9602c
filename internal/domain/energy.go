package domain

// Energy represents a power consumption snapshot for a building
type Energy struct {
	BuildingID     string  `json:"buildingId"`
	ConsumptionKWh float64 `json:"consumptionKwh"`
	Status         string  `json:"status"`
}

// UnknownEnergy is the record the energy backend produces for an unknown building
func UnknownEnergy(buildingID string) Energy {
	return Energy{
		BuildingID:     buildingID,
		ConsumptionKWh: 0,
		Status:         UnknownLabel,
	}
}
