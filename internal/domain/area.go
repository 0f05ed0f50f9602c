package domain

// AreaOfInterest is a neighbourhood detected in free text, bound to its main road
type AreaOfInterest struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	RoadID  string `json:"roadId" yaml:"road"`
}
