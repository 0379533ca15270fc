package bodycomp

import "time"

type WeightLog struct {
	ID                int       `json:"id"`
	UserID            int       `json:"userId"`
	Weight            float64   `json:"weight"`
	BodyFatPercentage *float64  `json:"bodyFatPercentage,omitempty"`
	VisceralFat       *float64  `json:"visceralFat,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	LoggedAt          time.Time `json:"loggedAt"`
}

// WeightChartData is the payload shape the chart frontend consumes: parallel
// arrays indexed by entry, optional series carry nulls for missing values.
type WeightChartData struct {
	Dates       []string   `json:"dates"`
	Weights     []float64  `json:"weights"`
	BodyFat     []*float64 `json:"body_fat"`
	VisceralFat []*float64 `json:"visceral_fat"`
}
