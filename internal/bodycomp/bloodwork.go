package bodycomp

import (
	"math"
	"time"
)

type BloodworkLog struct {
	ID       int       `json:"id"`
	UserID   int       `json:"userId"`
	TestDate time.Time `json:"testDate"`

	TestosteroneTotal *float64 `json:"testosteroneTotal,omitempty"` // nmol/l
	TestosteroneFree  *float64 `json:"testosteroneFree,omitempty"`  // pmol/l
	SHBG              *float64 `json:"shbg,omitempty"`              // nmol/l
	Oestradiol        *float64 `json:"oestradiol,omitempty"`        // pmol/l
	Prolactin         *float64 `json:"prolactin,omitempty"`         // mIU/l

	HbA1c          *float64 `json:"hba1c,omitempty"`          // %
	GlucoseFasting *float64 `json:"glucoseFasting,omitempty"` // mmol/l
	InsulinFasting *float64 `json:"insulinFasting,omitempty"` // mIU/l
	HomaIndex      *float64 `json:"homaIndex,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReferenceRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
	Name string  `json:"name"`
}

// ReferenceRanges holds the lab reference interval per bloodwork marker.
var ReferenceRanges = map[string]ReferenceRange{
	"testosterone_total": {Min: 10.0, Max: 35.0, Unit: "nmol/l", Name: "Testosterone Total"},
	"testosterone_free":  {Min: 225.0, Max: 725.0, Unit: "pmol/l", Name: "Testosterone Free"},
	"shbg":               {Min: 18.0, Max: 54.0, Unit: "nmol/l", Name: "SHBG"},
	"oestradiol":         {Min: 40.0, Max: 160.0, Unit: "pmol/l", Name: "Oestradiol"},
	"prolactin":          {Min: 86.0, Max: 324.0, Unit: "mIU/l", Name: "Prolactin"},
	"hba1c":              {Min: 4.0, Max: 5.6, Unit: "%", Name: "HbA1c"},
	"glucose_fasting":    {Min: 3.9, Max: 5.5, Unit: "mmol/l", Name: "Glucose (Fasting)"},
	"insulin_fasting":    {Min: 2.0, Max: 25.0, Unit: "mIU/l", Name: "Insulin (Fasting)"},
	"homa_index":         {Min: 0.0, Max: 2.0, Unit: "", Name: "HOMA-Index"},
}

func (b *BloodworkLog) markerValue(field string) *float64 {
	switch field {
	case "testosterone_total":
		return b.TestosteroneTotal
	case "testosterone_free":
		return b.TestosteroneFree
	case "shbg":
		return b.SHBG
	case "oestradiol":
		return b.Oestradiol
	case "prolactin":
		return b.Prolactin
	case "hba1c":
		return b.HbA1c
	case "glucose_fasting":
		return b.GlucoseFasting
	case "insulin_fasting":
		return b.InsulinFasting
	case "homa_index":
		return b.HomaIndex
	default:
		return nil
	}
}

// Status returns "low", "normal" or "high" for the given marker, or empty
// string when the marker is unset or unknown.
func (b *BloodworkLog) Status(field string) string {
	value := b.markerValue(field)
	if value == nil {
		return ""
	}
	refRange, ok := ReferenceRanges[field]
	if !ok {
		return ""
	}

	switch {
	case *value < refRange.Min:
		return "low"
	case *value > refRange.Max:
		return "high"
	default:
		return "normal"
	}
}

// PercentOfRange normalizes the marker to a 0-100% scale within its reference
// interval, for rendering different markers on one chart. Values outside the
// interval land below 0 or above 100.
func (b *BloodworkLog) PercentOfRange(field string) *float64 {
	value := b.markerValue(field)
	if value == nil {
		return nil
	}
	refRange, ok := ReferenceRanges[field]
	if !ok {
		return nil
	}

	rangeSpan := refRange.Max - refRange.Min
	percentage := (*value - refRange.Min) / rangeSpan * 100
	percentage = math.Round(percentage*10) / 10
	return &percentage
}
