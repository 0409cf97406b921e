package domain

import (
	"encoding/json"
	"strings"
)

// LabResult is a laboratory result attached to a NO or NE sample.
// Implementations: GrainSize, WaterContent, OtherLab.
type LabResult interface {
	Kind() string
	isLabResult()
}

// GrainSize is one RK sieve point.
type GrainSize struct {
	GrainMM     Field[float64] `json:"grain_mm"`
	PassPercent Field[float64] `json:"pass_percent"`
}

// WaterContent is an LB line whose attribute is w.
type WaterContent struct {
	Percent Field[float64] `json:"percent"`
	Unit    Field[string]  `json:"unit"`
}

// OtherLab is any other LB attribute.
type OtherLab struct {
	Attribute Field[string] `json:"attribute"`
	Result    Field[string] `json:"result"`
	Unit      Field[string] `json:"unit"`
}

func (GrainSize) Kind() string    { return "grain_size" }
func (WaterContent) Kind() string { return "water_content" }
func (OtherLab) Kind() string     { return "other" }

func (GrainSize) isLabResult()    {}
func (WaterContent) isLabResult() {}
func (OtherLab) isLabResult()     {}

func (g GrainSize) MarshalJSON() ([]byte, error) {
	type plain GrainSize
	return json.Marshal(struct {
		Kind string `json:"kind"`
		plain
	}{g.Kind(), plain(g)})
}

func (w WaterContent) MarshalJSON() ([]byte, error) {
	type plain WaterContent
	return json.Marshal(struct {
		Kind string `json:"kind"`
		plain
	}{w.Kind(), plain(w)})
}

func (o OtherLab) MarshalJSON() ([]byte, error) {
	type plain OtherLab
	return json.Marshal(struct {
		Kind string `json:"kind"`
		plain
	}{o.Kind(), plain(o)})
}

// waterContentAttribute is the LB attribute code for water content.
const waterContentAttribute = "w"

// newGrainSize reads RK params: grain size in mm, passing percentage.
func newGrainSize(params []string) GrainSize {
	return GrainSize{
		GrainMM:     column(params, 0, DecodeFloat),
		PassPercent: column(params, 1, DecodeFloat),
	}
}

// newLabResult reads LB params: attribute, result, unit.
func newLabResult(params []string) LabResult {
	if len(params) > 0 && strings.EqualFold(params[0], waterContentAttribute) {
		return WaterContent{
			Percent: column(params, 1, DecodeFloat),
			Unit:    column(params, 2, DecodeString),
		}
	}
	return OtherLab{
		Attribute: column(params, 0, DecodeString),
		Result:    column(params, 1, DecodeString),
		Unit:      column(params, 2, DecodeString),
	}
}
