package domain

// Finalize runs the post-processing of a closed investigation: soil type
// backfill, then total depth, then soil layers.
func Finalize(inv *Investigation) {
	BackfillSoilTypes(inv.Observations)
	inv.TotalDepth = TotalDepth(inv.Observations)
	inv.SoilLayers = SoilLayers(inv.Observations)
}

// BackfillSoilTypes fills a Missing or Fallback soil type with the last
// parsed soil type above it. Variants without a soil type are skipped.
// Running it twice has the same effect as running it once.
func BackfillSoilTypes(obs []Observation) {
	var last Field[string]
	for i := range obs {
		s, ok := obs[i].Values.(soilBearer)
		if !ok {
			continue
		}
		soil := s.soilTypeField()
		if soil.IsParsed() {
			last = *soil
			continue
		}
		if last.IsParsed() {
			*soil = last
		}
	}
}

// TotalDepth is the depth of the last observation that has a depth column,
// or Missing if that depth did not parse or no such observation exists.
func TotalDepth(obs []Observation) Field[float64] {
	for i := len(obs) - 1; i >= 0; i-- {
		if obs[i].HasDepth() {
			if d := obs[i].Depth(); d.IsParsed() {
				return d
			}
			return Field[float64]{}
		}
	}
	return Field[float64]{}
}

// SoilLayers sums the thickness of consecutive observations with the same
// soil type. Observations without a parsed depth and soil type are skipped,
// as are those shallower than the previous accepted depth.
func SoilLayers(obs []Observation) []SoilLayer {
	var layers []SoilLayer
	previous := 0.0

	for i := range obs {
		depth, ok := obs[i].Depth().Get()
		if !ok {
			continue
		}
		soil, ok := obs[i].SoilType().Get()
		if !ok {
			continue
		}
		thickness := depth - previous
		if thickness < 0 {
			continue
		}
		if n := len(layers); n > 0 && layers[n-1].SoilType == soil {
			layers[n-1].Thickness += thickness
		} else {
			layers = append(layers, SoilLayer{SoilType: soil, Thickness: thickness})
		}
		previous = depth
	}
	return layers
}
