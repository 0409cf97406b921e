package domain

import "encoding/json"

// Values is the method-specific payload of an observation. The set of
// implementations is closed: one pointer type per MethodToken.
type Values interface {
	Method() MethodToken
	isValues()
}

// depthBearer is implemented by variants with a depth column.
type depthBearer interface {
	depthField() Field[float64]
}

// soilBearer is implemented by variants with a soil type column.
type soilBearer interface {
	soilTypeField() *Field[string]
}

// Observation is one data row plus the annotations that followed it.
type Observation struct {
	Values              Values
	Notes               []Field[string]
	FreeText            []Field[string]
	HiddenText          []Field[string]
	UnofficialSoilTypes []Field[string]
	// WaterObserved is reserved by the format; no record sets it yet.
	WaterObserved Field[string]
}

// Method returns the method of the underlying values.
func (o Observation) Method() MethodToken {
	if o.Values == nil {
		return methodNone
	}
	return o.Values.Method()
}

// Depth returns the depth column, Missing for variants without one.
func (o Observation) Depth() Field[float64] {
	if d, ok := o.Values.(depthBearer); ok {
		return d.depthField()
	}
	return Field[float64]{}
}

// SoilType returns the soil type column, Missing for variants without one.
func (o Observation) SoilType() Field[string] {
	if s, ok := o.Values.(soilBearer); ok {
		return *s.soilTypeField()
	}
	return Field[string]{}
}

// HasDepth reports whether the variant carries a depth column at all.
func (o Observation) HasDepth() bool {
	_, ok := o.Values.(depthBearer)
	return ok
}

// Sample returns the NO/NE sample payload, or nil for other variants.
func (o Observation) Sample() *Sample {
	switch v := o.Values.(type) {
	case *DisturbedSample:
		return &v.Sample
	case *UndisturbedSample:
		return &v.Sample
	default:
		return nil
	}
}

func (o Observation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Method              MethodToken     `json:"method"`
		Values              Values          `json:"values"`
		Notes               []Field[string] `json:"notes,omitempty"`
		FreeText            []Field[string] `json:"free_text,omitempty"`
		HiddenText          []Field[string] `json:"hidden_text,omitempty"`
		UnofficialSoilTypes []Field[string] `json:"unofficial_soil_types,omitempty"`
		WaterObserved       Field[string]   `json:"water_observed"`
	}{
		Method:              o.Method(),
		Values:              o.Values,
		Notes:               o.Notes,
		FreeText:            o.FreeText,
		HiddenText:          o.HiddenText,
		UnofficialSoilTypes: o.UnofficialSoilTypes,
		WaterObserved:       o.WaterObserved,
	})
}

// DepthReading is the leading depth column shared by most sounding methods.
type DepthReading struct {
	Depth Field[float64] `json:"depth"`
}

func (d *DepthReading) depthField() Field[float64] { return d.Depth }

// SoilReading is the trailing soil type column.
type SoilReading struct {
	SoilType Field[string] `json:"soil_type"`
}

func (s *SoilReading) soilTypeField() *Field[string] { return &s.SoilType }

// WeightSounding is a PA row. The second column is a load, or hits when
// negative.
type WeightSounding struct {
	DepthReading
	// Load and Hits share one column; at most one of them is set.
	Load      Field[float64] `json:"load"`
	Hits      Field[int]     `json:"hits"`
	HalfTurns Field[int]     `json:"half_turns"`
	SoilReading
}

// StickDrilling is a PI row.
type StickDrilling struct {
	DepthReading
	SoilReading
}

// HammerDrilling is an LY row with the load or hit count per depth step.
type HammerDrilling struct {
	DepthReading
	Load Field[float64] `json:"load"`
	Hits Field[int]     `json:"hits"`
	SoilReading
}

// FieldVane is an SI row: intact and disturbed shear strength of the vane test.
type FieldVane struct {
	DepthReading
	ShearStrength          Field[float64] `json:"shear_strength"`
	DisturbedShearStrength Field[float64] `json:"disturbed_shear_strength"`
	Sensitivity            Field[float64] `json:"sensitivity"`
	ResidualStrength       Field[float64] `json:"residual_strength"`
}

// DynamicProbing is an HE row.
type DynamicProbing struct {
	DepthReading
	Hits Field[int] `json:"hits"`
	SoilReading
}

// TorqueProbing is an HK row: hits plus the torque needed to turn the rod.
type TorqueProbing struct {
	DepthReading
	Hits   Field[int]     `json:"hits"`
	Torque Field[float64] `json:"torque"`
	SoilReading
}

// PipeDrilling is a PT row.
type PipeDrilling struct {
	DepthReading
	SoilReading
}

// PinDrilling is a TR row.
type PinDrilling struct {
	DepthReading
	SoilReading
}

// StaticPenetration is a PR row.
type StaticPenetration struct {
	DepthReading
	TotalResistance Field[float64] `json:"total_resistance"`
	SleeveFriction  Field[float64] `json:"sleeve_friction"`
	SoilReading
}

// ConePenetration is a CP row.
type ConePenetration struct {
	DepthReading
	TotalResistance Field[float64] `json:"total_resistance"`
	SleeveFriction  Field[float64] `json:"sleeve_friction"`
	TipResistance   Field[float64] `json:"tip_resistance"`
	SoilReading
}

// PiezoconePenetration is a CU row, a CP row plus pore pressure.
type PiezoconePenetration struct {
	DepthReading
	TotalResistance   Field[float64] `json:"total_resistance"`
	SleeveFriction    Field[float64] `json:"sleeve_friction"`
	TipResistance     Field[float64] `json:"tip_resistance"`
	PoreWaterPressure Field[float64] `json:"pore_water_pressure"`
	SoilReading
}

// StaticDynamicPenetration is an HP row. Mode H stores the shared column
// as Hits, mode P as Pressure.
type StaticDynamicPenetration struct {
	DepthReading
	Hits     Field[int]     `json:"hits"`
	Pressure Field[float64] `json:"pressure"`
	Torque   Field[float64] `json:"torque"`
	Mode     Field[string]  `json:"mode"`
	SoilReading
}

// RigDrilling is a PO row.
type RigDrilling struct {
	DepthReading
	Time Field[int] `json:"time"`
	SoilReading
}

// MWDDrilling is an MW row of measure-while-drilling parameters.
type MWDDrilling struct {
	DepthReading
	AdvanceRate      Field[float64] `json:"advance_rate"`
	CompressiveForce Field[float64] `json:"compressive_force"`
	FlushingPressure Field[float64] `json:"flushing_pressure"`
	WaterConsumption Field[float64] `json:"water_consumption"`
	Torque           Field[float64] `json:"torque"`
	RotationSpeed    Field[float64] `json:"rotation_speed"`
	// Hits is free text in MWD logs, e.g. "ON" or a rate.
	Hits Field[string] `json:"hits"`
	SoilReading
}

// PipeReading is the water level reading layout shared by VP, VO and HU.
type PipeReading struct {
	SurfaceElevation    Field[float64] `json:"surface_elevation"`
	Date                Field[Date]    `json:"date"`
	PipeTopElevation    Field[float64] `json:"pipe_top_elevation"`
	PipeBottomElevation Field[float64] `json:"pipe_bottom_elevation"`
	SieveLength         Field[float64] `json:"sieve_length"`
	Measurer            Field[string]  `json:"measurer"`
}

// GroundwaterPipe is a VP water level reading.
type GroundwaterPipe struct{ PipeReading }

// PerchedWaterPipe is a VO reading from a perched water pipe.
type PerchedWaterPipe struct{ PipeReading }

// WellWaterLevel is a VK reading taken in a well.
type WellWaterLevel struct {
	SurfaceElevation Field[float64] `json:"surface_elevation"`
	Date             Field[Date]    `json:"date"`
	WaterType        Field[string]  `json:"water_type"`
}

// BedrockWaterPipe is a VPK reading from a pipe in bedrock.
type BedrockWaterPipe struct {
	SurfaceElevation Field[float64] `json:"surface_elevation"`
	Date             Field[Date]    `json:"date"`
}

// Piezometer is an HV pore pressure reading.
type Piezometer struct {
	DepthReading
	Pressure Field[float64] `json:"pressure"`
	Date     Field[Date]    `json:"date"`
	Measurer Field[string]  `json:"measurer"`
}

// AirVoidPipe is an HU reading.
type AirVoidPipe struct{ PipeReading }

// Pressuremeter is a PS row.
type Pressuremeter struct {
	DepthReading
	Modulus      Field[float64] `json:"modulus"`
	FailPressure Field[float64] `json:"fail_pressure"`
}

// SettlementGauge is a PM reading.
type SettlementGauge struct {
	Elevation Field[float64] `json:"elevation"`
	Date      Field[Date]    `json:"date"`
	Measurer  Field[string]  `json:"measurer"`
}

// TestPit is a KO row describing one layer of a dug pit.
type TestPit struct {
	DepthReading
	SoilReading
	Stones   Field[float64] `json:"stones"`
	Boulders Field[int]     `json:"boulders"`
	MaxWidth Field[float64] `json:"max_width"`
	MinWidth Field[float64] `json:"min_width"`
}

// CoreSample is the depth interval of a KE or KR core.
type CoreSample struct {
	StartDepth Field[float64] `json:"start_depth"`
	EndDepth   Field[float64] `json:"end_depth"`
}

// CoreExtended is a KE core interval.
type CoreExtended struct{ CoreSample }

// CoreVideo is a KR core interval logged from video.
type CoreVideo struct{ CoreSample }

// Sample is the NO/NE layout. Lab holds RK and LB results in file order.
type Sample struct {
	StartDepth Field[float64] `json:"start_depth"`
	SampleID   Field[string]  `json:"sample_id"`
	EndDepth   Field[float64] `json:"end_depth"`
	SoilReading
	Lab []LabResult `json:"lab,omitempty"`
}

// Sieve returns the grain size results.
func (s *Sample) Sieve() []GrainSize {
	var out []GrainSize
	for _, r := range s.Lab {
		if g, ok := r.(GrainSize); ok {
			out = append(out, g)
		}
	}
	return out
}

// Other returns every non-sieve result, water content included.
func (s *Sample) Other() []LabResult {
	var out []LabResult
	for _, r := range s.Lab {
		if _, ok := r.(GrainSize); !ok {
			out = append(out, r)
		}
	}
	return out
}

// DisturbedSample is an NO sample.
type DisturbedSample struct{ Sample }

// UndisturbedSample is an NE sample.
type UndisturbedSample struct{ Sample }

func (*WeightSounding) Method() MethodToken           { return MethodPA }
func (*StickDrilling) Method() MethodToken            { return MethodPI }
func (*HammerDrilling) Method() MethodToken           { return MethodLY }
func (*FieldVane) Method() MethodToken                { return MethodSI }
func (*DynamicProbing) Method() MethodToken           { return MethodHE }
func (*TorqueProbing) Method() MethodToken            { return MethodHK }
func (*PipeDrilling) Method() MethodToken             { return MethodPT }
func (*PinDrilling) Method() MethodToken              { return MethodTR }
func (*StaticPenetration) Method() MethodToken        { return MethodPR }
func (*ConePenetration) Method() MethodToken          { return MethodCP }
func (*PiezoconePenetration) Method() MethodToken     { return MethodCU }
func (*StaticDynamicPenetration) Method() MethodToken { return MethodHP }
func (*RigDrilling) Method() MethodToken              { return MethodPO }
func (*MWDDrilling) Method() MethodToken              { return MethodMW }
func (*GroundwaterPipe) Method() MethodToken          { return MethodVP }
func (*PerchedWaterPipe) Method() MethodToken         { return MethodVO }
func (*WellWaterLevel) Method() MethodToken           { return MethodVK }
func (*BedrockWaterPipe) Method() MethodToken         { return MethodVPK }
func (*Piezometer) Method() MethodToken               { return MethodHV }
func (*AirVoidPipe) Method() MethodToken              { return MethodHU }
func (*Pressuremeter) Method() MethodToken            { return MethodPS }
func (*SettlementGauge) Method() MethodToken          { return MethodPM }
func (*TestPit) Method() MethodToken                  { return MethodKO }
func (*CoreExtended) Method() MethodToken             { return MethodKE }
func (*CoreVideo) Method() MethodToken                { return MethodKR }
func (*DisturbedSample) Method() MethodToken          { return MethodNO }
func (*UndisturbedSample) Method() MethodToken        { return MethodNE }

func (*WeightSounding) isValues()           {}
func (*StickDrilling) isValues()            {}
func (*HammerDrilling) isValues()           {}
func (*FieldVane) isValues()                {}
func (*DynamicProbing) isValues()           {}
func (*TorqueProbing) isValues()            {}
func (*PipeDrilling) isValues()             {}
func (*PinDrilling) isValues()              {}
func (*StaticPenetration) isValues()        {}
func (*ConePenetration) isValues()          {}
func (*PiezoconePenetration) isValues()     {}
func (*StaticDynamicPenetration) isValues() {}
func (*RigDrilling) isValues()              {}
func (*MWDDrilling) isValues()              {}
func (*GroundwaterPipe) isValues()          {}
func (*PerchedWaterPipe) isValues()         {}
func (*WellWaterLevel) isValues()           {}
func (*BedrockWaterPipe) isValues()         {}
func (*Piezometer) isValues()               {}
func (*AirVoidPipe) isValues()              {}
func (*Pressuremeter) isValues()            {}
func (*SettlementGauge) isValues()          {}
func (*TestPit) isValues()                  {}
func (*CoreExtended) isValues()             {}
func (*CoreVideo) isValues()                {}
func (*DisturbedSample) isValues()          {}
func (*UndisturbedSample) isValues()        {}
