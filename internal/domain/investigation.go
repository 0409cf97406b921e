package domain

// Source identifies the file lines came from. Encoding is the name of the
// charset the bytes were decoded from and is carried through unchanged.
type Source struct {
	Path     string   `json:"path,omitempty"`
	Encoding string   `json:"encoding,omitempty"`
	Lines    []string `json:"-"`
}

// Format is the FO record.
type Format struct {
	Version         Field[string] `json:"version"`
	Software        Field[string] `json:"software"`
	SoftwareVersion Field[string] `json:"software_version"`
}

// Spatial is the KJ record.
type Spatial struct {
	CoordinateSystem Field[CoordinateSystem] `json:"coordinate_system"`
	ElevationSystem  Field[ElevationSystem]  `json:"elevation_system"`
}

// InfraFile is one parsed file.
type InfraFile struct {
	Source         Source          `json:"source"`
	Format         Format          `json:"format"`
	Spatial        Spatial         `json:"spatial"`
	Investigations []Investigation `json:"investigations"`
	Diagnostics    []Diagnostic    `json:"diagnostics,omitempty"`
}

// CountByMethod tallies investigations per parsed method token.
// Investigations without a parsed method are counted under the zero token.
func (f *InfraFile) CountByMethod() map[MethodToken]int {
	return CountByMethod(f.Investigations)
}

// CountByMethod tallies investigations per parsed method token.
func CountByMethod(invs []Investigation) map[MethodToken]int {
	counts := make(map[MethodToken]int)
	for i := range invs {
		counts[invs[i].Method.Token.Or(methodNone)]++
	}
	return counts
}

// Organisations holds OM (owner) and OR (investigator).
type Organisations struct {
	Owner        Field[string] `json:"owner"`
	Investigator Field[string] `json:"investigator"`
}

// Classification is the ML record.
type Classification struct {
	Name Field[ClassificationName] `json:"name"`
}

// Work is the TY record.
type Work struct {
	ID   Field[string] `json:"id"`
	Name Field[string] `json:"name"`
}

// Record is the PK record.
type Record struct {
	Number    Field[int]       `json:"number"`
	Driller   Field[string]    `json:"driller"`
	Inspector Field[string]    `json:"inspector"`
	Processor Field[string]    `json:"processor"`
	Digitized Field[Digitized] `json:"digitized"`
	Condition Field[string]    `json:"condition"`
}

// Method is the TT record. Token selects the layout of observation rows.
type Method struct {
	Token     Field[MethodToken] `json:"token"`
	Category  Field[int]         `json:"category"`
	ID        Field[string]      `json:"id"`
	Standard  Field[string]      `json:"standard"`
	Sampler   Field[Sampler]     `json:"sampler"`
	Specifier Field[string]      `json:"specifier"`
}

// Equipment is the LA record.
type Equipment struct {
	Number      Field[int]    `json:"number"`
	Description Field[string] `json:"description"`
	ConeSize    Field[string] `json:"cone_size"`
}

// Coordinates is the XY record. X is northing and Y is easting.
type Coordinates struct {
	X              Field[float64] `json:"x"`
	Y              Field[float64] `json:"y"`
	StartElevation Field[float64] `json:"start_elevation"`
	Date           Field[Date]    `json:"date"`
	PointID        Field[string]  `json:"point_id"`
}

// Line is the LN record.
type Line struct {
	Name     Field[string]  `json:"name"`
	Stake    Field[float64] `json:"stake"`
	Distance Field[float64] `json:"distance"`
}

// Termination is the reason on the closing -1 line.
type Termination struct {
	Reason Field[TerminationToken] `json:"reason"`
}

// Program holds GR and the GL guide lines.
type Program struct {
	Name   Field[string]   `json:"name"`
	Date   Field[Date]     `json:"date"`
	Author Field[string]   `json:"author"`
	Guide  []Field[string] `json:"guide,omitempty"`
}

// DepthlessRockSample is the AT record.
type DepthlessRockSample struct {
	Attribute Field[string] `json:"attribute"`
	Value     Field[string] `json:"value"`
}

// InitialBorehole is the AL record.
type InitialBorehole struct {
	Depth    Field[float64]          `json:"depth"`
	Method   Field[InitialBoreToken] `json:"method"`
	SoilType Field[string]           `json:"soil_type"`
}

// Standpipe merges the ZP, TP and LP records.
type Standpipe struct {
	TopElevation           Field[float64] `json:"top_elevation"`
	GroundElevation        Field[float64] `json:"ground_elevation"`
	ProtectionTopElevation Field[float64] `json:"protection_top_elevation"`
	CoverElevation         Field[float64] `json:"cover_elevation"`
	SieveBottomElevation   Field[float64] `json:"sieve_bottom_elevation"`

	UpperStructure Field[string]  `json:"upper_structure"`
	SieveLength    Field[float64] `json:"sieve_length"`
	SieveType      Field[string]  `json:"sieve_type"`
	Diameter       Field[float64] `json:"diameter"`
	Material       Field[string]  `json:"material"`

	MeasurePoint Field[string] `json:"measure_point"`
	Details      Field[string] `json:"details"`
	Locked       Field[string] `json:"locked"`
	LockOwner    Field[string] `json:"lock_owner"`
	Installer    Field[string] `json:"installer"`
}

// SoilLayer is a run of equal soil type with its accumulated thickness.
type SoilLayer struct {
	SoilType  string  `json:"soil_type"`
	Thickness float64 `json:"thickness"`
}

// Investigation is one sounding, closed by a -1 line.
type Investigation struct {
	// Source and Spatial are copied from the file once parsing completes.
	Source  Source  `json:"source"`
	Spatial Spatial `json:"spatial"`

	Organisations       Organisations       `json:"organisations"`
	Classification      Classification      `json:"classification"`
	Work                Work                `json:"work"`
	Record              Record              `json:"record"`
	Method              Method              `json:"method"`
	Equipment           Equipment           `json:"equipment"`
	Coordinates         Coordinates         `json:"coordinates"`
	Line                Line                `json:"line"`
	Termination         Termination         `json:"termination"`
	Program             Program             `json:"program"`
	DepthlessRockSample DepthlessRockSample `json:"depthless_rock_sample"`
	InitialBorehole     InitialBorehole     `json:"initial_borehole"`
	Standpipe           Standpipe           `json:"standpipe"`

	Notes        []Field[string] `json:"notes,omitempty"`
	FreeText     []Field[string] `json:"free_text,omitempty"`
	HiddenText   []Field[string] `json:"hidden_text,omitempty"`
	Observations []Observation   `json:"observations"`

	TotalDepth Field[float64] `json:"total_depth"`
	SoilLayers []SoilLayer    `json:"soil_layers,omitempty"`
}
