package domain

// CoordinateSystem is the horizontal reference of a file's XY lines.
type CoordinateSystem uint8

const (
	CoordinateSystemUnknown CoordinateSystem = iota
	WGS84
	HKI
	Vantaa
	Espoo
	KKJ0
	KKJ1
	KKJ2
	KKJ3
	KKJ4
	KKJ5
	YKJ
	GK19
	GK20
	GK21
	GK22
	GK23
	GK24
	GK25
	GK26
	GK27
	GK28
	GK29
	GK30
	GK31
	TM34
	TM35
	TM36
)

var coordinateSystemNames = [...]string{
	CoordinateSystemUnknown: "Unknown",
	WGS84:                   "WGS84",
	HKI:                     "HKI",
	Vantaa:                  "VANTAA",
	Espoo:                   "ESPOO",
	KKJ0:                    "KKJ0",
	KKJ1:                    "KKJ1",
	KKJ2:                    "KKJ2",
	KKJ3:                    "KKJ3",
	KKJ4:                    "KKJ4",
	KKJ5:                    "KKJ5",
	YKJ:                     "YKJ",
	GK19:                    "ETRS-GK19",
	GK20:                    "ETRS-GK20",
	GK21:                    "ETRS-GK21",
	GK22:                    "ETRS-GK22",
	GK23:                    "ETRS-GK23",
	GK24:                    "ETRS-GK24",
	GK25:                    "ETRS-GK25",
	GK26:                    "ETRS-GK26",
	GK27:                    "ETRS-GK27",
	GK28:                    "ETRS-GK28",
	GK29:                    "ETRS-GK29",
	GK30:                    "ETRS-GK30",
	GK31:                    "ETRS-GK31",
	TM34:                    "ETRS-TM34",
	TM35:                    "ETRS-TM35",
	TM36:                    "ETRS-TM36",
}

func (c CoordinateSystem) String() string {
	if int(c) < len(coordinateSystemNames) {
		return coordinateSystemNames[c]
	}
	return coordinateSystemNames[CoordinateSystemUnknown]
}

func (c CoordinateSystem) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

var coordinateSystemTokens = func() map[string]CoordinateSystem {
	m := map[string]CoordinateSystem{
		"WGS84":  WGS84,
		"WGS":    WGS84,
		"HKI":    HKI,
		"VANTAA": Vantaa,
		"ESPOO":  Espoo,
		"KKJ0":   KKJ0,
		"KKJ1":   KKJ1,
		"KKJ2":   KKJ2,
		"KKJ3":   KKJ3,
		"KKJ4":   KKJ4,
		"KKJ5":   KKJ5,
		"YKJ":    YKJ,
	}
	// GK zones and the UTM-like TM zones accept bare, ETRS and ETRS- prefixes.
	for c := GK19; c <= TM36; c++ {
		zone := c.String()[len("ETRS-"):]
		m[zone] = c
		m["ETRS"+zone] = c
		m["ETRS-"+zone] = c
	}
	for _, alias := range []string{"TM35FIN", "ETRSTM35FIN", "ETRS-TM35FIN"} {
		m[alias] = TM35
	}
	return m
}()

// DecodeCoordinateSystem matches KJ column 1.
var DecodeCoordinateSystem = tokenDecoder("coordinate system", coordinateSystemTokens)

// ElevationSystem is the vertical reference of a file's elevations.
type ElevationSystem uint8

const (
	ElevationSystemUnknown ElevationSystem = iota
	N2000
	N60
	N43
	NN
	LN
)

var elevationSystemNames = [...]string{
	ElevationSystemUnknown: "Unknown",
	N2000:                  "N2000",
	N60:                    "N60",
	N43:                    "N43",
	NN:                     "NN",
	LN:                     "LN",
}

func (e ElevationSystem) String() string {
	if int(e) < len(elevationSystemNames) {
		return elevationSystemNames[e]
	}
	return elevationSystemNames[ElevationSystemUnknown]
}

func (e ElevationSystem) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

var DecodeElevationSystem = tokenDecoder("elevation system", map[string]ElevationSystem{
	"N2000": N2000,
	"N60":   N60,
	"N43":   N43,
	"NN":    NN,
	"LN":    LN,
})

// ClassificationName is the soil classification scheme named by ML.
type ClassificationName uint8

const (
	ClassificationGEO ClassificationName = iota
	ClassificationISO
)

func (c ClassificationName) String() string {
	if c == ClassificationISO {
		return "ISO"
	}
	return "GEO"
}

// Description is the scheme's full name.
func (c ClassificationName) Description() string {
	if c == ClassificationISO {
		return "SFS-EN ISO 14688-2"
	}
	return "GEO"
}

func (c ClassificationName) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

var DecodeClassification = tokenDecoder("classification", map[string]ClassificationName{
	"GEO": ClassificationGEO,
	"ISO": ClassificationISO,
})

// Sampler is the sampling tool named in TT column 5.
type Sampler uint8

const (
	SamplerUnknown Sampler = iota
	SamplerK
	SamplerL
	SamplerPMK
	SamplerR
	SamplerST50
	SamplerST60
)

var samplerCodes = [...]string{"Unknown", "K", "L", "PMK", "R", "ST50", "ST60"}

var samplerDescriptions = [...]string{
	"Unknown sampler",
	"Auger drill",
	"Shovel",
	"Small piston drill-26",
	"Bagged sample",
	"St-50",
	"St-60",
}

func (s Sampler) String() string {
	if int(s) < len(samplerCodes) {
		return samplerCodes[s]
	}
	return samplerCodes[SamplerUnknown]
}

func (s Sampler) Description() string {
	if int(s) < len(samplerDescriptions) {
		return samplerDescriptions[s]
	}
	return samplerDescriptions[SamplerUnknown]
}

func (s Sampler) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

var DecodeSampler = tokenDecoder("sampler", map[string]Sampler{
	"K":     SamplerK,
	"L":     SamplerL,
	"PMK":   SamplerPMK,
	"R":     SamplerR,
	"ST50":  SamplerST50,
	"ST-50": SamplerST50,
	"ST60":  SamplerST60,
	"ST-60": SamplerST60,
})

// TerminationToken is the reason code on a -1 line.
type TerminationToken uint8

const (
	TerminationUnknown TerminationToken = iota
	TerminationTM
	TerminationKI
	TerminationKL
	TerminationKA
	TerminationKK
	TerminationMS
	TerminationKN
	TerminationJA
)

var terminationCodes = [...]string{"Unknown", "TM", "KI", "KL", "KA", "KK", "MS", "KN", "JA"}

var terminationDescriptions = [...]string{
	"Unknown reason",
	"Dense soil layer",
	"Estimated rock or boulder",
	"Rock, boulder or bedrock contact",
	"Bedrock contact (verified rock)",
	"Bedrock surface (verified with trial pit)",
	"Specified depth",
	"Bridging between stones and boulders",
	"Continues as another investigation",
}

func (t TerminationToken) String() string {
	if int(t) < len(terminationCodes) {
		return terminationCodes[t]
	}
	return terminationCodes[TerminationUnknown]
}

func (t TerminationToken) Description() string {
	if int(t) < len(terminationDescriptions) {
		return terminationDescriptions[t]
	}
	return terminationDescriptions[TerminationUnknown]
}

func (t TerminationToken) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

var DecodeTermination = tokenDecoder("termination", map[string]TerminationToken{
	"TM": TerminationTM,
	"KI": TerminationKI,
	"KL": TerminationKL,
	"KA": TerminationKA,
	"KK": TerminationKK,
	"MS": TerminationMS,
	"KN": TerminationKN,
	"JA": TerminationJA,
})

// InitialBoreToken is how the top of the hole was opened (AL column 2).
type InitialBoreToken uint8

const (
	InitialBoreUnknown InitialBoreToken = iota
	InitialBoreSI
	InitialBoreLK
	InitialBoreAP
	InitialBoreLY
	InitialBoreVA
	InitialBoreJA
)

var initialBoreCodes = [...]string{"Unknown", "SI", "LK", "AP", "LY", "VA", "JA"}

var initialBoreDescriptions = [...]string{
	"Unknown method",
	"Through protective pipe",
	"Shovel pit",
	"Opening with drill",
	"Hammered",
	"Water initiation",
	"Continues previous investigation",
}

func (b InitialBoreToken) String() string {
	if int(b) < len(initialBoreCodes) {
		return initialBoreCodes[b]
	}
	return initialBoreCodes[InitialBoreUnknown]
}

func (b InitialBoreToken) Description() string {
	if int(b) < len(initialBoreDescriptions) {
		return initialBoreDescriptions[b]
	}
	return initialBoreDescriptions[InitialBoreUnknown]
}

func (b InitialBoreToken) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

var DecodeInitialBore = tokenDecoder("initial boring", map[string]InitialBoreToken{
	"SI": InitialBoreSI,
	"LK": InitialBoreLK,
	"AP": InitialBoreAP,
	"LY": InitialBoreLY,
	"VA": InitialBoreVA,
	"JA": InitialBoreJA,
})

// Digitized marks records transcribed from paper logs (PK column 5).
type Digitized bool

func (d Digitized) String() string {
	if d {
		return "Digitized"
	}
	return "Not digitized"
}

// DecodeDigitized never fails: only an exact "D" means digitized.
func DecodeDigitized(raw string) (Digitized, error) {
	return Digitized(raw == "D"), nil
}
