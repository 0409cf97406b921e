package domain

import "strings"

// MethodToken identifies the sounding or sampling method of an investigation.
// It is set once per investigation by TT and selects the column layout of
// every numeric row that follows.
type MethodToken uint8

// The zero value is deliberately not a method: the decoder never returns it.
const (
	methodNone MethodToken = iota
	MethodPA
	MethodPI
	MethodLY
	MethodSI
	MethodHE
	MethodHK
	MethodPT
	MethodTR
	MethodPR
	MethodCP
	MethodCU
	MethodHP
	MethodPO
	MethodMW
	MethodVP
	MethodVO
	MethodVK
	MethodVPK
	MethodHV
	MethodHU
	MethodPS
	MethodPM
	MethodKO
	MethodKE
	MethodKR
	MethodNO
	MethodNE
	methodCount
)

var methodCodes = [...]string{
	methodNone: "None",
	MethodPA:   "PA",
	MethodPI:   "PI",
	MethodLY:   "LY",
	MethodSI:   "SI",
	MethodHE:   "HE",
	MethodHK:   "HK",
	MethodPT:   "PT",
	MethodTR:   "TR",
	MethodPR:   "PR",
	MethodCP:   "CP",
	MethodCU:   "CU",
	MethodHP:   "HP",
	MethodPO:   "PO",
	MethodMW:   "MW",
	MethodVP:   "VP",
	MethodVO:   "VO",
	MethodVK:   "VK",
	MethodVPK:  "VPK",
	MethodHV:   "HV",
	MethodHU:   "HU",
	MethodPS:   "PS",
	MethodPM:   "PM",
	MethodKO:   "KO",
	MethodKE:   "KE",
	MethodKR:   "KR",
	MethodNO:   "NO",
	MethodNE:   "NE",
}

var methodDescriptions = [...]string{
	methodNone: "None",
	MethodPA:   "Weight sounding test",
	MethodPI:   "Stick drilling",
	MethodLY:   "Hammer drilling",
	MethodSI:   "Field vane test",
	MethodHE:   "Dynamic probing",
	MethodHK:   "Dynamic probing with torque",
	MethodPT:   "Pipe drilling",
	MethodTR:   "Pin drilling",
	MethodPR:   "Static penetration test",
	MethodCP:   "Cone penetration test (CPT)",
	MethodCU:   "CPTU-sounding (CPTU)",
	MethodHP:   "Static dynamic penetration test",
	MethodPO:   "MWD quality class 3",
	MethodMW:   "MWD-drilling",
	MethodVP:   "Standpipe for groundwater table",
	MethodVO:   "Standpipe for perched water table",
	MethodVK:   "Water table in well",
	MethodVPK:  "Standpipe for groundwater table (bedrock)",
	MethodHV:   "Piezometer measurement",
	MethodHU:   "Air void pipe",
	MethodPS:   "Pressuremeter test",
	MethodPM:   "Settlement measurement",
	MethodKO:   "Test pit",
	MethodKE:   "Core sampling (extended)",
	MethodKR:   "Core sampling (video)",
	MethodNO:   "Disturbed sampling",
	MethodNE:   "Undisturbed sampling",
}

// Methods lists every known method in declaration order.
func Methods() []MethodToken {
	out := make([]MethodToken, 0, methodCount-1)
	for m := MethodPA; m < methodCount; m++ {
		out = append(out, m)
	}
	return out
}

// String returns the record code, e.g. "PA".
func (m MethodToken) String() string {
	if m < methodCount {
		return methodCodes[m]
	}
	return methodCodes[methodNone]
}

// Description returns the English method name.
func (m MethodToken) Description() string {
	if m < methodCount {
		return methodDescriptions[m]
	}
	return methodDescriptions[methodNone]
}

// Valid reports whether m is one of the 27 known methods.
func (m MethodToken) Valid() bool { return m > methodNone && m < methodCount }

func (m MethodToken) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// legacyMethodAliases are the older full-word codes still found in archives.
var legacyMethodAliases = map[string]MethodToken{
	"WST":  MethodPA,
	"FVT":  MethodSI,
	"DP":   MethodHE,
	"CPT":  MethodCP,
	"CPTU": MethodCU,
	"PMT":  MethodPS,
}

// lookupMethod returns methodNone for unknown input.
func lookupMethod(raw string) MethodToken {
	code := strings.ToUpper(strings.TrimSpace(raw))
	for m := MethodPA; m < methodCount; m++ {
		if methodCodes[m] == code {
			return m
		}
	}
	return legacyMethodAliases[code]
}

// DecodeMethod treats the internal "no match" result as a decode failure so
// an unknown method can never look like a valid default.
func DecodeMethod(raw string) (MethodToken, error) {
	m := lookupMethod(raw)
	if !m.Valid() {
		return methodNone, &DecodeError{Kind: "method", Value: raw}
	}
	return m, nil
}
