// Package domain models the Finnish ground investigation text format
// (Infra format, "Infra-formaatti") used for boreholes, soundings,
// groundwater standpipes and samples.
//
// # File Layout
//
// A file is a sequence of whitespace-separated lines. The first token of
// each line is a record code; the rest are positional parameters:
//
//	FO 2.5 GEOCALC 3.1         format version and producing software
//	KJ ETRS-TM35FIN N2000      coordinate and elevation system
//	TT PA 1 - - -              method of the investigation that follows
//	XY 6672000.0 385000.0 12.3 24052023 P1
//	0.20 0 12 Sa               observation row (leading token is numeric)
//	HM loose                   note on the row above
//	-1 KA                      terminator with its reason
//
// FO and KJ describe the whole file. Every other record belongs to the
// investigation in progress, which ends at the next "-1" line. Lines after
// the last terminator never become an investigation.
//
// # Tri-state Columns
//
// Every column is a [Field]. A literal "-" is Missing, as is a column past
// the end of the line. A token that fails to decode is kept verbatim as a
// Fallback so hand-edited files lose nothing. Dates are ddMMyyyy and the
// "00000000" placeholder reads as Missing.
//
// # Observation Rows
//
// A numeric leading token starts a data row whose layout is chosen by the
// TT method token (27 methods, see [MethodToken]). Two columns change
// meaning with their value:
//
//	PA  column 2: load in kN when >= 0, hit count when negative ("-3" = 3 hits)
//	HP  column 2: hits when the mode flag is H, pressure when it is P
//
// # Annotations and Lab Results
//
// HM, TX and HT attach text to the most recent observation, or to the
// investigation when none exists yet. EM (unofficial soil type) is dropped
// when there is no observation. RK and LB attach lab results and are only
// valid after a NO or NE sample row.
//
// # Post-processing
//
// When a terminator closes an investigation, omitted soil types are filled
// from the row above, the total depth is taken from the last row with a
// depth column, and consecutive rows of equal soil type are merged into
// [SoilLayer] thicknesses.
//
// # Coordinates
//
// Finnish grids store northing in X and easting in Y. [Investigation.Point]
// swaps them into (easting, northing) order and tags the EPSG code of the
// file's coordinate system. HKI, VANTAA and ESPOO are city grids with no
// EPSG code.
package domain
