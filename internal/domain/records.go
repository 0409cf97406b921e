package domain

// fileRecords write file-level metadata.
var fileRecords = map[string]func(*InfraFile, []string){
	"FO": func(f *InfraFile, p []string) {
		f.Format.Version = column(p, 0, DecodeString)
		f.Format.Software = column(p, 1, DecodeString)
		f.Format.SoftwareVersion = column(p, 2, DecodeString)
	},
	"KJ": func(f *InfraFile, p []string) {
		f.Spatial.CoordinateSystem = column(p, 0, DecodeCoordinateSystem)
		f.Spatial.ElevationSystem = column(p, 1, DecodeElevationSystem)
	},
}

// investigationRecords write into the investigation in progress. A record
// repeated within one investigation overwrites the earlier values.
var investigationRecords = map[string]func(*Investigation, []string){
	"OM": func(inv *Investigation, p []string) {
		inv.Organisations.Owner = column(p, 0, DecodeString)
	},
	"ML": func(inv *Investigation, p []string) {
		inv.Classification.Name = column(p, 0, DecodeClassification)
	},
	"OR": func(inv *Investigation, p []string) {
		inv.Organisations.Investigator = column(p, 0, DecodeString)
	},
	"TY": func(inv *Investigation, p []string) {
		inv.Work.ID = column(p, 0, DecodeString)
		inv.Work.Name = column(p, 1, DecodeString)
	},
	"PK": func(inv *Investigation, p []string) {
		inv.Record = Record{
			Number:    column(p, 0, DecodeInt),
			Driller:   column(p, 1, DecodeString),
			Inspector: column(p, 2, DecodeString),
			Processor: column(p, 3, DecodeString),
			Digitized: column(p, 4, DecodeDigitized),
			Condition: column(p, 5, DecodeString),
		}
	},
	"TT": func(inv *Investigation, p []string) {
		inv.Method = Method{
			Token:     column(p, 0, DecodeMethod),
			Category:  column(p, 1, DecodeInt),
			ID:        column(p, 2, DecodeString),
			Standard:  column(p, 3, DecodeString),
			Sampler:   column(p, 4, DecodeSampler),
			Specifier: column(p, 5, DecodeString),
		}
	},
	"LA": func(inv *Investigation, p []string) {
		inv.Equipment = Equipment{
			Number:      column(p, 0, DecodeInt),
			Description: column(p, 1, DecodeString),
			ConeSize:    column(p, 2, DecodeString),
		}
	},
	"XY": func(inv *Investigation, p []string) {
		inv.Coordinates = Coordinates{
			X:              column(p, 0, DecodeFloat),
			Y:              column(p, 1, DecodeFloat),
			StartElevation: column(p, 2, DecodeFloat),
			Date:           column(p, 3, DecodeDate),
			PointID:        column(p, 4, DecodeString),
		}
	},
	"LN": func(inv *Investigation, p []string) {
		inv.Line = Line{
			Name:     column(p, 0, DecodeString),
			Stake:    column(p, 1, DecodeFloat),
			Distance: column(p, 2, DecodeFloat),
		}
	},
	"GR": func(inv *Investigation, p []string) {
		inv.Program.Name = column(p, 0, DecodeString)
		inv.Program.Date = column(p, 1, DecodeDate)
		inv.Program.Author = column(p, 2, DecodeString)
	},
	"GL": func(inv *Investigation, p []string) {
		inv.Program.Guide = append(inv.Program.Guide, column(p, 0, DecodeString))
	},
	"AT": func(inv *Investigation, p []string) {
		inv.DepthlessRockSample = DepthlessRockSample{
			Attribute: column(p, 0, DecodeString),
			Value:     column(p, 1, DecodeString),
		}
	},
	"AL": func(inv *Investigation, p []string) {
		inv.InitialBorehole = InitialBorehole{
			Depth:    column(p, 0, DecodeFloat),
			Method:   column(p, 1, DecodeInitialBore),
			SoilType: column(p, 2, DecodeString),
		}
	},
	"ZP": func(inv *Investigation, p []string) {
		inv.Standpipe.TopElevation = column(p, 0, DecodeFloat)
		inv.Standpipe.GroundElevation = column(p, 1, DecodeFloat)
		inv.Standpipe.ProtectionTopElevation = column(p, 2, DecodeFloat)
		inv.Standpipe.CoverElevation = column(p, 3, DecodeFloat)
		inv.Standpipe.SieveBottomElevation = column(p, 4, DecodeFloat)
	},
	"TP": func(inv *Investigation, p []string) {
		inv.Standpipe.UpperStructure = column(p, 0, DecodeString)
		inv.Standpipe.SieveLength = column(p, 1, DecodeFloat)
		inv.Standpipe.SieveType = column(p, 2, DecodeString)
		inv.Standpipe.Diameter = column(p, 3, DecodeFloat)
		inv.Standpipe.Material = column(p, 4, DecodeString)
	},
	"LP": func(inv *Investigation, p []string) {
		inv.Standpipe.MeasurePoint = column(p, 0, DecodeString)
		inv.Standpipe.Details = column(p, 1, DecodeString)
		inv.Standpipe.Locked = column(p, 2, DecodeString)
		inv.Standpipe.LockOwner = column(p, 3, DecodeString)
		inv.Standpipe.Installer = column(p, 4, DecodeString)
	},
}

var annotationRecords = map[string]annotationKind{
	"HM": annotationNote,
	"TX": annotationFreeText,
	"HT": annotationHiddenText,
	"EM": annotationSoilType,
}
