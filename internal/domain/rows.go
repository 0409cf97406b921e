package domain

// rowDecoder builds the values of one observation row. params is the whole
// line, so params[0] is the leading numeric column.
type rowDecoder func(params []string) Values

func depthAt(params []string, i int) DepthReading {
	return DepthReading{Depth: column(params, i, DecodeFloat)}
}

func soilAt(params []string, i int) SoilReading {
	return SoilReading{SoilType: column(params, i, DecodeString)}
}

func pipeReadingAt(params []string) PipeReading {
	return PipeReading{
		SurfaceElevation:    column(params, 0, DecodeFloat),
		Date:                column(params, 1, DecodeDate),
		PipeTopElevation:    column(params, 2, DecodeFloat),
		PipeBottomElevation: column(params, 3, DecodeFloat),
		SieveLength:         column(params, 4, DecodeFloat),
		Measurer:            column(params, 5, DecodeString),
	}
}

func coreSampleAt(params []string) CoreSample {
	return CoreSample{
		StartDepth: column(params, 0, DecodeFloat),
		EndDepth:   column(params, 1, DecodeFloat),
	}
}

func sampleAt(params []string) Sample {
	return Sample{
		StartDepth:  column(params, 0, DecodeFloat),
		SampleID:    column(params, 1, DecodeString),
		EndDepth:    column(params, 2, DecodeFloat),
		SoilReading: soilAt(params, 3),
	}
}

// rowDecoders has one entry per method.
var rowDecoders = map[MethodToken]rowDecoder{
	MethodPA: func(p []string) Values {
		load, hits := splitLoadOrHits(p, 1)
		return &WeightSounding{
			DepthReading: depthAt(p, 0),
			Load:         load,
			Hits:         hits,
			HalfTurns:    column(p, 2, DecodeInt),
			SoilReading:  soilAt(p, 3),
		}
	},
	MethodPI: func(p []string) Values {
		return &StickDrilling{DepthReading: depthAt(p, 0), SoilReading: soilAt(p, 1)}
	},
	MethodLY: func(p []string) Values {
		return &HammerDrilling{
			DepthReading: depthAt(p, 0),
			Load:         column(p, 1, DecodeFloat),
			Hits:         column(p, 2, DecodeInt),
			SoilReading:  soilAt(p, 3),
		}
	},
	MethodSI: func(p []string) Values {
		return &FieldVane{
			DepthReading:           depthAt(p, 0),
			ShearStrength:          column(p, 1, DecodeFloat),
			DisturbedShearStrength: column(p, 2, DecodeFloat),
			Sensitivity:            column(p, 3, DecodeFloat),
			ResidualStrength:       column(p, 4, DecodeFloat),
		}
	},
	MethodHE: func(p []string) Values {
		return &DynamicProbing{
			DepthReading: depthAt(p, 0),
			Hits:         column(p, 1, DecodeInt),
			SoilReading:  soilAt(p, 2),
		}
	},
	MethodHK: func(p []string) Values {
		return &TorqueProbing{
			DepthReading: depthAt(p, 0),
			Hits:         column(p, 1, DecodeInt),
			Torque:       column(p, 2, DecodeFloat),
			SoilReading:  soilAt(p, 3),
		}
	},
	MethodPT: func(p []string) Values {
		return &PipeDrilling{DepthReading: depthAt(p, 0), SoilReading: soilAt(p, 1)}
	},
	MethodTR: func(p []string) Values {
		return &PinDrilling{DepthReading: depthAt(p, 0), SoilReading: soilAt(p, 1)}
	},
	MethodPR: func(p []string) Values {
		return &StaticPenetration{
			DepthReading:    depthAt(p, 0),
			TotalResistance: column(p, 1, DecodeFloat),
			SleeveFriction:  column(p, 2, DecodeFloat),
			SoilReading:     soilAt(p, 3),
		}
	},
	MethodCP: func(p []string) Values {
		return &ConePenetration{
			DepthReading:    depthAt(p, 0),
			TotalResistance: column(p, 1, DecodeFloat),
			SleeveFriction:  column(p, 2, DecodeFloat),
			TipResistance:   column(p, 3, DecodeFloat),
			SoilReading:     soilAt(p, 4),
		}
	},
	MethodCU: func(p []string) Values {
		return &PiezoconePenetration{
			DepthReading:      depthAt(p, 0),
			TotalResistance:   column(p, 1, DecodeFloat),
			SleeveFriction:    column(p, 2, DecodeFloat),
			TipResistance:     column(p, 3, DecodeFloat),
			PoreWaterPressure: column(p, 4, DecodeFloat),
			SoilReading:       soilAt(p, 5),
		}
	},
	MethodHP: func(p []string) Values {
		hits, pressure := splitHitsOrPressure(p, 1, 3)
		return &StaticDynamicPenetration{
			DepthReading: depthAt(p, 0),
			Hits:         hits,
			Pressure:     pressure,
			Torque:       column(p, 2, DecodeFloat),
			Mode:         column(p, 3, DecodeString),
			SoilReading:  soilAt(p, 4),
		}
	},
	MethodPO: func(p []string) Values {
		return &RigDrilling{
			DepthReading: depthAt(p, 0),
			Time:         column(p, 1, DecodeInt),
			SoilReading:  soilAt(p, 2),
		}
	},
	MethodMW: func(p []string) Values {
		return &MWDDrilling{
			DepthReading:     depthAt(p, 0),
			AdvanceRate:      column(p, 1, DecodeFloat),
			CompressiveForce: column(p, 2, DecodeFloat),
			FlushingPressure: column(p, 3, DecodeFloat),
			WaterConsumption: column(p, 4, DecodeFloat),
			Torque:           column(p, 5, DecodeFloat),
			RotationSpeed:    column(p, 6, DecodeFloat),
			Hits:             column(p, 7, DecodeString),
			SoilReading:      soilAt(p, 8),
		}
	},
	MethodVP: func(p []string) Values { return &GroundwaterPipe{pipeReadingAt(p)} },
	MethodVO: func(p []string) Values { return &PerchedWaterPipe{pipeReadingAt(p)} },
	MethodVK: func(p []string) Values {
		return &WellWaterLevel{
			SurfaceElevation: column(p, 0, DecodeFloat),
			Date:             column(p, 1, DecodeDate),
			WaterType:        column(p, 2, DecodeString),
		}
	},
	MethodVPK: func(p []string) Values {
		return &BedrockWaterPipe{
			SurfaceElevation: column(p, 0, DecodeFloat),
			Date:             column(p, 1, DecodeDate),
		}
	},
	MethodHV: func(p []string) Values {
		return &Piezometer{
			DepthReading: depthAt(p, 0),
			Pressure:     column(p, 1, DecodeFloat),
			Date:         column(p, 2, DecodeDate),
			Measurer:     column(p, 3, DecodeString),
		}
	},
	MethodHU: func(p []string) Values { return &AirVoidPipe{pipeReadingAt(p)} },
	MethodPS: func(p []string) Values {
		return &Pressuremeter{
			DepthReading: depthAt(p, 0),
			Modulus:      column(p, 1, DecodeFloat),
			FailPressure: column(p, 2, DecodeFloat),
		}
	},
	MethodPM: func(p []string) Values {
		return &SettlementGauge{
			Elevation: column(p, 0, DecodeFloat),
			Date:      column(p, 1, DecodeDate),
			Measurer:  column(p, 2, DecodeString),
		}
	},
	MethodKO: func(p []string) Values {
		return &TestPit{
			DepthReading: depthAt(p, 0),
			SoilReading:  soilAt(p, 1),
			Stones:       column(p, 2, DecodeFloat),
			Boulders:     column(p, 3, DecodeInt),
			MaxWidth:     column(p, 4, DecodeFloat),
			MinWidth:     column(p, 5, DecodeFloat),
		}
	},
	MethodKE: func(p []string) Values { return &CoreExtended{coreSampleAt(p)} },
	MethodKR: func(p []string) Values { return &CoreVideo{coreSampleAt(p)} },
	MethodNO: func(p []string) Values { return &DisturbedSample{sampleAt(p)} },
	MethodNE: func(p []string) Values { return &UndisturbedSample{sampleAt(p)} },
}

// decodeRow builds the observation values for method m.
func decodeRow(m MethodToken, params []string) (Values, bool) {
	dec, ok := rowDecoders[m]
	if !ok {
		return nil, false
	}
	return dec(params), true
}
