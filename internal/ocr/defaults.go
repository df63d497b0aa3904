package ocr

import "bluecarbon/internal/model"

// slotDisplayNames are the human-readable document names used in extraction
// prompts and in the normalized output.
var slotDisplayNames = map[model.SlotID]string{
	model.SlotProjectProposal:    "Project Proposal / Plantation Plan",
	model.SlotRegistrationCert:   "NGO Registration Certificate",
	model.SlotFieldDataSheet:     "Plantation Log / Field Data Sheet",
	model.SlotPhotographicReport: "Photographs / Drone Images Report",
}

// slotAliases maps each slot to the exact (case-insensitive) document names
// the extraction API is known to use for it. The normalizer matches against
// this table instead of doing fuzzy substring comparisons, so a renamed slot
// in the reply is an explicit miss, not a silent one.
var slotAliases = map[model.SlotID][]string{
	model.SlotProjectProposal: {
		"project proposal / plantation plan",
		"project proposal",
		"plantation plan",
	},
	model.SlotRegistrationCert: {
		"ngo registration certificate",
		"registration certificate",
	},
	model.SlotFieldDataSheet: {
		"plantation log / field data sheet",
		"plantation log",
		"field data sheet",
	},
	model.SlotPhotographicReport: {
		"photographs / drone images report",
		"photographs",
		"drone images report",
		"drone images",
	},
}

// slotFieldVocabulary lists the expected field keys per slot, in prompt order.
var slotFieldVocabulary = map[model.SlotID][]string{
	model.SlotProjectProposal: {
		"projectName", "areaPlanned", "speciesToBePlanted", "numberOfSaplings",
		"gpsCoordinates", "plantingStartDate", "plantingEndDate",
	},
	model.SlotRegistrationCert: {
		"ngoName", "registrationNumber", "dateOfRegistration",
		"issuingAuthority", "validity",
	},
	model.SlotFieldDataSheet: {
		"dateOfObservation", "areaPlanted", "numberOfSaplingSurvived",
		"healthStatus", "gpsCoordinates", "observerName",
	},
	model.SlotPhotographicReport: {
		"photoImageName", "timestamp", "gpsCoordinates", "caption",
		"droneFieldOfficerId",
	},
}

// defaultSlotFields is the static demonstration data substituted for any slot
// the extraction API did not return usable fields for.
var defaultSlotFields = map[model.SlotID]model.FieldMap{
	model.SlotProjectProposal: {
		"projectName":        "Blue Carbon Mangrove Restoration Project - Phase 2",
		"areaPlanned":        "25.5 hectares",
		"speciesToBePlanted": "Rhizophora mucronata, Avicennia marina, Bruguiera gymnorrhiza",
		"numberOfSaplings":   "15,000",
		"gpsCoordinates":     "12.9716° N, 77.5946° E",
		"plantingStartDate":  "January 15, 2024",
		"plantingEndDate":    "March 30, 2024",
	},
	model.SlotRegistrationCert: {
		"ngoName":            "Green Earth Foundation",
		"registrationNumber": "REG/2020/NGO/001234",
		"dateOfRegistration": "March 15, 2020",
		"issuingAuthority":   "Ministry of Corporate Affairs, India",
		"validity":           "Perpetual",
	},
	model.SlotFieldDataSheet: {
		"dateOfObservation":       "October 15, 2024",
		"areaPlanted":             "18.2 hectares",
		"numberOfSaplingSurvived": "12,500",
		"healthStatus":            "85% healthy growth, good root establishment observed",
		"gpsCoordinates":          "12.9716° N, 77.5946° E",
		"observerName":            "Dr. Ravi Kumar, Field Officer",
	},
	model.SlotPhotographicReport: {
		"photoImageName":      "drone_survey_oct_2024.jpg",
		"timestamp":           "2024-10-15 14:30:00",
		"gpsCoordinates":      "12.9716° N, 77.5946° E",
		"caption":             "Aerial view showing mangrove canopy growth after 8 months",
		"droneFieldOfficerId": "DRONE-001/Dr. Priya Sharma",
	},
}

// defaultFields returns a copy of the canned field set for a slot so callers
// can't mutate the package-level table.
func defaultFields(slot model.SlotID) model.FieldMap {
	src := defaultSlotFields[slot]
	out := make(model.FieldMap, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
