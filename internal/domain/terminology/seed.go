package terminology

// SeedEntries returns the built-in demo vocabulary for a system, used
// by `load refdata --seed` when no CSV export is at hand. The NAMASTE
// and ICD-11 TM2 sets cover the curated alignment codes.
func SeedEntries(system System) []CodeEntry {
	switch system {
	case SystemNAMASTE:
		return namasteSeed
	case SystemICD11:
		return icd11Seed
	case SystemSNOMED:
		return snomedSeed
	case SystemLOINC:
		return loincSeed
	}
	return nil
}

var namasteSeed = []CodeEntry{
	{Code: "AY001", Display: "Vata Dosha Imbalance", Description: "Constitutional imbalance of vata", Category: "Ayurveda"},
	{Code: "AY002", Display: "Pitta Dosha Imbalance", Description: "Constitutional imbalance of pitta", Category: "Ayurveda"},
	{Code: "AY003", Display: "Kapha Dosha Imbalance", Description: "Constitutional imbalance of kapha", Category: "Ayurveda"},
	{Code: "AY004", Display: "Agnimandya", Description: "Weak digestive fire", Category: "Ayurveda"},
	{Code: "AY005", Display: "Amlapitta", Description: "Acid dyspepsia", Category: "Ayurveda"},
	{Code: "AY006", Display: "Sandhivata", Description: "Degenerative joint disorder", Category: "Ayurveda"},
	{Code: "AY007", Display: "Katishula", Description: "Low back pain", Category: "Ayurveda"},
	{Code: "AY008", Display: "Jvara", Description: "Fever", Category: "Ayurveda"},
	{Code: "AY009", Display: "Kasa", Description: "Cough", Category: "Ayurveda"},
	{Code: "AY010", Display: "Shwasa", Description: "Dyspnoea", Category: "Ayurveda"},
	{Code: "AY011", Display: "Twak Roga", Description: "Skin disorder group", Category: "Ayurveda"},
	{Code: "AY012", Display: "Kushtha", Description: "Chronic skin disease", Category: "Ayurveda"},
	{Code: "AY013", Display: "Prameha", Description: "Urinary and metabolic disorder", Category: "Ayurveda"},
	{Code: "AY014", Display: "Hridroga", Description: "Heart disease", Category: "Ayurveda"},
	{Code: "AY015", Display: "Pandu", Description: "Pallor and anaemia", Category: "Ayurveda"},
	{Code: "AY016", Display: "Ojokshaya", Description: "Depletion of vital essence", Category: "Ayurveda"},
	{Code: "AY017", Display: "Atisara", Description: "Diarrhoea", Category: "Ayurveda"},
	{Code: "AY018", Display: "Vibandha", Description: "Constipation", Category: "Ayurveda"},
	{Code: "AY019", Display: "Shirahshula", Description: "Headache", Category: "Ayurveda"},
	{Code: "SD101", Display: "Vali Sandhi Vedana", Description: "Joint pain of vali origin", Category: "Siddha"},
	{Code: "SD102", Display: "Azhal Keel Vayu", Description: "Heat-type arthritis", Category: "Siddha"},
	{Code: "UN201", Display: "Suda", Description: "Headache", Category: "Unani"},
	{Code: "UN202", Display: "Nazla", Description: "Catarrh", Category: "Unani"},
}

var icd11Seed = []CodeEntry{
	{Code: "SK25.0", Display: "Disorder of vata dosha", Category: "TM2"},
	{Code: "SK25.1", Display: "Combined dosha pattern disorder", Category: "TM2"},
	{Code: "SK25.2", Display: "Disorder of pitta dosha", Category: "TM2"},
	{Code: "SK25.3", Display: "Disorder of kapha dosha", Category: "TM2"},
	{Code: "SK26.0", Display: "Depletion pattern, unspecified", Category: "TM2"},
	{Code: "SL70.0", Display: "Digestive fire disorder", Category: "TM2"},
	{Code: "SL71.2", Display: "Acid regurgitation pattern", Category: "TM2"},
	{Code: "SM20.1", Display: "Joint pattern disorder", Category: "TM2"},
	{Code: "SM25.0", Display: "Lumbar pattern disorder", Category: "TM2"},
	{Code: "SM85.0", Display: "Head pain pattern", Category: "TM2"},
	{Code: "SN01.0", Display: "Fever pattern", Category: "TM2"},
	{Code: "SN20.3", Display: "Cough pattern", Category: "TM2"},
	{Code: "SN21.0", Display: "Dyspnoea pattern", Category: "TM2"},
	{Code: "SN40.0", Display: "Diarrhoea pattern", Category: "TM2"},
	{Code: "SN45.2", Display: "Constipation pattern", Category: "TM2"},
	{Code: "SP75.1", Display: "Skin pattern disorder", Category: "TM2"},
	{Code: "SP90.0", Display: "Chronic skin pattern disorder", Category: "TM2"},
	{Code: "SQ40.2", Display: "Wasting-thirst pattern", Category: "TM2"},
	{Code: "SQ40.3", Display: "Sweet urine pattern", Category: "TM2"},
	{Code: "SR10.0", Display: "Heart pattern disorder", Category: "TM2"},
	{Code: "SR30.1", Display: "Pallor pattern", Category: "TM2"},
	{Code: "SS60.0", Display: "Siddha joint pattern disorder", Category: "TM2"},
	{Code: "SS61.2", Display: "Heat-type joint pattern", Category: "TM2"},
	{Code: "ST33.0", Display: "Unani headache pattern", Category: "TM2"},
	{Code: "ST34.1", Display: "Catarrh pattern", Category: "TM2"},
}

var snomedSeed = []CodeEntry{
	{Code: "386661006", Display: "Fever", Category: "finding"},
	{Code: "49727002", Display: "Cough", Category: "finding"},
	{Code: "267036007", Display: "Dyspnea", Category: "finding"},
	{Code: "62315008", Display: "Diarrhea", Category: "finding"},
	{Code: "14760008", Display: "Constipation", Category: "finding"},
	{Code: "25064002", Display: "Headache", Category: "finding"},
	{Code: "399963005", Display: "Abrasion of skin", Category: "disorder"},
	{Code: "396275006", Display: "Osteoarthritis", Category: "disorder"},
	{Code: "73211009", Display: "Diabetes mellitus", Category: "disorder"},
	{Code: "271737000", Display: "Anemia", Category: "disorder"},
}

var loincSeed = []CodeEntry{
	{Code: "718-7", Display: "Hemoglobin [Mass/volume] in Blood", Description: "Hemoglobin"},
	{Code: "2345-7", Display: "Glucose [Mass/volume] in Serum or Plasma", Description: "Glucose"},
	{Code: "4548-4", Display: "Hemoglobin A1c/Hemoglobin.total in Blood", Description: "Hemoglobin A1c"},
	{Code: "2160-0", Display: "Creatinine [Mass/volume] in Serum or Plasma", Description: "Creatinine"},
	{Code: "8310-5", Display: "Body temperature", Description: "Body temperature"},
	{Code: "8867-4", Display: "Heart rate", Description: "Heart rate"},
	{Code: "85354-9", Display: "Blood pressure panel with all children optional", Description: "Blood pressure panel"},
	{Code: "2951-2", Display: "Sodium [Moles/volume] in Serum or Plasma", Description: "Sodium"},
}
