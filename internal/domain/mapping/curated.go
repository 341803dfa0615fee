package mapping

// CuratedTuple is one hand-authored alignment between a NAMASTE concept
// and an ICD-11 TM2 concept. Confidence values come from two curation
// rounds with different conventions, fractional and percentage; the
// builder normalizes both to 0-1.
type CuratedTuple struct {
	SourceCode  string
	TargetCode  string
	Confidence  float64
	Equivalence string
	Evidence    string
}

// CuratedAlignments is the reviewed NAMASTE to ICD-11 TM2 alignment set.
// A source code may map to more than one target.
func CuratedAlignments() []CuratedTuple {
	return []CuratedTuple{
		{SourceCode: "AY001", TargetCode: "SK25.0", Confidence: 0.87, Equivalence: EquivalenceRelated,
			Evidence: "Vata dosha imbalance aligns with TM2 vata pattern disorder"},
		{SourceCode: "AY001", TargetCode: "SK25.1", Confidence: 0.52, Equivalence: EquivalenceBroader,
			Evidence: "Secondary alignment with combined dosha pattern"},
		{SourceCode: "AY002", TargetCode: "SK25.2", Confidence: 0.91, Equivalence: EquivalenceRelated,
			Evidence: "Pitta dosha imbalance corresponds to TM2 pitta pattern"},
		{SourceCode: "AY003", TargetCode: "SK25.3", Confidence: 0.89, Equivalence: EquivalenceRelated,
			Evidence: "Kapha dosha imbalance corresponds to TM2 kapha pattern"},
		{SourceCode: "AY004", TargetCode: "SL70.0", Confidence: 78, Equivalence: EquivalenceRelated,
			Evidence: "Agnimandya maps to TM2 digestive fire disorder"},
		{SourceCode: "AY005", TargetCode: "SL71.2", Confidence: 82, Equivalence: EquivalenceNarrower,
			Evidence: "Amlapitta is a narrower acid dyspepsia presentation"},
		{SourceCode: "AY006", TargetCode: "SM20.1", Confidence: 0.74, Equivalence: EquivalenceRelated,
			Evidence: "Sandhivata presents as TM2 joint pattern disorder"},
		{SourceCode: "AY007", TargetCode: "SM25.0", Confidence: 0.68, Equivalence: EquivalenceBroader,
			Evidence: "Katishula covered by broader TM2 lumbar pattern"},
		{SourceCode: "AY008", TargetCode: "SN01.0", Confidence: 95, Equivalence: EquivalenceEquivalent,
			Evidence: "Jvara matches TM2 fever pattern directly"},
		{SourceCode: "AY009", TargetCode: "SN20.3", Confidence: 0.63, Equivalence: EquivalenceRelated,
			Evidence: "Kasa aligns with TM2 cough pattern"},
		{SourceCode: "AY010", TargetCode: "SN21.0", Confidence: 0.77, Equivalence: EquivalenceRelated,
			Evidence: "Shwasa aligns with TM2 dyspnoea pattern"},
		{SourceCode: "AY011", TargetCode: "SP75.1", Confidence: 71, Equivalence: EquivalenceRelated,
			Evidence: "Twak roga group maps to TM2 skin pattern disorders"},
		{SourceCode: "AY012", TargetCode: "SP90.0", Confidence: 0.58, Equivalence: EquivalenceBroader,
			Evidence: "Kushtha covered by broader TM2 chronic skin pattern"},
		{SourceCode: "AY013", TargetCode: "SQ40.2", Confidence: 0.85, Equivalence: EquivalenceRelated,
			Evidence: "Prameha aligns with TM2 wasting-thirst pattern"},
		{SourceCode: "AY013", TargetCode: "SQ40.3", Confidence: 0.61, Equivalence: EquivalenceRelated,
			Evidence: "Madhumeha subtype alignment"},
		{SourceCode: "AY014", TargetCode: "SR10.0", Confidence: 88, Equivalence: EquivalenceRelated,
			Evidence: "Hridroga maps to TM2 heart pattern disorder"},
		{SourceCode: "AY015", TargetCode: "SR30.1", Confidence: 0.66, Equivalence: EquivalenceRelated,
			Evidence: "Pandu aligns with TM2 pallor pattern"},
		{SourceCode: "SD101", TargetCode: "SS60.0", Confidence: 0.8, Equivalence: EquivalenceRelated,
			Evidence: "Vali sandhi vedana aligns with TM2 Siddha joint pattern"},
		{SourceCode: "SD102", TargetCode: "SS61.2", Confidence: 73, Equivalence: EquivalenceRelated,
			Evidence: "Azhal keel vayu maps to TM2 heat-type joint disorder"},
		{SourceCode: "UN201", TargetCode: "ST33.0", Confidence: 0.69, Equivalence: EquivalenceRelated,
			Evidence: "Suda maps to TM2 Unani headache pattern"},
		{SourceCode: "UN202", TargetCode: "ST34.1", Confidence: 0.56, Equivalence: EquivalenceBroader,
			Evidence: "Nazla covered by broader TM2 catarrh pattern"},
		{SourceCode: "AY016", TargetCode: "SK26.0", Confidence: 0.49, Equivalence: EquivalenceUnmatched,
			Evidence: "Ojokshaya has no settled TM2 counterpart, kept for review"},
		{SourceCode: "AY017", TargetCode: "SN40.0", Confidence: 92, Equivalence: EquivalenceEquivalent,
			Evidence: "Atisara matches TM2 diarrhoea pattern directly"},
		{SourceCode: "AY018", TargetCode: "SN45.2", Confidence: 0.79, Equivalence: EquivalenceRelated,
			Evidence: "Vibandha aligns with TM2 constipation pattern"},
		{SourceCode: "AY019", TargetCode: "SM85.0", Confidence: 0.7, Equivalence: EquivalenceRelated,
			Evidence: "Shirahshula aligns with TM2 head pain pattern"},
	}
}
