package normalize

// CaseChew is the flattened reference to the CHEW who owns a case. A case
// belongs to exactly one CHEW; the reference is nil while unassigned.
type CaseChew struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// CaseVisit is one recorded encounter between a CHEW and a patient. Visits
// are read-only from the dashboard's perspective and keep their upstream
// creation order.
type CaseVisit struct {
	Date          string   `json:"date"`
	Weight        string   `json:"weight"`
	Height        string   `json:"height"`
	BloodPressure string   `json:"bloodPressure"`
	ChewsNotes    string   `json:"chewsNotes"`
	Symptoms      []string `json:"symptoms"`
}

// Case is the flat view of a medical case with its patient identity fields,
// vitals, owning CHEW and visit history.
type Case struct {
	ID                  int64       `json:"id"`
	FullName            string      `json:"fullName"`
	Email               string      `json:"email"`
	Phone               string      `json:"phone"`
	Gender              string      `json:"gender"`
	HomeAddress         string      `json:"homeAddress"`
	NearestBusStop      string      `json:"nearestBusStop"`
	ProfilePictureURL   string      `json:"profilePictureUrl"`
	CurrentPrescription []string    `json:"currentPrescription"`
	Symptoms            []string    `json:"symptoms"`
	Weight              string      `json:"weight"`
	Height              string      `json:"height"`
	BloodGlucose        string      `json:"bloodGlucose"`
	Chew                *CaseChew   `json:"chew"`
	Visits              []CaseVisit `json:"caseVisits"`
}

// NormalizeCase maps one raw case record into a Case, flattening the CHEW
// relation and the nested visit envelope.
func NormalizeCase(rec Record) Case {
	id, _ := recordID(rec)

	c := Case{
		ID:                  id,
		FullName:            caseFullName(rec),
		Email:               rec.str("email"),
		Phone:               rec.str("phone", "phone_number"),
		Gender:              rec.str("gender"),
		HomeAddress:         rec.str("homeAddress", "home_address"),
		NearestBusStop:      rec.str("nearestBusStop", "nearest_bus_stop"),
		ProfilePictureURL:   rec.imageURL("profilePictureUrl", "profile_picture"),
		CurrentPrescription: rec.stringList("currentPrescription", "current_prescription"),
		Symptoms:            rec.stringList("symptoms"),
		Weight:              rec.str("weight"),
		Height:              rec.str("height"),
		BloodGlucose:        rec.str("bloodGlucose", "blood_glucose"),
		Visits:              []CaseVisit{},
	}

	if chew, ok := rec.relation("chew"); ok {
		chewID, _ := recordID(chew)
		c.Chew = &CaseChew{ID: chewID, FullName: fullName(chew)}
	}

	for _, visit := range rec.relationList("caseVisits") {
		c.Visits = append(c.Visits, normalizeCaseVisit(visit))
	}
	if len(c.Visits) == 0 {
		for _, visit := range rec.relationList("casevisits") {
			c.Visits = append(c.Visits, normalizeCaseVisit(visit))
		}
	}

	return c
}

func normalizeCaseVisit(rec Record) CaseVisit {
	return CaseVisit{
		Date:          rec.str("date"),
		Weight:        rec.str("weight"),
		Height:        rec.str("height"),
		BloodPressure: rec.str("bloodPressure", "blood_pressure"),
		ChewsNotes:    rec.str("chewsNotes", "chews_notes"),
		Symptoms:      rec.stringList("symptoms"),
	}
}

// caseFullName handles the case schema's own name keys before falling back
// to the shared composition.
func caseFullName(rec Record) string {
	if name := rec.str("fullName"); name != "" {
		return name
	}
	return ComposeFullName(rec.str("first_name", "firstName"), rec.str("last_name", "lastName"))
}
