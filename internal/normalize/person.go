package normalize

// Person is the flat, UI-ready view of a doctor, CHEW or patient record.
// Field defaults follow the uniform policy: strings to "", counts to 0,
// money to null, lists to empty, images to the placeholder asset.
type Person struct {
	ID                int64    `json:"id"`
	FullName          string   `json:"fullName"`
	ProfilePictureURL string   `json:"profilePictureUrl"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Gender            string   `json:"gender"`
	HomeAddress       string   `json:"homeAddress"`
	DateOfBirth       string   `json:"dateOfBirth"`
	Languages         []string `json:"languages"`
	Specialisation    []string `json:"specialisation"`
	YearsOfExperience int      `json:"yearsOfExperience"`
	Confirmed         bool     `json:"confirmed"`
	Qualifications    []string `json:"qualifications"`
	CreatedAt         string   `json:"createdAt"`

	// Doctor-only fields; zero values for CHEWs and patients.
	About           string   `json:"about"`
	Awards          []string `json:"awards"`
	ConsultationFee *float64 `json:"consultationFee"`
	Facility        string   `json:"facility"`
}

// NormalizePerson maps one raw user record into a Person. It is pure and
// never fails: the record already passed the identity check at decode time,
// and every optional field degrades to its default.
func NormalizePerson(rec Record) Person {
	id, _ := recordID(rec)
	return Person{
		ID:                id,
		FullName:          fullName(rec),
		ProfilePictureURL: rec.imageURL("profilePictureUrl", "profile_picture", "picture_url"),
		Email:             rec.str("email"),
		Phone:             rec.str("phone", "phone_number"),
		Gender:            rec.str("gender"),
		HomeAddress:       rec.str("homeAddress", "home_address"),
		DateOfBirth:       rec.str("dateOfBirth", "date_of_birth"),
		Languages:         rec.stringList("languages"),
		Specialisation:    rec.stringList("specialisation"),
		YearsOfExperience: rec.count("yearsOfExperience", "years_of_experience"),
		Confirmed:         rec.boolean("confirmed"),
		Qualifications:    rec.stringList("qualifications"),
		CreatedAt:         rec.str("createdAt"),
		About:             rec.str("about"),
		Awards:            rec.stringList("awards"),
		ConsultationFee:   rec.money("consultationFee", "consultation_fee"),
		Facility:          rec.str("facility"),
	}
}

// fullName prefers an already-composed name so that re-normalizing a
// normalized record is a no-op, then falls back to composing from the parts.
func fullName(rec Record) string {
	if name := rec.str("fullName"); name != "" {
		return name
	}
	return ComposeFullName(rec.str("firstName", "first_name"), rec.str("lastName", "last_name"))
}

// PaymentProfile is the payout-relevant slice of a person record. The
// recipient code stays empty until the first successful transfer-recipient
// creation persists it upstream.
type PaymentProfile struct {
	PersonID      int64  `json:"personId"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BankCode      string `json:"bankCode"`
	AccountNumber string `json:"accountNumber"`
	RecipientCode string `json:"recipientCode"`
}

// NormalizePaymentProfile maps one raw user record into its PaymentProfile.
func NormalizePaymentProfile(rec Record) PaymentProfile {
	id, _ := recordID(rec)
	return PaymentProfile{
		PersonID:      id,
		FullName:      fullName(rec),
		Email:         rec.str("email"),
		Phone:         rec.str("phone", "phone_number"),
		BankCode:      rec.str("bankCode", "bank_code"),
		AccountNumber: rec.str("accountNumber", "account_number"),
		RecipientCode: rec.str("recipientCode", "recipient_code"),
	}
}
