package sdtm

// CanonicalRecord is one subject visit normalized to the submission schema:
// stable variable names, controlled sex codes, missing values preserved as
// nulls rather than invented defaults.
type CanonicalRecord struct {
	SubjectID string   `json:"USUBJID"`
	Age       *int     `json:"AGE"`
	Sex       string   `json:"SEX"`
	HeartRate *float64 `json:"HR"`
	VisitDate string   `json:"VSDTC"`
}

// Controlled terminology for the SEX variable.
const (
	SexMale    = "M"
	SexFemale  = "F"
	SexUnknown = "U"
)
