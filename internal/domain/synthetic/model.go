package synthetic

// RawRecord is a single row of messy EDC capture, shaped the way sites
// actually send data: vendor field names, free-text demographics, and
// missing values.
type RawRecord struct {
	SubjectID  string   `json:"client_code"`
	AgeYears   *int     `json:"age_years"`
	GenderText string   `json:"gender_text"`
	HeartRate  *float64 `json:"heartRate"`
	VisitDate  string   `json:"visit_date"`
}
