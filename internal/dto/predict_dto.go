package dto

import "errors"

// PredictRequest carries the five input metrics. Pointer fields distinguish
// a missing key from a legitimate zero.
type PredictRequest struct {
	CGPA          *float64 `json:"cgpa"`
	DSAScore      *int     `json:"dsa_score"`
	Projects      *int     `json:"projects"`
	Communication *int     `json:"communication"`
	Internships   *int     `json:"internships"`
}

var ErrMissingFields = errors.New("Missing required fields. Please provide: cgpa, dsa_score, projects, communication, internships")

// Validate applies the gateway rules in contract order; the first failing
// rule wins and is reported alone.
func (r *PredictRequest) Validate() error {
	if r.CGPA == nil || r.DSAScore == nil || r.Projects == nil || r.Communication == nil || r.Internships == nil {
		return ErrMissingFields
	}
	if *r.CGPA < 0 || *r.CGPA > 10 {
		return errors.New("CGPA must be between 0 and 10")
	}
	if *r.DSAScore < 0 || *r.DSAScore > 100 {
		return errors.New("DSA Score must be between 0 and 100")
	}
	if *r.Projects < 0 {
		return errors.New("Number of projects cannot be negative")
	}
	if *r.Communication < 1 || *r.Communication > 10 {
		return errors.New("Communication skill level must be between 1 and 10")
	}
	if *r.Internships < 0 {
		return errors.New("Number of internships cannot be negative")
	}
	return nil
}
