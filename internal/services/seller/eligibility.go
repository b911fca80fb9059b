package seller

import (
	"strings"

	"github.com/handcart/backend/internal/models"
)

// Requirements breaks the eligibility check down per requirement
type Requirements struct {
	Phone          bool `json:"phone"`
	Address        bool `json:"address"`
	Identification bool `json:"identification"`
}

// EligibilityResult is the outcome of evaluating an account against the
// minimum requirements to apply as a seller
type EligibilityResult struct {
	IsEligible    bool         `json:"is_eligible"`
	MissingFields []string     `json:"missing_fields"`
	Requirements  Requirements `json:"requirements"`
}

// Labels shown to applicants for each unmet requirement, always reported in
// this order: phone, address, identification.
const (
	missingPhoneLabel          = "phone number"
	missingAddressLabel        = "complete address (street, city, state)"
	missingIdentificationLabel = "identification document (identity proof or business license)"
)

// EvaluateEligibility checks whether the account satisfies the minimum
// profile requirements to apply as a seller. It is read-only and safe to call
// in any seller status. A document qualifies by type alone; its own review
// status is not considered here.
func EvaluateEligibility(user *models.User, docs []models.VerificationDocument) EligibilityResult {
	var reqs Requirements

	if user.Phone != nil && strings.TrimSpace(*user.Phone) != "" {
		reqs.Phone = true
	}

	if strings.TrimSpace(user.Address.Street) != "" &&
		strings.TrimSpace(user.Address.City) != "" &&
		strings.TrimSpace(user.Address.State) != "" {
		reqs.Address = true
	}

	for _, doc := range docs {
		if doc.Type.Qualifying() {
			reqs.Identification = true
			break
		}
	}

	result := EligibilityResult{
		Requirements:  reqs,
		MissingFields: []string{},
	}
	if !reqs.Phone {
		result.MissingFields = append(result.MissingFields, missingPhoneLabel)
	}
	if !reqs.Address {
		result.MissingFields = append(result.MissingFields, missingAddressLabel)
	}
	if !reqs.Identification {
		result.MissingFields = append(result.MissingFields, missingIdentificationLabel)
	}
	result.IsEligible = len(result.MissingFields) == 0

	return result
}
