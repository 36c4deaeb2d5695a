package domain

import (
	"encoding/json"
	"fmt"
)

// RoleProfile is the role-specific data collected at registration. Exactly
// one concrete variant exists per Role, so the variant's tag can never drift
// from the role it belongs to.
type RoleProfile interface {
	// ProfileRole returns the role the variant belongs to.
	ProfileRole() Role
	// VerificationID returns the 12-digit national id carried by every variant.
	VerificationID() string
}

// StudentProfile is the variant collected for student accounts.
type StudentProfile struct {
	NationalID       string `json:"nationalId" validate:"required,len=12,number"`
	InstitutionName  string `json:"institutionName" validate:"required"`
	CourseName       string `json:"courseName" validate:"required"`
	EnrollmentReason string `json:"enrollmentReason" validate:"required"`
}

func (p *StudentProfile) ProfileRole() Role      { return RoleStudent }
func (p *StudentProfile) VerificationID() string { return p.NationalID }

// ExpertProfile is the variant collected for independent experts.
type ExpertProfile struct {
	NationalID       string `json:"nationalId" validate:"required,len=12,number"`
	OrganizationName string `json:"organizationName" validate:"required"`
	YearsExperience  *int   `json:"yearsExperience" validate:"required,gte=0"`
	Specialization   string `json:"specialization" validate:"required"`
}

func (p *ExpertProfile) ProfileRole() Role      { return RoleIndependentExpert }
func (p *ExpertProfile) VerificationID() string { return p.NationalID }

// CertifierProfile is the variant collected for certifying organizations.
type CertifierProfile struct {
	NationalID           string `json:"nationalId" validate:"required,len=12,number"`
	OrganizationName     string `json:"organizationName" validate:"required"`
	AccreditationDetails string `json:"accreditationDetails" validate:"required"`
	Website              string `json:"website,omitempty"`
}

func (p *CertifierProfile) ProfileRole() Role      { return RoleCertifier }
func (p *CertifierProfile) VerificationID() string { return p.NationalID }

// JobProviderProfile is the variant collected for hiring companies.
type JobProviderProfile struct {
	NationalID         string `json:"nationalId" validate:"required,len=12,number"`
	CompanyName        string `json:"companyName" validate:"required"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Industry           string `json:"industry" validate:"required"`
	YearFounded        int    `json:"yearFounded" validate:"required"`
	Headquarters       string `json:"headquarters" validate:"required"`
	ContactNumber      string `json:"contactNumber" validate:"required"`
	Website            string `json:"website,omitempty"`
	CompanySize        string `json:"companySize" validate:"required"`
	RevenueRange       string `json:"revenueRange" validate:"required"`
	TypicalOpenings    string `json:"typicalOpenings" validate:"required"`
	Description        string `json:"description" validate:"required"`
}

func (p *JobProviderProfile) ProfileRole() Role      { return RoleJobProvider }
func (p *JobProviderProfile) VerificationID() string { return p.NationalID }

// NewProfile returns the zero variant for the given role.
func NewProfile(role Role) (RoleProfile, error) {
	switch role {
	case RoleStudent:
		return &StudentProfile{}, nil
	case RoleIndependentExpert:
		return &ExpertProfile{}, nil
	case RoleCertifier:
		return &CertifierProfile{}, nil
	case RoleJobProvider:
		return &JobProviderProfile{}, nil
	default:
		return nil, WrapError(ErrCodeInternal, "unknown role", fmt.Errorf("role %q", role))
	}
}

// UnmarshalProfile decodes raw profile JSON into the variant selected by
// role. The role tag lives on the owning User, not inside the payload.
func UnmarshalProfile(role Role, raw []byte) (RoleProfile, error) {
	profile, err := NewProfile(role)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, profile); err != nil {
		return nil, WrapError(ErrCodeInvalid, "malformed profile payload", err)
	}
	return profile, nil
}
