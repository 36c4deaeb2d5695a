// Package schema defines, per role, the shape of registration data and
// validates partially filled drafts against it.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/eduverse/backend/domain"
)

// commonFields are required for every role, in prompt order.
var commonFields = []string{"fullName", "email", "password", "confirmPassword"}

// requiredByRole lists each variant's required fields in prompt order.
// Optional fields (website) are deliberately absent.
var requiredByRole = map[domain.Role][]string{
	domain.RoleStudent: {
		"nationalId", "institutionName", "courseName", "enrollmentReason",
	},
	domain.RoleIndependentExpert: {
		"nationalId", "organizationName", "yearsExperience", "specialization",
	},
	domain.RoleCertifier: {
		"nationalId", "organizationName", "accreditationDetails",
	},
	domain.RoleJobProvider: {
		"nationalId", "companyName", "registrationNumber", "industry",
		"yearFounded", "headquarters", "contactNumber", "companySize",
		"revenueRange", "typicalOpenings", "description",
	},
}

// Result is the outcome of validating a draft. MissingFields lists, in
// prompt order, every required field that is absent or malformed.
type Result struct {
	Valid         bool
	MissingFields []string
}

// Registry validates registration drafts. It is pure: no I/O, no state
// beyond the compiled validator.
type Registry struct {
	validate *validator.Validate
}

func New() *Registry {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Registry{validate: v}
}

// Required returns the ordered required-field names for role: the four
// common fields followed by the variant fields.
func (r *Registry) Required(role domain.Role) ([]string, error) {
	variant, ok := requiredByRole[role]
	if !ok {
		return nil, domain.WrapError(domain.ErrCodeInternal, "unknown role", fmt.Errorf("role %q", role))
	}
	fields := make([]string, 0, len(commonFields)+len(variant))
	fields = append(fields, commonFields...)
	fields = append(fields, variant...)
	return fields, nil
}

// Validate checks a draft against the role's schema. Fields that fail any
// constraint (absent, or present but malformed, e.g. a nationalId that is
// not exactly 12 digits) are reported in MissingFields.
func (r *Registry) Validate(role domain.Role, draft *domain.RegistrationDraft) (Result, error) {
	variant, ok := requiredByRole[role]
	if !ok {
		return Result{}, domain.WrapError(domain.ErrCodeInternal, "unknown role", fmt.Errorf("role %q", role))
	}
	if draft == nil {
		return Result{MissingFields: mustRequired(r, role)}, nil
	}

	var missing []string
	missing = append(missing, r.failedFields(draft)...)

	switch {
	case draft.Profile == nil:
		missing = append(missing, variant...)
	case draft.Profile.ProfileRole() != role:
		return Result{}, domain.NewError(domain.ErrCodeInvalid, "profile does not match selected role")
	default:
		missing = append(missing, r.failedFields(draft.Profile)...)
	}

	return Result{Valid: len(missing) == 0, MissingFields: missing}, nil
}

// failedFields runs the validator over one struct and returns the json
// names of every failed field, in declaration order.
func (r *Registry) failedFields(s any) []string {
	err := r.validate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		// InvalidValidationError means a non-struct slipped through,
		// which the closed variant set rules out.
		return nil
	}
	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func mustRequired(r *Registry, role domain.Role) []string {
	fields, err := r.Required(role)
	if err != nil {
		return nil
	}
	return fields
}
