package agent

// CreateRequest covers both creation modes: quick-add sends only first and
// last name, the full form sends everything.
type CreateRequest struct {
	FirstName            string `json:"firstName" validate:"required"`
	LastName             string `json:"lastName" validate:"required"`
	Email                string `json:"email" validate:"omitempty,email"`
	Phone                string `json:"phone"`
	LicenseNumber        string `json:"licenseNumber"`
	LicenseState         string `json:"licenseState"`
	CommissionPercentage string `json:"commissionPercentage" validate:"omitempty,numeric"`
	OverridePercentage   string `json:"overridePercentage" validate:"omitempty,numeric"`
	UplineAgentID        *uint  `json:"uplineAgentId"`
	BankName             string `json:"bankName"`
	AccountType          string `json:"accountType" validate:"omitempty,oneof=checking savings"`
	AccountNumber        string `json:"accountNumber"`
	RoutingNumber        string `json:"routingNumber"`
}

// UpdateRequest is a merge patch: nil fields are left untouched. Clearing the
// upline is signalled by an explicit JSON null, which the handler detects
// separately.
type UpdateRequest struct {
	FirstName            *string `json:"firstName" validate:"omitempty,min=1"`
	LastName             *string `json:"lastName" validate:"omitempty,min=1"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Phone                *string `json:"phone"`
	LicenseNumber        *string `json:"licenseNumber"`
	LicenseState         *string `json:"licenseState"`
	CommissionPercentage *string `json:"commissionPercentage" validate:"omitempty,numeric"`
	OverridePercentage   *string `json:"overridePercentage" validate:"omitempty,numeric"`
	UplineAgentID        *uint   `json:"uplineAgentId"`
	BankName             *string `json:"bankName"`
	AccountType          *string `json:"accountType" validate:"omitempty,oneof=checking savings"`
	AccountNumber        *string `json:"accountNumber"`
	RoutingNumber        *string `json:"routingNumber"`
}
