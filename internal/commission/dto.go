package commission

import "time"

type CreateRequest struct {
	Name            string     `json:"name"`
	PolicyNumber    string     `json:"policyNumber" validate:"required"`
	ClientID        uint       `json:"clientId" validate:"required"`
	BrokerID        uint       `json:"brokerId" validate:"required"`
	Amount          string     `json:"amount" validate:"required"`
	Status          string     `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	Type            string     `json:"type" validate:"omitempty,oneof=initial renewal override bonus"`
	PolicyStartDate *time.Time `json:"policyStartDate" validate:"required"`
	PolicyEndDate   *time.Time `json:"policyEndDate"`
	PaymentDate     *time.Time `json:"paymentDate"`
	Carrier         string     `json:"carrier"`
	PolicyType      string     `json:"policyType" validate:"required"`
	Notes           string     `json:"notes"`
}

type UpdateRequest struct {
	Name            *string    `json:"name"`
	PolicyNumber    *string    `json:"policyNumber" validate:"omitempty,min=1"`
	ClientID        *uint      `json:"clientId"`
	BrokerID        *uint      `json:"brokerId"`
	Amount          *string    `json:"amount" validate:"omitempty,min=1"`
	Status          *string    `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	Type            *string    `json:"type" validate:"omitempty,oneof=initial renewal override bonus"`
	PolicyStartDate *time.Time `json:"policyStartDate"`
	PolicyEndDate   *time.Time `json:"policyEndDate"`
	PaymentDate     *time.Time `json:"paymentDate"`
	Carrier         *string    `json:"carrier"`
	PolicyType      *string    `json:"policyType"`
	Notes           *string    `json:"notes"`
}

// WeeklyResponse is the payload of GET /commissions/weekly/by-agent/{id}.
type WeeklyResponse struct {
	AgentID      uint         `json:"agentId"`
	WeekStart    time.Time    `json:"weekStart"`
	WeekEnd      time.Time    `json:"weekEnd"`
	Commissions  []Commission `json:"commissions"`
	Total        string       `json:"total"`
	AgentShare   string       `json:"agentShare"`
	CompanyShare string       `json:"companyShare"`
	AgentRate    float64      `json:"agentRate"`
}
