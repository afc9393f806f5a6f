package models

import "time"

// DefaultCredits is the balance new accounts start with and resets return to.
const DefaultCredits = 20

// Account is the owner of documents and credits.
type Account struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreditRequestStatus is the adjudication state of a credit request.
type CreditRequestStatus string

const (
	CreditRequestPending  CreditRequestStatus = "pending"
	CreditRequestApproved CreditRequestStatus = "approved"
	CreditRequestRejected CreditRequestStatus = "rejected"
)

// CreditRequest is a user's request for additional credits.
type CreditRequest struct {
	ID              int64               `json:"id"`
	Email           string              `json:"email"`
	Username        string              `json:"username,omitempty"`
	Credits         int                 `json:"credits"`
	ApprovedCredits *int                `json:"approvedCredits,omitempty"`
	Reason          string              `json:"reason"`
	Status          CreditRequestStatus `json:"status"`
	RejectionReason string              `json:"rejectionReason,omitempty"`
	RequestDate     time.Time           `json:"requestDate"`
}
