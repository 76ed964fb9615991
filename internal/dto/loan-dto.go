package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

type LoanDTO struct {
	ID                    uint64      `json:"id"`
	AssetID               uint64      `json:"asset_id"`
	BorrowerEmployeeID    uint64      `json:"borrower_employee_id"`
	ResponsibleEmployeeID uint64      `json:"responsible_employee_id"`
	RequestedByID         uint64      `json:"requested_by_id"`
	ApprovedByID          null.Uint64 `json:"approved_by_id"`
	Status                string      `json:"status"`
	LoanDate              time.Time   `json:"loan_date"`
	ExpectedReturnDate    time.Time   `json:"expected_return_date"`
	ReturnedAt            null.Time   `json:"returned_at"`
	CreatedAt             *time.Time  `json:"created_at"`
}

type CreateLoanDTO struct {
	AssetID               uint64    `json:"asset_id" validate:"required"`
	BorrowerEmployeeID    uint64    `json:"borrower_employee_id" validate:"required"`
	ResponsibleEmployeeID uint64    `json:"responsible_employee_id" validate:"required"`
	ExpectedReturnDate    time.Time `json:"expected_return_date" validate:"required"`
}
