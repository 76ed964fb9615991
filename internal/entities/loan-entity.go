package entities

import (
	"time"

	"asset-system/pkg/types"
)

// Loan — выдача актива сотруднику во временное пользование.
type Loan struct {
	ID                    uint64     `json:"id"`
	CompanyID             uint64     `json:"company_id"`
	AssetID               uint64     `json:"asset_id"`
	BorrowerEmployeeID    uint64     `json:"borrower_employee_id"`
	ResponsibleEmployeeID uint64     `json:"responsible_employee_id"`
	RequestedByID         uint64     `json:"requested_by_id"`
	ApprovedByID          *uint64    `json:"approved_by_id"`
	Status                string     `json:"status"`
	LoanDate              time.Time  `json:"loan_date"`
	ExpectedReturnDate    time.Time  `json:"expected_return_date"`
	ReturnedAt            *time.Time `json:"returned_at"`

	types.BaseEntity
}
