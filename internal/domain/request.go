package domain

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusReturned RequestStatus = "returned"
)

// RequestAction is a lifecycle transition requested on a BorrowRequest.
type RequestAction string

const (
	ActionApprove RequestAction = "approve"
	ActionReject  RequestAction = "reject"
	ActionReturn  RequestAction = "return"
)

// BorrowRequest is a student's ask to take a quantity of an inventory item
// for a bounded period. Status moves one-directionally:
// pending -> approved|rejected, approved -> returned.
type BorrowRequest struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"` // denormalized from users/{userId}
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"` // denormalized from inventoryItems/{itemId}
	Quantity int    `json:"quantity"`
	// RFC 3339 timestamps.
	RequestDate  string        `json:"requestDate"`
	DueDate      string        `json:"dueDate"`
	Status       RequestStatus `json:"status"`
	Purpose      string        `json:"purpose"`
	ApprovedBy   string        `json:"approvedBy,omitempty"`
	ApprovalDate string        `json:"approvalDate,omitempty"`
	ReturnDate   string        `json:"returnDate,omitempty"`
}
