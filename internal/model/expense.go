package model

import "time"

// ExpenseCategory classifies a shared child expense.
type ExpenseCategory string

const (
	ExpenseMedical    ExpenseCategory = "medical"
	ExpenseEducation  ExpenseCategory = "education"
	ExpenseActivities ExpenseCategory = "activities"
	ExpenseClothing   ExpenseCategory = "clothing"
	ExpenseOther      ExpenseCategory = "other"
)

// ExpenseStatus tracks the approval state of a shared expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseDisputed ExpenseStatus = "disputed"
	ExpensePaid     ExpenseStatus = "paid"
)

// SplitRatio is the percentage split of an expense between the parents.
// The two shares sum to 100.
type SplitRatio struct {
	Parent1 int `json:"parent1"`
	Parent2 int `json:"parent2"`
}

// Expense is a shared child-related cost logged by one parent.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	AmountCents int64           `json:"amountCents"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
	PaidBy      string          `json:"paidBy"` // parent email
	Status      ExpenseStatus   `json:"status"`
	Split       SplitRatio      `json:"splitRatio"`
	Receipt     string          `json:"receipt,omitempty"`
}

// OwedCents returns how many cents the non-paying parent owes for this
// expense. payerIsParent1 resolves which split share belongs to the payer.
// Disputed expenses count as zero until resolved.
func (e Expense) OwedCents(payerIsParent1 bool) int64 {
	if e.Status == ExpenseDisputed {
		return 0
	}
	otherShare := e.Split.Parent2
	if !payerIsParent1 {
		otherShare = e.Split.Parent1
	}
	return e.AmountCents * int64(otherShare) / 100
}
