package domain

import "time"

// PaymentMethod identifies how an expense was paid.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentPix        PaymentMethod = "PIX"
	PaymentBankSlip   PaymentMethod = "BANK_SLIP"
)

// ExpenseCategory classifies an expense entry.
type ExpenseCategory string

const (
	CategoryShopping      ExpenseCategory = "SHOPPING"
	CategoryTransport     ExpenseCategory = "TRANSPORT"
	CategoryFees          ExpenseCategory = "FEES"
	CategoryLoan          ExpenseCategory = "LOAN"
	CategoryFood          ExpenseCategory = "FOOD"
	CategoryEntertainment ExpenseCategory = "ENTERTAINMENT"
	CategoryHealth        ExpenseCategory = "HEALTH"
	CategoryEducation     ExpenseCategory = "EDUCATION"
	CategoryOther         ExpenseCategory = "OTHER"
)

// Installment marks an expense as part N of M of an installment plan.
type Installment struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Expense is a single expense entry owned by the upstream expense backend.
type Expense struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Category      ExpenseCategory `json:"category"`
	Location      string          `json:"location"`
	Installment   *Installment    `json:"installment,omitempty"`
	Value         float64         `json:"value"`
	Description   string          `json:"description"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CreditCardID  string          `json:"credit_card_id,omitempty"`
	UserID        string          `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpenseFilters narrows an expense listing. Zero values mean "no filter".
type ExpenseFilters struct {
	Category      ExpenseCategory
	Location      string
	StartDate     time.Time
	EndDate       time.Time
	PaymentMethod PaymentMethod
	CreditCardID  string
	Search        string
}

// ExpenseSummary is the aggregated view the dashboard charts consume.
// Breakdown maps go from dimension value to summed expense value.
type ExpenseSummary struct {
	TotalExpenses     float64            `json:"total_expenses"`
	TotalInstallments int                `json:"total_installments"`
	ByCategory        map[string]float64 `json:"expenses_by_category"`
	ByLocation        map[string]float64 `json:"expenses_by_location"`
	ByPaymentMethod   map[string]float64 `json:"expenses_by_payment_method"`
	ByCreditCard      map[string]float64 `json:"expenses_by_credit_card"`
	ByInstallment     map[string]float64 `json:"expenses_by_installment"`
}
