package domain

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product string

const (
	ProductHomeLoan     Product = "HOME_LOAN"
	ProductPersonalLoan Product = "PERSONAL_LOAN"
	ProductAutoLoan     Product = "AUTO_LOAN"
	ProductBusinessLoan Product = "BUSINESS_LOAN"
)

// Status is the full lifecycle enumeration. Only DRAFT is ever produced by
// this service: applications are created as DRAFT and the decision endpoint
// is a read-side synthesis that never transitions them. The remaining states
// exist so stored data and list filters stay contract-shaped.
type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusSubmitted   Status = "SUBMITTED"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusDeclined    Status = "DECLINED"
	StatusDisbursed   Status = "DISBURSED"
	StatusClosed      Status = "CLOSED"
)

type RepaymentFrequency string

const (
	FrequencyWeekly      RepaymentFrequency = "WEEKLY"
	FrequencyFortnightly RepaymentFrequency = "FORTNIGHTLY"
	FrequencyMonthly     RepaymentFrequency = "MONTHLY"
)

// Applicant is immutable after creation.
type Applicant struct {
	FirstName        string
	LastName         string
	DateOfBirth      string
	Email            string
	Phone            string
	AnnualIncome     float64
	EmploymentStatus string
}

type LoanApplication struct {
	ApplicationID      string
	ReferenceNumber    string
	Product            Product
	Status             Status
	RequestedAmount    float64
	TermMonths         int
	RepaymentFrequency RepaymentFrequency
	Purpose            string
	Applicant          Applicant
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ApplyPatch merges the allow-listed mutable fields and stamps UpdatedAt.
// The stamp happens even when every new value equals the old one: a
// successful update always refreshes UpdatedAt.
func (a *LoanApplication) ApplyPatch(patch ApplicationPatch, now time.Time) {
	if patch.RequestedAmount != nil {
		a.RequestedAmount = *patch.RequestedAmount
	}
	if patch.TermMonths != nil {
		a.TermMonths = *patch.TermMonths
	}
	if patch.RepaymentFrequency != nil {
		a.RepaymentFrequency = *patch.RepaymentFrequency
	}
	a.UpdatedAt = now
}

func NewApplicationID() string {
	return uuid.NewString()
}

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewReferenceNumber returns a human-readable code in the form
// LN-<YYYYMMDD>-<4 base36 chars>. Uniqueness is best effort; there is no
// collision detection or retry.
func NewReferenceNumber(now time.Time) string {
	var suffix strings.Builder
	for i := 0; i < 4; i++ {
		suffix.WriteByte(referenceAlphabet[rand.Intn(len(referenceAlphabet))])
	}
	return "LN-" + now.UTC().Format("20060102") + "-" + suffix.String()
}
