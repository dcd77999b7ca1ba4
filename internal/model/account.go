// Package model defines the account kinds, plans, and per-year records
// shared by the projection engine, storage, and frontends.
package model

import "fmt"

// AccountKind identifies one of the four projected account types.
type AccountKind int

const (
	// BonusSavings is the savings account with a 25% government bonus on
	// net contributions (LISA).
	BonusSavings AccountKind = iota
	// StandardSavings is the flexible tax-free savings account (ISA).
	StandardSavings
	// PersonalPension is the self-invested pension with relief at
	// source (SIPP).
	PersonalPension
	// EmployerPension is the workplace auto-enrolment pension.
	EmployerPension

	// NumAccounts is the number of account kinds.
	NumAccounts
)

// Kinds lists the account kinds in projection order.
func Kinds() [NumAccounts]AccountKind {
	return [NumAccounts]AccountKind{BonusSavings, StandardSavings, PersonalPension, EmployerPension}
}

func (k AccountKind) String() string {
	switch k {
	case BonusSavings:
		return "bonus_savings"
	case StandardSavings:
		return "standard_savings"
	case PersonalPension:
		return "personal_pension"
	case EmployerPension:
		return "employer_pension"
	default:
		return fmt.Sprintf("account(%d)", int(k))
	}
}

// Label returns the short display name used in tables and charts.
func (k AccountKind) Label() string {
	switch k {
	case BonusSavings:
		return "LISA"
	case StandardSavings:
		return "ISA"
	case PersonalPension:
		return "SIPP"
	case EmployerPension:
		return "Workplace"
	default:
		return k.String()
	}
}

// PerAccount holds one value per account kind, indexed by AccountKind.
// It is used for balances, rates, and per-year flows alike.
type PerAccount [NumAccounts]float64

// Total sums the four entries.
func (p PerAccount) Total() float64 {
	var total float64
	for _, v := range p {
		total += v
	}
	return total
}
