package model

// Role of the signed-in user.
type Role string

const (
	RoleAthlete Role = "ATHLETE"
	RoleCoach   Role = "COACH"
	RolePhysio  Role = "PHYSIO"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAthlete, RoleCoach, RolePhysio:
		return true
	}
	return false
}

// Severity of an injury.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// InjuryStatus moves forward only: Active, Recovering, Resolved.
type InjuryStatus string

const (
	InjuryActive     InjuryStatus = "Active"
	InjuryRecovering InjuryStatus = "Recovering"
	InjuryResolved   InjuryStatus = "Resolved"
)

func (s InjuryStatus) Valid() bool {
	switch s {
	case InjuryActive, InjuryRecovering, InjuryResolved:
		return true
	}
	return false
}

// TransactionType separates income from expense.
type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// GoalStatus of a career goal.
type GoalStatus string

const (
	GoalPending    GoalStatus = "Pending"
	GoalInProgress GoalStatus = "In Progress"
	GoalAchieved   GoalStatus = "Achieved"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalPending, GoalInProgress, GoalAchieved:
		return true
	}
	return false
}

// RiskLevel bands an injury risk score. Critical is part of the contract but
// the heuristic never produces it.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskModerate, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// DietStatus is the overall nutrition verdict.
type DietStatus string

const (
	DietOptimal          DietStatus = "Optimal"
	DietNeedsImprovement DietStatus = "Needs Improvement"
	DietPoor             DietStatus = "Poor"
)

func (s DietStatus) Valid() bool {
	switch s {
	case DietOptimal, DietNeedsImprovement, DietPoor:
		return true
	}
	return false
}
