package models

// InterventionStrategy is a selectable remediation option. The name doubles
// as the selection key; there is no separate identifier.
type InterventionStrategy struct {
	Name      string `json:"name"`
	CostLevel string `json:"cost_level"`
	IsActive  bool   `json:"is_active"`
}
