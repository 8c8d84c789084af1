package domain

// PlanContext is a tenant's resolved subscription plan: its code, numeric
// limits and feature toggles. It is materialized once per request and passed
// explicitly into quota and booking paths, so tests can inject a fixed value.
type PlanContext struct {
	TenantID int64
	PlanCode string

	// Limits maps a limit name to its cap; UnlimitedLimit (-1) means no cap.
	// A missing name is treated as unlimited.
	Limits map[string]int

	// Toggles maps feature names to on/off flags
	Toggles map[string]bool

	// SubscriptionActive is false once the trial or subscription has lapsed
	SubscriptionActive bool
}

// QuotaResult is the outcome of evaluating one limit against a live count
type QuotaResult struct {
	LimitName string
	IsLimited bool
	Limit     int
	Current   int
	CanProceed bool
}

// CheckLimit evaluates a named limit against the pre-addition count.
// The limit caps the resulting count: a current count equal to the limit
// already blocks further additions. A limit of UnlimitedLimit (or a missing
// limit name) never blocks.
func (p *PlanContext) CheckLimit(limitName string, currentCount int) QuotaResult {
	limit := UnlimitedLimit
	if p.Limits != nil {
		if v, ok := p.Limits[limitName]; ok {
			limit = v
		}
	}

	if limit == UnlimitedLimit {
		return QuotaResult{
			LimitName:  limitName,
			IsLimited:  false,
			Limit:      limit,
			Current:    currentCount,
			CanProceed: true,
		}
	}

	isLimited := currentCount >= limit
	return QuotaResult{
		LimitName:  limitName,
		IsLimited:  isLimited,
		Limit:      limit,
		Current:    currentCount,
		CanProceed: !isLimited,
	}
}

// HasToggle returns true if the named feature toggle is enabled
func (p *PlanContext) HasToggle(name string) bool {
	if p.Toggles == nil {
		return false
	}
	return p.Toggles[name]
}
