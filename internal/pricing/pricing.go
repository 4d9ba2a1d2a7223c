// Package pricing lists the subscription plans offered to dashboard users.
package pricing

import "github.com/JaimeStill/octo/internal/session"

// Plan is a purchasable subscription.
type Plan struct {
	ID          session.Plan `json:"id"`
	Name        string       `json:"name"`
	Price       string       `json:"price"`
	Period      string       `json:"period"`
	Description string       `json:"description"`
	Features    []string     `json:"features"`
	Highlighted bool         `json:"highlighted"`
}

// ButtonText is the call to action for the plan.
func (p Plan) ButtonText() string {
	return "Choose " + p.Name
}

var plans = []Plan{
	{
		ID:          session.PlanPersonal,
		Name:        "Personal",
		Price:       "$59",
		Period:      "year",
		Description: "Perfect for individuals and small personal projects.",
		Features:    []string{"1 User", "All UI components", "Lifetime access", "Free updates", "Use on 1 project", "3 Months support"},
	},
	{
		ID:          session.PlanBusiness,
		Name:        "Business",
		Price:       "$199",
		Period:      "year",
		Description: "Perfect for growing teams and multiple projects.",
		Features:    []string{"5 Users", "All UI components", "Lifetime access", "Free updates", "Use on 3 projects", "6 Months support"},
		Highlighted: true,
	},
	{
		ID:          session.PlanProfessional,
		Name:        "Professional",
		Price:       "$399",
		Period:      "year",
		Description: "Perfect for large teams and unlimited usage.",
		Features:    []string{"Unlimited Users", "All UI components", "Lifetime access", "Free updates", "Unlimited projects", "12 Months support"},
	},
}

// Plans returns the offered plans in display order. The result may be modified.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		p.Features = append([]string(nil), p.Features...)
		out[i] = p
	}
	return out
}

// Find returns the plan with id.
func Find(id session.Plan) (Plan, bool) {
	for _, p := range Plans() {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
