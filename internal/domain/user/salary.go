package user

// Salary holds the basic pay, the named allowance/deduction percentages and
// the three derived totals. The derived fields are never accepted from the
// client; Recompute runs before every persistence of a contributing change.
type Salary struct {
	Basic      float64 `json:"basic"`
	HRA        float64 `json:"hra"`
	PA         float64 `json:"pa"`
	DA         float64 `json:"da"`
	SPA        float64 `json:"spa"`
	EPF        float64 `json:"epf"`
	PT         float64 `json:"pt"`
	IT         float64 `json:"it"`
	Conveyance float64 `json:"conveyance"`
	Medical    float64 `json:"medical"`
	Bonus      float64 `json:"bonus"`
	Gratuity   float64 `json:"gratuity"`

	TotalDeductions float64 `json:"totalDeductions"`
	TotalEarnings   float64 `json:"totalEarnings"`
	NetSalary       float64 `json:"netSalary"`
}

func (s *Salary) Recompute() {
	s.TotalDeductions = s.Basic * (s.EPF + s.PT + s.IT) / 100
	s.TotalEarnings = s.Basic + s.Basic*(s.HRA+s.PA+s.DA+s.SPA+s.Conveyance+s.Medical+s.Gratuity)/100
	s.NetSalary = s.TotalEarnings - s.TotalDeductions
}

// SalaryPatch carries the salary inputs of an update; nil fields are left
// untouched on the stored record.
type SalaryPatch struct {
	Basic      *float64 `json:"basic"`
	HRA        *float64 `json:"hra"`
	PA         *float64 `json:"pa"`
	DA         *float64 `json:"da"`
	SPA        *float64 `json:"spa"`
	EPF        *float64 `json:"epf"`
	PT         *float64 `json:"pt"`
	IT         *float64 `json:"it"`
	Conveyance *float64 `json:"conveyance"`
	Medical    *float64 `json:"medical"`
	Bonus      *float64 `json:"bonus"`
	Gratuity   *float64 `json:"gratuity"`
}

func (p SalaryPatch) Apply(s *Salary) {
	assign := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&s.Basic, p.Basic)
	assign(&s.HRA, p.HRA)
	assign(&s.PA, p.PA)
	assign(&s.DA, p.DA)
	assign(&s.SPA, p.SPA)
	assign(&s.EPF, p.EPF)
	assign(&s.PT, p.PT)
	assign(&s.IT, p.IT)
	assign(&s.Conveyance, p.Conveyance)
	assign(&s.Medical, p.Medical)
	assign(&s.Bonus, p.Bonus)
	assign(&s.Gratuity, p.Gratuity)
	s.Recompute()
}
