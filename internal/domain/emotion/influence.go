package emotion

// Influence is a derived, read-only view of a state: four composite scores
// consumed by planning and dialogue layers. Pure function of the raw
// dimensions, no side effects.
type Influence struct {
	Aggressiveness int `json:"aggressiveness"`
	Trustfulness   int `json:"trustfulness"`
	Helpfulness    int `json:"helpfulness"`
	RiskTaking     int `json:"risk_taking"`
}

// Influence computes the composite scores as fixed linear combinations of the
// raw dimensions, each clamped to [0,100].
func (s State) Influence() Influence {
	return Influence{
		Aggressiveness: ClampDim((2*s.Anger + s.Excitement + (DimMax - s.Fear)) / 4),
		Trustfulness:   ClampDim((2*s.Trust + s.Happiness + (DimMax - s.Fear)) / 4),
		Helpfulness:    ClampDim((s.Happiness + s.Trust + (DimMax - s.Anger)) / 3),
		RiskTaking:     ClampDim((s.Excitement + s.Surprise + (DimMax - s.Fear)) / 3),
	}
}
