package emotion

// DefaultCatalog returns the built-in trigger rules. Deployments can replace
// or extend the catalog through the static trigger provider; the catalog is
// read-only at runtime either way.
func DefaultCatalog() []Trigger {
	return []Trigger{
		{
			Event:      "gift_received",
			Conditions: map[string]Condition{"value": {Op: OpGreaterThan, Value: 0}},
			Deltas: map[Dimension]int{
				DimHappiness:  20,
				DimTrust:      15,
				DimExcitement: 10,
			},
			ReputationImpact: 30,
			Description:      "received a gift of any value",
		},
		{
			Event:      "gift_received",
			Conditions: map[string]Condition{"value": {Op: OpGreaterThan, Value: 100}},
			Deltas: map[Dimension]int{
				DimHappiness:  30,
				DimTrust:      25,
				DimExcitement: 20,
				DimSurprise:   10,
			},
			ReputationImpact: 60,
			Description:      "received a lavish gift",
		},
		{
			Event: "insulted",
			Deltas: map[Dimension]int{
				DimAnger:     25,
				DimHappiness: -15,
				DimTrust:     -10,
			},
			ReputationImpact: -20,
			Description:      "was insulted by the player",
		},
		{
			Event: "attacked",
			Deltas: map[Dimension]int{
				DimAnger: 30,
				DimFear:  20,
				DimTrust: -25,
			},
			ReputationImpact: -50,
			Description:      "was attacked by the player",
		},
		{
			Event:      "quest_completed",
			Conditions: map[string]Condition{"success": {Op: OpEquals, Value: true}},
			Deltas: map[Dimension]int{
				DimHappiness:  15,
				DimTrust:      10,
				DimExcitement: 5,
			},
			ReputationImpact: 25,
			Description:      "player completed a quest for this npc",
		},
		{
			Event:      "quest_completed",
			Conditions: map[string]Condition{"success": {Op: OpEquals, Value: false}},
			Deltas: map[Dimension]int{
				DimSadness:   15,
				DimTrust:     -10,
				DimHappiness: -10,
			},
			ReputationImpact: -15,
			Description:      "player abandoned or failed a quest",
		},
		{
			Event: "betrayed",
			Deltas: map[Dimension]int{
				DimAnger:   20,
				DimSadness: 15,
				DimTrust:   -30,
			},
			ReputationImpact: -60,
			Description:      "player broke a standing agreement",
		},
		{
			Event: "helped",
			Deltas: map[Dimension]int{
				DimHappiness: 10,
				DimTrust:     10,
			},
			ReputationImpact: 15,
			Description:      "player offered unprompted help",
		},
		{
			Event: "theft_witnessed",
			Deltas: map[Dimension]int{
				DimDisgust:  20,
				DimTrust:    -15,
				DimSurprise: 10,
			},
			ReputationImpact: -35,
			Description:      "npc saw the player steal",
		},
		{
			Event:      "trade",
			Conditions: map[string]Condition{"fair": {Op: OpEquals, Value: true}},
			Deltas: map[Dimension]int{
				DimTrust:     5,
				DimHappiness: 5,
			},
			ReputationImpact: 10,
			Description:      "completed a fair trade",
		},
		{
			Event:      "trade",
			Conditions: map[string]Condition{"fair": {Op: OpEquals, Value: false}},
			Deltas: map[Dimension]int{
				DimDisgust: 10,
				DimTrust:   -10,
				DimAnger:   5,
			},
			ReputationImpact: -15,
			Description:      "was shortchanged in a trade",
		},
		{
			Event:      "duel",
			Conditions: map[string]Condition{"won": {Op: OpEquals, Value: false}},
			Deltas: map[Dimension]int{
				DimExcitement: 15,
				DimSurprise:   10,
				DimHappiness:  5,
			},
			ReputationImpact: 20,
			Description:      "npc won a friendly duel",
		},
		{
			Event:      "duel",
			Conditions: map[string]Condition{"won": {Op: OpEquals, Value: true}},
			Deltas: map[Dimension]int{
				DimSadness:    10,
				DimExcitement: 10,
				DimSurprise:   5,
			},
			ReputationImpact: 5,
			Description:      "npc lost a friendly duel",
		},
	}
}
