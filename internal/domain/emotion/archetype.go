package emotion

// Archetype base profiles. An NPC's initial state is its archetype profile
// perturbed by quirk modifiers, clamped per dimension. Unknown archetypes
// fall back to the neutral profile.
var archetypeProfiles = map[string]State{
	"merchant": {
		Happiness: 60, Anger: 40, Fear: 35, Trust: 45,
		Excitement: 55, Sadness: 40, Disgust: 45, Surprise: 50,
	},
	"guard": {
		Happiness: 45, Anger: 55, Fear: 25, Trust: 40,
		Excitement: 45, Sadness: 45, Disgust: 50, Surprise: 40,
	},
	"scholar": {
		Happiness: 55, Anger: 35, Fear: 40, Trust: 55,
		Excitement: 60, Sadness: 45, Disgust: 40, Surprise: 65,
	},
	"trickster": {
		Happiness: 65, Anger: 45, Fear: 30, Trust: 30,
		Excitement: 70, Sadness: 35, Disgust: 40, Surprise: 60,
	},
	"healer": {
		Happiness: 60, Anger: 25, Fear: 45, Trust: 65,
		Excitement: 45, Sadness: 50, Disgust: 35, Surprise: 45,
	},
}

// Quirk modifiers applied on top of the archetype profile.
var quirkModifiers = map[string]map[Dimension]int{
	"cheerful":    {DimHappiness: 10, DimSadness: -5},
	"paranoid":    {DimFear: 15, DimTrust: -10},
	"greedy":      {DimExcitement: 10, DimTrust: -5},
	"stoic":       {DimSurprise: -10, DimAnger: -5, DimExcitement: -5},
	"hot_blooded": {DimAnger: 10, DimExcitement: 10, DimFear: -5},
	"melancholic": {DimSadness: 15, DimHappiness: -10},
	"trusting":    {DimTrust: 15, DimFear: -5},
	"squeamish":   {DimDisgust: 15},
}

// NewState builds an initial state from an archetype name and quirks.
func NewState(archetype string, quirks []string) State {
	base, ok := archetypeProfiles[archetype]
	if !ok {
		base = NeutralState()
	}
	for _, q := range quirks {
		mods, ok := quirkModifiers[q]
		if !ok {
			continue
		}
		base = base.WithDeltas(mods)
	}
	return base.Clamped()
}

// KnownArchetype reports whether the archetype has a dedicated base profile.
func KnownArchetype(name string) bool {
	_, ok := archetypeProfiles[name]
	return ok
}
