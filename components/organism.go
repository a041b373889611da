package components

import "math/rand"

// Personality traits, each in [0, 1]. Fixed at spawn.
type Personality struct {
	Laziness     float32
	Energy       float32
	Curiosity    float32
	Skittishness float32
}

// RandomPersonality draws uniform traits.
func RandomPersonality(rng *rand.Rand) Personality {
	return Personality{
		Laziness:     rng.Float32(),
		Energy:       rng.Float32(),
		Curiosity:    rng.Float32(),
		Skittishness: rng.Float32(),
	}
}

// Dominant returns the index of the strongest trait in the order
// Laziness, Energy, Curiosity, Skittishness. Ties go to the earlier trait.
func (p Personality) Dominant() int {
	traits := [...]float32{p.Laziness, p.Energy, p.Curiosity, p.Skittishness}
	best := 0
	for i := 1; i < len(traits); i++ {
		if traits[i] > traits[best] {
			best = i
		}
	}
	return best
}

// Name is the display name shown in tooltips and the inspector.
type Name struct {
	Value string
}

// Empty entries keep most names unadorned.
var (
	namePrefixes = []string{
		"", "", "", "", "", "Sir ", "Lady ", "Professor ", "Captain ",
		"Dr. ", "Little ", "Big ", "Lord ", "Princess ",
	}
	nameBases = []string{
		"Whiskers", "Mittens", "Shadow", "Luna", "Mochi", "Noodle", "Biscuit",
		"Pepper", "Ginger", "Oreo", "Tofu", "Pickles", "Beans", "Nugget",
		"Waffles", "Muffin", "Cleo", "Felix", "Salem", "Ziggy",
		"Pumpkin", "Smokey", "Tiger", "Patches", "Boots", "Socks",
		"Marble", "Dusty", "Cinnamon", "Toffee", "Chai", "Latte",
		"Sprout", "Pixel", "Widget", "Byte", "Cookie", "Pretzel",
	}
	nameSuffixes = []string{
		"", "", "", "", "", " Jr.", " III", " the Great", " McFluff",
	}
)

// RandomName builds a name from prefix, base and suffix tables.
func RandomName(rng *rand.Rand) Name {
	return Name{Value: namePrefixes[rng.Intn(len(namePrefixes))] +
		nameBases[rng.Intn(len(nameBases))] +
		nameSuffixes[rng.Intn(len(nameSuffixes))]}
}
