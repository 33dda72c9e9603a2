package util

import (
	"fmt"
	"math/rand/v2"

	"github.com/mrsinham/starforge/internal/synth"
)

// Constellations is the list of IAU constellation names used for field names.
var Constellations = []string{
	"Andromeda", "Aquarius", "Aquila", "Aries", "Auriga", "Bootes", "Cancer",
	"Canis Major", "Capricornus", "Carina", "Cassiopeia", "Centaurus", "Cepheus",
	"Cetus", "Columba", "Corona Borealis", "Corvus", "Crux", "Cygnus", "Delphinus",
	"Draco", "Eridanus", "Fornax", "Gemini", "Hercules", "Hydra", "Leo", "Lepus",
	"Libra", "Lupus", "Lyra", "Monoceros", "Ophiuchus", "Orion", "Pegasus",
	"Perseus", "Phoenix", "Pisces", "Puppis", "Sagittarius", "Scorpius",
	"Sculptor", "Serpens", "Taurus", "Triangulum", "Ursa Major", "Ursa Minor",
	"Vela", "Virgo", "Vulpecula",
}

// GenerateFieldName generates a synthetic sky field name.
//
// If rng is nil, a freshly seeded generator is used for this call.
// Returns name in DICOM person-name format: "CONSTELLATION^Field-NNN"
func GenerateFieldName(rng *rand.Rand) string {
	if rng == nil {
		rng = synth.NewRNG(synth.NoSeed)
	}

	constellation := Constellations[rng.IntN(len(Constellations))]
	return fmt.Sprintf("%s^Field-%03d", constellation, rng.IntN(1000))
}
