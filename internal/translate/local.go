package translate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"dogtalk/internal/models"
)

var openers = []string{
	"Okay, human, here's the situation:",
	"Gather round, pack, breaking news:",
	"Small announcement from the Ministry of Borks:",
	"Official memo from the Department of Zoomies:",
}

var countLines = map[string][]string{
	models.CountOne:  {"a single, dramatic woof", "one very meaningful bark", "a solo statement piece"},
	models.CountTwo:  {"a classy double-woof", "two precision barks", "a tasteful bark-bark"},
	models.CountMany: {"a full pack chorus", "a community bark meeting", "a symphony of howls"},
}

var pitchLines = map[string][]string{
	models.PitchHigh: {"in chipmunk-adjacent pitch", "soprano mode engaged", "whistle-register activated"},
	models.PitchMid:  {"in confident mid-range", "with podcast-host energy", "like a professional doorbell"},
	models.PitchLow:  {"from the basement of the soul", "subwoofer activated", "earthquake advisory level"},
}

var urgencyLines = map[string][]string{
	models.UrgencyChill:     {"no rush, just vibes", "calendar invite: optional", "non-urgent, yet important"},
	models.UrgencyWant:      {"requesting immediate snack deployment", "TPS report shows treat deficit", "operational need: belly rubs"},
	models.UrgencyEmergency: {"full red alert", "DEFCON woof", "mission-critical, paws on deck"},
}

const (
	squirrelConfirmed = "Also: SQUIRREL CONFIRMED. All windows now officially 'police stations.'"
	squirrelAbsent    = "No squirrels in sight, but I will maintain patrol purely for morale."
	squirrelMaybe     = "Squirrel probability medium; recommend cautious tail-wagging with rapid perimeter checks."

	zoomiesTornado = "Zoomies at tornado strength; sofa should update its will."
	zoomiesSteady  = "Zoomies at sustainable thrum; prepare hallway sprints."
	zoomiesDormant = "Zoomies dormant; naps at maximum fluff."
)

// LocalGenerator assembles a translation from canned phrases. It never fails
// and is used whenever the upstream provider is disabled, throttled or down.
type LocalGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocalGenerator creates a generator. A nil rng uses the package-level
// random source.
func NewLocalGenerator(rng *rand.Rand) *LocalGenerator {
	return &LocalGenerator{rng: rng}
}

// Generate implements Generator. The request must already be normalized.
func (g *LocalGenerator) Generate(_ context.Context, req *models.TranslateRequest) (string, error) {
	opener := g.pick(openers)
	detected := fmt.Sprintf("Detected %s %s: %s.",
		g.pick(countLines[req.Count]),
		g.pick(pitchLines[req.Pitch]),
		g.pick(urgencyLines[req.Urgency]),
	)

	text := fmt.Sprintf("%s %s %s %s", opener, detected, squirrelLine(req.SquirrelLevel()), zoomiesLine(req.ZoomiesLevel()))
	if req.Breed != "" {
		text += " [" + req.Breed + "]"
	}
	return text, nil
}

func (g *LocalGenerator) pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	if g.rng == nil {
		return options[rand.IntN(len(options))]
	}

	// *rand.Rand is not safe for concurrent use
	g.mu.Lock()
	defer g.mu.Unlock()
	return options[g.rng.IntN(len(options))]
}

func squirrelLine(level int) string {
	switch level {
	case 100:
		return squirrelConfirmed
	case 0:
		return squirrelAbsent
	default:
		return squirrelMaybe
	}
}

func zoomiesLine(level int) string {
	switch {
	case level >= 8:
		return zoomiesTornado
	case level >= 5:
		return zoomiesSteady
	default:
		return zoomiesDormant
	}
}
