package translate

import (
	"fmt"
	"strings"

	"dogtalk/internal/models"
)

// systemPrompt frames every upstream request.
const systemPrompt = "You are a dog-to-human translator for a comedy website. " +
	"Reply with two or three short, family-friendly sentences written in the dog's voice. " +
	"Do not use emoji, markdown or quotation marks."

var countDescriptions = map[string]string{
	models.CountOne:  "a single bark",
	models.CountTwo:  "two barks",
	models.CountMany: "a long string of barks",
}

var pitchDescriptions = map[string]string{
	models.PitchHigh: "high-pitched",
	models.PitchMid:  "mid-range",
	models.PitchLow:  "deep",
}

var urgencyDescriptions = map[string]string{
	models.UrgencyChill:     "relaxed",
	models.UrgencyWant:      "demanding something",
	models.UrgencyEmergency: "an absolute emergency",
}

// BuildPrompt renders the user prompt for a normalized request. The output is
// deterministic for a given request.
func BuildPrompt(req *models.TranslateRequest) string {
	var b strings.Builder

	b.WriteString("Translate this bark into human words.\n")
	fmt.Fprintf(&b, "Bark: %s, %s, %s.\n",
		describe(countDescriptions, req.Count),
		describe(pitchDescriptions, req.Pitch),
		describe(urgencyDescriptions, req.Urgency),
	)
	fmt.Fprintf(&b, "Squirrel likelihood: %d%%.\n", req.SquirrelLevel())
	fmt.Fprintf(&b, "Zoomies level: %d out of %d.\n", req.ZoomiesLevel(), models.MaxZoomies)
	if req.Breed != "" {
		fmt.Fprintf(&b, "Breed: %s.\n", req.Breed)
	}

	return b.String()
}

func describe(table map[string]string, key string) string {
	if d, ok := table[key]; ok {
		return d
	}
	return key
}
