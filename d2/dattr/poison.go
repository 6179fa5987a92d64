package dattr

import (
	"fmt"
	"math"
)

// PoisonParams converts raw poison values to total damage over the duration
// and the duration in seconds. Halves round to even.
func PoisonParams(minRaw int, maxRaw int, durationRaw int) (minDamage int, maxDamage int, seconds int) {
	seconds = int(math.RoundToEven(float64(durationRaw) / poisonTicks))
	minDamage = totalPoisonDamage(minRaw, seconds)
	if minRaw == maxRaw {
		return minDamage, minDamage, seconds
	}
	return minDamage, totalPoisonDamage(maxRaw, seconds), seconds
}

func totalPoisonDamage(raw int, seconds int) int {
	return int(math.RoundToEven(float64(raw) / poisonFactor * float64(seconds)))
}

// PoisonText renders poison damage through template, which takes the damage
// text and the duration.
func PoisonText(minRaw int, maxRaw int, durationRaw int, template string) (string, error) {
	minDamage, maxDamage, seconds := PoisonParams(minRaw, maxRaw, durationRaw)
	damage := fmt.Sprintf("+%d", minDamage)
	if minDamage != maxDamage {
		damage = fmt.Sprintf("Adds %d-%d", minDamage, maxDamage)
	}
	return FormatTemplate(template, []any{damage, seconds})
}
