package cardio

import (
	"github.com/RyanBlaney/cardioscope/cardio/config"
)

// Rhythm is a heart-rate band label. It reflects rate only and says nothing
// about beat morphology or regularity.
type Rhythm string

const (
	RhythmUnknown     Rhythm = "unknown"
	RhythmBradycardia Rhythm = "bradycardia"
	RhythmNormal      Rhythm = "normal"
	RhythmTachycardia Rhythm = "tachycardia"
)

// Classify labels a heart rate using the configured bands. An absent rate
// is unknown.
func Classify(heartRate *float64, cfg config.RhythmConfig) Rhythm {
	if heartRate == nil {
		return RhythmUnknown
	}

	cfg = cfg.Sanitize()
	switch hr := *heartRate; {
	case hr < cfg.BradycardiaBelow:
		return RhythmBradycardia
	case hr > cfg.TachycardiaAbove:
		return RhythmTachycardia
	default:
		return RhythmNormal
	}
}
