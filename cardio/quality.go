package cardio

import (
	"math"

	"github.com/RyanBlaney/cardioscope/algorithms/common"
	"github.com/RyanBlaney/cardioscope/algorithms/stats"
	"github.com/RyanBlaney/cardioscope/cardio/config"
)

// Quality scores beat-to-beat consistency from 0 to 100 as the mean Pearson
// correlation of every beat segment with the average beat, floored at zero.
// The flag is false when fewer than cfg.MinBeats segments fit in the trace.
// The score suits Frame.SQI.
func Quality(trace []float64, fiducials FiducialSet, sampleRate int, cfg config.QualityConfig) (int, bool) {
	if sampleRate <= 0 {
		return 0, false
	}
	cfg = cfg.Sanitize()

	from := common.MillisToSamples(cfg.Window.From, sampleRate)
	to := common.MillisToSamples(cfg.Window.To, sampleRate)

	segments := stats.Segments(trace, fiducials.R, from, to)
	if len(segments) < cfg.MinBeats {
		return 0, false
	}

	correlations := stats.TemplateCorrelation(segments, stats.Template(segments))
	score := max(common.Mean(correlations), 0.0)
	return int(math.Round(100 * score)), true
}
