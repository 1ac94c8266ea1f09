// Package analysis estimates orbital periods from sampled radius series.
//
// A [Recorder] observes an engine and keeps the orbit radius of every
// planet per tick. Because r(θ) repeats once per revolution, the dominant
// frequency of that series gives the period:
//
//	rec := analysis.NewRecorder()
//	eng.AddObserver(rec)
//	eng.Run(ctx, 20000, nil)
//	period, ok := analysis.DominantPeriod(rec.Series(b))
package analysis
