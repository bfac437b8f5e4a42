// Package stepper computes the next replica bound to hand the HPA gateway,
// ramping gradually toward whichever time-window target is nearest instead
// of jumping straight there, so a string of five-minute reconciles doesn't
// thrash the scale target.
package stepper

import (
	"time"

	v1 "github.com/udaan-com/service-scaler/api/v1"
	"github.com/udaan-com/service-scaler/internal/timewindow"
)

// ReconciliationPeriod is the cadence the jump-interval math is expressed
// in units of. One "jump" is one reconcile.
const ReconciliationPeriod = 300 * time.Second

// rampBandJumps is the jump-interval ceiling beyond which a target is
// considered too far out to ramp toward gradually; Step falls back to the
// caller-supplied fallback value instead.
const rampBandJumps = 6

// DetermineNextTarget scans ranges for whichever edge (from or to, of
// whichever range) is nearest to now, and returns the jump interval to that
// edge (in units of ReconciliationPeriod, floored at 1) along with the
// replica value that edge implies.
//
// A range's "from" edge, when it is the nearer of its two edges, implies
// stepping toward that range's own override value (the window is about to
// start). A range's "to" edge, when nearer, implies stepping toward the
// baseline default (the window is about to end). Ties between a from-edge
// and the running minimum favor the from-edge; ties between a to-edge and
// the running minimum favor whichever was recorded first, since a to-edge
// only overwrites the minimum on a strict improvement.
//
// With no ranges there is no edge: the jump interval is 1 and the target nil.
func DetermineNextTarget(now time.Time, defaultValue int32, ranges []v1.TimeRange, isMax bool) (int64, *int32, error) {
	if len(ranges) == 0 {
		return 1, nil, nil
	}

	var minDiff int64 = 1<<63 - 1
	var nextTarget *int32

	for _, r := range ranges {
		diffFromFrom, err := timewindow.DiffFromNow(r.From, r.Kind, now)
		if err != nil {
			return 0, nil, err
		}
		diffFromTo, err := timewindow.DiffFromNow(r.To, r.Kind, now)
		if err != nil {
			return 0, nil, err
		}
		dff := int64(diffFromFrom / time.Second)
		dft := int64(diffFromTo / time.Second)

		if dff < dft {
			if dff <= minDiff {
				minDiff = dff
				if isMax {
					nextTarget = r.ReplicaSpec.HPA.MaxReplicas
				} else {
					nextTarget = r.ReplicaSpec.HPA.MinReplicas
				}
			}
		} else {
			if dft < minDiff {
				minDiff = dft
				v := defaultValue
				nextTarget = &v
			}
		}
	}

	jumpInterval := minDiff / int64(ReconciliationPeriod/time.Second)
	if jumpInterval < 1 {
		jumpInterval = 1
	}
	return jumpInterval, nextTarget, nil
}

// Step returns the next value to apply for one replica bound (min or max).
// curr is the bound's current live value on the HPA; defaultValue is the
// ServiceScaler's baseline for that bound; fallback is used verbatim when
// the nearest target is more than rampBandJumps reconciles away.
func Step(now time.Time, curr, defaultValue, fallback int32, ranges []v1.TimeRange, isMax bool) (int32, error) {
	jumpInterval, nextTarget, err := DetermineNextTarget(now, defaultValue, ranges, isMax)
	if err != nil {
		return 0, err
	}
	if nextTarget == nil {
		return defaultValue, nil
	}
	if jumpInterval > rampBandJumps {
		return fallback, nil
	}
	if *nextTarget == curr {
		return curr, nil
	}

	step := (*nextTarget - curr) / int32(jumpInterval)
	result := curr + step
	if curr > *nextTarget {
		if result < *nextTarget {
			result = *nextTarget
		}
	} else {
		if result > *nextTarget {
			result = *nextTarget
		}
	}
	return result, nil
}
