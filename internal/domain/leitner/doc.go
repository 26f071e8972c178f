// Package leitner implements the pure scheduling rules of the three-level
// Leitner box system: per-date box eligibility and consecutive-day streak
// calculation. Functions in this package are pure computations over their
// inputs and hold no state.
package leitner
