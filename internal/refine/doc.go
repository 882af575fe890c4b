// Package refine runs optional AI cleanup over mapped metadata. The step is
// strictly best-effort: any failure leaves the original values in place.
package refine
