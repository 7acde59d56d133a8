// Package align resolves alignment requests into a [geom.LayoutAlign].
//
// Requests arrive in a fixed order: the first and second positional values,
// then the horizontal and vertical keyword values. A request either names
// its axis (keywords, and positional values like `left` that belong to one
// axis) or not (a positional `center`). A request without an axis is held
// back until another request fixes one axis, and then centers the other
// one. Two such requests in a row center both axes. A request still held
// back at the end centers the primary axis.
//
// Conflicts never abort resolution. Each one is reported to a [diag.Sink]
// and the offending request is dropped, so its axis keeps the previous
// value:
//
//   - a directional value paired with the wrong axis (ALIGN_AXIS_MISMATCH)
//   - a second value for an axis that is already set (ALIGN_DUPLICATE_AXIS)
//   - a bare center after both axes are set (ALIGN_OVER_SPECIFIED)
package align
