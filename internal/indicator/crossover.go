package indicator

import "MarketPulse/internal/model"

// CrossAbove reports whether series a crossed above series b between the
// previous and current observation: current a strictly above current b
// while previous a was at or below previous b. Undefined cells never cross.
func CrossAbove(aPrev, bPrev, aCur, bCur model.Value) bool {
	if !aPrev.Valid || !bPrev.Valid || !aCur.Valid || !bCur.Valid {
		return false
	}
	return aCur.V > bCur.V && aPrev.V <= bPrev.V
}

// CrossBelow is the mirror of CrossAbove.
func CrossBelow(aPrev, bPrev, aCur, bCur model.Value) bool {
	if !aPrev.Valid || !bPrev.Valid || !aCur.Valid || !bCur.Valid {
		return false
	}
	return aCur.V < bCur.V && aPrev.V >= bPrev.V
}
