package formation

import (
	"time"
)
var (
	KSingletonPairSetKey = "singleton-gob:pairset"
)

type PairSetItem struct {
	Created  time.Time
	Pair     CompatiblePair
}

// A PairSet remembers which pairings a sweep has already emitted, so that
// periodic re-runs over overlapping time windows don't report the same
// pairing twice. It persists between runs via the singleton store.
type PairSet map[string]PairSetItem

func (s PairSet)String() string {
	str := "{"
	for k := range s {
		str += " " + k
	}
	return str + " }"
}

func (s PairSet)Exists(cp CompatiblePair) bool {
	_,exists := s[cp.Key()]
	return exists
}

func (s PairSet)AddIfNew(cp CompatiblePair) (addedOk bool) {
	if s.Exists(cp) {
		return false
	}
	s[cp.Key()] = PairSetItem{ time.Now().UTC(), cp }
	return true
}

func (s PairSet)AgeOut(d time.Duration) {
	for k,v := range s {
		if time.Since(v.Created) > d {
			delete (s, k)
		}
	}
}

func (s PairSet)Remove(cp CompatiblePair) {
	delete (s, cp.Key())
}

// Updates the PairSet, adding newly seen pairings; returns just those that
// were previously unknown.
func (s PairSet)FindNew(input []CompatiblePair) []CompatiblePair {
	output := []CompatiblePair{}
	for _,cp := range input {
		if s.AddIfNew(cp) {
			output = append(output, cp)
		}
	}
	return output
}
