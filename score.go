package formation

import(
	"fmt"
	"math"
	"time"
)

// {{{ ScoreOptions{}

type ScoreOptions struct {
	MaxSeparationKM float64 // score hits zero at this lateral separation
	MaxTimeGapSec   float64 // score hits zero at this temporal separation
	MinScore        float64 // segment floor; zero means any positive score counts
}

func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{
		MaxSeparationKM: 50.0,
		MaxTimeGapSec:   600.0,
		MinScore:        0.0,
	}
}

// }}}

// {{{ FeasibilityScore

// FeasibilityScore rates how plausibly two trajectory samples could be flown
// in formation, in [0,1]. It blends spatial and temporal proximity, plus
// heading alignment when both samples carry one. The score ranks candidates;
// it is not a probability, and it never rejects on its own.
func FeasibilityScore(s1, s2 TrajectorySample, opt ScoreOptions) float64 {
	distScore := math.Max(0, 1.0-DistanceKM(s1.Pos, s2.Pos)/opt.MaxSeparationKM)

	gapSec := math.Abs(s1.TimeUTC.Sub(s2.TimeUTC).Seconds())
	timeScore := math.Max(0, 1.0-gapSec/opt.MaxTimeGapSec)

	if s1.HasHeading && s2.HasHeading {
		headingScore := math.Max(0, 1.0-BearingDiff(s1.Heading, s2.Heading)/180.0)
		return 0.4*distScore + 0.4*timeScore + 0.2*headingScore
	}

	return 0.5*distScore + 0.5*timeScore
}

// }}}
// {{{ FormationSegment{}

// A FormationSegment is a contiguous stretch of two flight paths whose
// time-aligned samples all score above a floor.
type FormationSegment struct {
	Start, End       time.Time
	StartIdx, EndIdx int     // inclusive node range on the first path
	NumSamples       int
	MeanScore        float64
	PeakScore        float64
}

func (fs FormationSegment)Duration() time.Duration { return fs.End.Sub(fs.Start) }

func (fs FormationSegment)String() string {
	return fmt.Sprintf("[%s+%s, %d samples, mean %.2f, peak %.2f]",
		fs.Start.Format("15:04:05"), fs.Duration(), fs.NumSamples, fs.MeanScore, fs.PeakScore)
}

// }}}
// {{{ FormationSegments

// FormationSegments walks the first path node by node, aligns each node with
// the other path by timestamp, and collects the contiguous runs that score
// above opt.MinScore. Nodes outside the other path's time range break a run,
// as does any sub-floor score.
func FormationSegments(p1, p2 FlightPath, opt ScoreOptions) []FormationSegment {
	segments := []FormationSegment{}

	var cur *FormationSegment
	var sum float64

	flush := func() {
		if cur != nil {
			cur.MeanScore = sum / float64(cur.NumSamples)
			segments = append(segments, *cur)
			cur = nil
			sum = 0
		}
	}

	for i, node := range p1 {
		j := p2.IndexAtTime(node.TimestampUTC)
		if j < 0 {
			flush()
			continue
		}

		s1 := p1.SampleAt(i)
		s2 := interpolatedSampleAt(p2, j, node.TimestampUTC)
		score := FeasibilityScore(s1, s2, opt)
		if score <= opt.MinScore {
			flush()
			continue
		}

		if cur == nil {
			cur = &FormationSegment{Start: node.TimestampUTC, StartIdx: i, PeakScore: score}
		}
		cur.End = node.TimestampUTC
		cur.EndIdx = i
		cur.NumSamples++
		sum += score
		if score > cur.PeakScore {
			cur.PeakScore = score
		}
	}
	flush()

	return segments
}

// interpolatedSampleAt refines the node-at-or-before into a position at the
// exact timestamp, so coarse sampling doesn't register as lateral separation.
func interpolatedSampleAt(p FlightPath, i int, t time.Time) TrajectorySample {
	s := p.SampleAt(i)
	if i+1 >= len(p) {
		return s
	}

	span := p[i+1].TimestampUTC.Sub(p[i].TimestampUTC)
	if span <= 0 {
		return s
	}

	ratio := float64(t.Sub(p[i].TimestampUTC)) / float64(span)
	node := p[i].InterpolateTo(p[i+1], ratio)
	s.Pos = node.Latlong
	s.TimeUTC = node.TimestampUTC
	return s
}

// }}}
// {{{ BestFormationSegment

// BestFormationSegment picks the longest segment, breaking ties by mean
// score. The bool is false when the paths never overlap above the floor.
func BestFormationSegment(p1, p2 FlightPath, opt ScoreOptions) (FormationSegment, bool) {
	segments := FormationSegments(p1, p2, opt)
	if len(segments) == 0 {
		return FormationSegment{}, false
	}

	best := segments[0]
	for _, seg := range segments[1:] {
		if seg.NumSamples > best.NumSamples ||
			(seg.NumSamples == best.NumSamples && seg.MeanScore > best.MeanScore) {
			best = seg
		}
	}
	return best, true
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
