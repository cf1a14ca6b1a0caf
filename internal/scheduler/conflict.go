package scheduler

import "time"

// Meeting represents a scheduled meeting for conflict detection purposes.
type Meeting struct {
	ID           string
	Participants []string
	Start        time.Time
	End          time.Time
}

// Conflict details an overlapping meeting relation that callers can present
// to users.
type Conflict struct {
	WithMeetingID string
	Participant   string
}

// DetectConflicts identifies participant double-bookings for the candidate
// meeting against existing ones. Intervals are half-open [Start, End): two
// meetings that touch at a boundary do not conflict. A meeting never
// conflicts with itself.
func DetectConflicts(existing []Meeting, candidate Meeting) []Conflict {
	if len(candidate.Participants) == 0 {
		return nil
	}

	members := make(map[string]struct{}, len(candidate.Participants))
	for _, p := range candidate.Participants {
		members[p] = struct{}{}
	}

	var conflicts []Conflict
	for _, other := range existing {
		if other.ID == candidate.ID {
			continue
		}
		if !overlaps(candidate.Start, candidate.End, other.Start, other.End) {
			continue
		}
		for _, p := range other.Participants {
			if _, ok := members[p]; ok {
				conflicts = append(conflicts, Conflict{
					WithMeetingID: other.ID,
					Participant:   p,
				})
			}
		}
	}
	return conflicts
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
