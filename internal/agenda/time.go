package agenda

import "fmt"

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MinutesOverlap calculates the overlapping minutes between two
// minute-of-day ranges. Returns 0 if there is no overlap.
func MinutesOverlap(s1, e1, s2, e2 int) int {
	overlapStart := max(s1, s2)
	overlapEnd := min(e1, e2)
	if overlapEnd <= overlapStart {
		return 0
	}
	return overlapEnd - overlapStart
}

// RangesOverlap returns true if two minute-of-day ranges overlap.
// Two ranges overlap if: start1 < end2 AND start2 < end1.
func RangesOverlap(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
