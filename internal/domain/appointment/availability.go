package appointment

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots splits business hours into back-to-back slots of length
// minutes and keeps the ones that overlap none of busy.
func FreeSlots(busy []Interval, length int) []TimeSlot {
	slots := []TimeSlot{}
	if length <= 0 {
		return slots
	}

	for cur := BusinessHours.Start; cur+length <= BusinessHours.End; cur += SlotGranularity {
		candidate := Interval{Start: cur, End: cur + length}

		conflict := false
		for _, b := range busy {
			if candidate.Overlaps(b) {
				conflict = true
				break
			}
		}
		if !conflict {
			slots = append(slots, TimeSlot{
				Start: FormatClock(candidate.Start),
				End:   FormatClock(candidate.End),
			})
		}
	}
	return slots
}
