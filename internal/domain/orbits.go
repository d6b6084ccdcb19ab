package domain

// OrbitCount is the number of concentric placement rings.
const OrbitCount = 5

// slotsPerOrbit is the fixed addressable slot count of each orbit, 1-based.
var slotsPerOrbit = [OrbitCount + 1]int{0, 4, 6, 8, 10, 12}

// orbitAngles lists the fixed angular layout of each orbit's slots, degrees.
var orbitAngles = map[int][]int{
	1: {0, 90, 180, 270},
	2: {0, 60, 120, 180, 240, 300},
	3: {0, 45, 90, 135, 180, 225, 270, 315},
	4: {0, 36, 72, 108, 144, 180, 216, 252, 288, 324},
	5: {0, 30, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330},
}

// ValidOrbit reports whether n names one of the five orbits.
func ValidOrbit(n int) bool {
	return n >= 1 && n <= OrbitCount
}

// SlotsInOrbit returns the slot count of an orbit, or 0 for invalid orbits.
func SlotsInOrbit(orbit int) int {
	if !ValidOrbit(orbit) {
		return 0
	}
	return slotsPerOrbit[orbit]
}

// ValidSlot reports whether slot addresses an existing position on orbit.
// Slots are 1-based.
func ValidSlot(orbit, slot int) bool {
	return slot >= 1 && slot <= SlotsInOrbit(orbit)
}

// SlotAngle returns the fixed initial angle of a slot in degrees.
func SlotAngle(orbit, slot int) int {
	if !ValidSlot(orbit, slot) {
		return 0
	}
	return orbitAngles[orbit][slot-1]
}

// OrbitRadii returns each orbit's pixel radius for a viewport width. The
// renderer consumes this; the engine only cares that topology is fixed.
func OrbitRadii(viewportWidth int) map[int]int {
	switch {
	case viewportWidth <= 360:
		return map[int]int{1: 90, 2: 140, 3: 190, 4: 240, 5: 290}
	case viewportWidth <= 480:
		return map[int]int{1: 110, 2: 175, 3: 240, 4: 305, 5: 370}
	case viewportWidth <= 768:
		return map[int]int{1: 140, 2: 225, 3: 310, 4: 395, 5: 480}
	default:
		return map[int]int{1: 200, 2: 350, 3: 500, 4: 650, 5: 800}
	}
}
