package domain

// Australian state and territory codes accepted for project locations and
// factor region lookups.
var ValidStates = map[string]struct{}{
	"NSW": {},
	"VIC": {},
	"QLD": {},
	"SA":  {},
	"WA":  {},
	"TAS": {},
	"NT":  {},
	"ACT": {},
}

func IsValidState(state string) bool {
	_, ok := ValidStates[state]
	return ok
}
