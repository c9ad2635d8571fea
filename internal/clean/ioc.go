package clean

// UnknownIOC is the reserved code for country codes never seen during
// training.
const UnknownIOC = -1

// IOCEncoder factorizes country codes into integer codes. Codes are assigned
// in first-seen order jointly across both player orientations so a given
// country maps to the same code regardless of orientation.
type IOCEncoder struct {
	codes map[string]int
	order []string
}

// NewIOCEncoder creates an empty encoder.
func NewIOCEncoder() *IOCEncoder {
	return &IOCEncoder{codes: make(map[string]int)}
}

// Encode returns the code for a country, assigning the next one on first
// sight. Used during the training-time pass.
func (e *IOCEncoder) Encode(country string) int {
	if code, ok := e.codes[country]; ok {
		return code
	}
	code := len(e.order)
	e.codes[country] = code
	e.order = append(e.order, country)
	return code
}

// Lookup returns the training-time code for a country, or UnknownIOC for a
// country never seen during training.
func (e *IOCEncoder) Lookup(country string) int {
	if code, ok := e.codes[country]; ok {
		return code
	}
	return UnknownIOC
}

// Countries returns the encoded countries in code order.
func (e *IOCEncoder) Countries() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}
