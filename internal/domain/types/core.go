package types

// SignalType identifies the kind of synthetic signal a model produces.
type SignalType string

const (
	// SignalTransit is a periodic planetary transit signal.
	SignalTransit SignalType = "transit"
	// SignalSupernova is a one-off supernova light curve signal.
	SignalSupernova SignalType = "supernova"
)

// String returns the string form of the signal type.
func (s SignalType) String() string { return string(s) }

// Params maps parameter names to resolved scalar values.
type Params map[string]float64

// Clone returns an independent copy of the parameter mapping.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
