package binder

import "fmt"

// resolver turns the markers of one contract into a strategy: no marker yields
// the fallback, one marker its single strategy, several markers a composite
// when the contract supports one.
type resolver[S any] struct {
	contract  Contract
	fallback  func() S
	single    func(Marker) (S, error)
	composite func([]S) S
}

func (r resolver[S]) resolve(markers []Marker) (S, error) {
	var zero S

	selected := filterMarkers(markers, r.contract)
	switch len(selected) {
	case 0:
		return r.fallback(), nil
	case 1:
		return r.single(selected[0])
	}

	if r.composite == nil {
		return zero, fmt.Errorf("%w: %d %s markers", ErrCompositeUnsupported, len(selected), r.contract)
	}

	parts := make([]S, 0, len(selected))
	for _, m := range selected {
		s, err := r.single(m)
		if err != nil {
			return zero, err
		}
		parts = append(parts, s)
	}
	return r.composite(parts), nil
}

// filterMarkers keeps the markers of one contract in their original order.
func filterMarkers(markers []Marker, c Contract) []Marker {
	var out []Marker
	for _, m := range markers {
		if m != nil && m.Contract() == c {
			out = append(out, m)
		}
	}
	return out
}

// checkContracts rejects markers whose contract no strategy factory resolves.
func checkContracts(markers []Marker) error {
	for _, m := range markers {
		if m == nil {
			continue
		}
		switch m.Contract() {
		case ContractRetry, ContractThrottle, ContractErrorHandling, ContractAnalytics:
		default:
			return unsupportedMarker(m)
		}
	}
	return nil
}

func unsupportedMarker(m Marker) error {
	return fmt.Errorf("%w: %T for %s", ErrUnsupportedMarker, m, m.Contract())
}
