// Iterator helpers
package iterutils

import "iter"

// Reads a fallible iterator into a slice, stopping at the first error.
func Collect[V any](seq iter.Seq2[V, error]) ([]V, error) {
	values := []V{}
	for v, err := range seq {
		if err != nil {
			return values, err
		}

		values = append(values, v)
	}

	return values, nil
}
