package types

// Result is the outcome of reading one item (a process, a volume) inside a
// batch. Either Value is set or Skipped carries the reason it was left out.
type Result[T any] struct {
	Value   T
	Skipped error
}

// Ok wraps a successfully read item.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Skip marks an item as left out of the batch.
func Skip[T any](reason error) Result[T] { return Result[T]{Skipped: reason} }

// Kept splits a batch into the items that were read and the skip reasons,
// preserving the order of both.
func Kept[T any](results []Result[T]) (kept []T, skipped []error) {
	kept = make([]T, 0, len(results))
	for _, r := range results {
		if r.Skipped != nil {
			skipped = append(skipped, r.Skipped)
			continue
		}
		kept = append(kept, r.Value)
	}
	return kept, skipped
}
