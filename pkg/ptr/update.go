package ptr

import (
	"errors"

	"github.com/cenkalti/backoff/v4"
)

// ErrSlotContended reports that a compare-exchange lost the race to another
// writer. Update returns it when the retry policy gives up.
var ErrSlotContended = errors.New("shmptr: atomic slot contended")

// Update applies a read-modify-write to the slot under a caller-chosen
// backoff policy: load the stored word, compute a replacement with fn, and
// compare-exchange it in, retrying per policy while other writers interfere.
// It returns the word that was replaced.
//
// fn operates entirely on stored words and may run several times; it must be
// side-effect free. The slot itself stays loop-free — this is one
// ready-made retry policy layered on CompareExchange, not part of the slot
// contract.
func Update[T Wrapped[T]](a *Atomic[T], policy backoff.BackOff, fn func(old uintptr) uintptr) (uintptr, error) {
	var replaced uintptr
	op := func() error {
		old := a.LoadValue()
		if _, ok := a.CompareExchange(old, fn(old)); !ok {
			return ErrSlotContended
		}
		replaced = old
		return nil
	}
	if err := backoff.Retry(op, policy); err != nil {
		return 0, err
	}
	return replaced, nil
}
