/*
Package filterseq provides a lazy, restartable filter/transform view over
an iter.Seq, without intermediate buffering.

A View[In, Out] couples a source sequence with a predicate and a transform.
Ranging over View.All() re-scans the source from its start, skips every
element the predicate rejects and yields the transform's result for every
element it accepts. Nothing is materialized and the View holds no cursor
state of its own, so the same View can be ranged over any number of times
and every pass produces the same output sequence in the same order.

Example of projecting the even numbers of a sequence, doubled:

	view := filterseq.New(
		source,
		func(n int) bool { return n%2 == 0 },
		func(n int) int { return n * 2 },
	)

	for v := range view.All() {
		// 0, 4, 8, ...
	}

Transforms are invoked once per accepted element per pass; results are not
cached. Transforms must therefore be cheap and side-effect-free on read.
Predicates may carry state (for example a scratch buffer they write into),
but two passes sharing such state must not run concurrently.
*/
package filterseq
