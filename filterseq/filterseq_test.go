package filterseq_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/magnet-links-go/filterseq"
)

func seqOf[T any](items ...T) func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func isEven(n int) bool { return n%2 == 0 }

func Test_View_FiltersAndTransforms(t *testing.T) {
	view := filterseq.New(seqOf(1, 2, 3, 4, 5, 6), isEven, strconv.Itoa)

	assert.Equal(t, []string{"2", "4", "6"}, view.Collect())
}

func Test_View_EmptyResult_IsNotAnError(t *testing.T) {
	view := filterseq.New(seqOf(1, 3, 5), isEven, strconv.Itoa)

	assert.Empty(t, view.Collect())
}

func Test_View_EmptySource(t *testing.T) {
	view := filterseq.New(seqOf[int](), isEven, strconv.Itoa)

	assert.Empty(t, view.Collect())
}

func Test_View_IsRestartable(t *testing.T) {
	view := filterseq.New(seqOf(4, 7, 10, 13), isEven, strconv.Itoa)

	first := view.Collect()
	second := view.Collect()

	require.Equal(t, []string{"4", "10"}, first)
	assert.Equal(t, first, second)
}

func Test_View_PreservesSourceOrder(t *testing.T) {
	view := filterseq.Keep(seqOf(6, 1, 2, 9, 4), isEven)

	assert.Equal(t, []int{6, 2, 4}, view.Collect())
}

func Test_View_IsLazy_TransformOnlyRunsForConsumedElements(t *testing.T) {
	transformCalls := 0
	view := filterseq.New(seqOf(2, 4, 6, 8), isEven, func(n int) int {
		transformCalls++
		return n
	})

	for range view.All() {
		break // consume a single element
	}

	assert.Equal(t, 1, transformCalls)
}

func Test_View_PredicateStopsAfterAbandonedPass(t *testing.T) {
	predicateCalls := 0
	view := filterseq.Keep(seqOf(1, 2, 3, 4, 5, 6), func(n int) bool {
		predicateCalls++
		return isEven(n)
	})

	for range view.All() {
		break // the first accepted element is the 2nd source element
	}

	assert.Equal(t, 2, predicateCalls)
}

func Test_View_TransformIsReinvokedOnEveryPass(t *testing.T) {
	transformCalls := 0
	view := filterseq.New(seqOf(2, 4), isEven, func(n int) int {
		transformCalls++
		return n
	})

	view.Collect()
	view.Collect()

	assert.Equal(t, 4, transformCalls)
}

func Test_Keep_YieldsElementsUnchanged(t *testing.T) {
	view := filterseq.Keep(seqOf("a", "", "b"), func(s string) bool { return s != "" })

	assert.Equal(t, []string{"a", "b"}, view.Collect())
}

func Test_New_PanicsOnNilArguments(t *testing.T) {
	src := seqOf(1)
	accepts := isEven
	project := strconv.Itoa

	assert.Panics(t, func() {
		filterseq.New[int, string](nil, accepts, project)
	})

	assert.Panics(t, func() {
		filterseq.New(src, nil, project)
	})

	assert.Panics(t, func() {
		filterseq.New[int, string](src, accepts, nil)
	})
}
