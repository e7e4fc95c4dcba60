package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractsInRankOrder(t *testing.T) {
	for _, d := range []int{2, 4} {
		h := NewdAryHeap[int](d)
		rng := rand.New(rand.NewSource(42))
		ranks := make([]float64, 200)
		for i := range ranks {
			ranks[i] = rng.Float64() * 1000
			h.Insert(NewPriorityQueueNode(ranks[i], i))
		}
		sort.Float64s(ranks)

		for _, want := range ranks {
			got, err := h.ExtractMin()
			require.NoError(t, err)
			assert.Equal(t, want, got.GetRank())
			assert.Equal(t, -1, got.GetPos())
		}
		assert.True(t, h.IsEmpty())
	}
}

func TestMinHeapTiesFollowInsertionOrder(t *testing.T) {
	h := NewFourAryHeap[string]()
	for _, item := range []string{"a", "b", "c", "d", "e", "f"} {
		h.Insert(NewPriorityQueueNode(1.0, item))
	}

	got := []string{}
	for !h.IsEmpty() {
		n, _ := h.ExtractMin()
		got = append(got, n.GetItem())
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, got)
}

func TestMinHeapDecreaseKey(t *testing.T) {
	h := NewFourAryHeap[int]()
	nodes := make([]*PriorityQueueNode[int], 10)
	for i := range nodes {
		nodes[i] = NewPriorityQueueNode(float64(10+i), i)
		h.Insert(nodes[i])
	}

	require.NoError(t, h.DecreaseKey(nodes[7], 1))
	assert.ErrorIs(t, h.DecreaseKey(nodes[3], 100), ErrInvalidDecrease)

	min, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, 7, min.GetItem())

	extracted, _ := h.ExtractMin()
	assert.ErrorIs(t, h.DecreaseKey(extracted, 0), ErrInvalidDecrease)

	// extracted node can be re-inserted
	h.InsertOrDecrease(extracted, 0.5)
	min, _ = h.GetMin()
	assert.Equal(t, 7, min.GetItem())
	assert.Equal(t, 10, h.Size())
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewBinaryHeap[int]()
	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	_, err = h.GetMin()
	assert.ErrorIs(t, err, ErrHeapEmpty)
	assert.Greater(t, h.GetMinRank(), 1e15)
}
