package preprocess

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"sync"
	"testing"
)

func TestFlatten(t *testing.T) {
	got := Flatten([][]int{{1, 2}, {3}, {}, {4, 5}})
	if !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("Flatten() = %v", got)
	}
	if got := Flatten([][]int{}); len(got) != 0 {
		t.Fatalf("empty input: got %v", got)
	}
}

func TestShuffleSeeded_Reproducible(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	first := ShuffleSeeded(in, 42)
	second := ShuffleSeeded(in, 42)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed gave %v and %v", first, second)
	}
	sorted := slices.Sorted(slices.Values(first))
	if !reflect.DeepEqual(sorted, in) {
		t.Fatalf("not a permutation: %v", first)
	}
	if !reflect.DeepEqual(in, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestShuffleSeeded_IsolatedFromConcurrentCalls(t *testing.T) {
	in := make([]int, 64)
	for i := range in {
		in[i] = i
	}
	want := ShuffleSeeded(in, 7)

	var wg sync.WaitGroup
	results := make([][]int, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Shuffle(in)
			results[i] = ShuffleSeeded(in, 7)
		}()
	}
	wg.Wait()
	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("call %d diverged: %v", i, got)
		}
	}
}

func TestShuffleSeeded_SeedMatters(t *testing.T) {
	in := make([]int, 32)
	for i := range in {
		in[i] = i
	}
	if reflect.DeepEqual(ShuffleSeeded(in, 1), ShuffleSeeded(in, 2)) {
		t.Fatal("different seeds produced the same permutation of 32 elements")
	}
}

func TestShuffle_Permutation(t *testing.T) {
	in := []string{"a", "b", "c", "d", "a"}
	got := Shuffle(in)
	if !reflect.DeepEqual(slices.Sorted(slices.Values(got)), slices.Sorted(slices.Values(in))) {
		t.Fatalf("Shuffle() = %v is not a permutation of %v", got, in)
	}
	if got := Shuffle([]int{}); len(got) != 0 {
		t.Fatalf("empty input: got %v", got)
	}
}

func TestShuffleWith(t *testing.T) {
	a := ShuffleWith([]int{1, 2, 3, 4}, rand.New(rand.NewPCG(3, 4)))
	b := ShuffleWith([]int{1, 2, 3, 4}, rand.New(rand.NewPCG(3, 4)))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same generator state gave %v and %v", a, b)
	}
}
