package preprocess

import (
	"errors"
	"reflect"
	"testing"
)

func TestAsSequence(t *testing.T) {
	got, err := AsSequence("op", []int{1, 2})
	if err != nil || !reflect.DeepEqual(got, []any{1, 2}) {
		t.Fatalf("AsSequence([]int) = %v, %v", got, err)
	}
	for _, bad := range []any{"not a list", 5, nil, map[string]any{"a": 1}} {
		if _, err := AsSequence("normalize", bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("AsSequence(%#v): want ErrInvalidArgument, got %v", bad, err)
		}
	}
}

func TestAsNumbers(t *testing.T) {
	got, err := AsNumbers("normalize", []any{int64(1), 2.5, uint8(3)})
	if err != nil || !reflect.DeepEqual(got, []float64{1, 2.5, 3}) {
		t.Fatalf("AsNumbers() = %v, %v", got, err)
	}
	if _, err := AsNumbers("normalize", []any{1, "a"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument for a string element, got %v", err)
	}
	if _, err := AsNumbers("normalize", "not a list"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument for a bare string, got %v", err)
	}
}

func TestAsNested(t *testing.T) {
	got, err := AsNested("flatten", []any{[]any{1}, []any{}})
	if err != nil || len(got) != 2 {
		t.Fatalf("AsNested() = %v, %v", got, err)
	}
	if _, err := AsNested("flatten", []any{[]any{1}, 2}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
	if _, err := AsNested("flatten", []any{"ab"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("strings are not sequences, got %v", err)
	}
}

func TestAsText(t *testing.T) {
	if _, err := AsText("tokenize", []any{"a"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
	if s, err := AsText("tokenize", "a"); err != nil || s != "a" {
		t.Fatalf("AsText() = %q, %v", s, err)
	}
}
