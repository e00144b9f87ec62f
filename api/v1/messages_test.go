package pb

import (
	"reflect"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"prepkit/internal/ops"
)

func TestApplyRequest_StructRoundTrip(t *testing.T) {
	seed := int64(1<<62 + 1)
	p := ops.DefaultParams()
	p.Fill = nil
	p.NewMax = 10
	p.Stopwords = []string{"is", "a"}
	p.Seed = &seed
	p.Strict = true
	in := ApplyRequest{Op: "numeric.normalize", Input: "[1, 2, 3]", Params: p}

	s, err := in.Struct()
	if err != nil {
		t.Fatalf("Struct: %v", err)
	}
	got, err := DecodeApplyRequest(s, ops.DefaultParams())
	if err != nil {
		t.Fatalf("DecodeApplyRequest: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, in)
	}
}

func TestDecodeApplyRequest_DefaultsForAbsentParams(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"op": "numeric.clip", "input": "[5]"})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	got, err := DecodeApplyRequest(s, ops.DefaultParams())
	if err != nil {
		t.Fatalf("DecodeApplyRequest: %v", err)
	}
	if !reflect.DeepEqual(got.Params, ops.DefaultParams()) {
		t.Fatalf("want default params, got %+v", got.Params)
	}
}

func TestDecodeApplyRequest_MissingFields(t *testing.T) {
	for _, fields := range []map[string]any{
		{"input": "[1]"},
		{"op": "struct.unique"},
	} {
		s, _ := structpb.NewStruct(fields)
		if _, err := DecodeApplyRequest(s, ops.DefaultParams()); err == nil {
			t.Fatalf("expected error for %v", fields)
		}
	}
}

func TestOperationList(t *testing.T) {
	names := []string{"clean.fill-missing", "struct.unique"}
	if got := DecodeOperationList(OperationList(names)); !reflect.DeepEqual(got, names) {
		t.Fatalf("got %v, want %v", got, names)
	}
}
