// Package pb defines the prepkit.v1.TransformService wire API. Messages are
// google.protobuf.Struct values with a fixed field layout; values travel as
// literal text so element types survive the trip.
package pb

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"prepkit/internal/literal"
	"prepkit/internal/ops"
)

// ApplyRequest is the decoded form of an Apply request:
//
//	{"op": "numeric.clip", "input": "[1, 2]", "params": {"clip_max": 5}}
type ApplyRequest struct {
	Op     string
	Input  string
	Params ops.Params
}

func (r ApplyRequest) Struct() (*structpb.Struct, error) {
	params := map[string]any{
		"fill":     literal.Format(r.Params.Fill),
		"new_min":  r.Params.NewMin,
		"new_max":  r.Params.NewMax,
		"clip_min": r.Params.ClipMin,
		"clip_max": r.Params.ClipMax,
		"strict":   r.Params.Strict,
	}
	if len(r.Params.Stopwords) > 0 {
		words := make([]any, len(r.Params.Stopwords))
		for i, w := range r.Params.Stopwords {
			words[i] = w
		}
		params["stopwords"] = words
	}
	// Seeds go as text; a float64 number would lose bits above 2^53.
	if r.Params.Seed != nil {
		params["seed"] = strconv.FormatInt(*r.Params.Seed, 10)
	}
	return structpb.NewStruct(map[string]any{
		"op":     r.Op,
		"input":  r.Input,
		"params": params,
	})
}

// DecodeApplyRequest reads an Apply request. Absent params keep the values
// in defaults.
func DecodeApplyRequest(s *structpb.Struct, defaults ops.Params) (ApplyRequest, error) {
	req := ApplyRequest{Params: defaults}
	f := s.GetFields()
	req.Op = f["op"].GetStringValue()
	if req.Op == "" {
		return req, fmt.Errorf("apply: missing op")
	}
	in, ok := f["input"]
	if !ok {
		return req, fmt.Errorf("apply: missing input")
	}
	req.Input = in.GetStringValue()

	pf := f["params"].GetStructValue().GetFields()
	if v, ok := pf["fill"]; ok {
		fill, err := literal.Parse(v.GetStringValue())
		if err != nil {
			return req, fmt.Errorf("apply: params.fill: %w", err)
		}
		req.Params.Fill = fill
	}
	for key, dst := range map[string]*float64{
		"new_min":  &req.Params.NewMin,
		"new_max":  &req.Params.NewMax,
		"clip_min": &req.Params.ClipMin,
		"clip_max": &req.Params.ClipMax,
	} {
		if v, ok := pf[key]; ok {
			*dst = v.GetNumberValue()
		}
	}
	if v, ok := pf["strict"]; ok {
		req.Params.Strict = v.GetBoolValue()
	}
	if v, ok := pf["stopwords"]; ok {
		req.Params.Stopwords = nil
		for _, w := range v.GetListValue().GetValues() {
			req.Params.Stopwords = append(req.Params.Stopwords, w.GetStringValue())
		}
	}
	if v, ok := pf["seed"]; ok {
		seed, err := strconv.ParseInt(v.GetStringValue(), 10, 64)
		if err != nil {
			return req, fmt.Errorf("apply: params.seed: %w", err)
		}
		req.Params.Seed = &seed
	}
	return req, nil
}

func ApplyResponse(output string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"output": structpb.NewStringValue(output),
	}}
}

func DecodeApplyResponse(s *structpb.Struct) (string, error) {
	v, ok := s.GetFields()["output"]
	if !ok {
		return "", fmt.Errorf("apply: response has no output")
	}
	return v.GetStringValue(), nil
}

func OperationList(names []string) *structpb.ListValue {
	l := &structpb.ListValue{Values: make([]*structpb.Value, len(names))}
	for i, n := range names {
		l.Values[i] = structpb.NewStringValue(n)
	}
	return l
}

func DecodeOperationList(l *structpb.ListValue) []string {
	out := make([]string, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}
