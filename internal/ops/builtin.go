package ops

import "prepkit/internal/preprocess"

// Default returns a catalog holding every preprocess transform under the
// names the CLI exposes.
func Default() *Catalog {
	return New(
		Operation{
			Group: "clean", Command: "remove-missing", Filters: true,
			Summary: "Remove missing values from list.",
			Example: `prepkit clean remove-missing "[1, None, 2, '', 3]"`,
			Fn: sequenceOp("clean.remove-missing", func(values []any, _ Params) (any, error) {
				return preprocess.RemoveMissing(values), nil
			}),
		},
		Operation{
			Group: "clean", Command: "fill-missing",
			Summary: "Fill missing values with specified value.",
			Example: `prepkit clean fill-missing "[1, None, 2]" --fill-value 0`,
			Fn: sequenceOp("clean.fill-missing", func(values []any, p Params) (any, error) {
				return preprocess.FillMissing(values, p.Fill), nil
			}),
		},
		Operation{
			Group: "numeric", Command: "normalize",
			Summary: "Normalize numerical values using min-max method.",
			Example: `prepkit numeric normalize "[1, 2, 3, 4, 5]" --min-val 0 --max-val 1`,
			Fn: numberOp("numeric.normalize", func(values []float64, p Params) (any, error) {
				return preprocess.Normalize(values, p.NewMin, p.NewMax), nil
			}),
		},
		Operation{
			Group: "numeric", Command: "standardize",
			Summary: "Standardize numerical values using z-score method.",
			Example: `prepkit numeric standardize "[1, 2, 3, 4, 5]"`,
			Fn: numberOp("numeric.standardize", func(values []float64, _ Params) (any, error) {
				return preprocess.Standardize(values), nil
			}),
		},
		Operation{
			Group: "numeric", Command: "clip",
			Summary: "Clip numerical values to specified range.",
			Example: `prepkit numeric clip "[-1, 0.5, 2, 3]" --min-val 0 --max-val 1`,
			Fn: numberOp("numeric.clip", func(values []float64, p Params) (any, error) {
				return preprocess.Clip(values, p.ClipMin, p.ClipMax), nil
			}),
		},
		Operation{
			Group: "numeric", Command: "to-integers", Filters: true,
			Summary: "Convert string values to integers.",
			Example: `prepkit numeric to-integers "['1', '2.5', 'abc', '4']"`,
			Fn: sequenceOp("numeric.to-integers", func(values []any, p Params) (any, error) {
				if p.Strict {
					return preprocess.ToIntegersStrict(values)
				}
				return preprocess.ToIntegers(values), nil
			}),
		},
		Operation{
			Group: "numeric", Command: "log-transform", Filters: true,
			Summary: "Transform values to logarithmic scale.",
			Example: `prepkit numeric log-transform "[1, 2, 10, 100]"`,
			Fn: numberOp("numeric.log-transform", func(values []float64, p Params) (any, error) {
				if p.Strict {
					return preprocess.LogTransformStrict(values)
				}
				return preprocess.LogTransform(values), nil
			}),
		},
		Operation{
			Group: "text", Command: "tokenize", Input: TextInput,
			Summary: "Tokenize text into words, keeping alphanumeric characters and lowercasing.",
			Example: `prepkit text tokenize "Hello, World! 123"`,
			Fn: textOp("text.tokenize", func(text string, _ Params) (any, error) {
				return preprocess.Tokenize(text), nil
			}),
		},
		Operation{
			Group: "text", Command: "remove-punctuation", Aliases: []string{"select-alphanumeric"}, Input: TextInput,
			Summary: "Remove punctuation, keeping only alphanumeric characters and spaces.",
			Example: `prepkit text remove-punctuation "Hello, World!"`,
			Fn: textOp("text.remove-punctuation", func(text string, _ Params) (any, error) {
				return preprocess.SelectAlphanumeric(text), nil
			}),
		},
		Operation{
			Group: "text", Command: "remove-stopwords", Aliases: []string{"remove-stopword"}, Input: TextInput,
			Summary: "Remove stopwords from text.",
			Example: `prepkit text remove-stopwords "this is a test" --stopwords "is,a"`,
			Fn: textOp("text.remove-stopwords", func(text string, p Params) (any, error) {
				return preprocess.RemoveStopwords(text, p.Stopwords), nil
			}),
		},
		Operation{
			Group: "struct", Command: "shuffle",
			Summary: "Shuffle list values randomly.",
			Example: `prepkit struct shuffle "[1, 2, 3, 4, 5]" --seed 42`,
			Fn: sequenceOp("struct.shuffle", func(values []any, p Params) (any, error) {
				if p.Seed != nil {
					return preprocess.ShuffleSeeded(values, *p.Seed), nil
				}
				return preprocess.Shuffle(values), nil
			}),
		},
		Operation{
			Group: "struct", Command: "flatten",
			Summary: "Flatten a list of lists.",
			Example: `prepkit struct flatten "[[1, 2], [3, 4], [5]]"`,
			Fn: func(input any, _ Params) (any, error) {
				nested, err := preprocess.AsNested("struct.flatten", input)
				if err != nil {
					return nil, err
				}
				return preprocess.Flatten(nested), nil
			},
		},
		Operation{
			Group: "struct", Command: "unique", Aliases: []string{"remove-duplicates"}, Filters: true,
			Summary: "Remove duplicate values from list.",
			Example: `prepkit struct unique "[1, 2, 2, 3, 1]"`,
			Fn: sequenceOp("struct.unique", func(values []any, _ Params) (any, error) {
				return preprocess.RemoveDuplicates(values)
			}),
		},
	)
}

func sequenceOp(name string, fn func([]any, Params) (any, error)) Func {
	return func(input any, p Params) (any, error) {
		values, err := preprocess.AsSequence(name, input)
		if err != nil {
			return nil, err
		}
		return fn(values, p)
	}
}

func numberOp(name string, fn func([]float64, Params) (any, error)) Func {
	return func(input any, p Params) (any, error) {
		values, err := preprocess.AsNumbers(name, input)
		if err != nil {
			return nil, err
		}
		return fn(values, p)
	}
}

func textOp(name string, fn func(string, Params) (any, error)) Func {
	return func(input any, p Params) (any, error) {
		text, err := preprocess.AsText(name, input)
		if err != nil {
			return nil, err
		}
		return fn(text, p)
	}
}
