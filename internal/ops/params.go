package ops

// Params carries the tunables of every operation. Each operation reads only
// the fields it needs.
type Params struct {
	Fill      any      `yaml:"fill" koanf:"fill"`
	NewMin    float64  `yaml:"new_min" koanf:"new_min"`
	NewMax    float64  `yaml:"new_max" koanf:"new_max"`
	ClipMin   float64  `yaml:"clip_min" koanf:"clip_min"`
	ClipMax   float64  `yaml:"clip_max" koanf:"clip_max"`
	Stopwords []string `yaml:"stopwords" koanf:"stopwords"`
	Seed      *int64   `yaml:"seed" koanf:"seed"`
	Strict    bool     `yaml:"strict" koanf:"strict"`
}

// DefaultParams matches the CLI defaults: fill 0, normalize into [0, 1],
// clip into [0, 1], no stopwords, unseeded shuffle, lenient parsing.
func DefaultParams() Params {
	return Params{
		Fill:    int64(0),
		NewMin:  0,
		NewMax:  1,
		ClipMin: 0,
		ClipMax: 1,
	}
}

// Clone returns a copy that shares no memory with p.
func (p Params) Clone() Params {
	if p.Seed != nil {
		seed := *p.Seed
		p.Seed = &seed
	}
	if p.Stopwords != nil {
		p.Stopwords = append([]string(nil), p.Stopwords...)
	}
	return p
}
