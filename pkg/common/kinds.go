package common

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TypeCategory classifies the intrinsic types of the language.
type TypeCategory int

// Intrinsic type categories.
const (
	Integer TypeCategory = iota
	Real
	Complex
	Character
	Logical
)

func (c TypeCategory) String() string {
	switch c {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Complex:
		return "COMPLEX"
	case Character:
		return "CHARACTER"
	case Logical:
		return "LOGICAL"
	}
	return fmt.Sprintf("TypeCategory(%d)", int(c))
}

// SubscriptIntegerKind is the kind used for all address and subscript
// calculations. It is fixed at 8 because generated code is 64-bit safe.
const SubscriptIntegerKind = 8

// DefaultKinds holds the default kind parameter of each intrinsic type
// category. Default REAL is IEEE-754 single precision and occupies one
// numeric storage unit, which also forces the default INTEGER and LOGICAL
// kinds; default COMPLEX always comprises two default REAL components.
type DefaultKinds struct {
	integer         int
	real            int
	doublePrecision int
	quadPrecision   int
	character       int
	logical         int
}

// NewDefaultKinds returns the standard defaults: INTEGER(4), REAL(4),
// double precision twice the REAL kind, quad twice that, CHARACTER(1),
// LOGICAL(4).
func NewDefaultKinds() *DefaultKinds {
	return &DefaultKinds{
		integer:         4,
		real:            4,
		doublePrecision: 8,
		quadPrecision:   16,
		character:       1,
		logical:         4,
	}
}

// SetIntegerKind overrides the default INTEGER kind.
func (k *DefaultKinds) SetIntegerKind(n int) *DefaultKinds {
	k.integer = n
	return k
}

// SetRealKind overrides the default REAL kind.
func (k *DefaultKinds) SetRealKind(n int) *DefaultKinds {
	k.real = n
	return k
}

// SetDoublePrecisionKind overrides the DOUBLE PRECISION kind.
func (k *DefaultKinds) SetDoublePrecisionKind(n int) *DefaultKinds {
	k.doublePrecision = n
	return k
}

// SetQuadPrecisionKind overrides the quad precision kind.
func (k *DefaultKinds) SetQuadPrecisionKind(n int) *DefaultKinds {
	k.quadPrecision = n
	return k
}

// SetCharacterKind overrides the default CHARACTER kind.
func (k *DefaultKinds) SetCharacterKind(n int) *DefaultKinds {
	k.character = n
	return k
}

// SetLogicalKind overrides the default LOGICAL kind.
func (k *DefaultKinds) SetLogicalKind(n int) *DefaultKinds {
	k.logical = n
	return k
}

// GetDefaultKind returns the default kind for a type category.
// COMPLEX shares the default REAL kind.
func (k *DefaultKinds) GetDefaultKind(c TypeCategory) int {
	switch c {
	case Integer:
		return k.integer
	case Real, Complex:
		return k.real
	case Character:
		return k.character
	case Logical:
		return k.logical
	}
	panic(Faultf("no default kind for %s", c))
}

// DoublePrecisionKind returns the DOUBLE PRECISION kind.
func (k *DefaultKinds) DoublePrecisionKind() int { return k.doublePrecision }

// QuadPrecisionKind returns the quad precision kind.
func (k *DefaultKinds) QuadPrecisionKind() int { return k.quadPrecision }

// yamlKinds is the YAML shape of a default-kind override document.
type yamlKinds struct {
	Integer         *int `yaml:"integer"`
	Real            *int `yaml:"real"`
	DoublePrecision *int `yaml:"double-precision"`
	QuadPrecision   *int `yaml:"quad-precision"`
	Character       *int `yaml:"character"`
	Logical         *int `yaml:"logical"`
}

// LoadDefaultKinds parses a YAML override document and applies it on top of
// the standard defaults. Every kind must be a power of two in 1..16.
func LoadDefaultKinds(data []byte) (*DefaultKinds, error) {
	var doc yamlKinds
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	kinds := NewDefaultKinds()
	set := func(name string, n *int, apply func(int) *DefaultKinds) error {
		if n == nil {
			return nil
		}
		if !validKind(*n) {
			return fmt.Errorf("invalid %s kind %d: must be a power of two in 1..16", name, *n)
		}
		apply(*n)
		return nil
	}

	for _, s := range []struct {
		name  string
		n     *int
		apply func(int) *DefaultKinds
	}{
		{"integer", doc.Integer, kinds.SetIntegerKind},
		{"real", doc.Real, kinds.SetRealKind},
		{"double-precision", doc.DoublePrecision, kinds.SetDoublePrecisionKind},
		{"quad-precision", doc.QuadPrecision, kinds.SetQuadPrecisionKind},
		{"character", doc.Character, kinds.SetCharacterKind},
		{"logical", doc.Logical, kinds.SetLogicalKind},
	} {
		if err := set(s.name, s.n, s.apply); err != nil {
			return nil, err
		}
	}
	return kinds, nil
}

// LoadDefaultKindsFile loads default-kind overrides from a YAML file.
func LoadDefaultKindsFile(path string) (*DefaultKinds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return LoadDefaultKinds(data)
}

func validKind(n int) bool {
	return n >= 1 && n <= 16 && n&(n-1) == 0
}
