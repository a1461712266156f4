package story

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

// HCL fixture layout:
//
//	title = "Editable table"
//
//	field "second" {
//	  label = "Second"
//	  type  = "select"
//	  option "one" { label = "One" }
//	  option "two" { label = "Two" }
//	}
//
//	row "0" {
//	  values = { test = "Hello", second = "one", bool = true }
//	}
type hclStory struct {
	Title  string     `hcl:"title,optional"`
	Fields []hclField `hcl:"field,block"`
	Rows   []hclRow   `hcl:"row,block"`
}

type hclField struct {
	Key      string      `hcl:"key,label"`
	Label    string      `hcl:"label,optional"`
	Type     string      `hcl:"type,optional"`
	Required bool        `hcl:"required,optional"`
	Unique   bool        `hcl:"unique,optional"`
	Pattern  string      `hcl:"pattern,optional"`
	Message  string      `hcl:"message,optional"`
	Options  []hclOption `hcl:"option,block"`
}

type hclOption struct {
	Value string `hcl:"value,label"`
	Label string `hcl:"label,optional"`
}

type hclRow struct {
	ID     string    `hcl:"id,label"`
	Values cty.Value `hcl:"values"`
}

// ParseHCL decodes an HCL story fixture. filename is only used in diagnostics
// and must end in .hcl.
func ParseHCL(filename string, data []byte) (*Story, error) {
	var raw hclStory
	if err := hclsimple.Decode(filename, data, nil, &raw); err != nil {
		return nil, err
	}

	s := &Story{Title: raw.Title}
	for _, f := range raw.Fields {
		spec := FieldSpec{
			Key:      f.Key,
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
			Unique:   f.Unique,
			Pattern:  f.Pattern,
			Message:  f.Message,
		}
		for _, opt := range f.Options {
			spec.Options = append(spec.Options, OptionSpec{Value: opt.Value, Label: opt.Label})
		}
		s.Fields = append(s.Fields, spec)
	}

	for _, r := range raw.Rows {
		values, err := ctyToValues(r.Values)
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", r.ID, err)
		}
		s.Rows = append(s.Rows, RowSpec{ID: r.ID, Values: values})
	}

	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// ctyToValues flattens an HCL object into plain Go cell values
func ctyToValues(v cty.Value) (map[string]any, error) {
	if v.IsNull() {
		return map[string]any{}, nil
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("values must be an object, got %s", ty.FriendlyName())
	}

	raw := v.AsValueMap()
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(map[string]any, len(raw))
	for _, k := range keys {
		cell, err := ctyToCell(raw[k])
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", k, err)
		}
		values[k] = cell
	}
	return values, nil
}

func ctyToCell(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	switch {
	case v.Type().Equals(cty.String):
		return v.AsString(), nil
	case v.Type().Equals(cty.Bool):
		return v.True(), nil
	case v.Type().Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
}
