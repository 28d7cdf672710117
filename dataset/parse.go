// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

// Record fields that are not dimensions.
const (
	rowKey     = "_row"
	clusterKey = "clusters"
)

// Parse parses one data update from the statistics layer.
//
// An input with a "PC" field is a projection input; an input with a
// "data" field is a parallel-coordinates input. Any missing required
// field or mistyped value is reported as an *InputError.
//
// Records are walked in document order, so the dimension order of
// each Dataset is the key order of its first record.
func Parse(data []byte) (*Input, error) {
	switch {
	case has(data, "PC"):
		p, err := parseProjection(data)
		if err != nil {
			return nil, err
		}
		return &Input{Projection: p}, nil
	case has(data, "data"):
		p, err := parseParallel(data)
		if err != nil {
			return nil, err
		}
		return &Input{Parallel: p}, nil
	}
	return nil, inputErrorf("PC", "input has neither a PC nor a data field")
}

func has(data []byte, key string) bool {
	_, typ, _, err := jsonparser.Get(data, key)
	return err == nil && typ != jsonparser.Null
}

func parseProjection(data []byte) (*ProjectionInput, error) {
	p := &ProjectionInput{DotSize: 3.5, Thresh: math.NaN()}
	var err error

	if p.PC, err = parseRecords(data, "PC", true); err != nil {
		return nil, err
	}

	// PVE is a list of {PVEs: x} records. Bare numbers are
	// accepted too.
	_, err = eachElement(data, "PVE", func(i int, v []byte, typ jsonparser.ValueType) error {
		if typ == jsonparser.Object {
			v, typ, _, _ = jsonparser.Get(v, "PVEs")
		}
		x, err := number(v, typ)
		if err != nil {
			return inputErrorf("PVE", "element %d: %v", i, err)
		}
		p.PVE = append(p.PVE, x)
		return nil
	})
	if err != nil {
		return nil, err
	}

	n, err := eachElement(data, "idxs", func(i int, v []byte, typ jsonparser.ValueType) error {
		if i >= 2 {
			return inputErrorf("idxs", "want 2 indexes")
		}
		x, err := number(v, typ)
		if err != nil || x != math.Trunc(x) {
			return inputErrorf("idxs", "index %d is not an integer", i)
		}
		p.Idxs[i] = int(x)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if n != 2 {
		return nil, inputErrorf("idxs", "want 2 indexes, got %d", n)
	}

	if p.ColorScheme, err = parseColorScheme(data); err != nil {
		return nil, err
	}
	if p.LabelSizes, err = parseLabelSizes(data); err != nil {
		return nil, err
	}
	if v, ok, err := optNumber(data, "dotSize"); err != nil {
		return nil, err
	} else if ok && v > 0 {
		p.DotSize = v
	}
	if p.Gridlines, err = optBool(data, "pcGridlines"); err != nil {
		return nil, err
	}

	// Contribution-bar view.
	if has(data, "cont") {
		if p.Cont, err = parseContributions(data); err != nil {
			return nil, err
		}
	}
	if v, ok, err := optNumber(data, "thresh"); err != nil {
		return nil, err
	} else if ok {
		p.Thresh = v
	}
	if p.BarColor, _, err = optString(data, "barColor"); err != nil {
		return nil, err
	}
	if p.BarColor == "" {
		p.BarColor = "steelblue"
	}
	if p.BarGridlines, err = optBool(data, "barGridlines"); err != nil {
		return nil, err
	}
	return p, nil
}

func parseParallel(data []byte) (*ParallelInput, error) {
	p := new(ParallelInput)
	var err error

	if p.Data, err = parseRecords(data, "data", true); err != nil {
		return nil, err
	}

	if has(data, "avData") {
		av, err := parseRecords(data, "avData", false)
		if err != nil {
			return nil, err
		}
		for _, o := range av.Observations {
			s := Summary{Cluster: o.Cluster, Means: make([]float64, len(p.Data.Dimensions))}
			for i, dim := range p.Data.Dimensions {
				j := av.Dimension(dim)
				if j < 0 {
					return nil, inputErrorf("avData", "no mean for dimension %q", dim)
				}
				s.Means[i] = o.Values[j]
			}
			p.Averages = append(p.Averages, s)
		}
	}

	checkDim := func(field string, i int, dim string) error {
		if p.Data.Dimension(dim) < 0 {
			return inputErrorf(field, "element %d: unknown dimension %q", i, dim)
		}
		return nil
	}
	if has(data, "qData") {
		_, err = eachElement(data, "qData", func(i int, v []byte, _ jsonparser.ValueType) error {
			var q Quartile
			var err error
			if q.Cluster, err = reqText(v, "qData", clusterKey); err != nil {
				return err
			}
			if q.Dimension, err = reqText(v, "qData", "dimensions"); err != nil {
				return err
			}
			if q.Value, err = reqNumber(v, "qData", "quartile"); err != nil {
				return err
			}
			if err := checkDim("qData", i, q.Dimension); err != nil {
				return err
			}
			p.Quartiles = append(p.Quartiles, q)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if has(data, "qsData") {
		_, err = eachElement(data, "qsData", func(i int, v []byte, _ jsonparser.ValueType) error {
			var q QuartileSpan
			var err error
			if q.Cluster, err = reqText(v, "qsData", clusterKey); err != nil {
				return err
			}
			if q.Dimension, err = reqText(v, "qsData", "dimensions"); err != nil {
				return err
			}
			if q.Q1, err = reqNumber(v, "qsData", "q1"); err != nil {
				return err
			}
			if q.Q3, err = reqNumber(v, "qsData", "q3"); err != nil {
				return err
			}
			if err := checkDim("qsData", i, q.Dimension); err != nil {
				return err
			}
			p.Spans = append(p.Spans, q)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if p.ColorScheme, err = parseColorScheme(data); err != nil {
		return nil, err
	}
	if p.LabelSizes, err = parseLabelSizes(data); err != nil {
		return nil, err
	}
	return p, nil
}

// parseRecords parses the array of observation records at key. The
// first record fixes the dimension order; every later record must
// carry exactly the same dimensions. If needCluster is set, each record
// must carry a cluster assignment.
func parseRecords(data []byte, key string, needCluster bool) (*Dataset, error) {
	ds := new(Dataset)
	index := make(map[string]int)
	_, err := eachElement(data, key, func(i int, v []byte, typ jsonparser.ValueType) error {
		if typ != jsonparser.Object {
			return inputErrorf(key, "record %d is not an object", i)
		}
		first := i == 0
		o := Observation{Row: strconv.Itoa(i + 1)}
		if !first {
			o.Values = make([]float64, len(ds.Dimensions))
		}
		seen := 0
		hasCluster := false
		err := jsonparser.ObjectEach(v, func(k, val []byte, typ jsonparser.ValueType, _ int) error {
			name, err := jsonparser.ParseString(k)
			if err != nil {
				return inputErrorf(key, "record %d: bad key: %v", i, err)
			}
			switch name {
			case rowKey:
				o.Row, err = text(val, typ)
				if err != nil {
					return inputErrorf(key, "record %d: %s: %v", i, rowKey, err)
				}
				return nil
			case clusterKey:
				o.Cluster, err = text(val, typ)
				if err != nil {
					return inputErrorf(key, "record %d: %s: %v", i, clusterKey, err)
				}
				hasCluster = true
				return nil
			}
			x, err := number(val, typ)
			if err != nil {
				return inputErrorf(key, "record %d: dimension %q: %v", i, name, err)
			}
			if first {
				if _, dup := index[name]; dup {
					return inputErrorf(key, "record %d: duplicate dimension %q", i, name)
				}
				index[name] = len(ds.Dimensions)
				ds.Dimensions = append(ds.Dimensions, name)
				o.Values = append(o.Values, x)
				return nil
			}
			j, ok := index[name]
			if !ok {
				return inputErrorf(key, "record %d: unknown dimension %q", i, name)
			}
			o.Values[j] = x
			seen++
			return nil
		})
		if err != nil {
			return err
		}
		if !first && seen != len(ds.Dimensions) {
			return inputErrorf(key, "record %d has %d of %d dimensions", i, seen, len(ds.Dimensions))
		}
		if needCluster && !hasCluster {
			return inputErrorf(key, "record %d has no %s field", i, clusterKey)
		}
		ds.Observations = append(ds.Observations, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func parseContributions(data []byte) ([]Contribution, error) {
	var out []Contribution
	_, err := eachElement(data, "cont", func(i int, v []byte, typ jsonparser.ValueType) error {
		if typ != jsonparser.Object {
			return inputErrorf("cont", "row %d is not an object", i)
		}
		c := Contribution{Components: make(map[string]float64)}
		err := jsonparser.ObjectEach(v, func(k, val []byte, typ jsonparser.ValueType, _ int) error {
			name, err := jsonparser.ParseString(k)
			if err != nil {
				return inputErrorf("cont", "row %d: bad key: %v", i, err)
			}
			if name == rowKey {
				c.Dimension, err = text(val, typ)
				return err
			}
			x, err := number(val, typ)
			if err != nil {
				return inputErrorf("cont", "row %d: %s: %v", i, name, err)
			}
			c.Components[name] = x
			return nil
		})
		if err != nil {
			return err
		}
		if c.Dimension == "" {
			return inputErrorf("cont", "row %d has no %s field", i, rowKey)
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

func parseColorScheme(data []byte) (ColorScheme, error) {
	var cs ColorScheme
	v, typ, _, err := jsonparser.Get(data, "colorScheme")
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return cs, nil
		}
		return cs, inputErrorf("colorScheme", "%v", err)
	}
	switch typ {
	case jsonparser.String:
		cs.Name, err = jsonparser.ParseString(v)
	case jsonparser.Array:
		_, err = eachElement(data, "colorScheme", func(i int, v []byte, typ jsonparser.ValueType) error {
			s, err := text(v, typ)
			if err != nil {
				return inputErrorf("colorScheme", "color %d: %v", i, err)
			}
			cs.Colors = append(cs.Colors, s)
			return nil
		})
		// An R character vector of length one is a scheme name.
		if err == nil && len(cs.Colors) == 1 && !strings.HasPrefix(cs.Colors[0], "#") {
			cs.Name, cs.Colors = cs.Colors[0], nil
		}
	case jsonparser.Null:
	default:
		err = inputErrorf("colorScheme", "want a name or a list of colors")
	}
	return cs, err
}

func parseLabelSizes(data []byte) (LabelSizes, error) {
	sizes := make(LabelSizes)
	if !has(data, "labelSizes") {
		return sizes, nil
	}
	err := jsonparser.ObjectEach(data, func(k, v []byte, typ jsonparser.ValueType, _ int) error {
		if typ == jsonparser.Null {
			return nil
		}
		if typ == jsonparser.Array {
			v, typ, _, _ = jsonparser.Get(v, "[0]")
		}
		x, err := number(v, typ)
		if err != nil {
			return inputErrorf("labelSizes", "%s: %v", k, err)
		}
		sizes[string(k)] = x
		return nil
	}, "labelSizes")
	return sizes, err
}

// eachElement calls fn for each element of the array at key and
// returns the number of elements. A missing key is an *InputError.
func eachElement(data []byte, key string, fn func(i int, v []byte, typ jsonparser.ValueType) error) (int, error) {
	if !has(data, key) {
		return 0, inputErrorf(key, "missing")
	}
	i := 0
	var ferr error
	_, err := jsonparser.ArrayEach(data, func(v []byte, typ jsonparser.ValueType, _ int, err error) {
		if ferr != nil {
			return
		}
		if err != nil {
			ferr = err
			return
		}
		ferr = fn(i, v, typ)
		i++
	}, key)
	if ferr != nil {
		err = ferr
	}
	if err != nil {
		var ie *InputError
		if !errors.As(err, &ie) {
			err = &InputError{key, err}
		}
		return i, err
	}
	return i, nil
}

// scalar returns the scalar at key, unwrapping a one-element array.
func scalar(data []byte, key string) ([]byte, jsonparser.ValueType, bool) {
	v, typ, _, err := jsonparser.Get(data, key)
	if err != nil || typ == jsonparser.Null {
		return nil, jsonparser.NotExist, false
	}
	if typ == jsonparser.Array {
		v, typ, _, err = jsonparser.Get(v, "[0]")
		if err != nil || typ == jsonparser.Null {
			return nil, jsonparser.NotExist, false
		}
	}
	return v, typ, true
}

func optNumber(data []byte, key string) (float64, bool, error) {
	v, typ, ok := scalar(data, key)
	if !ok {
		return 0, false, nil
	}
	x, err := number(v, typ)
	if err != nil {
		return 0, false, inputErrorf(key, "%v", err)
	}
	return x, true, nil
}

func optString(data []byte, key string) (string, bool, error) {
	v, typ, ok := scalar(data, key)
	if !ok {
		return "", false, nil
	}
	s, err := text(v, typ)
	if err != nil {
		return "", false, inputErrorf(key, "%v", err)
	}
	return s, true, nil
}

func optBool(data []byte, key string) (bool, error) {
	v, typ, ok := scalar(data, key)
	if !ok {
		return false, nil
	}
	if typ != jsonparser.Boolean {
		return false, inputErrorf(key, "want a boolean")
	}
	b, err := jsonparser.ParseBoolean(v)
	if err != nil {
		return false, inputErrorf(key, "%v", err)
	}
	return b, nil
}

func reqText(data []byte, field, key string) (string, error) {
	v, typ, ok := scalar(data, key)
	if !ok {
		return "", inputErrorf(field, "missing %s", key)
	}
	s, err := text(v, typ)
	if err != nil {
		return "", inputErrorf(field, "%s: %v", key, err)
	}
	return s, nil
}

func reqNumber(data []byte, field, key string) (float64, error) {
	v, typ, ok := scalar(data, key)
	if !ok {
		return 0, inputErrorf(field, "missing %s", key)
	}
	x, err := number(v, typ)
	if err != nil {
		return 0, inputErrorf(field, "%s: %v", key, err)
	}
	return x, nil
}

// text returns the textual form of a string, number, or boolean.
func text(v []byte, typ jsonparser.ValueType) (string, error) {
	switch typ {
	case jsonparser.String:
		return jsonparser.ParseString(v)
	case jsonparser.Number, jsonparser.Boolean:
		return string(v), nil
	}
	return "", fmt.Errorf("want a string or number")
}

// number converts a JSON number, or a string holding one, to a
// float64. Null and "NA" are missing values and convert to NaN.
func number(v []byte, typ jsonparser.ValueType) (float64, error) {
	switch typ {
	case jsonparser.Number:
		return jsonparser.ParseFloat(v)
	case jsonparser.Null:
		return math.NaN(), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "NA" || s == "" {
			return math.NaN(), nil
		}
		return strconv.ParseFloat(s, 64)
	}
	return 0, fmt.Errorf("want a number")
}
