package service

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// FlexibleID 接受数字或数字字符串形式的ID
type FlexibleID uint

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	v, err := parseID(data)
	if err != nil {
		return err
	}
	*id = FlexibleID(v)
	return nil
}

// FlexibleFloat 接受数字或数字字符串形式的浮点数，拒绝 NaN/Inf
type FlexibleFloat float64

func (f *FlexibleFloat) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(float64(0))}
	}
	*f = FlexibleFloat(v)
	return nil
}

// IDList 接受ID数组，单个ID视为只有一个元素的数组
type IDList []uint

func (l *IDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return &json.UnmarshalTypeError{Value: "array", Type: reflect.TypeOf(IDList{})}
		}
		ids := make(IDList, 0, len(raw))
		for _, item := range raw {
			v, err := parseID(item)
			if err != nil {
				return err
			}
			ids = append(ids, v)
		}
		*l = ids
		return nil
	}

	v, err := parseID(data)
	if err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(IDList{})}
	}
	*l = IDList{v}
	return nil
}

// Unique 去重并保持原有顺序
func (l IDList) Unique() []uint {
	seen := make(map[uint]struct{}, len(l))
	out := make([]uint, 0, len(l))
	for _, id := range l {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func parseID(data []byte) (uint, error) {
	s := string(bytes.TrimSpace(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(uint(0))}
	}
	return uint(v), nil
}
