// Package validation 请求参数校验
//
// 请求结构体用 validate 标签声明约束，Struct 把所有字段错误收集成
// 字段名(JSON) -> 错误信息列表，直接作为 400 响应体返回。
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// SchemaField 非字段级错误（请求体无法解析等）使用的键
const SchemaField = "_schema"

// ValidationError 字段级校验错误
type ValidationError struct {
	Fields map[string][]string
}

// New 创建只含一个字段错误的 ValidationError
func New(field, message string) *ValidationError {
	v := &ValidationError{Fields: map[string][]string{}}
	v.Add(field, message)
	return v
}

// Add 追加字段错误
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Merge 合并另一个校验错误
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		for _, m := range msgs {
			e.Add(field, m)
		}
	}
}

// HasErrors 是否存在错误
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// As 从错误链中提取 ValidationError
func As(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// 错误键使用 JSON 字段名
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct 按 validate 标签校验结构体，失败时返回 *ValidationError
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Fields: map[string][]string{}}
	for _, fe := range fieldErrs {
		verr.Add(fieldName(fe), message(fe))
	}
	return verr
}

// FromBindError 把 JSON 解码错误转换为 ValidationError
func FromBindError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return New(SchemaField, "Invalid input type.")
		}
		return New(field, typeMessage(typeErr.Type))
	case errors.Is(err, io.EOF):
		return New(SchemaField, "No input data provided.")
	default:
		var verr *ValidationError
		if errors.As(err, &verr) {
			return verr
		}
		return New(SchemaField, "Invalid input type.")
	}
}

func fieldName(fe validator.FieldError) string {
	// Namespace 形如 CreateOrderRequest.items[0].name，去掉根结构体名
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing data for required field."
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Shorter than minimum length %s.", fe.Param())
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("Must be less than or equal to %s.", fe.Param())
		}
		return fmt.Sprintf("Longer than maximum length %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s.", fe.Param())
	case "email":
		return "Not a valid email address."
	case "datetime":
		return "Not a valid date, expected YYYY-MM-DD."
	default:
		return fmt.Sprintf("Failed %q validation.", fe.Tag())
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "Invalid value."
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch {
	case t.Kind() == reflect.String:
		return "Not a valid string."
	case isNumber(t.Kind()):
		if t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64 {
			return "Not a valid number."
		}
		return "Not a valid integer."
	case t.Kind() == reflect.Slice:
		return "Not a valid list."
	default:
		return "Invalid value."
	}
}
