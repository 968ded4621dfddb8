package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/JoaquinVilchez/business-manager-api/pkg/patch"
)

var (
	cuitRe  = regexp.MustCompile(`^[0-9]{2}-[0-9]{8}-[0-9]$`)
	cbuRe   = regexp.MustCompile(`^[0-9]{22}$`)
	aliasRe = regexp.MustCompile(`^[a-zA-Z0-9._-]{6,20}$`)
)

// Init configures the global validator used by Gin's binding.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs the json tag names, the domain tags and the custom types on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=8")

	_ = v.RegisterValidation("cuit", matches(cuitRe))
	_ = v.RegisterValidation("cbu", matches(cbuRe))
	_ = v.RegisterValidation("alias", matches(aliasRe))

	// Amounts are compared as float64 so gt/lte bounds apply to decimals.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterCustomTypeFunc(nullableValue,
		patch.Nullable[int64]{},
		patch.Nullable[string]{},
		patch.Nullable[decimal.Decimal]{},
		patch.Nullable[time.Time]{},
	)
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

// nullableValue exposes the carried value; absent and null both validate as empty.
func nullableValue(field reflect.Value) interface{} {
	switch n := field.Interface().(type) {
	case patch.Nullable[int64]:
		if n.Valid {
			return n.Value
		}
	case patch.Nullable[string]:
		if n.Valid {
			return n.Value
		}
	case patch.Nullable[decimal.Decimal]:
		if n.Valid {
			f, _ := n.Value.Float64()
			return f
		}
	case patch.Nullable[time.Time]:
		if n.Valid {
			return n.Value
		}
	}
	return nil
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be a " + ute.Type.String()}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

// fieldPath drops the request struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "unique":
		return "must contain unique items"
	case "numeric":
		return "must be numeric"
	case "pwd":
		return "min length 8"
	case "cuit":
		return "must have the format XX-XXXXXXXX-X"
	case "cbu":
		return "must be exactly 22 digits"
	case "alias":
		return "must be 6 to 20 letters, digits, dots, dashes or underscores"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
