// Package bind wraps gin request binding so failures surface as validation errors
// that name the offending request fields.
package bind

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"job-optimizer/internal/shared/apperr"
)

var registerOnce sync.Once

// fieldNames makes validator report the wire name (json, then form tag) instead of the Go field name.
func fieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// Form binds url-encoded or multipart form fields into obj.
func Form(c *gin.Context, op string, obj any) error {
	fieldNames()
	if err := c.ShouldBindWith(obj, binding.Form); err != nil {
		return describe(op, err)
	}
	return nil
}

// JSON binds a JSON request body into obj.
func JSON(c *gin.Context, op string, obj any) error {
	fieldNames()
	if err := c.ShouldBindJSON(obj); err != nil {
		return describe(op, err)
	}
	return nil
}

func describe(op string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				msgs = append(msgs, fe.Field()+" is required")
				continue
			}
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
		return apperr.Validation(op, strings.Join(msgs, "; "))
	}
	return apperr.Wrap(apperr.KindValidation, op, err, "invalid request body")
}
