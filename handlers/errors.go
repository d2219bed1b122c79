package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"branchbook/services/booking"
	"branchbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func init() {
	// Report validation failures under the JSON field name clients sent.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// writeServiceError maps booking service errors onto HTTP responses.
// Validation errors become {field: [message]}.
func writeServiceError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{verr.Field: []string{verr.Message}})
	case errors.Is(err, booking.ErrStaffCannotBook), errors.Is(err, booking.ErrForbidden):
		utils.JSONDetail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONDetail(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, booking.ErrAlreadyCanceled):
		utils.JSONDetail(c, http.StatusBadRequest, err.Error())
	default:
		getLogger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// bindError reports a request body that failed gin binding. Field failures
// use the same {field: [message]} shape as service validation errors.
func bindError(c *gin.Context, err error) {
	getLogger(c).Debug("invalid request body", zap.Error(err))
	if fields := fieldErrors(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	utils.JSONDetail(c, http.StatusBadRequest, "Invalid input: "+err.Error())
}

func fieldErrors(err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := gin.H{}
		for _, fe := range verrs {
			msgs, _ := out[fe.Field()].([]string)
			out[fe.Field()] = append(msgs, fieldMessage(fe))
		}
		return out
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return gin.H{typeErr.Field: []string{"Incorrect type. Expected " + typeErr.Type.String() + "."}}
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
