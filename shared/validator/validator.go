package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"mime/multipart"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

var phonePattern = regexp.MustCompile(`^[0-9]{11}$`)

const (
	dataURIPrefix = "data:"
	dataURIBase64 = ";base64,"
)

// dataURIContentType returns the media type of a base64 data URI, or "" when s is not one.
func dataURIContentType(s string) string {
	if !strings.HasPrefix(s, dataURIPrefix) {
		return ""
	}

	end := strings.Index(s, dataURIBase64)
	if end == -1 {
		return ""
	}

	return s[len(dataURIPrefix):end]
}

// fileHeader unwraps both multipart.FileHeader and *multipart.FileHeader fields.
func fileHeader(field val.FieldLevel) (*multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return &file, true
	case *multipart.FileHeader:
		return file, file != nil
	default:
		return nil, false
	}
}

func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	if file, ok := fileHeader(field); ok {
		contentType = file.Header.Get(constant.RequestHeaderContentType)
	} else if str, ok := field.Field().Interface().(string); ok {
		contentType = dataURIContentType(str)

		if contentType == "" {
			return false
		}
	}

	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0
	if file, ok := fileHeader(field); ok {
		fileSize = int(file.Size)
	} else if str, ok := field.Field().Interface().(string); ok {
		fileSize = len(str)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

// registerPhoneValidation accepts exactly eleven digits, the local mobile format.
func registerPhoneValidation(field val.FieldLevel) bool {
	return phonePattern.MatchString(field.Field().String())
}

func registerDateValidation(field val.FieldLevel) bool {
	_, err := time.Parse(constant.DateOnlyFormat, field.Field().String())

	return err == nil
}

var rules = map[string]val.Func{
	"mimetypes":   registerMimetypeValidation,
	"maxfilesize": registerFileSizeValidation,
	"phone11":     registerPhoneValidation,
	"date":        registerDateValidation,
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}

		return name
	})

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it. Every failure is a 400.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateStruct reports the first failing field of data with a readable message.
func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
