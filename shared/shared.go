package shared

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"bayleaf/shared/cache"
	"bayleaf/shared/constant"
	"bayleaf/shared/dto"
	"bayleaf/shared/timezone"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields turns a patch struct into column updates. Nil pointers and zero values
// are skipped, pointers are dereferenced, and updated_at is always stamped.
func TransformFields(data any) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldUpdatedAt] = timezone.Now()

	return updatedFields
}

func FilterByID(id, fieldID string) dto.FilterGroup {
	return dto.And(dto.Eq(fieldID, id))
}

// BuildCacheKey joins a prefix and parts with ':'.
func BuildCacheKey(prefix string, parts ...any) string {
	key := []string{prefix}
	for _, part := range parts {
		key = append(key, fmt.Sprint(part))
	}

	return strings.Join(key, ":")
}

// InvalidateCaches clears every key under the prefixes. It runs synchronously and logs
// failures, callers that do not need to wait run it in a goroutine.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := c.Clear(ctx, prefix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}
