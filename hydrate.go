package gopaginate

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"
)

// hydrate builds entities of type T from raw rows, matching columns to
// fields by column name first and by field name second. Unknown columns
// are skipped. T is a struct or a pointer to one; pointees are allocated.
func hydrate[T any](ctx context.Context, db *gorm.DB, rows []map[string]any) ([]T, error) {
	entityType := reflect.TypeOf((*T)(nil)).Elem()
	isPointer := entityType.Kind() == reflect.Pointer
	if isPointer {
		entityType = entityType.Elem()
	}
	if entityType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot hydrate entity of type %s: not a struct", reflect.TypeOf((*T)(nil)).Elem())
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(reflect.New(entityType).Interface()); err != nil {
		return nil, fmt.Errorf("cannot parse entity schema: %w", err)
	}

	entities := make([]T, 0, len(rows))
	for _, row := range rows {
		var entity T
		entityValue := reflect.ValueOf(&entity).Elem()
		if isPointer {
			entityValue.Set(reflect.New(entityType))
			entityValue = entityValue.Elem()
		}

		for column, value := range row {
			field := stmt.Schema.LookUpField(column)
			if field == nil || field.DBName == "" {
				continue
			}

			if err := field.Set(ctx, entityValue, value); err != nil {
				return nil, fmt.Errorf("cannot hydrate field '%s' from column '%s': %w", field.Name, column, err)
			}
		}

		entities = append(entities, entity)
	}

	return entities, nil
}
