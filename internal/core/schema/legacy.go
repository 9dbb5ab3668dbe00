package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/custodia-labs/modelstore/internal/core/domain"
)

// Tabler is implemented by models used with CreateStatementsFromModels.
type Tabler interface {
	TableName() string
}

// MetadataFromStruct derives table metadata from the `db` tags of a struct.
//
// The tag holds the column name followed by options:
//
//	ID   int64  `db:"_id,pk"`
//	Name string `db:"name,type=TEXT,size=100"`
//
// An empty name uses the field name; "-" skips the field. Without a type
// option the type follows the Go kind (strings TEXT, integers and bools
// INTEGER, floats REAL). Untagged fields are ignored.
func MetadataFromStruct(model Tabler) (domain.TableMetadata, error) {
	rt := reflect.TypeOf(model)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return domain.TableMetadata{}, fmt.Errorf("%w: model %T is not a struct", domain.ErrConfiguration, model)
	}

	table := domain.NewTable(model.TableName())
	annotated := 0
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag, ok := field.Tag.Lookup("db")
		if !ok || tag == "-" || !field.IsExported() {
			continue
		}
		col, err := parseColumnTag(field, tag)
		if err != nil {
			return domain.TableMetadata{}, fmt.Errorf("model %T: %w", model, err)
		}
		table.Add(col)
		annotated++
	}
	if annotated == 0 {
		return domain.TableMetadata{}, fmt.Errorf("%w: model %T has no fields annotated as columns", domain.ErrConfiguration, model)
	}
	return table.Build()
}

// CreateStatementsFromModels returns the CREATE TABLE statement of every
// model, in order. It stops at the first model whose metadata is invalid.
func CreateStatementsFromModels(models ...Tabler) ([]string, error) {
	out := make([]string, 0, len(models))
	for _, m := range models {
		table, err := MetadataFromStruct(m)
		if err != nil {
			return nil, err
		}
		out = append(out, CreateStatement(table))
	}
	return out, nil
}

func parseColumnTag(field reflect.StructField, tag string) (domain.Column, error) {
	parts := strings.Split(tag, ",")
	col := domain.Column{Name: strings.TrimSpace(parts[0])}
	if col.Name == "" {
		col.Name = field.Name
	}

	for _, opt := range parts[1:] {
		key, value, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch key {
		case "pk":
			col.PrimaryKey = true
		case "type":
			typ, err := domain.ParseSQLType(value)
			if err != nil {
				return domain.Column{}, fmt.Errorf("field %s: %w", field.Name, err)
			}
			col.Type = typ
		case "size":
			size, err := strconv.Atoi(value)
			if err != nil {
				return domain.Column{}, fmt.Errorf("%w: field %s: bad size %q", domain.ErrConfiguration, field.Name, value)
			}
			col.Size = size
		case "":
		default:
			return domain.Column{}, fmt.Errorf("%w: field %s: unknown tag option %q", domain.ErrConfiguration, field.Name, key)
		}
	}

	if col.Type == domain.TypeNone {
		col.Type = kindType(field.Type.Kind())
	}
	return col, nil
}

func kindType(k reflect.Kind) domain.SQLType {
	switch k {
	case reflect.String:
		return domain.TypeText
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return domain.TypeInteger
	case reflect.Float32, reflect.Float64:
		return domain.TypeReal
	default:
		return domain.TypeNone
	}
}
