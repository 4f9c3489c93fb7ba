package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SettingsField describes one settings.json key
type SettingsField struct {
	Example any    `json:"example"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	example := make(map[string]any)
	for _, f := range GetSettingsFields() {
		example[f.Name] = f.Example
	}
	return example
}

// GetSettingsFields lists every settings.json key in declaration order
func GetSettingsFields() []SettingsField {
	t := reflect.TypeOf(Settings{})
	fields := make([]SettingsField, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		jsonName := strings.Split(jsonTag, ",")[0]
		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		fields = append(fields, SettingsField{
			Example: generateExampleValue(fieldType, jsonName),
			Name:    jsonName,
			Type:    fieldType.Kind().String(),
		})
	}

	return fields
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	switch t.Kind() {
	case reflect.Bool:
		return fieldName == "history"
	case reflect.Int:
		switch fieldName {
		case "history_limit":
			return DefaultHistoryLimit
		case "max_log_files":
			return DefaultMaxLogFiles
		case "output_indent":
			return DefaultOutputIndent
		case "workers":
			return 4
		}
		return 10
	case reflect.String:
		switch fieldName {
		case "input_format":
			return DefaultInputFormat
		case "policy":
			return DefaultPolicy
		}
		return "example"
	}
	return nil
}

// SetField assigns value, parsed per the field's type, to the settings key name
func (s *Settings) SetField(name, value string) error {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if strings.Split(field.Tag.Get("json"), ",")[0] != name {
			continue
		}

		target := v.Field(i)
		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		parsed := reflect.New(fieldType).Elem()
		switch fieldType.Kind() {
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			parsed.SetBool(b)
		case reflect.Int:
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", name, err)
			}
			if n < 0 {
				return fmt.Errorf("invalid value for %s: must not be negative", name)
			}
			parsed.SetInt(int64(n))
		case reflect.String:
			parsed.SetString(value)
		default:
			return fmt.Errorf("setting %s has unsupported type %s", name, fieldType.Kind())
		}

		if field.Type.Kind() == reflect.Ptr {
			ptr := reflect.New(fieldType)
			ptr.Elem().Set(parsed)
			target.Set(ptr)
		} else {
			target.Set(parsed)
		}
		return nil
	}

	return fmt.Errorf("unknown setting %q", name)
}
