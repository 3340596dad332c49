package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// applyEnv walks a config section and overrides every field whose `env` variable is set.
// prefix is the dotted yaml path of the section, used in error messages.
func applyEnv(section reflect.Value, prefix string) error {
	section = reflect.Indirect(section)
	for i := 0; i < section.NumField(); i++ {
		meta := section.Type().Field(i)
		path := yamlPath(prefix, meta)

		if section.Field(i).Kind() == reflect.Struct {
			if err := applyEnv(section.Field(i), path); err != nil {
				return err
			}
			continue
		}

		name := meta.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := assignEnv(section.Field(i), raw); err != nil {
			return fmt.Errorf("%s (%s): %w", name, path, err)
		}
	}
	return nil
}

// assignEnv parses raw into one of the scalar kinds a config field may have
func assignEnv(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("want an integer, got %q", raw)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("want true or false, got %q", raw)
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("cannot fill %s from the environment", field.Type())
		}
		field.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("cannot fill %s from the environment", field.Type())
	}
	return nil
}

// splitList turns "a, b,,c" into [a b c]; origins and similar lists are comma separated.
func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func yamlPath(prefix string, field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
	if name == "" {
		name = strings.ToLower(field.Name)
	}
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
