package config

import (
	"fmt"

	"listql/internal/schema"
)

var validFieldTypes = map[schema.FieldType]bool{
	schema.TypeString: true,
	schema.TypeInt:    true,
	schema.TypeFloat:  true,
	schema.TypeBool:   true,
	schema.TypeTime:   true,
	schema.TypeID:     true,
}

// Validate checks the configuration for structural errors that would make the
// server unable to start: bad process settings, malformed schema declarations,
// and endpoints that reference unknown schemas. Association graph consistency
// is checked separately when the registry is built.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of valid range (1-65535)", c.Server.Port)
	}
	if c.Server.DefaultLimit < 1 {
		return fmt.Errorf("server.default_limit must be positive, got %d", c.Server.DefaultLimit)
	}
	if c.Server.MaxLimit < c.Server.DefaultLimit {
		return fmt.Errorf("server.max_limit %d is below server.default_limit %d", c.Server.MaxLimit, c.Server.DefaultLimit)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("logging.format %q is not one of json, text", c.Logging.Format)
	}

	declared := make(map[string]bool, len(c.Schemas))
	for _, sc := range c.Schemas {
		if sc.Name == "" {
			return fmt.Errorf("schema with empty name")
		}
		if declared[sc.Name] {
			return fmt.Errorf("duplicate schema %q", sc.Name)
		}
		declared[sc.Name] = true

		if sc.Table == "" {
			return fmt.Errorf("schema %q: missing table", sc.Name)
		}
		if sc.PrimaryKey == "" {
			return fmt.Errorf("schema %q: missing primary_key", sc.Name)
		}
		for _, fc := range sc.Fields {
			if fc.Name == "" {
				return fmt.Errorf("schema %q: field with empty name", sc.Name)
			}
			if !validFieldTypes[schema.FieldType(fc.Type)] {
				return fmt.Errorf("schema %q field %q: unknown type %q", sc.Name, fc.Name, fc.Type)
			}
		}
	}

	for _, ep := range c.Endpoints {
		if ep.Schema == "" {
			return fmt.Errorf("endpoint with empty schema")
		}
		if !declared[ep.Schema] {
			return fmt.Errorf("endpoint references unknown schema %q", ep.Schema)
		}
		seen := make(map[string]bool)
		for _, fc := range ep.Filters {
			if fc.Key == "" {
				return fmt.Errorf("endpoint %q: filter with empty key", ep.Schema)
			}
			if seen[fc.Key] {
				return fmt.Errorf("endpoint %q: duplicate filter key %q", ep.Schema, fc.Key)
			}
			seen[fc.Key] = true
			if fc.Field == "" {
				return fmt.Errorf("endpoint %q filter %q: missing field", ep.Schema, fc.Key)
			}
		}
		sortSeen := make(map[string]bool)
		for _, sc := range ep.Sorts {
			if sc.Key == "" {
				return fmt.Errorf("endpoint %q: sort with empty key", ep.Schema)
			}
			if sortSeen[sc.Key] {
				return fmt.Errorf("endpoint %q: duplicate sort key %q", ep.Schema, sc.Key)
			}
			sortSeen[sc.Key] = true
			if sc.Field == "" {
				return fmt.Errorf("endpoint %q sort %q: missing field", ep.Schema, sc.Key)
			}
		}
	}

	return nil
}
