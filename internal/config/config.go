// Package config loads configuration from files, env vars, and flags, and
// validates it. Besides process settings it carries the static schema graph
// and the per-resource endpoint specs, which are translated into the engine's
// registry and spec values at startup.
package config

import (
	"fmt"
	"time"

	"listql/internal/listspec"
	"listql/internal/plan"
	"listql/internal/schema"
)

// Config holds the application configuration.
type Config struct {
	Database  DatabaseConfig   `mapstructure:"database"`
	Server    ServerConfig     `mapstructure:"server"`
	Logging   LoggingConfig    `mapstructure:"logging"`
	Schemas   []SchemaConfig   `mapstructure:"schemas"`
	Endpoints []EndpointConfig `mapstructure:"endpoints"`
}

// DatabaseConfig holds database connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN renders the MySQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", c.User, c.Password, c.Host, c.Port, c.Database)
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	MaxLimit        int           `mapstructure:"max_limit"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging parameters.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// SchemaConfig declares one relation of the schema graph.
type SchemaConfig struct {
	Name         string              `mapstructure:"name"`
	Table        string              `mapstructure:"table"`
	PrimaryKey   string              `mapstructure:"primary_key"`
	Fields       []FieldConfig       `mapstructure:"fields"`
	Associations []AssociationConfig `mapstructure:"associations"`
}

// FieldConfig declares one field of a relation.
type FieldConfig struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

// AssociationConfig declares one association edge. Through chains name other
// associations instead of carrying key fields.
type AssociationConfig struct {
	Name        string   `mapstructure:"name"`
	Target      string   `mapstructure:"target"`
	OwnerKey    string   `mapstructure:"owner_key"`
	RelatedKey  string   `mapstructure:"related_key"`
	Cardinality string   `mapstructure:"cardinality"` // one, many
	Through     []string `mapstructure:"through"`
}

// EndpointConfig declares one queryable resource: its base schema and the
// filter/sort capabilities it exposes.
type EndpointConfig struct {
	Schema  string         `mapstructure:"schema"`
	Filters []FilterConfig `mapstructure:"filters"`
	Sorts   []SortConfig   `mapstructure:"sorts"`
}

// FilterConfig declares one filter spec. FalsyOperator turns the operator
// into a conditional truthy/falsy pair. Only literal defaults can be
// configured; computed defaults are wired in code.
type FilterConfig struct {
	Key           string   `mapstructure:"key"`
	Path          []string `mapstructure:"path"`
	Field         string   `mapstructure:"field"`
	Operator      string   `mapstructure:"operator"`
	FalsyOperator string   `mapstructure:"falsy_operator"`
	AllowNil      bool     `mapstructure:"allow_nil"`
	Default       any      `mapstructure:"default"`
}

// SortConfig declares one sort spec.
type SortConfig struct {
	Key       string   `mapstructure:"key"`
	Path      []string `mapstructure:"path"`
	Field     string   `mapstructure:"field"`
	Direction string   `mapstructure:"direction"`
	IsDefault bool     `mapstructure:"is_default"`
}

// Registry builds the immutable schema registry from the configured graph.
func (c *Config) Registry() (*schema.Registry, error) {
	schemas := make([]schema.Schema, 0, len(c.Schemas))
	for _, sc := range c.Schemas {
		s := schema.Schema{
			Name:       sc.Name,
			Table:      sc.Table,
			PrimaryKey: sc.PrimaryKey,
		}
		for _, fc := range sc.Fields {
			s.Fields = append(s.Fields, schema.Field{Name: fc.Name, Type: schema.FieldType(fc.Type)})
		}
		for _, ac := range sc.Associations {
			cardinality := schema.One
			switch ac.Cardinality {
			case "", "one":
			case "many":
				cardinality = schema.Many
			default:
				return nil, fmt.Errorf("schema %q association %q: unknown cardinality %q", sc.Name, ac.Name, ac.Cardinality)
			}
			s.Associations = append(s.Associations, schema.Association{
				Name:        ac.Name,
				Target:      ac.Target,
				OwnerKey:    ac.OwnerKey,
				RelatedKey:  ac.RelatedKey,
				Cardinality: cardinality,
				Through:     ac.Through,
			})
		}
		schemas = append(schemas, s)
	}
	return schema.NewRegistry(schemas...)
}

// FilterSpecs translates the endpoint's filter declarations.
func (e EndpointConfig) FilterSpecs() ([]listspec.FilterSpec, error) {
	specs := make([]listspec.FilterSpec, 0, len(e.Filters))
	for _, fc := range e.Filters {
		op := plan.Operator(fc.Operator)
		if !op.Valid() {
			return nil, fmt.Errorf("filter %q: unknown operator %q", fc.Key, fc.Operator)
		}
		operator := listspec.Op(op)
		if fc.FalsyOperator != "" {
			falsy := plan.Operator(fc.FalsyOperator)
			if !falsy.Valid() {
				return nil, fmt.Errorf("filter %q: unknown falsy operator %q", fc.Key, fc.FalsyOperator)
			}
			operator = listspec.Conditional(op, falsy)
		}

		// A nil configured default behaves identically to no default, so the
		// two are not distinguished here.
		def := listspec.NoDefault()
		if fc.Default != nil {
			def = listspec.Literal(fc.Default)
		}

		specs = append(specs, listspec.FilterSpec{
			Key:      fc.Key,
			Path:     fc.Path,
			Field:    fc.Field,
			Operator: operator,
			AllowNil: fc.AllowNil,
			Default:  def,
		})
	}
	return specs, nil
}

// SortSpecs translates the endpoint's sort declarations.
func (e EndpointConfig) SortSpecs() ([]listspec.SortSpec, error) {
	specs := make([]listspec.SortSpec, 0, len(e.Sorts))
	for _, sc := range e.Sorts {
		dir := plan.Asc
		if sc.Direction != "" {
			parsed, ok := plan.ParseDirection(sc.Direction)
			if !ok {
				return nil, fmt.Errorf("sort %q: unknown direction %q", sc.Key, sc.Direction)
			}
			dir = parsed
		}
		specs = append(specs, listspec.SortSpec{
			Key:       sc.Key,
			Path:      sc.Path,
			Field:     sc.Field,
			Direction: dir,
			IsDefault: sc.IsDefault,
		})
	}
	return specs, nil
}
