// Package catalog declares the game reference schema synchronized by dexdb.
package catalog

import "github.com/vvka-141/dexdb/internal/schema"

// Platforms are the hardware families a game can be released on.
var Platforms = []string{
	"game-boy",
	"game-boy-color",
	"game-boy-advance",
	"nintendo-ds",
	"nintendo-3ds",
	"nintendo-switch",
}

// Languages lists the languages names are recorded in.
var Languages = schema.Table{
	Name: "languages",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Integer},
		{Name: "identifier", Type: schema.Unicode, Unique: true},
		{Name: "iso639", Type: schema.Unicode, Nullable: true},
		{Name: "is_official", Type: schema.Boolean},
	},
	PrimaryKey: []string{"id"},
}

// TypeCharts are the distinct type-effectiveness tables used across the series.
var TypeCharts = schema.Table{
	Name: "type_charts",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Integer},
		{Name: "identifier", Type: schema.Unicode, Unique: true},
	},
	PrimaryKey: []string{"id"},
}

// Generations groups games by iteration of the series. Each generation has a
// name per language.
var Generations = schema.Table{
	Name: "generations",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Integer},
		{Name: "identifier", Type: schema.Unicode, Unique: true},
		{Name: "is_base_series", Type: schema.Boolean},
		{Name: "release_order", Type: schema.Integer, Unique: true},
		{Name: "type_chart_id", Type: schema.Integer, References: "type_charts.id"},
	},
	PrimaryKey: []string{"id"},
	Localized:  &schema.Localized{},
}

// Games are the main-series games.
var Games = schema.Table{
	Name: "games",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Integer},
		{Name: "identifier", Type: schema.Unicode, Unique: true},
		{Name: "generation_id", Type: schema.Integer, References: "generations.id"},
		{Name: "platform", Type: schema.Enum, Nullable: true, Values: Platforms},
	},
	PrimaryKey: []string{"id"},
	Unique:     [][]string{{"id", "generation_id"}},
}

// Tables returns the catalog declarations in declaration order.
func Tables() []schema.Table {
	return []schema.Table{Languages, TypeCharts, Generations, Games}
}

// NewRegistry builds the registry for the catalog. The declarations are
// compiled in, so an invalid one panics.
func NewRegistry() *schema.Registry {
	return schema.MustRegistry(Tables()...)
}
