package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnknownResource is returned for keys missing from the catalog.
var ErrUnknownResource = errors.New("resource not found")

// ErrNoData means the resource is known but has no samples to serve.
var ErrNoData = errors.New("no data")

// SourceKind names the upstream that supplies a resource's history.
type SourceKind string

const (
	SourceYahoo       SourceKind = "yahoo"
	SourceFrankfurter SourceKind = "frankfurter"
	SourceStatic      SourceKind = "static"
)

// Resource is a tracked item and where its prices come from.
type Resource struct {
	Key    string
	Name   string
	Unit   string
	Source SourceKind
	// Symbol is the upstream ticker or currency code.
	Symbol string
	// StaticPrice is only used with SourceStatic.
	StaticPrice decimal.Decimal
}

// Catalog is the built-in resource list in display order.
var Catalog = []Resource{
	{Key: "oil", Name: "Нефть", Unit: "$/баррель", Source: SourceYahoo, Symbol: "CL=F"},
	{Key: "gas", Name: "Газ", Unit: "$/MMBtu", Source: SourceYahoo, Symbol: "NG=F"},
	{Key: "gasoline", Name: "Бензин", Unit: "$/галлон", Source: SourceYahoo, Symbol: "RB=F"},
	{Key: "diesel", Name: "Дизель", Unit: "$/галлон", Source: SourceYahoo, Symbol: "HO=F"},
	{Key: "gold", Name: "Золото", Unit: "$/унция", Source: SourceYahoo, Symbol: "GC=F"},
	{Key: "silver", Name: "Серебро", Unit: "$/унция", Source: SourceYahoo, Symbol: "SI=F"},
	{Key: "copper", Name: "Медь", Unit: "$/фунт", Source: SourceYahoo, Symbol: "HG=F"},
	{Key: "steel", Name: "Нержавеющая сталь", Unit: "$/тонна", Source: SourceStatic, StaticPrice: decimal.NewFromInt(2500)},
	{Key: "rub", Name: "Рубль", Unit: "₽/USD", Source: SourceFrankfurter, Symbol: "RUB"},
}

// LookupResource finds a catalog entry by key.
func LookupResource(key string) (Resource, bool) {
	for _, r := range Catalog {
		if r.Key == key {
			return r, true
		}
	}
	return Resource{}, false
}
