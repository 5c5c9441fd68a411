package mongo

import (
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

func TestBuildSearchQuery(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	cases := []struct {
		name   string
		filter ports.SearchFilter
		want   bson.M
	}{
		{
			"empty filter matches everything",
			ports.SearchFilter{},
			bson.M{},
		},
		{
			"name is a case-insensitive substring match",
			ports.SearchFilter{Name: "chocolate"},
			bson.M{"name": bson.M{"$regex": "chocolate", "$options": "i"}},
		},
		{
			"regex metacharacters in name are escaped",
			ports.SearchFilter{Name: "m&m.s"},
			bson.M{"name": bson.M{"$regex": `m&m\.s`, "$options": "i"}},
		},
		{
			"category is anchored for an exact match",
			ports.SearchFilter{Category: "Chocolate"},
			bson.M{"category": bson.M{"$regex": "^Chocolate$", "$options": "i"}},
		},
		{
			"price bounds are inclusive",
			ports.SearchFilter{MinPrice: price(1.5), MaxPrice: price(9.99)},
			bson.M{"price": bson.M{"$gte": 1.5, "$lte": 9.99}},
		},
		{
			"min price alone",
			ports.SearchFilter{MinPrice: price(2)},
			bson.M{"price": bson.M{"$gte": 2.0}},
		},
		{
			"max price alone",
			ports.SearchFilter{MaxPrice: price(5)},
			bson.M{"price": bson.M{"$lte": 5.0}},
		},
		{
			"all filters combine with AND",
			ports.SearchFilter{Name: "bar", Category: "chocolate", MinPrice: price(1), MaxPrice: price(3)},
			bson.M{
				"name":     bson.M{"$regex": "bar", "$options": "i"},
				"category": bson.M{"$regex": "^chocolate$", "$options": "i"},
				"price":    bson.M{"$gte": 1.0, "$lte": 3.0},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buildSearchQuery(tc.filter)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("buildSearchQuery mismatch:\n got  %#v\n want %#v", got, tc.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if _, err := parseID("not-a-hex-id"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}

	oid, err := parseID("64a1f2e8b3c4d5e6f7a8b9c0")
	if err != nil {
		t.Fatalf("expected valid id, got %v", err)
	}
	if oid.Hex() != "64a1f2e8b3c4d5e6f7a8b9c0" {
		t.Fatalf("round trip mismatch: %s", oid.Hex())
	}
}
