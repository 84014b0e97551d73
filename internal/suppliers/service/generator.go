package service

import (
	"fmt"
	"math/rand"
	"sort"

	"agriportal_backend/internal/suppliers/pincode"
	"agriportal_backend/platform/geo"
	"agriportal_backend/platform/phone"
)

// namePool is the last-resort source of plausible shop names and stock when
// no AI-sourced record survived parsing.
type namePool struct {
	category Category
	names    []string
	products []string
}

var fallbackPools = []namePool{
	{
		category: CategorySeeds,
		names:    []string{"Green Valley Seeds", "Seed Mart", "Premium Seeds Co", "Agri Seeds Hub"},
		products: []string{"Rice Seeds", "Wheat Seeds", "Corn Seeds", "Vegetable Seeds"},
	},
	{
		category: CategoryFertilizers,
		names:    []string{"FarmChem Fertilizers", "Organic Roots", "Agri Nutrients", "Soil Care Solutions"},
		products: []string{"NPK", "Urea", "Organic Compost", "Bio-fertilizers"},
	},
	{
		category: CategoryEquipment,
		names:    []string{"AgriTech Equipment", "Modern Farm Tools", "Farm Machinery Hub", "Agri Solutions"},
		products: []string{"Tractors", "Irrigation Systems", "Sprayers", "Hand Tools"},
	},
}

const generatedCount = 6

// generateSuppliers fabricates six suppliers, two per category, placed at
// 60-degree bearings around the user at a random 5-50 km radius. It always
// succeeds, so the search pipeline can never come back empty.
func generateSuppliers(loc pincode.Location, pin string, rng *rand.Rand) []Supplier {
	suppliers := make([]Supplier, 0, generatedCount)

	for i := 0; i < generatedCount; i++ {
		pool := fallbackPools[i%len(fallbackPools)]
		nameIndex := i / len(fallbackPools)
		if nameIndex >= len(pool.names) {
			nameIndex = 0
		}
		name := fmt.Sprintf("%s - %s", pool.names[nameIndex], loc.City)

		bearing := float64(i * 60)
		radius := 5 + rng.Float64()*45
		lat, lng := geo.Offset(loc.Lat, loc.Lng, bearing, radius)
		distance := geo.RoundKm(geo.DistanceKm(loc.Lat, loc.Lng, lat, lng))

		suppliers = append(suppliers, Supplier{
			Name:          name,
			Category:      pool.category,
			Rating:        4.5 + rng.Float64()*0.5,
			Lat:           lat,
			Lng:           lng,
			City:          loc.City,
			Address:       fmt.Sprintf("%s, %s - %s", loc.City, loc.State, pin),
			Products:      append([]string(nil), pool.products...),
			Verified:      true,
			Phone:         phone.NormalizeE164(fmt.Sprintf("+91 %d", 9000000000+rng.Int63n(1000000000))),
			Email:         emailForName(name),
			PriceRange:    priceRangeByCategory[pool.category],
			PriceInfo:     priceInfoByCategory[pool.category],
			OpeningHours:  defaultOpeningHours,
			DistanceKm:    distance,
			LocationLabel: fmt.Sprintf("%s, %v km away", loc.City, distance),
			Source:        SourceGenerated,
		})
	}

	sort.Slice(suppliers, func(i, j int) bool {
		return suppliers[i].DistanceKm < suppliers[j].DistanceKm
	})

	return suppliers
}
