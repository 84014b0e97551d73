package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"agriportal_backend/internal/events"
	"agriportal_backend/internal/suppliers/pincode"
	"agriportal_backend/platform/geo"
	"agriportal_backend/platform/logger"
)

const nearbyRadiusKm = 100.0

// Service orchestrates the resolve -> synthesize -> rank pipeline. Failures
// of the completion model are absorbed into the generator fallback; Search
// never returns an error.
type Service struct {
	completer Completer
	resolver  *pincode.Resolver
	bus       events.Bus
	log       *logger.Logger
	timeout   time.Duration
	newRand   func() *rand.Rand
}

// New creates the supplier discovery service. completer and bus may be nil.
func New(completer Completer, resolver *pincode.Resolver, bus events.Bus, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		completer: completer,
		resolver:  resolver,
		bus:       bus,
		log:       log,
		timeout:   timeout,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetRandSource overrides the per-search random source. Tests use this to
// make jitter, ratings and generator radii deterministic.
func (s *Service) SetRandSource(newRand func() *rand.Rand) {
	s.newRand = newRand
}

// Search runs the full pipeline for a pincode and applies the free-text and
// category filters to the synthesized list. The filters are pure: they never
// trigger another resolution.
func (s *Service) Search(ctx context.Context, pin, query string, category Category) SearchResult {
	loc := s.resolver.Resolve(ctx, pin)
	suppliers, source := s.synthesize(ctx, loc, pin)

	result := SearchResult{
		Location:   loc,
		Suppliers:  Filter(suppliers, query, category),
		TotalCount: len(suppliers),
		Source:     source,
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.SupplierSearchCompleted{
			BaseEvent:   events.NewBaseEvent(),
			Pincode:     pin,
			City:        loc.City,
			State:       loc.State,
			ResultCount: len(suppliers),
			Source:      source,
		})
	}

	return result
}

// synthesize asks the completion model for suppliers near the location and
// falls back to the generator when the call fails, times out, or yields no
// parseable block.
func (s *Service) synthesize(ctx context.Context, loc pincode.Location, pin string) ([]Supplier, string) {
	rng := s.newRand()

	if s.completer != nil {
		if suppliers, ok := s.fromCompletion(ctx, loc, pin, rng); ok {
			return suppliers, SourceAI
		}
	}

	return generateSuppliers(loc, pin, rng), SourceGenerated
}

func (s *Service) fromCompletion(ctx context.Context, loc pincode.Location, pin string, rng *rand.Rand) ([]Supplier, bool) {
	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.completer.Complete(callCtx, buildSupplierPrompt(loc, pin))
	if err != nil {
		s.log.UpstreamError("supplier completion", err)
		return nil, false
	}

	parsed := parseSuppliers(reply, parseContext{
		City:    loc.City,
		State:   loc.State,
		Pincode: pin,
		UserLat: loc.Lat,
		UserLng: loc.Lng,
	}, rng)
	if len(parsed) == 0 {
		return nil, false
	}

	return rank(parsed, loc), true
}

func buildSupplierPrompt(loc pincode.Location, pin string) string {
	return fmt.Sprintf("For pincode %s in %s, %s, provide a list of 6-8 real agricultural suppliers "+
		"(seed shops, fertilizer dealers, equipment sellers) in this area. For each supplier, provide: "+
		"1. Shop name, 2. Type (Seeds/Fertilizers/Equipment), 3. Address with pincode, 4. Phone number, "+
		"5. Products they sell (3-4 items), 6. Approximate latitude, 7. Approximate longitude. "+
		"Format as: Name: [name], Type: [type], Address: [address], Phone: [phone], "+
		"Products: [product1, product2, product3], Lat: [lat], Lng: [lng]. "+
		"Separate each supplier with \"---\".", pin, loc.City, loc.State)
}

// rank annotates every record with its distance from the resolved location,
// sorts ascending, and keeps records within 100 km. If that filter would
// empty the list, the first six of the sorted list are kept instead: a
// search that parsed anything never renders zero results.
func rank(suppliers []Supplier, loc pincode.Location) []Supplier {
	for i := range suppliers {
		d := geo.RoundKm(geo.DistanceKm(loc.Lat, loc.Lng, suppliers[i].Lat, suppliers[i].Lng))
		suppliers[i].DistanceKm = d
		suppliers[i].LocationLabel = fmt.Sprintf("%s, %v km away", suppliers[i].City, d)
	}

	sort.Slice(suppliers, func(i, j int) bool {
		return suppliers[i].DistanceKm < suppliers[j].DistanceKm
	})

	nearby := make([]Supplier, 0, len(suppliers))
	for _, sup := range suppliers {
		if sup.DistanceKm <= nearbyRadiusKm {
			nearby = append(nearby, sup)
		}
	}

	if len(nearby) == 0 {
		if len(suppliers) > generatedCount {
			return suppliers[:generatedCount]
		}
		return suppliers
	}
	return nearby
}

// Filter applies the client-side name/product substring filter and the
// category filter. It is pure and applies to whatever list it is given.
func Filter(suppliers []Supplier, query string, category Category) []Supplier {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]Supplier, 0, len(suppliers))
	for _, sup := range suppliers {
		if category != "" && sup.Category != category {
			continue
		}
		if query != "" && !matchesQuery(sup, query) {
			continue
		}
		filtered = append(filtered, sup)
	}
	return filtered
}

func matchesQuery(sup Supplier, query string) bool {
	if strings.Contains(strings.ToLower(sup.Name), query) {
		return true
	}
	for _, product := range sup.Products {
		if strings.Contains(strings.ToLower(product), query) {
			return true
		}
	}
	return false
}
