package service

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"agriportal_backend/platform/phone"
)

// parseContext carries the resolved search location into block parsing so
// missing fields can be defaulted to something plausible near the user.
type parseContext struct {
	City    string
	State   string
	Pincode string
	UserLat float64
	UserLng float64
}

var (
	nameRe     = regexp.MustCompile(`(?i)Name:\s*([^\n,]+)`)
	shopRe     = regexp.MustCompile(`(?i)Shop[:\s]+([^\n,]+)`)
	typeRe     = regexp.MustCompile(`(?i)Type:\s*([^\n,]+)`)
	addressRe  = regexp.MustCompile(`(?i)Address:\s*([^\n]+)`)
	phoneRe    = regexp.MustCompile(`(?i)Phone:\s*([^\n,]+)`)
	productsRe = regexp.MustCompile(`(?i)Products:\s*([^\n]+)`)
	latRe      = regexp.MustCompile(`(?i)Lat[a-z]*:\s*(-?[0-9.]+)`)
	lngRe      = regexp.MustCompile(`(?i)Lng[a-z]*:\s*(-?[0-9.]+)`)

	emphasisReplacer = strings.NewReplacer("**", "", "*", "", "#", "")
	slugRe           = regexp.MustCompile(`\s+`)
)

// parseSuppliers extracts supplier records from the model's free-text reply.
// Blocks are separated by "---"; a block without a Name/Shop field yields no
// record. Every surviving record gets a full set of fields: anything the
// text omits is defaulted or synthesized per the rules below.
func parseSuppliers(response string, pctx parseContext, rng *rand.Rand) []Supplier {
	clean := emphasisReplacer.Replace(response)
	blocks := strings.Split(clean, "---")

	var suppliers []Supplier
	for i, block := range blocks {
		record, ok := parseBlock(block, i, pctx, rng)
		if !ok {
			continue
		}
		suppliers = append(suppliers, record)
	}

	return suppliers
}

func parseBlock(block string, index int, pctx parseContext, rng *rand.Rand) (Supplier, bool) {
	name := matchField(block, nameRe, shopRe)
	if name == "" {
		return Supplier{}, false
	}

	category := parseCategory(block, index)
	lat, lng := parseCoordinates(block, pctx, rng)

	address := matchField(block, addressRe)
	if address == "" {
		address = fmt.Sprintf("%s, %s - %s", pctx.City, pctx.State, pctx.Pincode)
	}

	phoneNumber := matchField(block, phoneRe)
	if phoneNumber == "" {
		phoneNumber = synthesizePhone(rng)
	}

	return Supplier{
		Name:         name,
		Category:     category,
		Rating:       4.5 + rng.Float64()*0.5,
		Lat:          lat,
		Lng:          lng,
		City:         pctx.City,
		Address:      address,
		Products:     parseProducts(block),
		Verified:     true,
		Phone:        phone.NormalizeE164(phoneNumber),
		Email:        emailForName(name),
		PriceRange:   priceRangeByCategory[category],
		PriceInfo:    priceInfoByCategory[category],
		OpeningHours: defaultOpeningHours,
		Source:       SourceAI,
	}, true
}

func matchField(block string, patterns ...*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(block); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// parseCategory maps the Type field onto the known categories; anything
// unrecognized is assigned round-robin by block index so every record still
// lands in a filterable bucket.
func parseCategory(block string, index int) Category {
	raw := strings.ToLower(matchField(block, typeRe))
	switch {
	case strings.Contains(raw, "seed"):
		return CategorySeeds
	case strings.Contains(raw, "fert"):
		return CategoryFertilizers
	case strings.Contains(raw, "equip"), strings.Contains(raw, "machin"), strings.Contains(raw, "tool"):
		return CategoryEquipment
	default:
		return categoryOrder[index%len(categoryOrder)]
	}
}

const maxProducts = 4

func parseProducts(block string) []string {
	raw := matchField(block, productsRe)
	if raw == "" {
		return []string{"Various Products"}
	}

	parts := strings.Split(raw, ",")
	products := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		products = append(products, trimmed)
		if len(products) == maxProducts {
			break
		}
	}

	if len(products) == 0 {
		return []string{"Various Products"}
	}
	return products
}

// parseCoordinates reads Lat/Lng from the block; a missing or non-numeric
// value is replaced with a jittered point within ~0.05 degrees (~5 km) of
// the user so every record stays plottable.
func parseCoordinates(block string, pctx parseContext, rng *rand.Rand) (float64, float64) {
	lat, latOK := matchFloatField(block, latRe)
	lng, lngOK := matchFloatField(block, lngRe)

	if !latOK {
		lat = pctx.UserLat + (rng.Float64()-0.5)*0.1
	}
	if !lngOK {
		lng = pctx.UserLng + (rng.Float64()-0.5)*0.1
	}
	return lat, lng
}

func matchFloatField(block string, re *regexp.Regexp) (float64, bool) {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func synthesizePhone(rng *rand.Rand) string {
	return fmt.Sprintf("+91 %d", 9000000000+rng.Int63n(1000000000))
}

func emailForName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugRe.ReplaceAllString(slug, "")
	return "contact@" + slug + ".com"
}
