package stats

import (
	"sort"
	"strings"

	"immoxperts/server/internal/models"
)

// categoryAliases maps upstream type labels to the closed category
// set. Upstream spellings differ ("Local" vs "Local Commercial").
var categoryAliases = map[string]models.TypeGroupe{
	"appartement":      models.TypeAppartement,
	"maison":           models.TypeMaison,
	"terrain":          models.TypeTerrain,
	"local":            models.TypeLocal,
	"local commercial": models.TypeLocal,
	"bien multiple":    models.TypeBienMultiple,
	"biens multiples":  models.TypeBienMultiple,
}

// CategoryFor resolves an upstream type label to a category.
func CategoryFor(label string) (models.TypeGroupe, bool) {
	category, ok := categoryAliases[strings.ToLower(strings.TrimSpace(label))]
	return category, ok
}

// Median returns the median of the positive values in the list. Zero
// and negative values are excluded first; the median of an empty list
// is 0; an even-length list yields the mean of the two central values.
func Median(values []float64) float64 {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return 0
	}

	sort.Float64s(valid)
	mid := len(valid) / 2
	if len(valid)%2 == 1 {
		return valid[mid]
	}
	return (valid[mid-1] + valid[mid]) / 2
}

// Aggregate derives the per-category statistics table from the
// rendered feature set. A mutation can be attached to several features
// or addresses, so rows are computed over mutations deduplicated by
// identity, keeping the first-seen instance. The result always carries
// one row per category, in display order.
func Aggregate(features []models.Feature) []models.ZoneStat {
	type bucket struct {
		prices []float64
		perSqm []float64
		nombre int
	}
	buckets := make(map[models.TypeGroupe]*bucket, len(models.TypeGroupes))
	for _, category := range models.TypeGroupes {
		buckets[category] = &bucket{}
	}

	seen := make(map[string]struct{})
	for _, feature := range features {
		for _, mutation := range feature.Mutations() {
			key := mutation.IdentityKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			category, ok := CategoryFor(mutation.TypeGroupe)
			if !ok {
				continue
			}
			b := buckets[category]
			b.nombre++
			b.prices = append(b.prices, mutation.Valeur)
			b.perSqm = append(b.perSqm, mutation.PricePerSqm())
		}
	}

	rows := make([]models.ZoneStat, 0, len(models.TypeGroupes))
	for _, category := range models.TypeGroupes {
		b := buckets[category]
		rows = append(rows, models.ZoneStat{
			TypeGroupe:  category,
			Nombre:      b.nombre,
			PrixMoyen:   Median(b.prices),
			PrixM2Moyen: Median(b.perSqm),
		})
	}
	return rows
}

// EmptyTable returns a zeroed statistics table, one row per category.
func EmptyTable() []models.ZoneStat {
	rows := make([]models.ZoneStat, 0, len(models.TypeGroupes))
	for _, category := range models.TypeGroupes {
		rows = append(rows, models.ZoneStat{TypeGroupe: category})
	}
	return rows
}
