package config

import "sort"

// City represents a city configuration
type City struct {
	Name       string  `json:"name"`
	Department string  `json:"department"`
	PostalCode string  `json:"postal_code"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
	ZoomLevel  int     `json:"zoom_level"`
}

// Arrondissement is an intra-city administrative subdivision.
type Arrondissement struct {
	Name       string  `json:"name"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
}

// Department is a French administrative department.
type Department struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
}

// SupportedCities is the static gazetteer of cities served by the map
var SupportedCities = []City{
	{Name: "Paris", Department: "75", PostalCode: "75000", Lon: 2.3522, Lat: 48.8566, ZoomLevel: 12},
	{Name: "Marseille", Department: "13", PostalCode: "13000", Lon: 5.3698, Lat: 43.2965, ZoomLevel: 12},
	{Name: "Lyon", Department: "69", PostalCode: "69000", Lon: 4.8357, Lat: 45.7640, ZoomLevel: 12},
	{Name: "Toulouse", Department: "31", PostalCode: "31000", Lon: 1.4442, Lat: 43.6047, ZoomLevel: 13},
	{Name: "Nice", Department: "06", PostalCode: "06000", Lon: 7.2620, Lat: 43.7102, ZoomLevel: 13},
	{Name: "Nantes", Department: "44", PostalCode: "44000", Lon: -1.5536, Lat: 47.2184, ZoomLevel: 13},
	{Name: "Montpellier", Department: "34", PostalCode: "34000", Lon: 3.8767, Lat: 43.6108, ZoomLevel: 13},
	{Name: "Strasbourg", Department: "67", PostalCode: "67000", Lon: 7.7521, Lat: 48.5734, ZoomLevel: 13},
	{Name: "Bordeaux", Department: "33", PostalCode: "33000", Lon: -0.5792, Lat: 44.8378, ZoomLevel: 13},
	{Name: "Lille", Department: "59", PostalCode: "59000", Lon: 3.0573, Lat: 50.6292, ZoomLevel: 13},
	{Name: "Rennes", Department: "35", PostalCode: "35000", Lon: -1.6778, Lat: 48.1173, ZoomLevel: 13},
	{Name: "Ajaccio", Department: "2A", PostalCode: "20000", Lon: 8.7386, Lat: 41.9192, ZoomLevel: 13},
	{Name: "Bastia", Department: "2B", PostalCode: "20200", Lon: 9.4509, Lat: 42.7028, ZoomLevel: 13},
}

// Departments maps the gazetteer cities to their departments.
var Departments = []Department{
	{Code: "75", Name: "Paris", Lon: 2.3522, Lat: 48.8566},
	{Code: "13", Name: "Bouches-du-Rhone", Lon: 5.0860, Lat: 43.5432},
	{Code: "69", Name: "Rhone", Lon: 4.6440, Lat: 45.8700},
	{Code: "31", Name: "Haute-Garonne", Lon: 1.1733, Lat: 43.3585},
	{Code: "06", Name: "Alpes-Maritimes", Lon: 7.1165, Lat: 43.9400},
	{Code: "44", Name: "Loire-Atlantique", Lon: -1.6833, Lat: 47.3476},
	{Code: "34", Name: "Herault", Lon: 3.3673, Lat: 43.5912},
	{Code: "67", Name: "Bas-Rhin", Lon: 7.5500, Lat: 48.6700},
	{Code: "33", Name: "Gironde", Lon: -0.5750, Lat: 44.8250},
	{Code: "59", Name: "Nord", Lon: 3.2200, Lat: 50.4800},
	{Code: "35", Name: "Ille-et-Vilaine", Lon: -1.6300, Lat: 48.1500},
	{Code: "2A", Name: "Corse-du-Sud", Lon: 8.9906, Lat: 41.8640},
	{Code: "2B", Name: "Haute-Corse", Lon: 9.2060, Lat: 42.3940},
}

// Arrondissements lists the intra-city subdivisions of the gazetteer.
var Arrondissements = []Arrondissement{
	{Name: "Paris 1er Arrondissement", City: "Paris", PostalCode: "75001", Lon: 2.3364, Lat: 48.8635},
	{Name: "Paris 2e Arrondissement", City: "Paris", PostalCode: "75002", Lon: 2.3418, Lat: 48.8679},
	{Name: "Paris 3e Arrondissement", City: "Paris", PostalCode: "75003", Lon: 2.3610, Lat: 48.8630},
	{Name: "Paris 4e Arrondissement", City: "Paris", PostalCode: "75004", Lon: 2.3574, Lat: 48.8543},
	{Name: "Paris 5e Arrondissement", City: "Paris", PostalCode: "75005", Lon: 2.3510, Lat: 48.8445},
	{Name: "Paris 6e Arrondissement", City: "Paris", PostalCode: "75006", Lon: 2.3326, Lat: 48.8493},
	{Name: "Paris 7e Arrondissement", City: "Paris", PostalCode: "75007", Lon: 2.3125, Lat: 48.8565},
	{Name: "Paris 8e Arrondissement", City: "Paris", PostalCode: "75008", Lon: 2.3125, Lat: 48.8728},
	{Name: "Paris 9e Arrondissement", City: "Paris", PostalCode: "75009", Lon: 2.3376, Lat: 48.8769},
	{Name: "Paris 10e Arrondissement", City: "Paris", PostalCode: "75010", Lon: 2.3608, Lat: 48.8761},
	{Name: "Paris 11e Arrondissement", City: "Paris", PostalCode: "75011", Lon: 2.3796, Lat: 48.8580},
	{Name: "Paris 12e Arrondissement", City: "Paris", PostalCode: "75012", Lon: 2.3876, Lat: 48.8412},
	{Name: "Paris 13e Arrondissement", City: "Paris", PostalCode: "75013", Lon: 2.3622, Lat: 48.8322},
	{Name: "Paris 14e Arrondissement", City: "Paris", PostalCode: "75014", Lon: 2.3266, Lat: 48.8331},
	{Name: "Paris 15e Arrondissement", City: "Paris", PostalCode: "75015", Lon: 2.3007, Lat: 48.8412},
	{Name: "Paris 16e Arrondissement", City: "Paris", PostalCode: "75016", Lon: 2.2699, Lat: 48.8637},
	{Name: "Paris 17e Arrondissement", City: "Paris", PostalCode: "75017", Lon: 2.3062, Lat: 48.8835},
	{Name: "Paris 18e Arrondissement", City: "Paris", PostalCode: "75018", Lon: 2.3444, Lat: 48.8927},
	{Name: "Paris 19e Arrondissement", City: "Paris", PostalCode: "75019", Lon: 2.3843, Lat: 48.8839},
	{Name: "Paris 20e Arrondissement", City: "Paris", PostalCode: "75020", Lon: 2.3986, Lat: 48.8650},
	{Name: "Lyon 1er Arrondissement", City: "Lyon", PostalCode: "69001", Lon: 4.8296, Lat: 45.7699},
	{Name: "Lyon 2e Arrondissement", City: "Lyon", PostalCode: "69002", Lon: 4.8266, Lat: 45.7490},
	{Name: "Lyon 3e Arrondissement", City: "Lyon", PostalCode: "69003", Lon: 4.8634, Lat: 45.7575},
	{Name: "Lyon 4e Arrondissement", City: "Lyon", PostalCode: "69004", Lon: 4.8273, Lat: 45.7787},
	{Name: "Lyon 5e Arrondissement", City: "Lyon", PostalCode: "69005", Lon: 4.8037, Lat: 45.7570},
	{Name: "Lyon 6e Arrondissement", City: "Lyon", PostalCode: "69006", Lon: 4.8521, Lat: 45.7720},
	{Name: "Lyon 7e Arrondissement", City: "Lyon", PostalCode: "69007", Lon: 4.8417, Lat: 45.7330},
	{Name: "Lyon 8e Arrondissement", City: "Lyon", PostalCode: "69008", Lon: 4.8692, Lat: 45.7345},
	{Name: "Lyon 9e Arrondissement", City: "Lyon", PostalCode: "69009", Lon: 4.8047, Lat: 45.7797},
	{Name: "Marseille 1er Arrondissement", City: "Marseille", PostalCode: "13001", Lon: 5.3809, Lat: 43.2990},
	{Name: "Marseille 2e Arrondissement", City: "Marseille", PostalCode: "13002", Lon: 5.3640, Lat: 43.3064},
	{Name: "Marseille 3e Arrondissement", City: "Marseille", PostalCode: "13003", Lon: 5.3786, Lat: 43.3112},
	{Name: "Marseille 4e Arrondissement", City: "Marseille", PostalCode: "13004", Lon: 5.3996, Lat: 43.3068},
	{Name: "Marseille 5e Arrondissement", City: "Marseille", PostalCode: "13005", Lon: 5.4004, Lat: 43.2935},
	{Name: "Marseille 6e Arrondissement", City: "Marseille", PostalCode: "13006", Lon: 5.3793, Lat: 43.2868},
	{Name: "Marseille 7e Arrondissement", City: "Marseille", PostalCode: "13007", Lon: 5.3565, Lat: 43.2843},
	{Name: "Marseille 8e Arrondissement", City: "Marseille", PostalCode: "13008", Lon: 5.3771, Lat: 43.2540},
	{Name: "Marseille 9e Arrondissement", City: "Marseille", PostalCode: "13009", Lon: 5.4051, Lat: 43.2320},
	{Name: "Marseille 10e Arrondissement", City: "Marseille", PostalCode: "13010", Lon: 5.4187, Lat: 43.2731},
	{Name: "Marseille 11e Arrondissement", City: "Marseille", PostalCode: "13011", Lon: 5.4728, Lat: 43.2877},
	{Name: "Marseille 12e Arrondissement", City: "Marseille", PostalCode: "13012", Lon: 5.4366, Lat: 43.3070},
	{Name: "Marseille 13e Arrondissement", City: "Marseille", PostalCode: "13013", Lon: 5.4343, Lat: 43.3355},
	{Name: "Marseille 14e Arrondissement", City: "Marseille", PostalCode: "13014", Lon: 5.3815, Lat: 43.3421},
	{Name: "Marseille 15e Arrondissement", City: "Marseille", PostalCode: "13015", Lon: 5.3555, Lat: 43.3553},
	{Name: "Marseille 16e Arrondissement", City: "Marseille", PostalCode: "13016", Lon: 5.3192, Lat: 43.3620},
}

// GetCityNames returns a list of supported city names
func GetCityNames() []string {
	names := make([]string, len(SupportedCities))
	for i, city := range SupportedCities {
		names[i] = city.Name
	}
	return names
}

// GetCityByName returns a city configuration by name
func GetCityByName(name string) *City {
	for _, city := range SupportedCities {
		if city.Name == name {
			return &city
		}
	}
	return nil
}

// GetDepartmentByCode returns a department by its administrative code.
func GetDepartmentByCode(code string) *Department {
	for _, dep := range Departments {
		if dep.Code == code {
			return &dep
		}
	}
	return nil
}

// GetArrondissementsForCity returns the subdivisions of a city sorted
// ascending by postal code.
func GetArrondissementsForCity(city string) []Arrondissement {
	var out []Arrondissement
	for _, arr := range Arrondissements {
		if arr.City == city {
			out = append(out, arr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PostalCode < out[j].PostalCode
	})
	return out
}
