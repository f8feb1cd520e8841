package model

// WeatherReport is the normalized primary-fetch result for a resolved place.
type WeatherReport struct {
	Location    string  `json:"location"`
	TempC       float64 `json:"temp_c"`
	HumidityPct float64 `json:"humidity_pct"`
	Description string  `json:"description"`
}
