package dto

type ForecastWeather struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type ForecastItem struct {
	Dt      int64             `json:"dt"`
	DtTxt   string            `json:"dt_txt"`
	Weather []ForecastWeather `json:"weather"`
	Main    struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

type ForecastCity struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone int    `json:"timezone"`
}

// ForecastResponse keeps List as a pointer so a missing "list" key can be
// told apart from an empty one.
type ForecastResponse struct {
	List *[]ForecastItem `json:"list"`
	City ForecastCity    `json:"city"`
}
