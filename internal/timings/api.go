package timings

// response is the top-level Al Adhan timings response.
type response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   data   `json:"data"`
}

// calendarResponse carries one data entry per day of a month.
type calendarResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   []data `json:"data"`
}

type data struct {
	Timings apiTimings `json:"timings"`
	Date    dateInfo   `json:"date"`
	Meta    meta       `json:"meta"`
}

// apiTimings may carry a zone suffix like " (+03)".
type apiTimings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Sunset  string `json:"Sunset"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
	Imsak   string `json:"Imsak"`
}

type dateInfo struct {
	Readable  string        `json:"readable"`
	Timestamp string        `json:"timestamp"`
	Hijri     hijriDate     `json:"hijri"`
	Gregorian gregorianDate `json:"gregorian"`
}

type hijriDate struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Month struct {
		Number int    `json:"number"`
		En     string `json:"en"`
		Ar     string `json:"ar"`
	} `json:"month"`
	Year        string `json:"year"`
	Designation struct {
		Abbreviated string `json:"abbreviated"`
	} `json:"designation"`
}

// text renders "DD Month YYYY AH", or "" when parts are missing.
func (h hijriDate) text() string {
	if h.Day == "" || h.Month.En == "" || h.Year == "" {
		return ""
	}
	abbr := h.Designation.Abbreviated
	if abbr == "" {
		abbr = "AH"
	}
	return h.Day + " " + h.Month.En + " " + h.Year + " " + abbr
}

type gregorianDate struct {
	Date string `json:"date"`
}

type meta struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Method    struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"method"`
}
