package game

const (
	// SeasonCycleDays is the length of one full year.
	SeasonCycleDays = 40
	seasonBandDays  = SeasonCycleDays / 4
	// temperatureJitter bounds the daily deviation from the seasonal base.
	temperatureJitter = 2
)

var seasonOrder = [...]Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// Climate is the environment of one day.
type Climate struct {
	Season          Season
	BaseTemperature int
	Temperature     int
}

// SeasonForDay returns the season of a 1-based day number.
func SeasonForDay(day int) Season {
	phase := (day - 1) % SeasonCycleDays
	if phase < 0 {
		phase += SeasonCycleDays
	}
	return seasonOrder[phase/seasonBandDays]
}

// BaseTemperature returns the seasonal base temperature in degrees Celsius.
func BaseTemperature(season Season) int {
	switch season {
	case SeasonSpring:
		return 20
	case SeasonSummer:
		return 30
	case SeasonAutumn:
		return 10
	case SeasonWinter:
		return -5
	default:
		return 20
	}
}

// ClimateForDay resolves the season for day and draws its temperature,
// which stays within two degrees of the seasonal base.
func ClimateForDay(day int, rng Rand) Climate {
	season := SeasonForDay(day)
	base := BaseTemperature(season)
	return Climate{
		Season:          season,
		BaseTemperature: base,
		Temperature:     base + rng.IntN(2*temperatureJitter+1) - temperatureJitter,
	}
}
