package game

import "testing"

func TestSeasonForDayBands(t *testing.T) {
	cases := map[int]Season{
		1:  SeasonSpring,
		10: SeasonSpring,
		11: SeasonSummer,
		20: SeasonSummer,
		21: SeasonAutumn,
		30: SeasonAutumn,
		31: SeasonWinter,
		40: SeasonWinter,
		41: SeasonSpring,
		85: SeasonSpring,
		95: SeasonSummer,
	}
	for day, want := range cases {
		if got := SeasonForDay(day); got != want {
			t.Fatalf("expected day %d to be %s, got %s", day, want, got)
		}
	}
}

func TestClimateForDayStaysNearBase(t *testing.T) {
	rng := NewRand(7)
	seen := map[int]bool{}
	for day := 1; day <= 400; day++ {
		c := ClimateForDay(day, rng)
		if c.BaseTemperature != BaseTemperature(c.Season) {
			t.Fatalf("expected base %d for %s, got %d", BaseTemperature(c.Season), c.Season, c.BaseTemperature)
		}
		delta := c.Temperature - c.BaseTemperature
		if delta < -2 || delta > 2 {
			t.Fatalf("expected temperature within 2 of base, got delta %d on day %d", delta, day)
		}
		seen[delta] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected all five deviations to occur, got %v", seen)
	}
}

func TestBaseTemperatures(t *testing.T) {
	want := map[Season]int{SeasonSpring: 20, SeasonSummer: 30, SeasonAutumn: 10, SeasonWinter: -5}
	for season, temp := range want {
		if got := BaseTemperature(season); got != temp {
			t.Fatalf("expected %s base %d, got %d", season, temp, got)
		}
	}
}
