package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/ngmaloney/angler-terminal/internal/database"
	"github.com/ngmaloney/angler-terminal/internal/geocoding"
	"github.com/ngmaloney/angler-terminal/internal/meteomu"
	"github.com/ngmaloney/angler-terminal/internal/openmeteo"
	"github.com/ngmaloney/angler-terminal/internal/solunar"
	"github.com/ngmaloney/angler-terminal/internal/tides"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("database.path", database.DBPath())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("server.address", ":8080")

	v.SetDefault("time.zone_name", "Indian/Mauritius")
	v.SetDefault("time.utc_offset_hours", 4)

	v.SetDefault("open_meteo.marine_url", openmeteo.DefaultMarineURL)
	v.SetDefault("open_meteo.forecast_url", openmeteo.DefaultForecastURL)
	v.SetDefault("open_meteo.timeout", 5*time.Second)

	v.SetDefault("meteo_mauritius.sun_url", meteomu.DefaultSunURL)
	v.SetDefault("meteo_mauritius.moon_url", meteomu.DefaultMoonURL)
	v.SetDefault("meteo_mauritius.timeout", 10*time.Second)
	v.SetDefault("meteo_mauritius.cache_ttl", solunar.DefaultTableTTL)

	v.SetDefault("nominatim.url", geocoding.DefaultNominatimURL)

	v.SetDefault("regions.shapefile", "")

	port := tides.PortLouis()
	constituents := make([]map[string]any, 0, len(port.Constituents))
	for _, c := range port.Constituents {
		constituents = append(constituents, map[string]any{
			"name":         c.Name,
			"period_hours": c.PeriodHours,
			"amplitude_m":  c.AmplitudeM,
		})
	}
	v.SetDefault("tide.harmonic.constituents", constituents)
	v.SetDefault("tide.harmonic.lunar_amplitude", port.LunarAmplitude)
	v.SetDefault("tide.harmonic.lunar_period_days", port.LunarPeriod)
	v.SetDefault("tide.harmonic.mean_sea_level", port.MeanSeaLevel)
	v.SetDefault("tide.harmonic.min_height", port.MinHeight)
	v.SetDefault("tide.harmonic.max_height", port.MaxHeight)
	setThresholdDefaults(v, "tide.harmonic.thresholds", tides.HarmonicThresholds)
	setThresholdDefaults(v, "tide.live_thresholds", tides.LiveThresholds)
}

func setThresholdDefaults(v *viper.Viper, prefix string, th tides.Thresholds) {
	v.SetDefault(prefix+".high", th.High)
	v.SetDefault(prefix+".medium_high", th.MediumHigh)
	v.SetDefault(prefix+".medium", th.Medium)
}
