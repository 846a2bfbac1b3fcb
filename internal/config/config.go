package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

type Application struct {
	Host     string   `koanf:"host"`
	Storage  Storage  `koanf:"storage"`
	Redis    Redis    `koanf:"redis"`
	Database Database `koanf:"db"`
	Booking  Booking  `koanf:"booking"`
	Export   Export   `koanf:"export"`
}

// Storage selects the key-value backend holding the appointment collection.
type Storage struct {
	Driver string `koanf:"driver"` // file, redis, postgres or memory
	Key    string `koanf:"key"`
	Dir    string `koanf:"dir"`
}

type Redis struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Booking struct {
	OpeningHour  int      `koanf:"opening_hour"`
	ClosingHour  int      `koanf:"closing_hour"`
	MaxDaysAhead int      `koanf:"max_days_ahead"`
	Timezone     string   `koanf:"timezone"`
	Sedes        []string `koanf:"sedes"`
}

type Export struct {
	Dir    string `koanf:"dir"`
	Prefix string `koanf:"prefix"`
	// Quote enables csv-style quoting of fields containing tabs, quotes or newlines.
	Quote bool `koanf:"quote"`
}

// Defaults returns the configuration used when neither file nor environment override a key.
func Defaults() Application {
	return Application{
		Host: ":8181",
		Storage: Storage{
			Driver: "file",
			Key:    "citas",
			Dir:    "./data",
		},
		Redis: Redis{
			Addr: "localhost:6379",
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "citas",
			Pass:   "",
			Name:   "citas",
			Schema: "public",
		},
		Booking: Booking{
			OpeningHour:  8,
			ClosingHour:  20,
			MaxDaysAhead: 60,
			Timezone:     "America/Bogota",
		},
		Export: Export{
			Dir:    ".",
			Prefix: "citas_magical_hair",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CITAS_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ToLower(strings.TrimPrefix(k, "CITAS_"))
			// only the first underscore separates sections, e.g. BOOKING_MAX_DAYS_AHEAD
			k = strings.Replace(k, "_", ".", 1)
			if k == "booking.sedes" {
				sedes := make([]string, 0)
				for _, sede := range strings.Split(v, ",") {
					if sede = strings.TrimSpace(sede); sede != "" {
						sedes = append(sedes, sede)
					}
				}
				return k, sedes
			}
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
