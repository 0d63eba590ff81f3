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
	Listen  string  `koanf:"listen"`
	Storage Storage `koanf:"storage"`
	Parser  Parser  `koanf:"parser"`
}

type Storage struct {
	// Backend is one of "fs", "redis", "postgres" or "sqlite".
	Backend  string   `koanf:"backend"`
	Fs       Fs       `koanf:"fs"`
	Redis    Redis    `koanf:"redis"`
	Database Database `koanf:"db"`
	Sqlite   Sqlite   `koanf:"sqlite"`
}

type Fs struct {
	Root string `koanf:"root"`
}

type Redis struct {
	URL string `koanf:"url"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Sqlite struct {
	Path string `koanf:"path"`
}

type Parser struct {
	// UtcOffsetHours is the offset of the timezone schedule listings are written in.
	UtcOffsetHours int `koanf:"utcoffsethours"`
	// Marker is the line that precedes schedule lines in a raw message.
	Marker string `koanf:"marker"`
}

func Defaults() Application {
	return Application{
		Listen: ":8181",
		Storage: Storage{
			Backend: "fs",
			Fs: Fs{
				Root: "./schedules",
			},
			Redis: Redis{
				URL: "redis://localhost:6379/0",
			},
			Database: Database{
				Host:   "localhost",
				Port:   5432,
				User:   "schedulekeeper",
				Pass:   "",
				Name:   "schedulekeeper",
				Schema: "public",
			},
			Sqlite: Sqlite{
				Path: "./schedules.db",
			},
		},
		Parser: Parser{
			UtcOffsetHours: 10,
			Marker:         "**schedule**",
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
		Prefix: "SCHEDULE_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SCHEDULE_")), "_", ".")
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
