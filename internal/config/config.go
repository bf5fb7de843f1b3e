package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Server    Server    `koanf:"server"`
	Mongo     Mongo     `koanf:"mongo"`
	AssetHost AssetHost `koanf:"assethost"`
	Client    Client    `koanf:"client"`
}

type Server struct {
	Port          int    `koanf:"port"`
	AllowedOrigin string `koanf:"allowedorigin"`
}

type Mongo struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type AssetHost struct {
	BaseURL      string `koanf:"baseurl"`
	CloudName    string `koanf:"cloudname"`
	APIKey       string `koanf:"apikey"`
	APISecret    string `koanf:"apisecret"`
	UploadPreset string `koanf:"uploadpreset"`
}

type Client struct {
	Retries    int           `koanf:"retries"`
	RetryDelay time.Duration `koanf:"retrydelay"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Server: Server{
			Port:          8080,
			AllowedOrigin: "http://localhost:5173",
		},
		Mongo: Mongo{
			URI:      "mongodb://localhost:27017",
			Database: "schedly",
		},
		AssetHost: AssetHost{
			BaseURL: "https://api.cloudinary.com/v1_1",
		},
		Client: Client{
			Retries:    2,
			RetryDelay: 3 * time.Second,
		},
	}, "koanf"), nil)
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
		Prefix: "SCHEDLY_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SCHEDLY_")), "_", ".")
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
