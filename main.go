package main

import (
	"os"

	"github.com/schedly/schedly/internal/app"
	log "github.com/sirupsen/logrus"
)

func main() {
	configureLogging()

	application, err := app.NewApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}

// configureLogging sets the global level from LOG_LEVEL; an unset variable
// means info, an unparseable one is a startup error.
func configureLogging() {
	raw := os.Getenv("LOG_LEVEL")
	if raw == "" {
		log.SetLevel(log.InfoLevel)
		return
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		log.Fatalf("invalid LOG_LEVEL %q: %v", raw, err)
	}
	log.SetLevel(level)
}
