package main

import (
	"os"

	"github.com/klokku/schedulekeeper/internal/cli"
	"github.com/klokku/schedulekeeper/internal/utils"
	log "github.com/sirupsen/logrus"
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		logrusLevel, err := log.ParseLevel(level)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(logrusLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	if err := cli.NewRootCommand(utils.SystemClock{}).Execute(); err != nil {
		log.Fatal(err)
	}
}
