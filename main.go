package main

import (
	"os"

	_ "github.com/chrisdfennell/ad-tools/modules/aclview"
	"github.com/chrisdfennell/ad-tools/modules/cli"
	_ "github.com/chrisdfennell/ad-tools/modules/frontend"
	"github.com/rs/zerolog/log"
)

func main() {
	err := cli.Run()

	if err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}
