package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mrsobakin/battlesim/internal/config"
	"github.com/mrsobakin/battlesim/internal/logging"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "path to a config file (json, yaml or toml)")
	pflag.String("addr", "127.0.0.1:4239", "address to listen on")
	pflag.Int64("jobs", 4, "how many workers may run at once across all requests")
	pflag.Parse()

	v := viper.New()
	if err := v.BindPFlag("server.addr", pflag.Lookup("addr")); err != nil {
		panic(err)
	}
	if err := v.BindPFlag("server.jobs", pflag.Lookup("jobs")); err != nil {
		panic(err)
	}

	s, err := config.Load(v, *configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logging.New(os.Stderr, s.LogLevel, s.LogJSON)

	router := gin.Default()

	NewServer(s.Server.Jobs, s.Server.MaxTrials, s.Server.PlacementBudget, log).RegisterEndpoints(router)

	log.Info().Str("addr", s.Server.Addr).Int64("jobs", s.Server.Jobs).Msg("listening")

	if err := router.Run(s.Server.Addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
