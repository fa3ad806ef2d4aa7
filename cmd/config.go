package main

import "time"

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,default=info"`
	TokenSecret          string        `env:"TOKEN_SECRET,required=true"`
	AccessTokenDuration  time.Duration `env:"ACCESS_TOKEN_DURATION,default=15m"`
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION,default=720h"`
	HistoryLimit         int           `env:"HISTORY_LIMIT,default=20"`
	CharReplacement      string        `env:"MODERATION_CHARACTER_REPLACEMENT,default=*"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	StatsInterval        time.Duration `env:"STATS_INTERVAL,default=30s"`
	GCInterval           time.Duration `env:"GC_INTERVAL,default=5m"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=5s"`
}
