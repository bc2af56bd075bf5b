// Package config provides configuration loading for seqkit consumers.
//
// It uses viper to layer a config.yml under environment variables, with
// optional .env loading via godotenv. Config structs carry mapstructure
// tags and follow the ApplyDefaults/Validate convention used by the
// source packages.
//
// # Usage
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Kafka kafkastream.Config `yaml:"kafka" mapstructure:"kafka"`
//	}
//
//	var cfg AppConfig
//	if err := config.LoadConfig("ingest", &cfg); err != nil {
//	    ...
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    ...
//	}
//
// Environment variables override file values; KAFKA_READ_TIMEOUT reaches
// kafka.read_timeout without explicit binding.
package config
