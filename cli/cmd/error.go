package cmd

import "github.com/ardnew/openr/prop"

var (
	ErrYAMLMarshal  = prop.NewError("marshal YAML")
	ErrWriteConfig  = prop.NewError("write configuration file")
	ErrFileExists   = prop.NewError("file exists (use --force to overwrite)")
	ErrStdinReused  = prop.NewError("standard input named as both source and destination")
	ErrNoConfigPath = prop.NewError("configuration path undefined")
)
