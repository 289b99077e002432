package main

import (
	"flag"
	"log"
	"os"
	"strings"
)

// buildFlags collects repeated -build values.
type buildFlags []BuildOrder

func (b *buildFlags) String() string {
	parts := make([]string, 0, len(*b))
	for _, o := range *b {
		parts = append(parts, o.Category.String()+":"+o.Name)
	}
	return strings.Join(parts, ",")
}

func (b *buildFlags) Set(value string) error {
	order, err := ParseBuildOrder(value)
	if err != nil {
		return err
	}
	*b = append(*b, order)
	return nil
}

func main() {
	var builds buildFlags
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	turns := flag.Int("turns", -1, "number of turns to play, overrides the config")
	load := flag.Bool("load", false, "resume from the configured save file")
	save := flag.Bool("save", true, "save the village on exit")
	flag.Var(&builds, "build", "site to build before playing, as category:name (repeatable)")
	flag.Parse()

	logger := log.New(os.Stdout, "[session] ", log.LstdFlags)
	session, err := NewSession(*configPath, Options{Load: *load, Save: *save}, logger, os.Stdout)
	if err != nil {
		log.Fatalf("failed to create session: %v", err)
	}

	for _, order := range builds {
		ok, err := session.Build(order.Category, order.Name)
		switch {
		case err != nil:
			logger.Printf("Cannot build %s: %v", order.Name, err)
		case !ok:
			logger.Printf("Not enough wood or stone to build %s", order.Name)
		default:
			logger.Printf("Built %s %s", order.Category, order.Name)
		}
	}

	n := session.ConfigManager.GetConfig().Session.Turns
	if *turns >= 0 {
		n = *turns
	}
	played := session.Run(n)
	logger.Printf("Played %d of %d turns", played, n)

	if err := session.Close(); err != nil {
		log.Fatalf("failed to close session: %v", err)
	}
}
