package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tmp36 "github.com/gurupras/go-tmp36"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

func main() {
	pin := flag.String("pin", tmp36.DefaultPin, "ADC header pin the TMP36 output is wired to")
	interval := flag.Duration("interval", tmp36.DefaultInterval, "delay between samples")
	sysfs := flag.String("sysfs", "/sys", "sysfs mount point")
	once := flag.Bool("once", false, "print a single reading and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := tmp36.NewSampler(tmp36.NewBoneADC(*sysfs))
	s.Pin = *pin
	s.Interval = *interval
	var err error
	if *once {
		err = s.Once()
	} else {
		err = s.Run(ctx)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
