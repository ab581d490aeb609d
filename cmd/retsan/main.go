// Copyright (c) 2026 The retstack authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program retsan runs the return stack sanitizer on a textual module.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/retstack/retstack"
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] modulefile\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	var (
		output   = "-"
		verbose  = false
		outcomes = false
	)

	flag.StringVarP(&output, "output", "o", output, "output file (- for stdout)")
	flag.BoolVarP(&verbose, "verbose", "v", verbose, "log each transformation step")
	flag.BoolVar(&outcomes, "outcomes", outcomes, "report the per-function outcome on stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	filename := flag.Arg(0)

	config := new(retstack.Config)

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer logger.Sync()
		config.Log = logger
	}

	f, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	data, result, err := retstack.Transform(config, f)
	if err != nil {
		log.Fatalf("%s: %v", filename, err)
	}

	if outcomes {
		names := make([]string, 0, len(result.Outcomes))
		for name := range result.Outcomes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, result.Outcomes[name])
		}
	}

	if output == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		log.Fatal(err)
	}
}
