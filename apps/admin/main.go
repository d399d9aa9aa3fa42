package main

import (
	"log"
	"os"

	inmemdb "github.com/psknn17/kingsportal/storage/inmem"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up the store with the demo fixtures
	db, err := inmemdb.Open()
	errAndDie(err)
	errAndDie(inmemdb.Seed(db))

	// start CLI
	cli := commandLine{
		parentRepo: inmemdb.NewParentRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
