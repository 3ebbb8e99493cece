package main

import (
	"log"
	"os"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/storage/database"
	"github.com/MSTC-DAU/mstc/storage/database/bundb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db := database.Open(conf)
	defer func() { _ = db.Close() }()
	errAndDie(database.Ping(db))

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: bunrepos.NewUserRepository(db),
		evtRepo: bunrepos.NewEventRepository(db),
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
