package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/MSTC-DAU/mstc/core/event"
	"github.com/MSTC-DAU/mstc/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db      *bun.DB
	usrRepo user.Repository
	evtRepo event.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate                         - apply pending database migrations")
	fmt.Println("  rollback                        - revert the last migration group")
	fmt.Println("  promote -email EMAIL [-role R]  - set a user's role (default: convener)")
	fmt.Println("  seed                            - load demo data into an empty database")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	promoteCmd := flag.NewFlagSet("promote", flag.ExitOnError)
	promoteEmail := promoteCmd.String("email", "", "The user's email.")
	promoteRole := promoteCmd.String("role", string(user.RoleConvener), "The role to set.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "rollback":
		return cli.rollback()
	case "promote":
		if err := promoteCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *promoteEmail == "" {
			promoteCmd.Usage()
			return errHelp
		}
		return cli.promote(*promoteEmail, user.Role(*promoteRole))
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}
