package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/psknn17/kingsportal/core/account"
)

var (
	readPINFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	parentRepo account.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addparent -name NAME -email EMAIL [-students IDS] - create a parent account")
	fmt.Println("  resetpin -email EMAIL - reset a parent's PIN")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addParentCmd := flag.NewFlagSet("addparent", flag.ExitOnError)
	addParentName := addParentCmd.String("name", "", "The parent's full name.")
	addParentEmail := addParentCmd.String("email", "", "The parent's email. The PIN will be prompted next.")
	addParentStudents := addParentCmd.String("students", "", "Comma-separated student IDs.")

	resetPINCmd := flag.NewFlagSet("resetpin", flag.ExitOnError)
	resetPINEmail := resetPINCmd.String("email", "", "The parent's email. The PIN will be prompted next.")

	switch args[1] {
	case "addparent":
		if err := addParentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addParentName == "" || *addParentEmail == "" {
			addParentCmd.Usage()
			return errHelp
		}
		pin, err := cli.promptPIN()
		if err != nil {
			if err == errHelp {
				addParentCmd.Usage()
			}
			return err
		}
		return cli.addParent(*addParentName, *addParentEmail, pin, *addParentStudents)
	case "resetpin":
		if err := resetPINCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPINEmail == "" {
			resetPINCmd.Usage()
			return errHelp
		}
		pin, err := cli.promptPIN()
		if err != nil {
			if err == errHelp {
				resetPINCmd.Usage()
			}
			return err
		}
		return cli.resetPIN(*resetPINEmail, pin)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPIN() (string, error) {
	fmt.Print("Enter PIN:")
	pin, err := readPINFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pin) == 0 {
		return "", errHelp
	}
	return string(pin), nil
}
