package main

import (
	"time"

	"github.com/psknn17/kingsportal/core"
)

func (cli *commandLine) resetPIN(email, pin string) error {
	prt, err := cli.parentRepo.GetParentByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := prt.SetPIN(pin); err != nil {
		return err
	}
	prt.UpdatedAt = time.Now().UTC()
	_, err = cli.parentRepo.UpdateParent(prt)
	return err
}
