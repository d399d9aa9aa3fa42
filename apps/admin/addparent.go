package main

import (
	"strings"
	"time"

	"github.com/psknn17/kingsportal/core"
	"github.com/psknn17/kingsportal/core/account"
)

// addParent updates or creates an account.Parent
func (cli *commandLine) addParent(name, email, pin, students string) error {
	email = core.CleanString(email, true /* lower */)

	var studentIDs []string
	for _, sid := range strings.Split(students, ",") {
		if sid = strings.TrimSpace(sid); sid != "" {
			studentIDs = append(studentIDs, sid)
		}
	}

	now := time.Now().UTC()
	prt, err := cli.parentRepo.GetParentByEmail(email)
	if err != nil {
		if err != account.ErrNotFound {
			return err
		}
		prt = account.Parent{
			Name:       core.CleanString(name),
			Email:      email,
			StudentIDs: studentIDs,
			CreatedAt:  now,
		}
		if err := prt.SetPIN(pin); err != nil {
			return err
		}
		_, err = cli.parentRepo.CreateParent(prt)
		return err
	}

	prt.Name = core.CleanString(name)
	if studentIDs != nil {
		prt.StudentIDs = studentIDs
	}
	if err := prt.SetPIN(pin); err != nil {
		return err
	}
	prt.UpdatedAt = now
	_, err = cli.parentRepo.UpdateParent(prt)
	return err
}
