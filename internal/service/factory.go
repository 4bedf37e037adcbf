package service

import (
	"fmt"

	"github.com/fsdevblog/gumball-machine/pkg/uow"
)

type AppServices struct {
	MachineService *MachineService
	JournalService *JournalService
}

func Factory(unitOfWork uow.UOW, deployment Deployment, badgeSecret []byte) (*AppServices, error) {
	machineService, machineServiceErr := NewMachineService(unitOfWork, deployment, badgeSecret)
	if machineServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", machineServiceErr)
	}

	journalService, journalServiceErr := NewJournalService(unitOfWork)
	if journalServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", journalServiceErr)
	}

	return &AppServices{
		MachineService: machineService,
		JournalService: journalService,
	}, nil
}
