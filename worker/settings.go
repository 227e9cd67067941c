package worker

import (
	"fmt"

	"fractals/misc"

	"github.com/BrugadaSyndrome/bslogger"
)

type settings struct {
	logger bslogger.Logger

	CoordinatorAddress string
}

func newSettings(settingsFile string) settings {
	s := settings{
		logger: bslogger.NewLogger("WorkerSettings", bslogger.Normal, nil),
	}
	misc.CheckError(misc.LoadJSON(settingsFile, &s), s.logger, misc.Fatal)
	misc.CheckError(s.Verify(), s.logger, misc.Fatal)
	return s
}

func (s *settings) Verify() error {
	if s.CoordinatorAddress == "" {
		address, err := misc.GetLocalAddress()
		if err != nil {
			return err
		}
		s.CoordinatorAddress = fmt.Sprintf("%s:%s", address, "51000")
	}
	return nil
}
