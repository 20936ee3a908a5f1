// Package schedule holds the recurring background tasks the worker runs on
// cron: the proving-deadline sweep and the platform stat snapshot.
package schedule

import (
	logger "github.com/sirupsen/logrus"

	"memelaunch/internal/service"
)

const finalizeBatchSize = 50

// FinalizeExpiredMemes sweeps proving memes past their deadline and settles
// each one: launch if the goal and quorum held, failed otherwise. Anyone can
// trigger finalization through the API too; the sweep just guarantees it
// happens without a caller.
func FinalizeExpiredMemes(svc *service.Service) {
	indices, err := svc.ExpiredProvingMemes(finalizeBatchSize)
	if err != nil {
		logger.Errorf("> finalize sweep query failed: %v", err)
		return
	}
	if len(indices) == 0 {
		return
	}

	logger.Infof("> finalize sweep found %d expired memes", len(indices))
	for _, index := range indices {
		meme, err := svc.EvaluateAndFinalize(index)
		if err != nil {
			logger.Errorf("> finalize meme %d failed: %v", index, err)
			continue
		}
		logger.Infof("> meme %d settled as %s", index, meme.Status)
	}
}
