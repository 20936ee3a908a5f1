package schedule

import (
	logger "github.com/sirupsen/logrus"

	"memelaunch/internal/service"
	"memelaunch/pkg/utils"
)

// LogPlatformStats writes a periodic snapshot of the platform counters so
// the worker log doubles as a coarse activity record.
func LogPlatformStats(svc *service.Service) {
	platform, err := svc.GetPlatform()
	if err != nil {
		logger.Warnf("> platform stats unavailable: %v", err)
		return
	}

	logger.WithFields(logger.Fields{
		"memes_submitted": platform.TotalMemesSubmitted,
		"memes_launched":  platform.TotalMemesLaunched,
		"platform_fees":   utils.LamportsToSol(platform.TotalPlatformFees).String(),
	}).Info("> platform snapshot")
}
