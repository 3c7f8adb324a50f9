package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"oppwatch/internal/browser"
	"oppwatch/internal/classifier"
	"oppwatch/internal/config"
	"oppwatch/internal/datastore"
	"oppwatch/internal/extractor"
	"oppwatch/internal/logger"
	"oppwatch/internal/monitor"
	"oppwatch/internal/notifier"
	"oppwatch/internal/portal"
	"oppwatch/internal/runhistory"

	"github.com/rs/zerolog"
)

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config: %v", err)
	}
	gCfg.ApplyEnvironment()

	if flags.Mode != "" {
		gCfg.Mode = flags.Mode
	}
	if flags.TargetURL != "" {
		gCfg.PortalConfig.TargetURL = flags.TargetURL
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Invalid config: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	checker, history := buildChecker(gCfg, zLogger)
	if history != nil {
		defer history.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch gCfg.Mode {
	case "automated":
		scheduler := monitor.NewScheduler(gCfg.MonitorConfig, checker, zLogger)
		if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
			zLogger.Error().Err(err).Msg("Monitor loop exited with error")
			os.Exit(1)
		}
	default:
		result := checker.Check(ctx)
		if result.Err != nil {
			// Only fetch-level failures surface as a failed run; every
			// other condition was absorbed into a classified event.
			os.Exit(1)
		}
	}
}

func buildChecker(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (*monitor.Checker, *runhistory.Store) {
	portalClient := portal.NewClient(gCfg.PortalConfig, zLogger)

	var renderer monitor.PageRenderer
	if gCfg.BrowserConfig.Enabled {
		renderer = browser.NewRenderer(gCfg.BrowserConfig, zLogger)
	}

	var history *runhistory.Store
	if gCfg.StorageConfig.RunHistoryDBPath != "" {
		var err error
		history, err = runhistory.NewStore(gCfg.StorageConfig.RunHistoryDBPath, zLogger)
		if err != nil {
			zLogger.Warn().Err(err).Msg("Run history unavailable, continuing without it")
			history = nil
		}
	}

	formatter := notifier.NewFormatter()
	var notifiers []notifier.Notifier
	if gCfg.NotificationConfig.Email.Enabled {
		notifiers = append(notifiers, notifier.NewEmailNotifier(gCfg.NotificationConfig.Email, formatter, zLogger))
	}
	if gCfg.NotificationConfig.Pushbullet.Enabled {
		notifiers = append(notifiers, notifier.NewPushbulletNotifier(gCfg.NotificationConfig.Pushbullet, formatter, nil, zLogger))
	}

	checker, err := monitor.NewChecker(monitor.CheckerConfig{
		TargetURL:       gCfg.PortalConfig.TargetURL,
		NotifyOnFailure: gCfg.NotificationConfig.NotifyOnFailure,
		Fetcher:         portalClient,
		Renderer:        renderer,
		Extractor:       extractor.NewExtractor(gCfg.ExtractorConfig, zLogger),
		Store:           datastore.NewStateStore(gCfg.StorageConfig.StateFilePath, zLogger),
		Lock:            datastore.NewRunLock(gCfg.StorageConfig.RunLockFilePath, zLogger),
		Classifier:      classifier.NewClassifier(zLogger),
		Dispatcher:      notifier.NewNotificationHelper(zLogger, notifiers...),
		History:         history,
	}, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not assemble checker")
	}
	return checker, history
}
