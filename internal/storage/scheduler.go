package storage

import (
	"carhoot/internal/providers"
	"carhoot/internal/storage/interfaces"
	"carhoot/internal/structures"
	"github.com/roylee0704/gron"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	store       *DurableStore
	fileManager *FileManager
	sweeper     interfaces.SweeperInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if removed := s.store.PurgeExpired(); removed > 0 {
			s.logger.Debugf(providers.TypeStorage, "Purged %d expired keys", removed)
		}
		if err := s.save(); err != nil {
			s.logger.Errorf(providers.TypeStorage, "Error while persisting data: %s", err)
		}
	})

	s.cron.AddFunc(gron.Every(sweepInterval), func() {
		active := s.sweeper.Sweep()
		s.metrics.SetActiveMatches(active)
	})

	s.cron.Start()
}

func (s *Scheduler) save() error {
	start := time.Now()
	n, err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.metrics.IncPersistenceErrors("snapshot")
		return err
	}
	s.metrics.SetStoredKeys(n)
	s.logger.Infof(providers.TypeStorage, "Persisted %d keys to file %s", n, s.config.Persistence.FilePath)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	n, err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	s.metrics.SetStoredKeys(n)
	s.logger.Infof(providers.TypeStorage, "Restored %d keys from %s", n, s.config.Persistence.FilePath)
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStorage, "Persisting progress to file...")
	err := s.save()
	if err != nil {
		s.logger.Errorf(providers.TypeStorage, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store *DurableStore, fileManager *FileManager, sweeper interfaces.SweeperInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		store:       store,
		fileManager: fileManager,
		sweeper:     sweeper,
	}
}
