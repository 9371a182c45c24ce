package jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// TempPrefix adalah awalan nama file ZIP sementara di folder uploads.
const TempPrefix = "zipfile-"

// Sweeper menghapus ZIP sementara yang tertinggal karena gagal dihapus
// setelah ekstraksi.
type Sweeper struct {
	scheduler gocron.Scheduler
	dir       string
	maxAge    time.Duration
	now       func() time.Time
}

// NewSweeper membuat scheduler dengan satu job pembersihan berkala.
func NewSweeper(dir string, interval, maxAge time.Duration) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &Sweeper{scheduler: scheduler, dir: dir, maxAge: maxAge, now: time.Now}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run),
		gocron.WithName("temp-archive-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("register sweep job: %w", err)
	}
	return s, nil
}

func (s *Sweeper) Start() {
	log.Printf("Starting temp archive sweeper for %s", s.dir)
	s.scheduler.Start()
}

func (s *Sweeper) Stop() error {
	log.Printf("Stopping temp archive sweeper")
	return s.scheduler.Shutdown()
}

func (s *Sweeper) run() {
	removed, err := s.Sweep()
	if err != nil {
		log.Printf("Temp archive sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Removed %d stale temp archive(s) from %s", removed, s.dir)
	}
}

// Sweep menghapus file zipfile-* di level atas folder yang lebih tua dari maxAge.
func (s *Sweeper) Sweep() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.dir, err)
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), TempPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("⚠️  Failed to remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
