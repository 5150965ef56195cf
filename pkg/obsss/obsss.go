// Package obsss reads the observation support files published by mission
// planning: the active OR list and the long term planned roll table. The
// files are rewritten in place on the planning side, so a directory watch
// keeps the in-memory copy current.
package obsss

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const (
	ORListFile      = "scheduled_obs_list"
	PlannedRollFile = "mp_long_term"
)

// Cache holds the parsed support files and refreshes them when the files
// change on disk.
type Cache struct {
	dir     string
	watcher *fsnotify.Watcher

	mu      sync.RWMutex
	orList  map[int64]bool
	planned map[int64]string
}

// Open loads the support files from dir and starts watching for rewrites.
func Open(dir string) (*Cache, error) {
	c := &Cache{
		dir:     dir,
		orList:  map[int64]bool{},
		planned: map[int64]string{},
	}
	c.reload()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	c.watcher = watcher
	go c.watch()
	return c, nil
}

// Close stops the directory watch.
func (c *Cache) Close() error {
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Close()
}

func (c *Cache) watch() {
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if name == ORListFile || name == PlannedRollFile {
				c.reload()
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("obs_ss watcher error: %v", err)
		}
	}
}

func (c *Cache) reload() {
	orList := map[int64]bool{}
	if f, err := os.Open(filepath.Join(c.dir, ORListFile)); err == nil {
		orList = ParseORList(f)
		_ = f.Close()
	} else {
		log.Printf("obs_ss: %v", err)
	}

	planned := map[int64]string{}
	if f, err := os.Open(filepath.Join(c.dir, PlannedRollFile)); err == nil {
		planned = ParsePlannedRoll(f)
		_ = f.Close()
	} else {
		log.Printf("obs_ss: %v", err)
	}

	c.mu.Lock()
	c.orList = orList
	c.planned = planned
	c.mu.Unlock()
}

// OnORList reports whether an obsid appears on the active OR list.
func (c *Cache) OnORList(obsid int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.orList[obsid]
}

// CheckORList maps each obsid to its OR list membership.
func (c *Cache) CheckORList(obsids []int64) map[int64]bool {
	out := make(map[int64]bool, len(obsids))
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, obsid := range obsids {
		out[obsid] = c.orList[obsid]
	}
	return out
}

// PlannedRoll returns the planned roll range for an obsid, if mission
// planning published one.
func (c *Cache) PlannedRoll(obsid int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roll, ok := c.planned[obsid]
	return roll, ok
}

// ParseORList reads the scheduled_obs_list format: one observation per
// line, obsid in the first whitespace-separated field. Malformed lines are
// skipped.
func ParseORList(r io.Reader) map[int64]bool {
	out := map[int64]bool{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if obsid, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			out[obsid] = true
		}
	}
	return out
}

// ParsePlannedRoll reads the mp_long_term format: colon-separated
// obsid:roll:roll lines. The two roll values are rendered low to high.
func ParsePlannedRoll(r io.Reader) map[int64]string {
	out := map[int64]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), ":")
		if len(parts) < 3 {
			continue
		}
		obsid, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			continue
		}
		lo, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		hi, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			continue
		}
		rolls := []float64{lo, hi}
		sort.Float64s(rolls)
		out[obsid] = fmt.Sprintf("%g-%g", rolls[0], rolls[1])
	}
	return out
}
