package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"mazereplay/internal/domain"
	"mazereplay/internal/eventbus"
	"mazereplay/internal/replay"
)

// TraceSuffix names the files the solvers write, e.g. out/bfs_events.jsonl
const TraceSuffix = "_events.jsonl"

// maxDepth is how many directory levels below the scanned one are searched
const maxDepth = 1

// DiscoveryService finds trace files on disk
type DiscoveryService interface {
	Scan(ctx context.Context, dir string) ([]domain.PaneSpec, error)
	StartScan(ctx context.Context, dir string) error
	StopScan()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(bus eventbus.EventBus) DiscoveryService {
	return &discoveryService{bus: bus}
}

// Scan walks dir for trace files and returns one pane spec per file,
// sorted by label. The result is also published as TracesDiscoveredEvent.
func (ds *discoveryService) Scan(ctx context.Context, dir string) ([]domain.PaneSpec, error) {
	specs, err := scanDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	if ds.bus != nil {
		ds.bus.Publish(eventbus.TracesDiscoveredEvent{Dir: dir, Specs: specs})
	}
	return specs, nil
}

// StartScan runs Scan in the background; failures are published as ErrorEvent
func (ds *discoveryService) StartScan(ctx context.Context, dir string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	ds.isScanning = true

	// Create cancellable context
	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()
		defer func() {
			ds.mu.Lock()
			ds.isScanning = false
			ds.cancelFunc = nil
			ds.mu.Unlock()
			cancel()
		}()

		if _, err := ds.Scan(scanCtx, dir); err != nil && ds.bus != nil {
			ds.bus.Publish(eventbus.ErrorEvent{Message: "trace discovery failed", Err: err})
		}
	}()

	return nil
}

// StopScan stops any ongoing scan
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

func skipDir(name string) bool {
	switch name {
	case "node_modules", "vendor", ".git", "__pycache__", "build":
		return true
	}
	return strings.HasPrefix(name, ".") && name != "."
}

func scanDirectory(ctx context.Context, root string) ([]domain.PaneSpec, error) {
	var specs []domain.PaneSpec
	seen := make(map[string]int)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			relPath, _ := filepath.Rel(root, path)
			depth := strings.Count(relPath, string(filepath.Separator)) + 1
			if depth > maxDepth || skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), TraceSuffix) {
			return nil
		}

		label := replay.LabelFor(path)
		// two directories may hold a bfs trace each
		seen[label]++
		if n := seen[label]; n > 1 {
			label = fmt.Sprintf("%s-%d", label, n)
		}
		specs = append(specs, domain.PaneSpec{Label: label, TracePath: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Label < specs[j].Label })
	log.Printf("Discovered %d traces in %s", len(specs), root)
	return specs, nil
}
