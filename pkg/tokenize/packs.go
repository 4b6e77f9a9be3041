package tokenize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// Pack is a YAML-defined set of custom extractors. A pack file holds
// one pack; reloading a file replaces the extractors it registered
// earlier.
type Pack struct {
	Name       string       `yaml:"name" json:"name"`
	Extractors []*Extractor `yaml:"extractors" json:"extractors"`
}

// Validate checks the pack-level required fields. Per-extractor
// validation happens at registration.
func (p *Pack) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("pack name is required")
	}
	if len(p.Extractors) == 0 {
		return fmt.Errorf("pack %q: at least one extractor is required", p.Name)
	}
	return nil
}

// LoadFile loads one pack file. Validation and pattern compilation
// errors are fatal for the whole file; on success the file's previous
// extractors (if it was loaded before) are replaced.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading pack %s: %w", path, err)
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return fmt.Errorf("parsing pack %s: %w", path, err)
	}
	if err := pack.Validate(); err != nil {
		return fmt.Errorf("pack %s: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Drop whatever this file registered before, then register the new
	// set. A failure mid-way leaves the earlier extractors removed but
	// never half-registers the file.
	r.dropFileLocked(path)

	var names []string
	for _, e := range pack.Extractors {
		if err := r.register(e); err != nil {
			r.removeLocked(names)
			_ = r.rebuild()
			return fmt.Errorf("pack %s: %w", path, err)
		}
		names = append(names, e.Name)
	}
	if r.packFiles == nil {
		r.packFiles = make(map[string][]string)
	}
	r.packFiles[path] = names

	if err := r.rebuild(); err != nil {
		return fmt.Errorf("pack %s: %w", path, err)
	}
	return nil
}

// dropFileLocked removes the extractors a file registered. Callers hold
// the write lock.
func (r *Registry) dropFileLocked(path string) {
	names, ok := r.packFiles[path]
	if !ok {
		return
	}
	r.removeLocked(names)
	delete(r.packFiles, path)
}

// removeLocked removes extractors by name without rebuilding.
func (r *Registry) removeLocked(names []string) {
	for _, name := range names {
		for i, e := range r.extractors {
			if e.Name == name {
				r.extractors = append(r.extractors[:i], r.extractors[i+1:]...)
				break
			}
		}
	}
}

// LoadDirectory loads every .yaml/.yml pack file in the directory. A
// missing directory loads nothing; individual file failures are
// collected so one bad pack does not hide the others.
func (r *Registry) LoadDirectory(dir string) error {
	r.mu.Lock()
	r.dir = dir
	r.mu.Unlock()

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking pack directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading pack directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() || !isPackFile(entry.Name()) {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			loadErrors = append(loadErrors, err.Error())
		}
	}
	if len(loadErrors) > 0 {
		return fmt.Errorf("loading packs: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

func isPackFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Reload drops every pack-loaded extractor and reloads the configured
// directory. Built-in extractors are untouched.
func (r *Registry) Reload() error {
	r.mu.Lock()
	if r.dir == "" {
		r.mu.Unlock()
		return fmt.Errorf("no pack directory configured for reload")
	}
	dir := r.dir
	for path := range r.packFiles {
		r.dropFileLocked(path)
	}
	err := r.rebuild()
	r.mu.Unlock()
	if err != nil {
		return err
	}

	return r.LoadDirectory(dir)
}

// SetOnChange sets a callback invoked when the watcher loads or drops a
// pack. The pack argument is nil for removals.
func (r *Registry) SetOnChange(fn func(event string, pack *Pack)) {
	r.onChange = fn
}

// Watch starts watching the configured pack directory and reloads
// changed pack files until StopWatch is called.
func (r *Registry) Watch() error {
	r.mu.RLock()
	dir := r.dir
	r.mu.RUnlock()
	if dir == "" {
		return fmt.Errorf("no pack directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go r.watchLoop()

	if err := watcher.Add(dir); err != nil {
		r.watcher.Close()
		return fmt.Errorf("watching pack directory %s: %w", dir, err)
	}
	return nil
}

// watchLoop handles file system events until stopped.
func (r *Registry) watchLoop() {
	for {
		select {
		case <-r.stopChan:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !isPackFile(event.Name) {
				continue
			}
			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handlePackChange(event.Name, "create")
			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handlePackChange(event.Name, "modify")
			case event.Op&fsnotify.Remove == fsnotify.Remove:
				r.handlePackRemove(event.Name)
			case event.Op&fsnotify.Rename == fsnotify.Rename:
				r.handlePackRemove(event.Name)
			}

		case _, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (r *Registry) handlePackChange(path, eventType string) {
	if err := r.LoadFile(path); err != nil {
		return
	}
	if r.onChange != nil {
		r.onChange(eventType, &Pack{Name: packNameFromPath(path)})
	}
}

func (r *Registry) handlePackRemove(path string) {
	r.mu.Lock()
	r.dropFileLocked(path)
	_ = r.rebuild()
	r.mu.Unlock()

	if r.onChange != nil {
		r.onChange("remove", nil)
	}
}

// packNameFromPath derives a display name from the file name.
func packNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}

// StopWatch stops the directory watcher.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
}
