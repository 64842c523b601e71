package main

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"time"

	"9fans.net/go/acme"
	"github.com/nicolagi/todoist-launcher/launcher"
	log "github.com/sirupsen/logrus"
)

const launcherTitle = "/todo/launcher"

var all struct {
	sync.Mutex
	m map[*acme.Win]*window
}

type window struct {
	*acme.Win

	// Guards the fields below. Execute writes them on the event loop, load reads them from other goroutines.
	mu sync.Mutex

	// What the user typed after the trigger; empty for the default view.
	query string

	// The items currently shown, for right-click lookups and inferred arguments.
	items []launcher.Item

	// If false, keep the launcher's order.
	sortAlphabetically bool
}

func (w *window) resetTag() {
	_ = w.Ctl("cleartag")
	_ = w.Fprintf("tag", " Get Refresh Query Add Done Fuzzy Sort ")
}

// exit is called after the window's event loop is over, i.e., the window has been closed in acme. If it's the
// last window, we wait for any sync in flight, so its token gets saved, before terminating the process.
func (w *window) exit() {
	all.Lock()
	defer all.Unlock()
	if all.m[w.Win] == w {
		delete(all.m, w.Win)
	}
	if len(all.m) == 0 {
		plugin.Wait()
		os.Exit(0)
	}
}

// newWindow creates a window in acme without a specific purpose, and registers it in the global map of windows.
func newWindow(pathname string) *window {
	all.Lock()
	defer all.Unlock()
	if all.m == nil {
		all.m = make(map[*acme.Win]*window)
	}

	logEntry := log.WithField("path", pathname)
	aw, err := acme.New()
	if err != nil {
		logEntry.WithField("cause", err).Warning("Could not create acme window")
		time.Sleep(10 * time.Millisecond)
		aw, err = acme.New()
		if err != nil {
			logEntry.WithField("cause", err).Fatal("Could not create acme window again")
		}
	}
	aw.SetErrorPrefix(pathname)
	_ = aw.Name("%s", pathname)

	w := &window{Win: aw}
	all.m[w.Win] = w
	return w
}

func newLauncherWindow() {
	if acme.Show(launcherTitle) != nil {
		return
	}
	w := newWindow(launcherTitle)
	w.resetTag()
	if plugin.Snapshot().Empty() {
		refresh(false)
	}
	go w.load()
	go w.loop()
}

// refresh requests a sync and reloads all windows once it is over.
func refresh(notify bool) {
	if !plugin.Refresh(notify) {
		return
	}
	go func() {
		plugin.Wait()
		reloadAll()
	}()
}

func reloadAll() {
	all.Lock()
	defer all.Unlock()
	for _, w := range all.m {
		w.load()
	}
}

func (w *window) load() {
	w.mu.Lock()
	query, alphabetically := w.query, w.sortAlphabetically
	w.mu.Unlock()

	items := plugin.HandleQuery(query)
	w.mu.Lock()
	w.items = items
	w.mu.Unlock()

	var buf bytes.Buffer
	printHeader(&buf, query, plugin.Snapshot(), plugin.FuzzyMatching())
	printItems(&buf, items, alphabetically)

	w.Clear()
	w.PrintTabbed(buf.String())
	_ = w.Ctl("clean")
	_ = w.Addr("0")
	_ = w.Ctl("dot=addr")
	_ = w.Ctl("show")
}

func (w *window) item(id string) (launcher.Item, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range w.items {
		if item.ID == id {
			return item, true
		}
	}
	return launcher.Item{}, false
}

// Look is invoked via button-3 click in acme. If text is the id of a shown item, its first action runs, e.g., the
// task is opened in the browser. Otherwise return false to defer to acme.
func (w *window) Look(text string) bool {
	item, ok := w.item(strings.TrimSpace(text))
	if !ok || len(item.Actions) == 0 {
		return false
	}
	w.run(item.Actions[0])
	return true
}

// run executes an action off the event loop, as actions may call Todoist.
func (w *window) run(action launcher.Action) {
	go func() {
		action.Run()
		plugin.Wait()
		reloadAll()
	}()
}

// Execute is triggered by button-2 click in acme.
func (w *window) Execute(cmd string) bool {
	verb, arg := cmd, ""
	if i := strings.IndexByte(cmd, ' '); i >= 0 {
		verb, arg = cmd[:i], strings.TrimSpace(cmd[i+1:])
	}
	switch verb {
	case "Query":
		w.mu.Lock()
		w.query = arg
		w.mu.Unlock()
		go w.load()
		return true
	case "Get":
		go w.load()
		return true
	case "Refresh":
		refresh(true)
		return true
	case "Add":
		if arg == "" {
			w.Err("Add needs the task text")
			return true
		}
		go func() {
			plugin.AddTask(arg)
			plugin.Wait()
			reloadAll()
		}()
		return true
	case "Done":
		if arg == "" {
			w.Err("Done needs a task id")
			return true
		}
		item, ok := w.item(arg)
		if !ok {
			w.Errf("Task not shown: %s", arg)
			return true
		}
		action, ok := item.Action("done")
		if !ok {
			w.Errf("Not a task: %s", arg)
			return true
		}
		w.run(action)
		return true
	case "Fuzzy":
		plugin.SetFuzzyMatching(!plugin.FuzzyMatching())
		go w.load()
		return true
	case "Sort":
		w.mu.Lock()
		w.sortAlphabetically = !w.sortAlphabetically
		w.mu.Unlock()
		go w.load()
		return true
	case "Del":
		_ = w.Del(false)
		return true
	default:
		return false
	}
}

func (w *window) loop() {
	defer w.exit()
	w.EventLoop(w)
}
