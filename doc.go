// The todoist package contains the Todoist side of a launcher plugin: a small client for the Todoist unified API
// v1 (https://developer.todoist.com/api/v1), an in-memory cache of the user's projects and tasks, and a sync
// coordinator that refreshes the cache in the background.
//
// The client makes exactly three kinds of remote calls: Sync, which downloads all items, projects and the user
// object (always a full sync, the sync token sent is "*"), AddTask, which hands free-form text to the quick-add
// endpoint so that Todoist parses dates, projects and labels server side, and CompleteTask.
//
// Lookups and searches never make remote calls. They scan the slices of the current Snapshot, which is fine
// because task inventories are small and the launcher re-runs its query on every keystroke anyway. A Snapshot is
// never mutated once published to a Store; a Syncer replaces it wholesale after every successful sync.
package todoist // import "github.com/nicolagi/todoist-launcher"
