// The todoist program is an acme user interface to the Todoist launcher plugin (https://todoist.com).
//
// Settings are read from the launcher's configuration file (see todoist-launcher's help). If no API token is
// configured there, in the keyring, or in $TODOIST_API_TOKEN, the token is read from the file lib/todoist/token
// within the user's home directory, which must not be readable by others.
//
// When launched, it creates the window /todo/launcher showing the default view: the add and refresh entries,
// then today's tasks. Commands in the tag:
//
//	Query text	run the launcher query, e.g., "Query project Work" or "Query add milk tomorrow"
//	Query	back to the default view
//	Get	render the query again against the local data
//	Refresh	sync with Todoist
//	Add text	add a task with Todoist's quick-add syntax
//	Done id	complete the task with the given id
//	Fuzzy	toggle fuzzy matching
//	Sort	toggle between launcher order and alphabetical order
//
// Right-click on an id to run the item's first action, e.g., open the task in the browser.
//
// Logs are appended to lib/todoist/launcher.log within the user's home directory, and the Todoist requests and
// responses to lib/todoist/wire.log.
package main // import "github.com/nicolagi/todoist-launcher/cmd/todoist"
